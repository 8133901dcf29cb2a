package store

import "context"

const upsertTrainer = `
INSERT INTO trainers (id, name, description, photo, price, children_price, specialization, experience, achievements)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	description = excluded.description,
	photo = excluded.photo,
	price = excluded.price,
	children_price = excluded.children_price,
	specialization = excluded.specialization,
	experience = excluded.experience,
	achievements = excluded.achievements
`

func (q *Queries) UpsertTrainer(ctx context.Context, t Trainer) error {
	_, err := q.db.ExecContext(ctx, upsertTrainer,
		t.ID, t.Name, t.Description, t.Photo, t.Price, t.ChildrenPrice,
		t.Specialization, t.Experience, t.Achievements)
	return err
}

const getTrainer = `
SELECT id, name, description, photo, price, children_price, specialization, experience, achievements
FROM trainers WHERE id = ?
`

func (q *Queries) GetTrainer(ctx context.Context, id string) (Trainer, error) {
	var t Trainer
	err := q.db.QueryRowContext(ctx, getTrainer, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Photo, &t.Price, &t.ChildrenPrice,
		&t.Specialization, &t.Experience, &t.Achievements)
	return t, err
}

const listTrainers = `
SELECT id, name, description, photo, price, children_price, specialization, experience, achievements
FROM trainers ORDER BY name
`

func (q *Queries) ListTrainers(ctx context.Context) ([]Trainer, error) {
	rows, err := q.db.QueryContext(ctx, listTrainers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []Trainer
	for rows.Next() {
		var t Trainer
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Photo, &t.Price, &t.ChildrenPrice,
			&t.Specialization, &t.Experience, &t.Achievements,
		); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}
