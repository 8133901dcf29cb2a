package store

import "context"

const upsertCourt = `
INSERT INTO courts (id, name, description, price, surface)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	description = excluded.description,
	price = excluded.price,
	surface = excluded.surface
`

func (q *Queries) UpsertCourt(ctx context.Context, c Court) error {
	_, err := q.db.ExecContext(ctx, upsertCourt, c.ID, c.Name, c.Description, c.Price, c.Surface)
	return err
}

const getCourt = `
SELECT id, name, description, price, surface FROM courts WHERE id = ?
`

func (q *Queries) GetCourt(ctx context.Context, id string) (Court, error) {
	var c Court
	err := q.db.QueryRowContext(ctx, getCourt, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Price, &c.Surface)
	return c, err
}

const listCourts = `
SELECT id, name, description, price, surface FROM courts ORDER BY name
`

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.Surface); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}
