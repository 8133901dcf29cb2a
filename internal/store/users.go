package store

import "context"

const createUser = `
INSERT INTO users (id, username, password_hash, name, email, is_admin, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateUser(ctx context.Context, u User) error {
	_, err := q.db.ExecContext(ctx, createUser,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Email, u.IsAdmin, u.CreatedAt)
	return err
}

const getUser = `
SELECT id, username, password_hash, name, email, is_admin, created_at
FROM users WHERE id = ?
`

func (q *Queries) GetUser(ctx context.Context, id string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUser, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, password_hash, name, email, is_admin, created_at
FROM users WHERE username = ?
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserByUsername, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt)
	return u, err
}
