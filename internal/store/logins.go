package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrQuery = errors.New("failed to execute query")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const recordLogin = `INSERT INTO login (username, server_url, created_on) VALUES (?, ?, ?)`

// RecordLogin stores a submitted username for the server it was sent to.
func (q *Queries) RecordLogin(ctx context.Context, username string, serverURL string) error {
	if _, err := q.db.ExecContext(ctx, recordLogin, username, serverURL, time.Now().UTC()); err != nil {
		return errors.Join(err, ErrQuery)
	}

	return nil
}

const lastUsername = `SELECT username FROM login WHERE server_url = ? ORDER BY login_id DESC LIMIT 1`

// LastUsername returns the most recent username used for the server, or an empty string
// if there is none.
func (q *Queries) LastUsername(ctx context.Context, serverURL string) (string, error) {
	var username string
	if err := q.db.QueryRowContext(ctx, lastUsername, serverURL).Scan(&username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", errors.Join(err, ErrQuery)
	}

	return username, nil
}

const recentUsernames = `SELECT username FROM login WHERE server_url = ?
GROUP BY username ORDER BY MAX(login_id) DESC LIMIT ?`

// RecentUsernames returns the distinct usernames used for the server, newest first.
func (q *Queries) RecentUsernames(ctx context.Context, serverURL string, limit int) ([]string, error) {
	rows, errRows := q.db.QueryContext(ctx, recentUsernames, serverURL, limit)
	if errRows != nil {
		return nil, errors.Join(errRows, ErrQuery)
	}

	defer func() {
		_ = rows.Close()
	}()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, errors.Join(err, ErrQuery)
		}

		usernames = append(usernames, username)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return usernames, nil
}
