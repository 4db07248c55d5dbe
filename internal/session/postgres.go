package session

import (
	"context"
	"database/sql"

	"fetchyfox.dev/internal/ids"
)

var _ TokenStore = (*PGStore)(nil)

// PGStore implements TokenStore using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, userID, token string) error {
	_, err := s.db.ExecContext(ctx,
		`insert into session_token(id, user_id, token) values($1,$2,$3)`,
		ids.New(), userID, token,
	)
	return err
}

func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`select token from session_token where user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (s *PGStore) DeleteExact(ctx context.Context, userID, token string) error {
	_, err := s.db.ExecContext(ctx,
		`delete from session_token where user_id=$1 and token=$2`,
		userID, token,
	)
	return err
}
