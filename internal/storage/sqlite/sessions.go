package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hostelhub/hostelctl/internal/storage"
)

// SaveSession stores the single local session, replacing any previous one.
func (s *sqliteStorage) SaveSession(
	ctx context.Context,
	token, userName, role string,
	expiresAt time.Time,
) (storage.Session, error) {
	statement, err := s.db.PrepareContext(ctx, `
		INSERT OR REPLACE INTO session (id, token, user_name, role, expires_at, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare save session statement: %w", err)
	}
	defer statement.Close()

	createdAt := time.Now()
	_, err = statement.ExecContext(ctx, token, userName, role, expiresAt.Unix(), createdAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return storage.NewSession(token, userName, role, expiresAt, createdAt), nil
}

// GetSession returns the stored session unless it has expired.
func (s *sqliteStorage) GetSession(ctx context.Context) (storage.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, user_name, role, expires_at, created_at
		FROM session
		WHERE id = 1 AND expires_at > ?
	`, time.Now().Unix())

	var token, userName, role string
	var expiresAt, createdAt int64

	err := row.Scan(&token, &userName, &role, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	return storage.NewSession(token, userName, role, time.Unix(expiresAt, 0), time.Unix(createdAt, 0)), nil
}

func (s *sqliteStorage) DeleteSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session")
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
