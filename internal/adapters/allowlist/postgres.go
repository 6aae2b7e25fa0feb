package allowlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/ports"
)

// PostgresSource reads allow-list records from PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE allowed_users (
//	    email       text PRIMARY KEY,
//	    name        text NOT NULL DEFAULT '',
//	    role        text NOT NULL DEFAULT '',
//	    association text NOT NULL DEFAULT ''
//	);
//	CREATE TABLE cronograma (
//	    title text NOT NULL,
//	    date  text NOT NULL,
//	    notes text NOT NULL DEFAULT ''
//	);
type PostgresSource struct {
	db *sql.DB
}

var _ ports.AllowlistSource = (*PostgresSource)(nil)

// NewPostgresSource creates a Postgres-backed allow-list source.
func NewPostgresSource(db *sql.DB) (*PostgresSource, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &PostgresSource{db: db}, nil
}

// FetchUsers returns all allowed users ordered by email.
func (s *PostgresSource) FetchUsers(ctx context.Context) ([]domainauth.AllowedUser, error) {
	const query = `SELECT email, name, role, association FROM allowed_users ORDER BY email`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query allowed users: %w", err))
	}
	defer rows.Close()

	var users []domainauth.AllowedUser
	for rows.Next() {
		var u domainauth.AllowedUser
		var role string
		if scanErr := rows.Scan(&u.Email, &u.Name, &role, &u.Association); scanErr != nil {
			return nil, apperrors.MapDBError(fmt.Errorf("scan allowed user: %w", scanErr))
		}
		u.Role = domainauth.Role(role)
		users = append(users, u)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate allowed users: %w", rowsErr))
	}

	return users, nil
}

// FetchSchedule returns all cronograma records ordered by date.
func (s *PostgresSource) FetchSchedule(ctx context.Context) ([]domainauth.ScheduleEntry, error) {
	const query = `SELECT title, date, notes FROM cronograma ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query cronograma: %w", err))
	}
	defer rows.Close()

	var entries []domainauth.ScheduleEntry
	for rows.Next() {
		var e domainauth.ScheduleEntry
		if scanErr := rows.Scan(&e.Title, &e.Date, &e.Notes); scanErr != nil {
			return nil, apperrors.MapDBError(fmt.Errorf("scan cronograma entry: %w", scanErr))
		}
		entries = append(entries, e)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate cronograma: %w", rowsErr))
	}

	return entries, nil
}
