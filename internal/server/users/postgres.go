package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userfed/internal/common"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connector opens a fresh database handle. The repository calls it once per
// operation and closes the handle before returning, so no connection ever
// outlives a single call.
type Connector func() (*sql.DB, error)

// PostgresRepository reads the external user table through short-lived,
// non-pooled connections. It holds no mutable state and is safe for
// concurrent use.
type PostgresRepository struct {
	open Connector
}

// NewPostgresRepository builds a repository that dials the given pgx DSN on
// every operation.
func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{open: func() (*sql.DB, error) {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		// One connection per operation, no idle pool.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(0)
		return db, nil
	}}
}

// NewPostgresRepositoryWithConnector is used by tests to substitute the
// connection source.
func NewPostgresRepositoryWithConnector(open Connector) *PostgresRepository {
	return &PostgresRepository{open: open}
}

const selectColumns = `SELECT user_id, username, password_hash, first_name, last_name, department FROM users`

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	db, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer db.Close()

	query := selectColumns + ` WHERE username = $1`

	user, err := scanUser(db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return user, nil
}

func (r *PostgresRepository) SearchByUsername(ctx context.Context, fragment string) ([]*User, error) {
	query := selectColumns + ` WHERE username ILIKE '%' || $1 || '%' ORDER BY user_id`
	return r.queryUsers(ctx, query, fragment)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*User, error) {
	query := selectColumns + ` ORDER BY user_id`
	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	db, err := r.open()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer db.Close()

	var count int64
	err = db.QueryRowContext(ctx, `SELECT count(1) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return count, nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) (int64, error) {
	db, err := r.open()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE user_id = $2`, newHash, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return affected, nil
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*User, error) {
	db, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var result []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser maps one row onto a User, folding nullable display columns and a
// nullable password hash into empty strings.
func scanUser(row rowScanner) (*User, error) {
	var user User
	var passwordHash, firstName, lastName, department sql.NullString

	err := row.Scan(&user.UserID, &user.Username, &passwordHash, &firstName, &lastName, &department)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = passwordHash.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Department = department.String

	return &user, nil
}
