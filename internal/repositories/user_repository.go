package repositories

import (
	"context"
	"database/sql"
	"users-api/internal/models"

	"github.com/pkg/errors"
)

var userTableDDL = map[string]string{
	"mysql": `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name TEXT NOT NULL,
			bio TEXT NOT NULL
		)`,
	"sqlite": `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			bio TEXT NOT NULL
		)`,
}

// SQLUserRepository works against both the mysql and sqlite drivers; every
// statement sticks to the syntax they share.
type SQLUserRepository struct {
	db *sql.DB
}

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// EnsureSchema creates the users table when it is missing.
func (r *SQLUserRepository) EnsureSchema(ctx context.Context, driver string) error {
	ddl, ok := userTableDDL[driver]
	if !ok {
		return errors.Errorf("unsupported driver %q", driver)
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "error creating users table")
	}
	return nil
}

func (r *SQLUserRepository) Find(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, bio FROM users ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "error listing users")
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Bio); err != nil {
			return nil, errors.Wrap(err, "error scanning user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating users")
	}
	return users, nil
}

func (r *SQLUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := findByID(ctx, r.db, id)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting user %d", id)
	}
	return user, nil
}

func (r *SQLUserRepository) Insert(ctx context.Context, in models.UserInput) (*models.User, error) {
	result, err := r.db.ExecContext(ctx, "INSERT INTO users (name, bio) VALUES (?, ?)", in.Name, in.Bio)
	if err != nil {
		return nil, errors.Wrap(err, "error saving user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "error getting last insert id")
	}

	return &models.User{ID: id, Name: in.Name, Bio: in.Bio}, nil
}

func (r *SQLUserRepository) Remove(ctx context.Context, id int64) (*models.User, error) {
	var removed *models.User
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		user, err := findByID(ctx, tx, id)
		if err != nil || user == nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
			return err
		}
		removed = user
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error removing user %d", id)
	}
	return removed, nil
}

func (r *SQLUserRepository) Update(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	var updated *models.User
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		// MySQL reports zero affected rows when the values are unchanged,
		// so existence is checked with a read instead.
		user, err := findByID(ctx, tx, id)
		if err != nil || user == nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE users SET name = ?, bio = ? WHERE id = ?", in.Name, in.Bio, id); err != nil {
			return err
		}
		updated, err = findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error updating user %d", id)
	}
	return updated, nil
}

func (r *SQLUserRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func findByID(ctx context.Context, q queryRower, id int64) (*models.User, error) {
	user := &models.User{}
	err := q.QueryRowContext(ctx, "SELECT id, name, bio FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Name, &user.Bio)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
