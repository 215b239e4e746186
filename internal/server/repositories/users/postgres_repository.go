package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/dbx"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user and fills in the store-assigned flag defaults and
// timestamp. A unique violation on email is reported as
// common.ErrEmailExists: the caller's existence pre-check is advisory only,
// the constraint is what settles concurrent registrations.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, hashed_password)
         VALUES ($1, $2, $3)
         RETURNING is_active, is_superuser, is_verified, created_at
         `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.HashedPassword).
		Scan(&user.IsActive, &user.IsSuperuser, &user.IsVerified, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailExists
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, hashed_password, is_active, is_superuser, is_verified, created_at FROM users
         WHERE email = $1
         `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.HashedPassword,
			&user.IsActive, &user.IsSuperuser, &user.IsVerified, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}
