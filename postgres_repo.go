package signup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/seyio/signup/migrations"
)

const uniqueViolation = "23505"

type postgresAccountRepository struct {
	db *sql.DB
}

// NewPostgresAccountRepository opens the pool and runs the embedded goose
// migrations, which install the UNIQUE constraint on email that arbitrates
// concurrent creations.
func NewPostgresAccountRepository(ctx context.Context, dsn string) (Repository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &postgresAccountRepository{db: db}, nil
}

func (r *postgresAccountRepository) Create(ctx context.Context, acc *Account) error {
	acc.ID = NewID()

	query :=
		`INSERT INTO accounts (id, name, email, avatar, password_digest, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		string(acc.ID), acc.Name, acc.Email, acc.Avatar, acc.PasswordDigest, acc.CreatedAt)
	if err != nil {
		return wrapPgErr(err)
	}

	return nil
}

func (r *postgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findAccountBy(ctx, "email", email)
}

func (r *postgresAccountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	return r.findAccountBy(ctx, "id", string(id))
}

func (r *postgresAccountRepository) findAccountBy(ctx context.Context, column string, val string) (*Account, error) {
	query := fmt.Sprintf(
		`SELECT id, name, email, avatar, password_digest, created_at FROM accounts
		 WHERE %s = $1
		 `, column)

	acc := &Account{}
	err := r.db.QueryRowContext(ctx, query, val).Scan(
		&acc.ID, &acc.Name, &acc.Email, &acc.Avatar, &acc.PasswordDigest, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPgErr(err)
	}

	return acc, nil
}

// wrapPgErr translates driver errors into the repository's vocabulary: a
// unique violation is a conflict, network trouble is store unavailability,
// everything else passes through for the caller to treat as a fault.
func wrapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("db error: %w", err)
}
