package sqlite

import (
	"context"
	"database/sql"

	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/idx"
)

type accountsRepo struct {
	db *sql.DB
}

const accountColumns = `id, username, email, password_hash, created_at`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (string, error) {
	id := idx.NewAt(a.CreatedAt).String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?)`,
		id, a.Username, a.Email, a.PasswordHash, a.CreatedAt.UTC(),
	)
	if err != nil {
		return "", oops.Code("ACCOUNT_CREATE_FAILED").
			With("username", a.Username).
			Wrap(mapUnique(err))
	}
	return id, nil
}

// GetAccountByID reports ErrNotFound for ids this driver could never have
// issued without touching the database.
func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").
			With("by", "id").
			Wrapf(store.ErrNotFound, "%v", err)
	}
	return r.getBy(ctx, "id", id)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.getBy(ctx, "username", username)
}

// getBy is only called with the fixed column names above.
func (r *accountsRepo) getBy(ctx context.Context, column, value string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE `+column+` = ?`, value)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").
			With("by", column).
			Wrap(mapNotFound(err))
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
