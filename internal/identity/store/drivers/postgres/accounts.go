package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/idx"
)

type accountsRepo struct {
	db DB
}

const selectAccount = `SELECT id, username, email, password_hash, created_at FROM accounts`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (string, error) {
	id := idx.NewAt(a.CreatedAt).String()

	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, a.Username, a.Email, a.PasswordHash, a.CreatedAt.UTC(),
	)
	if err != nil {
		return "", oops.Code("ACCOUNT_CREATE_FAILED").
			With("username", a.Username).
			Wrap(mapUnique(err))
	}
	return id, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").With("by", "id").Wrapf(store.ErrNotFound, "%v", err)
	}
	return r.getOne(ctx, "id", selectAccount+` WHERE id = $1`, id)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getOne(ctx, "email", selectAccount+` WHERE email = $1`, email)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.getOne(ctx, "username", selectAccount+` WHERE username = $1`, username)
}

func (r *accountsRepo) getOne(ctx context.Context, by, query, arg string) (domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").With("by", by).Wrap(mapNotFound(err))
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
