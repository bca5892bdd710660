package sqlite

import (
	"context"
	"database/sql"

	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
)

type profilesRepo struct {
	db *sql.DB
}

func (r *profilesRepo) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, full_name, phone, date_of_birth, address, city, state,
		       zip_code, country, bio, updated_at
		FROM profiles WHERE user_id = ?`, userID)

	var p domain.Profile
	err := row.Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.DateOfBirth, &p.Address, &p.City,
		&p.State, &p.ZipCode, &p.Country, &p.Bio, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, oops.Code("PROFILE_LOOKUP_FAILED").
			With("user_id", userID).
			Wrap(mapNotFound(err))
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// UpsertProfile replaces every column on conflict so omitted fields reset to
// empty.
func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, full_name, phone, date_of_birth, address, city, state,
			zip_code, country, bio, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name     = excluded.full_name,
			phone         = excluded.phone,
			date_of_birth = excluded.date_of_birth,
			address       = excluded.address,
			city          = excluded.city,
			state         = excluded.state,
			zip_code      = excluded.zip_code,
			country       = excluded.country,
			bio           = excluded.bio,
			updated_at    = excluded.updated_at`,
		p.UserID, p.FullName, p.Phone, p.DateOfBirth, p.Address, p.City,
		p.State, p.ZipCode, p.Country, p.Bio, p.UpdatedAt.UTC(),
	)
	if err != nil {
		return oops.Code("PROFILE_UPSERT_FAILED").With("user_id", p.UserID).Wrap(err)
	}
	return nil
}
