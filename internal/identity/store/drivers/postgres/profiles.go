package postgres

import (
	"context"

	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
)

type profilesRepo struct {
	db DB
}

func (r *profilesRepo) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRow(ctx,
		`SELECT user_id, full_name, phone, date_of_birth, address, city, state, zip_code, country, bio, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.DateOfBirth, &p.Address, &p.City,
		&p.State, &p.ZipCode, &p.Country, &p.Bio, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, oops.Code("PROFILE_LOOKUP_FAILED").With("user_id", userID).Wrap(mapNotFound(err))
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (
			user_id, full_name, phone, date_of_birth, address, city, state,
			zip_code, country, bio, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name     = EXCLUDED.full_name,
			phone         = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			address       = EXCLUDED.address,
			city          = EXCLUDED.city,
			state         = EXCLUDED.state,
			zip_code      = EXCLUDED.zip_code,
			country       = EXCLUDED.country,
			bio           = EXCLUDED.bio,
			updated_at    = EXCLUDED.updated_at`,
		p.UserID, p.FullName, p.Phone, p.DateOfBirth, p.Address, p.City,
		p.State, p.ZipCode, p.Country, p.Bio, p.UpdatedAt.UTC(),
	)
	if err != nil {
		return oops.Code("PROFILE_UPSERT_FAILED").With("user_id", p.UserID).Wrap(mapUnavailable(err))
	}
	return nil
}
