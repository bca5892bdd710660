package mongodb

import (
	"context"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
)

// profileDoc mirrors documents in the profiles collection.
type profileDoc struct {
	UserID      string    `bson:"user_id"`
	FullName    string    `bson:"full_name"`
	Phone       string    `bson:"phone"`
	DateOfBirth string    `bson:"date_of_birth"`
	Address     string    `bson:"address"`
	City        string    `bson:"city"`
	State       string    `bson:"state"`
	ZipCode     string    `bson:"zip_code"`
	Country     string    `bson:"country"`
	Bio         string    `bson:"bio"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newProfileDoc(p domain.Profile) profileDoc {
	return profileDoc{
		UserID:      p.UserID,
		FullName:    p.FullName,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Country:     p.Country,
		Bio:         p.Bio,
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (d profileDoc) toDomain() domain.Profile {
	return domain.Profile{
		UserID: d.UserID,
		ProfileFields: domain.ProfileFields{
			FullName:    d.FullName,
			Phone:       d.Phone,
			DateOfBirth: d.DateOfBirth,
			Address:     d.Address,
			City:        d.City,
			State:       d.State,
			ZipCode:     d.ZipCode,
			Country:     d.Country,
			Bio:         d.Bio,
		},
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type profilesRepo struct {
	coll *mongo.Collection
}

func (r *profilesRepo) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var doc profileDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&doc)
	if err != nil {
		return domain.Profile{}, oops.Code("PROFILE_LOOKUP_FAILED").With("user_id", userID).Wrap(mapNotFound(err))
	}
	return doc.toDomain(), nil
}

// UpsertProfile $sets every field so a save fully replaces the previous one.
func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "user_id", Value: p.UserID}},
		bson.D{{Key: "$set", Value: newProfileDoc(p)}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.Code("PROFILE_UPSERT_FAILED").With("user_id", p.UserID).Wrap(mapUnavailable(err))
	}
	return nil
}
