package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

// accountDoc mirrors documents in the users collection.
type accountDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Username  string        `bson:"username"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (d accountDoc) toDomain() domain.Account {
	return domain.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type accountsRepo struct {
	coll *mongo.Collection
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (string, error) {
	doc := accountDoc{
		ID:        bson.NewObjectID(),
		Username:  a.Username,
		Email:     a.Email,
		Password:  a.PasswordHash,
		CreatedAt: a.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", oops.Code("ACCOUNT_CREATE_FAILED").
			With("username", a.Username).
			Wrap(mapDuplicate(err))
	}
	return doc.ID.Hex(), nil
}

// GetAccountByID treats ids that are not ObjectID hex as unknown accounts.
func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").With("by", "id").Wrap(store.ErrNotFound)
	}
	return r.findOne(ctx, "id", bson.D{{Key: "_id", Value: oid}})
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "email", bson.D{{Key: "email", Value: email}})
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, "username", bson.D{{Key: "username", Value: username}})
}

func (r *accountsRepo) findOne(ctx context.Context, by string, filter bson.D) (domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Account{}, oops.Code("ACCOUNT_LOOKUP_FAILED").With("by", by).Wrap(mapNotFound(err))
	}
	return doc.toDomain(), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return mapUnavailable(err)
}

// mapDuplicate names the unique index that rejected a write. The server
// reports the index name in the E11000 message.
func mapDuplicate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return mapUnavailable(err)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, indexAccountsEmail):
		return store.ErrDuplicateEmail
	case strings.Contains(msg, indexAccountsUsername):
		return store.ErrDuplicateUsername
	default:
		return store.ErrAlreadyExists
	}
}
