package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

type ProfileService struct {
	Store store.Store

	StoreTimeout time.Duration
	Now          func() time.Time
}

// Get returns the profile for accountID, or ErrProfileNotFound if none has
// been saved yet.
func (s *ProfileService) Get(ctx context.Context, accountID string) (p domain.Profile, err error) {
	ctx, span := tracer.Start(ctx, "ProfileService.Get",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer func() { endSpan(span, err) }()

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	p, err = s.Store.Profiles().GetProfile(sctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, storeErr("load profile", err)
	}
	return p, nil
}

// Save replaces the whole profile for accountID with fields. Fields left
// empty overwrite whatever was stored before.
func (s *ProfileService) Save(ctx context.Context, accountID string, fields domain.ProfileFields) (p domain.Profile, err error) {
	ctx, span := tracer.Start(ctx, "ProfileService.Save",
		trace.WithAttributes(attribute.String("account.id", accountID)))
	defer func() { endSpan(span, err) }()

	p = domain.Profile{
		UserID:        accountID,
		ProfileFields: fields,
		UpdatedAt:     nowUTC(s.Now),
	}

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	if err := s.Store.Profiles().UpsertProfile(sctx, p); err != nil {
		return domain.Profile{}, storeErr("save profile", err)
	}
	return p, nil
}
