package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/cryptox"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
)

// PasswordHasher is satisfied by *cryptox.BcryptHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
	VerifyDummy(password string)
}

// DefaultStoreTimeout bounds a single store call when none is configured.
const DefaultStoreTimeout = 30 * time.Second

type AccountService struct {
	Store  store.Store
	Hasher PasswordHasher
	Tokens jwtx.Issuer

	// StoreTimeout bounds each store call; zero means DefaultStoreTimeout.
	StoreTimeout time.Duration
	Now          func() time.Time
}

// Session is the result of a successful login.
type Session struct {
	Account   domain.Account
	Token     string
	ExpiresAt time.Time
}

// Register creates an account and returns its id. Email uniqueness is checked
// before username uniqueness.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (id string, err error) {
	ctx, span := tracer.Start(ctx, "AccountService.Register")
	defer func() { endSpan(span, err) }()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", ErrInvalidAccount
	}
	if len(password) > cryptox.MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	accounts := s.Store.Accounts()

	if taken, err := s.exists(ctx, accounts.GetAccountByEmail, email); err != nil {
		return "", storeErr("check email", err)
	} else if taken {
		return "", ErrEmailTaken
	}
	if taken, err := s.exists(ctx, accounts.GetAccountByUsername, username); err != nil {
		return "", storeErr("check username", err)
	} else if taken {
		return "", ErrUsernameTaken
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	id, err = accounts.CreateAccount(sctx, domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrDuplicateUsername):
		return "", ErrUsernameTaken
	case errors.Is(err, store.ErrAlreadyExists):
		// Lost a race with a concurrent registration.
		return "", ErrEmailTaken
	default:
		return "", storeErr("create account", err)
	}

	span.SetAttributes(attribute.String("account.id", id))
	return id, nil
}

// Authenticate checks email and password. Unknown emails and wrong passwords
// return the same ErrInvalidCredentials, and an unknown email still pays for a
// bcrypt comparison.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (acct domain.Account, err error) {
	ctx, span := tracer.Start(ctx, "AccountService.Authenticate")
	defer func() { endSpan(span, err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Account{}, ErrInvalidLogin
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	acct, err = s.Store.Accounts().GetAccountByEmail(sctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.Hasher.VerifyDummy(password)
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, storeErr("load account", err)
	}

	if err := s.Hasher.Verify(password, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("verify password: %w", err)
	}

	span.SetAttributes(attribute.String("account.id", acct.ID))
	return acct, nil
}

// Login authenticates and issues a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	acct, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	token, exp, err := s.Tokens.Issue(acct.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Account: acct, Token: token, ExpiresAt: exp}, nil
}

// GetAccount resolves an account id, e.g. the user_id claim of a token.
func (s *AccountService) GetAccount(ctx context.Context, id string) (acct domain.Account, err error) {
	ctx, span := tracer.Start(ctx, "AccountService.GetAccount",
		trace.WithAttributes(attribute.String("account.id", id)))
	defer func() { endSpan(span, err) }()

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	acct, err = s.Store.Accounts().GetAccountByID(sctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, storeErr("load account", err)
	}
	return acct, nil
}

func (s *AccountService) exists(
	ctx context.Context,
	get func(context.Context, string) (domain.Account, error),
	key string,
) (bool, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	_, err := get(sctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *AccountService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return withStoreTimeout(ctx, s.StoreTimeout)
}

func (s *AccountService) now() time.Time {
	return nowUTC(s.Now)
}

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

func nowUTC(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
