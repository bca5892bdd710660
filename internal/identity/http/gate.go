package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/pkg/errutil"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

// AccountResolver loads the account a verified token refers to.
type AccountResolver interface {
	GetAccount(ctx context.Context, id string) (domain.Account, error)
}

type accountCtxKey struct{}

// AccountFromContext returns the account resolved by RequireAccount.
func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	acct, ok := ctx.Value(accountCtxKey{}).(domain.Account)
	return acct, ok
}

// RequireAccount rejects requests without a valid bearer token for an
// existing account and otherwise hands the account to next via the context.
func RequireAccount(v jwtx.Verifier, accounts AccountResolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := httpx.BearerToken(r)
			if !ok {
				unauthorized(w, usermgmtsdk.ErrTokenMissing)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("token rejected", "err", err)
				switch {
				case errors.Is(err, jwtx.ErrExpired):
					unauthorized(w, usermgmtsdk.ErrTokenExpired)
				case errors.Is(err, jwtx.ErrInvalidSig):
					unauthorized(w, usermgmtsdk.ErrTokenSignature)
				default:
					unauthorized(w, usermgmtsdk.ErrTokenInvalid)
				}
				return
			}

			acct, err := accounts.GetAccount(ctx, claims.UserID)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrAccountNotFound):
				unauthorized(w, usermgmtsdk.ErrTokenUserNotFound)
				return
			case errors.Is(err, service.ErrStoreUnavailable):
				errutil.LogWarn(log, "account lookup unavailable", err)
				usermgmtsdk.ErrServiceUnavailable.WriteError(w)
				return
			default:
				errutil.LogError(log, "account lookup failed", err)
				usermgmtsdk.ErrTokenCheckFailed.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, accountCtxKey{}, acct)
			ctx = slogx.With(ctx, "user_id", acct.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, e *usermgmtsdk.APIError) {
	httpx.SetBearerChallenge(w, e.Message)
	e.WriteError(w)
}
