package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/pkg/errutil"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP registers a new account.
//
//	@Summary		Register an account
//	@Description	Creates an account. Email uniqueness is checked before username uniqueness.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usermgmtsdk.SignupRequest	true	"username, email, password"
//	@Success		201		{object}	usermgmtsdk.SignupResponse
//	@Failure		400		{object}	usermgmtsdk.MessageResponse	"Missing fields or invalid body"
//	@Failure		409		{object}	usermgmtsdk.MessageResponse	"Email or username taken"
//	@Failure		503		{object}	usermgmtsdk.MessageResponse	"Store unavailable"
//	@Failure		500		{object}	usermgmtsdk.MessageResponse
//	@Router			/api/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req usermgmtsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		usermgmtsdk.ErrInvalidBody.WriteError(w)
		return
	}

	id, err := h.AccountService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAccount):
			usermgmtsdk.ErrSignupFieldsRequired.WriteError(w)
		case errors.Is(err, service.ErrPasswordTooLong):
			usermgmtsdk.ErrPasswordTooLong.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			usermgmtsdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			usermgmtsdk.ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			errutil.LogWarn(log, "signup: store unavailable", err)
			usermgmtsdk.ErrServiceUnavailable.WriteError(w)
		default:
			errutil.LogError(log, "signup failed", err)
			usermgmtsdk.ErrSignupFailed.WriteError(w)
		}
		return
	}

	log.Info("account registered", "user_id", id)
	httpx.WriteJSON(w, http.StatusCreated, usermgmtsdk.SignupResponse{
		Message: "User registered successfully!",
		UserID:  id,
	})
}
