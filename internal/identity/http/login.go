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

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP exchanges email and password for a session token.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns a bearer token valid for the configured TTL (24h by default).
//	@Description	Unknown email and wrong password produce the same 401.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usermgmtsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	usermgmtsdk.LoginResponse
//	@Failure		400		{object}	usermgmtsdk.MessageResponse	"Missing fields or invalid body"
//	@Failure		401		{object}	usermgmtsdk.MessageResponse	"Invalid email or password"
//	@Failure		503		{object}	usermgmtsdk.MessageResponse	"Store unavailable"
//	@Failure		500		{object}	usermgmtsdk.MessageResponse
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req usermgmtsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		usermgmtsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLogin):
			usermgmtsdk.ErrLoginFieldsRequired.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Debug("login rejected", "email", req.Email)
			usermgmtsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			errutil.LogWarn(log, "login: store unavailable", err)
			usermgmtsdk.ErrServiceUnavailable.WriteError(w)
		default:
			errutil.LogError(log, "login failed", err)
			usermgmtsdk.ErrLoginFailed.WriteError(w)
		}
		return
	}

	log.Info("login succeeded", "user_id", sess.Account.ID)
	httpx.WriteJSON(w, http.StatusOK, usermgmtsdk.LoginResponse{
		Message:  "Login successful!",
		Token:    sess.Token,
		Username: sess.Account.Username,
	})
}
