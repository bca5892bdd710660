package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/pkg/errutil"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// HandleGet returns the caller's profile.
//
//	@Summary		Get profile
//	@Description	Returns the caller's profile with their username and email.
//	@Description	When no profile has been saved yet, profile is omitted and message is "No profile found".
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	usermgmtsdk.GetProfileResponse
//	@Failure		401	{object}	usermgmtsdk.MessageResponse	"Missing, expired or invalid token, or unknown user"
//	@Failure		503	{object}	usermgmtsdk.MessageResponse	"Store unavailable"
//	@Failure		500	{object}	usermgmtsdk.MessageResponse
//	@Router			/api/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	acct, ok := AccountFromContext(ctx)
	if !ok {
		unauthorized(w, usermgmtsdk.ErrTokenInvalid)
		return
	}

	resp := usermgmtsdk.GetProfileResponse{
		Username: acct.Username,
		Email:    acct.Email,
	}

	p, err := h.ProfileService.Get(ctx, acct.ID)
	switch {
	case err == nil:
		wire := toWireProfile(p)
		resp.Profile = &wire
	case errors.Is(err, service.ErrProfileNotFound):
		resp.Message = "No profile found"
	case errors.Is(err, service.ErrStoreUnavailable):
		errutil.LogWarn(log, "profile fetch: store unavailable", err)
		usermgmtsdk.ErrServiceUnavailable.WriteError(w)
		return
	default:
		errutil.LogError(log, "profile fetch failed", err)
		usermgmtsdk.ErrProfileFetchFailed.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandlePost replaces the caller's profile.
//
//	@Summary		Save profile
//	@Description	Creates or fully replaces the caller's profile. Omitted fields are stored as empty strings.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usermgmtsdk.ProfileFields	true	"Profile fields"
//	@Success		200		{object}	usermgmtsdk.SaveProfileResponse
//	@Failure		400		{object}	usermgmtsdk.MessageResponse	"Invalid body"
//	@Failure		401		{object}	usermgmtsdk.MessageResponse	"Missing, expired or invalid token, or unknown user"
//	@Failure		503		{object}	usermgmtsdk.MessageResponse	"Store unavailable"
//	@Failure		500		{object}	usermgmtsdk.MessageResponse
//	@Router			/api/profile [post].
func (h *ProfileHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	acct, ok := AccountFromContext(ctx)
	if !ok {
		unauthorized(w, usermgmtsdk.ErrTokenInvalid)
		return
	}

	var req usermgmtsdk.ProfileFields
	if err := httpx.DecodeJSON(r, &req); err != nil {
		usermgmtsdk.ErrInvalidBody.WriteError(w)
		return
	}

	p, err := h.ProfileService.Save(ctx, acct.ID, domain.ProfileFields(req))
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			errutil.LogWarn(log, "profile save: store unavailable", err)
			usermgmtsdk.ErrServiceUnavailable.WriteError(w)
			return
		}
		errutil.LogError(log, "profile save failed", err)
		usermgmtsdk.ErrProfileSaveFailed.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usermgmtsdk.SaveProfileResponse{
		Message: "Profile saved successfully!",
		Profile: toWireProfile(p),
	})
}

func toWireProfile(p domain.Profile) usermgmtsdk.Profile {
	return usermgmtsdk.Profile{
		UserID:        p.UserID,
		ProfileFields: usermgmtsdk.ProfileFields(p.ProfileFields),
		UpdatedAt:     p.UpdatedAt,
	}
}
