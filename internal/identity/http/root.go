package http

import (
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

var publicEndpoints = []string{"/api/signup", "/api/login", "/api/profile", "/api/health"}

// RootHandler godoc
//
//	@Summary		Service banner
//	@Description	Describes the API and lists its endpoints. Used by hosting platforms as a liveness probe.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	usermgmtsdk.RootResponse
//	@Router			/ [get].
func RootHandler(st store.Store, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, usermgmtsdk.RootResponse{
			Status:    "online",
			Message:   "User Management Backend API",
			Version:   version,
			Mongodb:   storeStatus(r.Context(), st),
			Endpoints: publicEndpoints,
		})
	}
}
