package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

const pingTimeout = 2 * time.Second

// HealthHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Always 200 while the process is up. mongodb reports the live store ping.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	usermgmtsdk.HealthResponse	"status, message, mongodb, database"
//	@Router			/api/health [get].
func HealthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, usermgmtsdk.HealthResponse{
			Status:   "healthy",
			Message:  "Backend is running!",
			Mongodb:  storeStatus(r.Context(), st),
			Database: st.Database(),
		})
	}
}

// storeStatus pings st and reports "connected" or "disconnected".
func storeStatus(ctx context.Context, st store.Store) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		slogx.FromContext(ctx).Warn("store ping failed", "driver", st.Name(), "err", err)
		return usermgmtsdk.StoreDisconnected
	}
	return usermgmtsdk.StoreConnected
}
