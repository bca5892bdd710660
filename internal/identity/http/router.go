package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/usermgmt/api/usermgmt" // Swagger docs
	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

const metricsNamespace = "usermgmt"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	logger       *slog.Logger
	registry     *prometheus.Registry
	metrics      *httpx.Metrics

	store          store.Store
	AccountService *service.AccountService
	ProfileService *service.ProfileService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	cors httpx.CORSConfig,
	logger *slog.Logger,
) *Router {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		logger:       logger,
		registry:     reg,
		metrics:      httpx.NewMetrics(reg, metricsNamespace),
		store:        st,
	}

	// CORS sits outside logging so preflights are answered before anything
	// else runs.
	r.middlewares = []httpx.Middleware{
		httpx.CORS(cors),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfile()
	r.registerSystem()

	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			User Management Service API
//	@version		1.0.0
//	@description	Account registration, login and per-account profiles.
//	@description
//	@description				Session tokens are HS256 JWTs carrying user_id and exp.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/usermgmt
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	signup := &SignupHandler{AccountService: r.AccountService}
	login := &LoginHandler{AccountService: r.AccountService}

	r.Mux.Handle("POST /api/signup", r.metrics.Instrument(signup))
	r.Mux.Handle("POST /api/login", r.metrics.Instrument(login))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}
	gate := RequireAccount(r.verifier, r.AccountService)

	r.Mux.Handle("GET /api/profile",
		r.metrics.Instrument(httpx.Chain(http.HandlerFunc(h.HandleGet), gate)),
	)
	r.Mux.Handle("POST /api/profile",
		r.metrics.Instrument(httpx.Chain(http.HandlerFunc(h.HandlePost), gate)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api/health", r.metrics.Instrument(HealthHandler(r.store)))
	r.Mux.Handle("GET /{$}", r.metrics.Instrument(RootHandler(r.store, r.buildVersion)))
}
