package api

import (
	"net/http"

	"github.com/aqtareen/Taqreeb/internal/api/handlers"
	"github.com/aqtareen/Taqreeb/internal/api/middleware"
	"github.com/aqtareen/Taqreeb/internal/config"
	"github.com/aqtareen/Taqreeb/internal/metrics"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the router mounts.
type Deps struct {
	Config config.Config
	Logger zerolog.Logger

	DB      handlers.Pinger
	Auth    handlers.AuthService
	Events  handlers.EventService
	Venues  handlers.VenueService
	Vendors handlers.VendorService
	Teams   handlers.TeamService
	Tasks   handlers.TaskService

	Version   string
	GitCommit string
	BuildDate string
}

// NewRouter builds the HTTP handler: every API route on a ServeMux wrapped
// in the middleware chain. Register and login share the stricter auth rate
// limit tier.
func NewRouter(d Deps) http.Handler {
	authH := handlers.NewAuthHandler(d.Auth)
	eventsH := handlers.NewEventsHandler(d.Events)
	venuesH := handlers.NewVenuesHandler(d.Venues)
	vendorsH := handlers.NewVendorsHandler(d.Vendors)
	teamsH := handlers.NewTeamsHandler(d.Teams)
	tasksH := handlers.NewTasksHandler(d.Tasks)

	limiter := middleware.RateLimit(d.Config.RateLimit)
	authTier := middleware.WithRateLimitTierHandler(middleware.TierAuth)
	auth := func(h http.HandlerFunc) http.Handler { return authTier(limiter(h)) }
	public := func(h http.HandlerFunc) http.Handler { return limiter(h) }

	mux := http.NewServeMux()

	mux.Handle("GET /health", handlers.NewHealthChecker(d.DB, d.Version, d.GitCommit).Health())
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /version", VersionHandler(BuildInfo{Version: d.Version, GitCommit: d.GitCommit, BuildDate: d.BuildDate}))
	mux.Handle("GET /api/openapi.json", OpenAPIHandler())

	mux.Handle("POST /api/register", auth(authH.Register))
	mux.Handle("POST /api/login", auth(authH.Login))

	mux.Handle("GET /api/events", public(eventsH.List))
	mux.Handle("POST /api/events", public(eventsH.Create))
	mux.Handle("GET /api/events/by-name/{name}", public(eventsH.GetByName))
	mux.Handle("GET /api/events/{id}", public(eventsH.Get))
	mux.Handle("PUT /api/events/{id}", public(eventsH.Update))
	mux.Handle("DELETE /api/events/{id}", public(eventsH.Delete))

	mux.Handle("GET /api/venues", public(venuesH.List))
	mux.Handle("POST /api/venues", public(venuesH.Create))
	mux.Handle("GET /api/venues/{id}", public(venuesH.Get))
	mux.Handle("PUT /api/venues/{id}", public(venuesH.Update))
	mux.Handle("DELETE /api/venues/{id}", public(venuesH.Delete))

	mux.Handle("GET /api/vendors", public(vendorsH.List))
	mux.Handle("POST /api/vendors", public(vendorsH.Create))
	mux.Handle("GET /api/vendors/{vendorId}", public(vendorsH.Get))
	mux.Handle("DELETE /api/vendors/{vendorId}", public(vendorsH.Delete))
	mux.Handle("GET /api/vendors/{vendorId}/items", public(vendorsH.ListItems))
	mux.Handle("POST /api/vendors/{vendorId}/items", public(vendorsH.AddItem))
	mux.Handle("DELETE /api/vendors/{vendorId}/items/{itemId}", public(vendorsH.RemoveItem))

	mux.Handle("GET /api/teams", public(teamsH.List))
	mux.Handle("POST /api/teams", public(teamsH.Create))

	mux.Handle("GET /api/tasks", public(tasksH.List))
	mux.Handle("POST /api/tasks", public(tasksH.Create))
	mux.Handle("GET /api/tasks/{id}", public(tasksH.Get))
	mux.Handle("PUT /api/tasks/{id}", public(tasksH.Update))
	mux.Handle("DELETE /api/tasks/{id}", public(tasksH.Delete))

	requireHTTPS := d.Config.Environment == "production"

	var handler http.Handler = mux
	handler = middleware.RequestSize(middleware.DefaultMaxBodySize)(handler)
	handler = middleware.SecurityHeaders(requireHTTPS)(handler)
	handler = middleware.CORS(d.Config.CORS, d.Logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(d.Logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(d.Logger)(handler)
	return handler
}
