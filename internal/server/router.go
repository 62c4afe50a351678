package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/handlers"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
)

const apiPrefix = "/api/v1"

// Repositories is the persistence layer selected by DB_DRIVER.
type Repositories struct {
	Users        services.UserRepository
	Companies    services.CompanyRepository
	Jobs         services.JobRepository
	Applications services.ApplicationRepository
}

// Dependencies carries everything the router needs. Uploader and Events may
// be nil.
type Dependencies struct {
	Repos          Repositories
	Uploader       services.Uploader
	Events         services.EventPublisher
	Denylist       handlers.TokenDenylist
	JWTSecret      string
	TokenTTL       time.Duration
	CookieSecure   bool
	AllowedOrigins []string
	JobListTimeout time.Duration
}

// NewRouter builds the services and mounts every API route.
func NewRouter(deps Dependencies) *chi.Mux {
	repos := deps.Repos
	userService := services.NewUserService(repos.Users, repos.Jobs, repos.Companies, deps.Uploader)
	companyService := services.NewCompanyService(repos.Companies, deps.Uploader)
	jobService := services.NewJobService(repos.Jobs, repos.Companies, repos.Applications, deps.Events, deps.JobListTimeout)
	applicationService := services.NewApplicationService(repos.Applications, repos.Jobs, repos.Users, repos.Companies, deps.Events)

	auth := handlers.NewAuthenticator(userService, handlers.AuthOptions{
		Secret:       deps.JWTSecret,
		TokenTTL:     deps.TokenTTL,
		SecureCookie: deps.CookieSecure,
		Denylist:     deps.Denylist,
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		handlers.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)
	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	router.Get("/healthz", handlers.Healthz)
	router.Route(apiPrefix, func(api chi.Router) {
		api.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, auth)
		})
		api.Route("/companies", func(r chi.Router) {
			handlers.CompanyRouter(r, companyService, auth)
		})
		api.Route("/jobs", func(r chi.Router) {
			handlers.JobRouter(r, jobService, auth)
		})
		api.Route("/applications", func(r chi.Router) {
			handlers.ApplicationRouter(r, applicationService, auth)
		})
	})

	return router
}
