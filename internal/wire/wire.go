package wire

import (
	"context"
	"net/http"
	"time"

	"beauty-orders/internal/adaptor"
	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/usecase"
	"beauty-orders/pkg/database"
	"beauty-orders/pkg/metrics"
	"beauty-orders/pkg/middleware"
	"beauty-orders/pkg/utils"
	"beauty-orders/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
	stop   chan struct{}
}

// Close stops background work started by Wiring.
func (a *App) Close() {
	close(a.stop)
}

// guards bundles the route middleware every module needs.
type guards struct {
	auth         func(http.Handler) http.Handler
	optionalAuth func(http.Handler) http.Handler
	admin        func(http.Handler) http.Handler
	rateLimit    func(http.Handler) http.Handler
}

// Wiring menginisialisasi semua dependencies
func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	jwt := utils.NewJWTManager(config.JWT, config.App.Name)

	service := usecase.NewService(repo, config, jwt, logger)
	handler := adaptor.NewHandler(service, logger)

	limiter := middleware.NewRateLimiter(config.RateLimit, logger)
	stop := make(chan struct{})
	limiter.StartCleanup(time.Minute, stop)

	g := guards{
		auth:         middleware.AuthJWT(jwt, repo.User, logger),
		optionalAuth: middleware.OptionalAuthJWT(jwt, repo.User, logger),
		admin:        middleware.Admin(logger),
		rateLimit:    limiter.Handler,
	}

	return &App{
		Router: setupRouter(handler, g, db, config, logger),
		stop:   stop,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	g guards,
	db database.PgxIface,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(config.CORS))

	// Apply routes
	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireProduct(r, handler.Product, g)
	wireCustomer(r, handler.Customer, g)
	wireOrder(r, handler.Order, g)
	wireAnalytics(r, handler.Analytics, g)

	r.Get("/health", healthCheck(db, logger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Unknown API paths answer in JSON; everything else is a dashboard asset
	r.HandleFunc("/api/*", routeNotFound)
	r.Handle("/*", web.Handler())

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.ResponseNotFound(w, "Route not found")
}

func healthCheck(db database.PgxIface, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable",
				map[string]string{"database": "down"}, nil)
			return
		}

		utils.ResponseSuccess(w, "OK", map[string]string{"database": "up"})
	}
}
