package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"purem-oda-shop/services/shop-api/internal/http/handlers"
	"purem-oda-shop/shared/pkg/metrics"
)

const serviceName = "shop-api"

type Handlers struct {
	Items  *handlers.ItemsHandler
	Orders *handlers.OrdersHandler
	Static http.Handler
}

type RouterOptions struct {
	Log         zerolog.Logger
	CORSOrigins []string
}

func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(opts.Log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(metrics.Middleware(serviceName))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", handlers.Health)

	r.Get("/api/items", h.Items.List)
	r.Post("/api/items", h.Items.Create)
	r.Put("/api/items/{id}", h.Items.Update)

	r.Post("/api/login", handlers.Login)

	r.Post("/api/order/calculate", h.Orders.Calculate)
	r.Post("/api/order/validate", h.Orders.Validate)
	r.Get("/api/java-service/status", h.Orders.Status)

	// any other GET, /api/* included, gets the static tree or the index
	r.Get("/*", h.Static.ServeHTTP)
	return r
}
