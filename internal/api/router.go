// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/config"
	"github.com/stockroomhq/stockroom/internal/inventory"
	"github.com/stockroomhq/stockroom/internal/middleware"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/orders"
	"github.com/stockroomhq/stockroom/internal/warehouse"
)

// Router assembles the HTTP surface over the domain services.
type Router struct {
	cfg config.Config

	jwtManager *auth.JWTManager
	users      *auth.UserStore
	orders     *orders.Service
	inventory  *inventory.Service
	warehouses *warehouse.Service
}

// NewRouter creates the router with its service dependencies.
func NewRouter(
	cfg config.Config,
	jwtManager *auth.JWTManager,
	users *auth.UserStore,
	orderSvc *orders.Service,
	inventorySvc *inventory.Service,
	warehouseSvc *warehouse.Service,
) *Router {
	return &Router{
		cfg:        cfg,
		jwtManager: jwtManager,
		users:      users,
		orders:     orderSvc,
		inventory:  inventorySvc,
		warehouses: warehouseSvc,
	}
}

// writeRoles are the subjects allowed through the write endpoints. Admin
// passes on role, everyone else needs the matching permission.
var (
	inventoryWriters = []string{models.PermInventoryWrite}
	orderWriters     = []string{models.PermOrdersWrite}
	adminRoles       = []string{models.RoleAdmin}
)

// Routes builds the chi handler tree.
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(cors.Handler(rt.corsOptions()))

	r.Get("/health", rt.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Login is public but rate limited aggressively against brute force.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.Security.LoginRateLimit, time.Minute))
		r.Post("/login", rt.handleLogin)
	})

	// Everything else requires a valid token.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.Security.RateLimit, time.Minute))
		r.Use(middleware.PrometheusMetrics)
		r.Use(auth.Authenticate(rt.jwtManager))

		r.Get("/warehouses", rt.handleWarehouses)

		r.Route("/inventory/stocks", func(r chi.Router) {
			r.Get("/", rt.handleStocks)
			r.Get("/export", rt.handleStocksExport)
			r.Get("/{id}", rt.handleStockByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authorize(adminRoles, inventoryWriters))
				r.Post("/", rt.handleStockAdd)
				r.Put("/{id}", rt.handleStockUpdate)
				r.Delete("/{id}", rt.handleStockDelete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", rt.handleOrders)
			r.Get("/export", rt.handleOrdersExport)
			r.Get("/picking-list", rt.handlePickingList)
			r.Get("/picking-list/export", rt.handlePickingListExport)
			r.Get("/{id}", rt.handleOrderByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authorize(adminRoles, orderWriters))
				r.Post("/", rt.handleOrderCreate)
				r.Patch("/{id}/status", rt.handleOrderStatus)
			})
		})
	})

	return r
}

func (rt *Router) corsOptions() cors.Options {
	origins := rt.cfg.Security.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}
