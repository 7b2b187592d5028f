package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viscontilabs/bitstore-backend/api/controllers"
	"github.com/viscontilabs/bitstore-backend/api/middleware"
	cartsvc "github.com/viscontilabs/bitstore-backend/internal/cart"
	catalogsvc "github.com/viscontilabs/bitstore-backend/internal/catalog"
	checkoutsvc "github.com/viscontilabs/bitstore-backend/internal/checkout"
	ordersvc "github.com/viscontilabs/bitstore-backend/internal/orders"
	"github.com/viscontilabs/bitstore-backend/pkg/config"
	"github.com/viscontilabs/bitstore-backend/pkg/db"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
	"github.com/viscontilabs/bitstore-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. Collaborators are injected
// here once; handlers never reach for ambient state.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	PromRegistry    *prometheus.Registry
	CartManager     *cartsvc.Manager
	CatalogService  catalogsvc.Service
	CheckoutService checkoutsvc.Service
	OrdersService   ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.CORS(),
		middleware.Logging(deps.Logger),
	)

	var cache db.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}
	r.Get("/healthz/live", controllers.HealthLive(deps.Config))
	r.Get("/healthz/ready", controllers.HealthReady(deps.Config, deps.DB, cache, deps.Logger))

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.CatalogService, deps.Logger))
		r.Get("/products/{productID}", controllers.GetProduct(deps.CatalogService, deps.Logger))
		r.Get("/categories", controllers.ListCategories(deps.CatalogService, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartManager, deps.Logger))
				r.Delete("/", controllers.CartClear(deps.CartManager, deps.Logger))
				r.Post("/items", controllers.CartAddItem(deps.CartManager, deps.CatalogService, deps.Logger))
				r.Patch("/items/{productID}", controllers.CartUpdateItem(deps.CartManager, deps.Logger))
				r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.CartManager, deps.Logger))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(deps.CartManager, deps.CheckoutService, deps.Logger))
		})

		r.Get("/orders", controllers.ListOrders(deps.OrdersService, deps.Logger))
		r.Get("/orders/{orderRef}", controllers.GetOrder(deps.OrdersService, deps.Logger))
	})

	return r
}
