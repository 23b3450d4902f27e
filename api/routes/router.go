package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/speedcraftlabs/gearstock-backend/api/controllers"
	"github.com/speedcraftlabs/gearstock-backend/api/middleware"
	"github.com/speedcraftlabs/gearstock-backend/internal/catalog"
	"github.com/speedcraftlabs/gearstock-backend/internal/inventory"
	"github.com/speedcraftlabs/gearstock-backend/internal/orders"
	"github.com/speedcraftlabs/gearstock-backend/pkg/config"
	"github.com/speedcraftlabs/gearstock-backend/pkg/db"
	"github.com/speedcraftlabs/gearstock-backend/pkg/logger"
	"github.com/speedcraftlabs/gearstock-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	inventoryService inventory.Service,
	catalogService catalog.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/health", controllers.Health(cfg, logg, dbP, redisP))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		manager := middleware.RequireManager(logg)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Get("/stats", controllers.InventoryStats(inventoryService, logg))
			r.Post("/scan", controllers.InventoryScan(inventoryService, logg))
			r.Post("/scan/bulk", controllers.InventoryBulkScan(inventoryService, logg))
			r.Get("/variant/{variantID}/logs", controllers.InventoryVariantLogs(inventoryService, logg))
			r.Get("/{productID}", controllers.InventoryGet(inventoryService, logg))
			r.With(manager).Put("/{productID}", controllers.InventoryUpdate(inventoryService, logg))
			r.Get("/{productID}/logs", controllers.InventoryProductLogs(inventoryService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.With(manager).Post("/", controllers.ProductCreate(catalogService, logg))
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productID}", controllers.ProductGet(catalogService, logg))
			r.With(manager).Put("/{productID}", controllers.ProductUpdate(catalogService, logg))
			r.With(manager).Delete("/{productID}", controllers.ProductDelete(catalogService, logg))
			r.With(manager).Post("/{productID}/variants", controllers.ProductVariantCreate(catalogService, logg))
			r.Get("/{productID}/variants", controllers.ProductVariantList(catalogService, logg))
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/{variantID}", controllers.VariantGet(catalogService, logg))
			r.With(manager).Put("/{variantID}", controllers.VariantUpdate(catalogService, logg))
			r.With(manager).Delete("/{variantID}", controllers.VariantDelete(catalogService, logg))
			r.With(manager).Put("/{variantID}/inventory", controllers.VariantInventoryAdjust(inventoryService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(ordersService, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/stats", controllers.OrderStats(ordersService, logg))
			r.Post("/scan", controllers.OrderScan(ordersService, logg))

			r.Route("/direct", func(r chi.Router) {
				r.Post("/", controllers.DirectOrderCreate(ordersService, logg))
				r.Get("/", controllers.DirectOrderList(ordersService, logg))
				r.Get("/stats", controllers.DirectOrderStats(ordersService, logg))
				r.Get("/{orderID}", controllers.DirectOrderGet(ordersService, logg))
				r.With(manager).Put("/{orderID}", controllers.DirectOrderUpdate(ordersService, logg))
				r.With(manager).Delete("/{orderID}", controllers.DirectOrderDelete(ordersService, logg))
				r.With(manager).Post("/{orderID}/update-status", controllers.DirectOrderUpdateStatus(ordersService, logg))
			})

			r.Get("/{orderID}", controllers.OrderGet(ordersService, logg))
			r.With(manager).Put("/{orderID}", controllers.OrderUpdate(ordersService, logg))
			r.With(manager).Delete("/{orderID}", controllers.OrderDelete(ordersService, logg))
			r.With(manager).Post("/{orderID}/update-status", controllers.OrderUpdateStatus(ordersService, logg))
		})
	})

	return r
}
