package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/internal/finance"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/internal/purchases"
	"github.com/stockroomhq/stockroom-backend/internal/sales"
	"github.com/stockroomhq/stockroom-backend/internal/sessions"
	"github.com/stockroomhq/stockroom-backend/internal/settings"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// RouterParams bundle everything the HTTP surface depends on.
type RouterParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	Location  *time.Location
	Metrics   *metrics.HTTPMetrics
	Registry  *prometheus.Registry
	Sessions  sessions.Service
	Inventory inventory.Service
	Sales     sales.Service
	Purchases purchases.Service
	Finance   finance.Service
	Settings  settings.Service
}

// NewRouter wires the full HTTP surface.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.Metrics),
		middleware.CORS(p.Config.App.CORSOrigins),
	)

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health())
		r.Get("/store/items", controllers.StoreItems(p.Inventory, p.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(p.Sessions, p.Logger))
			r.Post("/login", controllers.Login(p.Sessions, p.Logger))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(p.Sessions, p.Logger))
				r.Post("/logout", controllers.Logout(p.Sessions, p.Logger))
				r.Get("/validate", controllers.ValidateSession())
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(p.Sessions, p.Logger))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.ListItems(p.Inventory, p.Logger))
				r.Post("/", controllers.CreateItem(p.Inventory, p.Logger))
				r.Delete("/", controllers.ClearItems(p.Inventory, p.Logger))
				r.Post("/bulk", controllers.BulkReplaceItems(p.Inventory, p.Logger))
				r.Put("/{id}", controllers.UpdateItem(p.Inventory, p.Logger))
				r.Delete("/{id}", controllers.DeleteItem(p.Inventory, p.Logger))
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", controllers.ListSales(p.Sales, p.Logger))
				r.Post("/", controllers.CreateSale(p.Sales, p.Logger))
				r.Delete("/{id}", controllers.DeleteSale(p.Sales, p.Logger))
				r.Get("/{id}/invoice", controllers.DownloadInvoice(p.Finance, p.Logger))
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", controllers.ListPurchases(p.Purchases, p.Logger))
				r.Post("/", controllers.CreatePurchase(p.Purchases, p.Logger))
			})

			r.Get("/reports/weekly", controllers.WeeklyReport(p.Finance, p.Logger))
			r.Get("/finance", controllers.FinanceSummary(p.Finance, p.Logger))
			r.Post("/config", controllers.SetConfig(p.Settings, p.Logger))
			r.Get("/backup", controllers.DownloadBackup(p.Config.DB, p.Location, p.Logger))
		})
	})

	return r
}
