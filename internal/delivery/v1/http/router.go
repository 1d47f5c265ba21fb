package http

import (
	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
	"github.com/DRSN-tech/pos-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router  *chi.Mux
	metrics *metrics.ServerMetrics
	logger  logger.Logger
}

func NewRouter(router *chi.Mux, metrics *metrics.ServerMetrics, logger logger.Logger) *Router {
	return &Router{router: router, metrics: metrics, logger: logger}
}

func (r *Router) Init(checkoutUC usecase.CheckoutUC, catalogUC usecase.CatalogUC, reportUC usecase.ReportUC) {
	r.router.Use(r.metrics.Middleware)

	r.router.Method("GET", "/metrics", metrics.Handler())

	checkoutHandler := NewCheckoutHandler(checkoutUC, r.logger)
	catalogHandler := NewCatalogHandler(catalogUC, r.logger)
	reportHandler := NewReportHandler(reportUC, r.logger)

	registerStorefrontRoutes(r.router, checkoutHandler, catalogHandler)
	registerAdminRoutes(r.router, catalogHandler, reportHandler)
}

func registerStorefrontRoutes(router chi.Router, checkoutHandler *CheckoutHandler, catalogHandler *CatalogHandler) {
	router.Get("/", catalogHandler.storefront)
	router.Post("/checkout", checkoutHandler.checkout)
	router.Get("/struk/{id}", checkoutHandler.receipt)
}

func registerAdminRoutes(router chi.Router, catalogHandler *CatalogHandler, reportHandler *ReportHandler) {
	router.Route("/admin", func(admin chi.Router) {
		admin.Get("/", catalogHandler.adminCatalog)
		admin.Post("/add-product", catalogHandler.addProduct)
		admin.Post("/update-product", catalogHandler.updateProduct)
		admin.Post("/delete-product", catalogHandler.deleteProduct)
		admin.Get("/laporan", reportHandler.salesReport)
		admin.Get("/export-excel", reportHandler.exportExcel)
	})
}
