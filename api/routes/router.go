package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AskiaMohamed22/ngenius-backend/api/controllers"
	ordercontrollers "github.com/AskiaMohamed22/ngenius-backend/api/controllers/orders"
	webhookcontrollers "github.com/AskiaMohamed22/ngenius-backend/api/controllers/webhooks"
	"github.com/AskiaMohamed22/ngenius-backend/api/middleware"
	checkoutsvc "github.com/AskiaMohamed22/ngenius-backend/internal/checkout"
	"github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	ngeniuswebhook "github.com/AskiaMohamed22/ngenius-backend/internal/webhooks/ngenius"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/db"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/metrics"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	checkoutService *checkoutsvc.Service,
	ordersService orders.Service,
	webhookService *ngeniuswebhook.Service,
	webhookVerifier *ngeniuswebhook.Verifier,
	webhookGuard *ngeniuswebhook.ReplayGuard,
	webhookMetrics *metrics.WebhookMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(ordersService, logg))
			r.Post("/repair", ordercontrollers.Repair(ordersService, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(ordersService, logg))
		})
		r.Post("/webhooks/ngenius", webhookcontrollers.NgeniusWebhook(webhookService, webhookVerifier, webhookGuard, webhookMetrics, logg))
	})

	return r
}
