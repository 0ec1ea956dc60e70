package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heavyrent/backend/api/controllers"
	"github.com/heavyrent/backend/api/middleware"
	"github.com/heavyrent/backend/internal/documents"
	"github.com/heavyrent/backend/internal/equipment"
	"github.com/heavyrent/backend/internal/maintenance"
	"github.com/heavyrent/backend/internal/notifications"
	"github.com/heavyrent/backend/internal/payments"
	"github.com/heavyrent/backend/internal/rentals"
	"github.com/heavyrent/backend/internal/schedules"
	"github.com/heavyrent/backend/pkg/config"
	"github.com/heavyrent/backend/pkg/db"
	"github.com/heavyrent/backend/pkg/logger"
	"github.com/heavyrent/backend/pkg/metrics"
	"github.com/heavyrent/backend/pkg/redis"
)

// Services bundles the feature services the router exposes.
type Services struct {
	Rentals       rentals.Service
	Equipment     equipment.Service
	Documents     documents.Service
	Payments      payments.Service
	Maintenance   maintenance.Service
	Notifications notifications.Service
	Schedules     schedules.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	dbPinger db.Pinger,
	redisPinger redis.Pinger,
	idempotencyStore redis.IdempotencyStore,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		staff := middleware.RequireStaff(logg)

		r.Route("/rentals", func(r chi.Router) {
			r.Post("/", controllers.CreateRental(svcs.Rentals, logg))
			r.With(staff).Get("/pending-approvals", controllers.ListPendingApprovals(svcs.Rentals, logg))

			r.Route("/{rentalId}", func(r chi.Router) {
				r.Get("/", controllers.GetRental(svcs.Rentals, logg))
				r.With(staff).Post("/approve", controllers.ApproveRental(svcs.Rentals, logg))
				r.With(staff).Post("/reject", controllers.RejectRental(svcs.Rentals, logg))
				r.With(staff).Post("/complete", controllers.CompleteRental(svcs.Rentals, logg))
				r.Post("/rating", controllers.RateRental(svcs.Rentals, logg))
				r.Post("/documents", controllers.AttachDocument(svcs.Documents, logg))
				r.Get("/documents", controllers.ListDocuments(svcs.Documents, logg))
				r.Post("/payments", controllers.RecordPayment(svcs.Payments, logg))
				r.Get("/payments", controllers.ListOrderPayments(svcs.Payments, logg))
				r.Get("/schedules", controllers.ListSchedules(svcs.Schedules, logg))
				r.With(staff).Post("/schedules", controllers.CreateSchedule(svcs.Schedules, logg))
			})
		})

		r.Route("/schedules/{scheduleId}", func(r chi.Router) {
			r.Get("/", controllers.GetSchedule(svcs.Schedules, logg))
			r.With(staff).Patch("/", controllers.UpdateSchedule(svcs.Schedules, logg))
			r.With(staff).Delete("/", controllers.DeleteSchedule(svcs.Schedules, logg))
		})

		r.Get("/customers/{customerId}/rentals", controllers.ListCustomerRentals(svcs.Rentals, logg))
		r.Get("/customers/{customerId}/notifications", controllers.ListCustomerNotifications(svcs.Notifications, logg))
		r.Post("/notifications/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))

		r.With(staff).Post("/payments/{paymentId}/verify", controllers.VerifyPayment(svcs.Payments, logg))

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", controllers.ListEquipment(svcs.Equipment, logg))
			r.With(staff).Post("/", controllers.CreateEquipment(svcs.Equipment, logg))

			r.Route("/{equipmentId}", func(r chi.Router) {
				r.Get("/", controllers.GetEquipment(svcs.Equipment, logg))
				r.With(staff).Patch("/", controllers.UpdateEquipment(svcs.Equipment, logg))
				r.With(staff).Delete("/", controllers.DeleteEquipment(svcs.Equipment, logg))
				r.Get("/maintenance", controllers.ListMaintenance(svcs.Maintenance, logg))
				r.With(staff).Post("/maintenance", controllers.ScheduleMaintenance(svcs.Maintenance, logg))
			})
		})

		r.With(staff).Post("/maintenance/{recordId}/finish", controllers.FinishMaintenance(svcs.Maintenance, logg))
	})

	return r
}
