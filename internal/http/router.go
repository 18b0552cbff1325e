package http

import (
	"net/http"

	"ceerion/internal/config"
	"ceerion/internal/contact"
	"ceerion/internal/http/handler"
	mw "ceerion/internal/http/middleware"
	"ceerion/internal/jobs"
	"ceerion/internal/newsletter"
	"ceerion/internal/reservation"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, log *zap.Logger, notify *jobs.Notifier) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Logger(log))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	contactSvc := &contact.Service{DB: db, Notify: notify, AdminEmail: cfg.AdminEmail}
	newsletterSvc := &newsletter.Service{DB: db, Notify: notify, APIBaseURL: cfg.APIBaseURL}
	reservationSvc := &reservation.Service{DB: db, Notify: notify, SalesEmail: cfg.SalesEmail}

	contactH := &handler.ContactHandler{Svc: contactSvc}
	newsletterH := &handler.NewsletterHandler{Svc: newsletterSvc, FrontendURL: cfg.FrontendURL}
	reservationH := &handler.ReservationHandler{Svc: reservationSvc}
	estimateH := &handler.EstimateHandler{Svc: reservationSvc}

	r.Route("/api", func(r chi.Router) {
		r.Route("/contact", func(r chi.Router) {
			r.Post("/", contactH.Create)
			r.Get("/submissions", contactH.ListSubmissions)
			r.Put("/submissions/{id}/status", contactH.UpdateSubmissionStatus)
			r.Get("/stats", contactH.Stats)
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", newsletterH.Subscribe)
			r.Post("/unsubscribe", newsletterH.Unsubscribe)
			r.Get("/unsubscribe/{contactId}", newsletterH.UnsubscribeLink)
			r.Get("/stats", newsletterH.Stats)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", reservationH.Create)
			r.Get("/{id}", reservationH.Get)
			r.Put("/{id}/status", reservationH.UpdateStatus)
		})

		r.Post("/estimate", estimateH.Estimate)
		r.Get("/currencies", estimateH.Currencies)
	})

	return r
}
