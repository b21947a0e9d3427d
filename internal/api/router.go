package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/gigpay/gigpay-backend/internal/api/handlers"
	"github.com/gigpay/gigpay-backend/internal/api/httpx"
	"github.com/gigpay/gigpay-backend/internal/auth"
	"github.com/gigpay/gigpay-backend/internal/config"
	"github.com/gigpay/gigpay-backend/internal/metrics"
	"github.com/gigpay/gigpay-backend/internal/middleware"
	"github.com/gigpay/gigpay-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	PaymentSvc *services.PaymentService
	GigSvc     *services.GigService
	WebhookSvc *services.WebhookService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.UserSvc)
	payH := handlers.NewPaymentsHandler(d.PaymentSvc)
	gigH := handlers.NewGigsHandler(d.GigSvc)
	hookH := handlers.NewWebhookHandler(d.WebhookSvc)
	authMW := middleware.NewAuthMiddleware(d.TM)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// processor callbacks sit outside the authed API surface
	r.Post("/webhooks/stripe", hookH.Stripe)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)

		// gig CRUD is open; there is no ownership check on update/delete
		r.Post("/gigs", gigH.Create)
		r.Get("/gigs", gigH.List)
		r.Get("/gigs/lookup", gigH.Get)
		r.Get("/gigs/{id}", gigH.Get)
		r.Put("/gigs/{id}", gigH.Update)
		r.Delete("/gigs/{id}", gigH.Delete)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)

			r.Get("/me", func(w http.ResponseWriter, req *http.Request) {
				uid, ok := middleware.UserID(req.Context())
				if !ok {
					httpx.WriteFailure(w, http.StatusUnauthorized, "missing identity")
					return
				}
				u, err := d.UserSvc.Get(req.Context(), uid)
				if err != nil {
					httpx.WriteError(w, err)
					return
				}
				httpx.WriteSuccess(w, http.StatusOK, "", u)
			})
			r.Get("/users", func(w http.ResponseWriter, req *http.Request) {
				users, err := d.UserSvc.List(req.Context())
				if err != nil {
					httpx.WriteError(w, err)
					return
				}
				httpx.WriteSuccess(w, http.StatusOK, "", users)
			})
			r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
				u, err := d.UserSvc.Get(req.Context(), chi.URLParam(req, "id"))
				if err != nil {
					httpx.WriteError(w, err)
					return
				}
				httpx.WriteSuccess(w, http.StatusOK, "", u)
			})

			r.Post("/payments/transfer", payH.Transfer)
			r.Post("/payments/deposit", payH.Deposit)
			r.Post("/payments/withdraw", payH.Withdraw)
			r.Post("/payments/method", payH.AttachPaymentMethod)
			r.Get("/payments/transfers/{id}", payH.GetTransfer)
		})
	})

	return r
}
