package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contactdesk/contactdesk-backend/api/controllers"
	"github.com/contactdesk/contactdesk-backend/api/middleware"
	"github.com/contactdesk/contactdesk-backend/internal/contacts"
	"github.com/contactdesk/contactdesk-backend/internal/identity"
	"github.com/contactdesk/contactdesk-backend/internal/location"
	"github.com/contactdesk/contactdesk-backend/internal/notify"
	"github.com/contactdesk/contactdesk-backend/internal/photos"
	"github.com/contactdesk/contactdesk-backend/pkg/config"
	"github.com/contactdesk/contactdesk-backend/pkg/kv"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
	"github.com/contactdesk/contactdesk-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	kvStore kv.Store,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	identityService *identity.Service,
	contactStore *contacts.Store,
	photoService *photos.Service,
	notifier *notify.Notifier,
	locationService location.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, kvStore))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(identityService, logg))
		r.Post("/login", controllers.AuthLogin(identityService, logg))
		r.Post("/logout", controllers.AuthLogout(identityService, logg))
		r.Get("/session", controllers.AuthSession(identityService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireSession(identityService, logg))

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", controllers.ContactsList(contactStore, logg))
			r.Post("/", controllers.ContactsCreate(contactStore, notifier, logg))
			r.Get("/{contactId}", controllers.ContactsGet(contactStore, logg))
			r.Put("/{contactId}", controllers.ContactsUpdate(contactStore, notifier, logg))
			r.Delete("/{contactId}", controllers.ContactsDelete(contactStore, notifier, logg))
		})

		r.Route("/photos", func(r chi.Router) {
			r.Post("/", controllers.PhotosUpload(photoService, logg))
			r.Get("/{photoId}", controllers.PhotosServe(photoService, logg))
		})

		r.Get("/notifications/current", controllers.NotificationsCurrent(notifier, logg))
		r.Get("/location/resolve", controllers.LocationResolve(locationService, logg))
	})

	return r
}
