package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotewerk/quotewerk-backend/api/controllers"
	"github.com/quotewerk/quotewerk-backend/api/middleware"
	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/internal/marketplace"
	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/internal/sources"
	"github.com/quotewerk/quotewerk-backend/internal/wizard"
	"github.com/quotewerk/quotewerk-backend/pkg/config"
	"github.com/quotewerk/quotewerk-backend/pkg/db"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/redis"
)

// Dependencies bundles everything the HTTP surface needs. cmd/api builds one
// of these after bootstrapping the clients and services.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redis.Pinger
	Catalog        catalog.Service
	Wizard         wizard.Service
	Quotes         *quote.Repository
	Sources        *sources.Repository
	ShopLinks      *marketplace.LinkGenerator
	PriceEstimates *marketplace.EstimateClient
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, logg))
			r.Get("/rates", controllers.CatalogRates(deps.Catalog, logg))
			r.Get("/{serviceType}", controllers.CatalogEntry(deps.Catalog, logg))
		})

		r.Route("/wizard/sessions", func(r chi.Router) {
			r.Post("/", controllers.WizardStart(deps.Wizard, logg))

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.WizardGet(deps.Wizard, logg))
				r.Post("/advance", controllers.WizardAdvance(deps.Wizard, logg))
				r.Post("/retreat", controllers.WizardRetreat(deps.Wizard, logg))
				r.Put("/vehicle", controllers.WizardSetVehicle(deps.Wizard, logg))
				r.Put("/services", controllers.WizardSelectServices(deps.Wizard, logg))
				r.Put("/details", controllers.WizardSetDetailField(deps.Wizard, logg))
				r.Put("/parts", controllers.WizardSelectParts(deps.Wizard, logg))
				r.Put("/operations", controllers.WizardSetOperations(deps.Wizard, logg))
				r.Put("/replacement-parts", controllers.WizardUpsertReplacementPart(deps.Wizard, logg))
				r.Delete("/replacement-parts/{partID}", controllers.WizardRemoveReplacementPart(deps.Wizard, logg))
				r.Put("/replacement-vehicle-cost", controllers.WizardSetReplacementVehicleCost(deps.Wizard, logg))
				r.Post("/checklist/toggle", controllers.WizardToggleChecklist(deps.Wizard, logg))
				r.Post("/analyze", controllers.WizardAnalyzeDamage(deps.Wizard, logg))
				r.Get("/breakdown", controllers.WizardBreakdown(deps.Wizard, logg))
				r.Post("/finalize", controllers.WizardFinalize(deps.Wizard, logg))
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuoteList(deps.Quotes, logg))
			r.Get("/{quoteID}", controllers.QuoteGet(deps.Quotes, logg))
		})

		r.Route("/sources", func(r chi.Router) {
			r.Post("/", controllers.SourceCreate(deps.Sources, logg))
			r.Get("/", controllers.SourceList(deps.Sources, logg))
			r.Get("/{sourceID}", controllers.SourceGet(deps.Sources, logg))
		})

		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/links", controllers.MarketplaceLinks(deps.ShopLinks, logg))
			r.Get("/estimate", controllers.MarketplaceEstimate(deps.PriceEstimates, logg))
		})
	})

	return r
}
