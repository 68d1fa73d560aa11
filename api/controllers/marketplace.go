package controllers

import (
	"net/http"

	"github.com/quotewerk/quotewerk-backend/api/responses"
	"github.com/quotewerk/quotewerk-backend/api/validators"
	"github.com/quotewerk/quotewerk-backend/internal/marketplace"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

func vehicleFromQuery(r *http.Request) types.Vehicle {
	q := r.URL.Query()
	return types.Vehicle{
		Make:  validators.SanitizeString(q.Get("make"), 80),
		Model: validators.SanitizeString(q.Get("model"), 80),
	}
}

// MarketplaceLinks builds deep links into the configured part shops for a
// given part and vehicle.
func MarketplaceLinks(gen *marketplace.LinkGenerator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "marketplace links unavailable"))
			return
		}

		part := validators.SanitizeString(r.URL.Query().Get("part"), 120)
		if part == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "part query parameter is required"))
			return
		}

		links := gen.Links(part, vehicleFromQuery(r))
		responses.WriteSuccess(w, map[string]any{"links": links})
	}
}

// MarketplaceEstimate asks the external price service for an indication.
// Every returned value is flagged as an estimate, never a binding price.
func MarketplaceEstimate(client *marketplace.EstimateClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil || !client.Enabled() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "price estimates are not configured"))
			return
		}

		part := validators.SanitizeString(r.URL.Query().Get("part"), 120)
		if part == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "part query parameter is required"))
			return
		}

		estimate, err := client.Fetch(r.Context(), part, vehicleFromQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimate)
	}
}
