package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotewerk/quotewerk-backend/api/responses"
	"github.com/quotewerk/quotewerk-backend/internal/catalog"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

// CatalogList returns every service entry the shop offers, with its part
// lists, allowed operations and detail field schemas.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"entries": svc.Entries(r.Context())})
	}
}

func CatalogEntry(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		serviceType, err := enums.ParseServiceType(chi.URLParam(r, "serviceType"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		entry, ok := svc.Entry(r.Context(), serviceType)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found"))
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

func CatalogRates(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Rates(r.Context()))
	}
}
