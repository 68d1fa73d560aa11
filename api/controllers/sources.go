package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quotewerk/quotewerk-backend/api/responses"
	"github.com/quotewerk/quotewerk-backend/api/validators"
	"github.com/quotewerk/quotewerk-backend/internal/sources"
	"github.com/quotewerk/quotewerk-backend/pkg/db/models"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

type sourceCreateRequest struct {
	Kind    string         `json:"kind" validate:"required"`
	Payload map[string]any `json:"payload" validate:"required"`
}

// SourceCreate ingests an intake draft or partner submission so a wizard
// session can later be started from it.
func SourceCreate(repo *sources.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "source repository unavailable"))
			return
		}

		var payload sourceCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseSourceKind(payload.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown source kind"))
			return
		}

		record, err := repo.Create(r.Context(), &models.SourceRecord{
			Kind:    kind,
			Payload: payload.Payload,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func SourceList(repo *sources.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "source repository unavailable"))
			return
		}

		kind := strings.TrimSpace(r.URL.Query().Get("kind"))
		if kind != "" {
			if _, err := enums.ParseSourceKind(kind); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown source kind"))
				return
			}
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := repo.List(r.Context(), kind, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"sources": records})
	}
}

func SourceGet(repo *sources.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "source repository unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "sourceID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source id"))
			return
		}

		record, err := repo.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}
