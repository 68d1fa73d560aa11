package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotewerk/quotewerk-backend/api/responses"
	"github.com/quotewerk/quotewerk-backend/api/validators"
	"github.com/quotewerk/quotewerk-backend/internal/wizard"
	"github.com/quotewerk/quotewerk-backend/pkg/enums"
	pkgerrors "github.com/quotewerk/quotewerk-backend/pkg/errors"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
	"github.com/quotewerk/quotewerk-backend/pkg/types"
)

type wizardStartRequest struct {
	SourceID *uuid.UUID     `json:"source_id,omitempty"`
	Vehicle  *types.Vehicle `json:"vehicle,omitempty"`
}

// WizardStart opens a new quotation session, seeded either from a stored
// source record or from a manually entered vehicle.
func WizardStart(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardStartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.Start(r.Context(), wizard.StartInput{
			SourceID: payload.SourceID,
			Vehicle:  payload.Vehicle,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

func WizardGet(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		draft, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

// WizardAdvance moves the session forward one step. A blocked advance is not
// an error: the response carries the issues the caller has to resolve.
func WizardAdvance(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		result, err := svc.Advance(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Blocked() {
			responses.WriteSuccessStatus(w, http.StatusUnprocessableEntity, result)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func WizardRetreat(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		result, err := svc.Retreat(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func WizardSetVehicle(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var vehicle types.Vehicle
		if err := validators.DecodeJSONBody(r, &vehicle); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SetVehicle(r.Context(), chi.URLParam(r, "sessionID"), vehicle)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardServicesRequest struct {
	Services []string `json:"services" validate:"required,min=1"`
}

func WizardSelectServices(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardServicesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		services := make([]enums.ServiceType, 0, len(payload.Services))
		for _, raw := range payload.Services {
			parsed, err := enums.ParseServiceType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
				return
			}
			services = append(services, parsed)
		}

		draft, err := svc.SelectServices(r.Context(), chi.URLParam(r, "sessionID"), services)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardDetailRequest struct {
	Service string `json:"service" validate:"required"`
	FieldID string `json:"field_id" validate:"required"`
	Value   string `json:"value"`
}

func WizardSetDetailField(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardDetailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := enums.ParseServiceType(payload.Service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		draft, err := svc.SetDetailField(r.Context(), chi.URLParam(r, "sessionID"), service, payload.FieldID, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardPartsRequest struct {
	Service string   `json:"service" validate:"required"`
	Parts   []string `json:"parts" validate:"required"`
}

func WizardSelectParts(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardPartsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := enums.ParseServiceType(payload.Service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		draft, err := svc.SelectParts(r.Context(), chi.URLParam(r, "sessionID"), service, payload.Parts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardOperationsRequest struct {
	Service    string   `json:"service" validate:"required"`
	Part       string   `json:"part" validate:"required"`
	Operations []string `json:"operations" validate:"required"`
}

func WizardSetOperations(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardOperationsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := enums.ParseServiceType(payload.Service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		ops := make([]enums.RepairOperation, 0, len(payload.Operations))
		for _, raw := range payload.Operations {
			parsed, err := enums.ParseRepairOperation(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown repair operation"))
				return
			}
			ops = append(ops, parsed)
		}

		draft, err := svc.SetOperations(r.Context(), chi.URLParam(r, "sessionID"), payload.Part, service, ops)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

func WizardUpsertReplacementPart(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var part types.ReplacementPart
		if err := validators.DecodeJSONBody(r, &part); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.UpsertReplacementPart(r.Context(), chi.URLParam(r, "sessionID"), part)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

func WizardRemoveReplacementPart(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		partID, err := uuid.Parse(chi.URLParam(r, "partID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid part id"))
			return
		}

		draft, err := svc.RemoveReplacementPart(r.Context(), chi.URLParam(r, "sessionID"), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardVehicleCostRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func WizardSetReplacementVehicleCost(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardVehicleCostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SetReplacementVehicleCost(r.Context(), chi.URLParam(r, "sessionID"), payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardChecklistRequest struct {
	Service string `json:"service" validate:"required"`
	Part    string `json:"part" validate:"required"`
}

func WizardToggleChecklist(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardChecklistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := enums.ParseServiceType(payload.Service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		draft, err := svc.ToggleChecklist(r.Context(), chi.URLParam(r, "sessionID"), payload.Part, service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}

type wizardAnalyzeRequest struct {
	Service   string   `json:"service" validate:"required"`
	ImageRefs []string `json:"image_refs" validate:"required,min=1"`
}

// WizardAnalyzeDamage runs photo recognition against the selected service.
// Candidates are suggestions only: nothing is applied to the draft.
func WizardAnalyzeDamage(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardAnalyzeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := enums.ParseServiceType(payload.Service)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown service type"))
			return
		}

		candidates, err := svc.AnalyzeDamage(r.Context(), chi.URLParam(r, "sessionID"), service, payload.ImageRefs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"candidates": candidates})
	}
}

func WizardBreakdown(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		result, err := svc.Breakdown(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func WizardFinalize(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		record, err := svc.Finalize(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}
