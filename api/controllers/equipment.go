package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/api/responses"
	"github.com/heavyrent/backend/api/validators"
	"github.com/heavyrent/backend/internal/equipment"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/logger"
)

type createEquipmentRequest struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Capacity    *string         `json:"capacity,omitempty"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty"`
}

// CreateEquipment registers a fleet unit; new units start available.
func CreateEquipment(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "equipment service unavailable"))
			return
		}

		var req createEquipmentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.Create(r.Context(), equipment.CreateInput{
			Name:        req.Name,
			Category:    req.Category,
			Capacity:    req.Capacity,
			DailyRate:   req.DailyRate,
			Description: req.Description,
			Location:    req.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "equipment created", unit)
	}
}

// GetEquipment returns a single fleet unit.
func GetEquipment(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "equipment service unavailable"))
			return
		}

		id, err := parseUUIDParam(r, "equipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "equipment", unit)
	}
}

// ListEquipment pages through the fleet with optional status/category filters.
func ListEquipment(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "equipment service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := equipment.ListFilters{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseEquipmentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "equipment list", list)
	}
}

type updateEquipmentRequest struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Capacity    *string          `json:"capacity,omitempty"`
	DailyRate   *decimal.Decimal `json:"daily_rate,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *string          `json:"location,omitempty"`
}

// UpdateEquipment edits unit attributes. Status is not editable here; the
// rental and maintenance flows own it.
func UpdateEquipment(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "equipment service unavailable"))
			return
		}

		id, err := parseUUIDParam(r, "equipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateEquipmentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.Update(r.Context(), id, equipment.UpdateInput{
			Name:        req.Name,
			Category:    req.Category,
			Capacity:    req.Capacity,
			DailyRate:   req.DailyRate,
			Description: req.Description,
			Location:    req.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "equipment updated", unit)
	}
}

// DeleteEquipment removes an idle unit from the fleet.
func DeleteEquipment(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "equipment service unavailable"))
			return
		}

		id, err := parseUUIDParam(r, "equipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "equipment deleted", map[string]bool{"deleted": true})
	}
}
