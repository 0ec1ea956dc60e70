package controllers

import (
	"net/http"
	"time"

	"github.com/heavyrent/backend/api/responses"
	"github.com/heavyrent/backend/api/validators"
	"github.com/heavyrent/backend/internal/maintenance"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/logger"
)

type scheduleMaintenanceRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

// ScheduleMaintenance books a service window and takes the unit out of the
// rentable pool.
func ScheduleMaintenance(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		equipmentID, err := parseUUIDParam(r, "equipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req scheduleMaintenanceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Schedule(r.Context(), maintenance.ScheduleInput{
			EquipmentID: equipmentID,
			ScheduledAt: req.ScheduledAt,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "maintenance scheduled", record)
	}
}

// FinishMaintenance closes a scheduled record and returns the unit to the
// fleet.
func FinishMaintenance(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		recordID, err := parseUUIDParam(r, "recordId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Finish(r.Context(), recordID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "maintenance finished", record)
	}
}

// ListMaintenance returns the maintenance history of a unit.
func ListMaintenance(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "maintenance service unavailable"))
			return
		}

		equipmentID, err := parseUUIDParam(r, "equipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListByEquipment(r.Context(), equipmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "maintenance history", records)
	}
}
