package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/api/responses"
	"github.com/heavyrent/backend/api/validators"
	"github.com/heavyrent/backend/internal/schedules"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/logger"
)

type createScheduleRequest struct {
	StartDate        time.Time  `json:"start_date" validate:"required"`
	EndDate          time.Time  `json:"end_date" validate:"required"`
	DeliveryLocation *string    `json:"delivery_location"`
	PickupLocation   *string    `json:"pickup_location"`
	AssignedStaffID  *uuid.UUID `json:"assigned_staff_id"`
}

type updateScheduleRequest struct {
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	DeliveryLocation *string    `json:"delivery_location"`
	PickupLocation   *string    `json:"pickup_location"`
	AssignedStaffID  *uuid.UUID `json:"assigned_staff_id"`
	Status           *string    `json:"status"`
}

// CreateSchedule books a delivery/pickup window for a rental order.
func CreateSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedules service unavailable"))
			return
		}

		rentalID, err := parseUUIDParam(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createScheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		schedule, err := svc.Create(r.Context(), schedules.CreateInput{
			RentalOrderID:    rentalID,
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			DeliveryLocation: req.DeliveryLocation,
			PickupLocation:   req.PickupLocation,
			AssignedStaffID:  req.AssignedStaffID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "delivery schedule created", schedule)
	}
}

// GetSchedule returns a single delivery schedule.
func GetSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedules service unavailable"))
			return
		}

		scheduleID, err := parseUUIDParam(r, "scheduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		schedule, err := svc.Get(r.Context(), scheduleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "delivery schedule", schedule)
	}
}

// ListSchedules returns the delivery schedules booked for a rental order.
func ListSchedules(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedules service unavailable"))
			return
		}

		rentalID, err := parseUUIDParam(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByOrder(r.Context(), rentalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "delivery schedules", rows)
	}
}

// UpdateSchedule edits the window, locations, assignee or status of a
// schedule.
func UpdateSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedules service unavailable"))
			return
		}

		scheduleID, err := parseUUIDParam(r, "scheduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateScheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := schedules.UpdateInput{
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			DeliveryLocation: req.DeliveryLocation,
			PickupLocation:   req.PickupLocation,
			AssignedStaffID:  req.AssignedStaffID,
		}
		if req.Status != nil {
			status, err := enums.ParseScheduleStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "unknown schedule status").
						WithDetails(map[string]string{"status": *req.Status}))
				return
			}
			input.Status = &status
		}

		schedule, err := svc.Update(r.Context(), scheduleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "delivery schedule updated", schedule)
	}
}

// DeleteSchedule removes a schedule that has not started yet.
func DeleteSchedule(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedules service unavailable"))
			return
		}

		scheduleID, err := parseUUIDParam(r, "scheduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), scheduleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "delivery schedule deleted", map[string]bool{"deleted": true})
	}
}
