package controllers

import (
	"net/http"

	"github.com/heavyrent/backend/api/responses"
	"github.com/heavyrent/backend/api/validators"
	"github.com/heavyrent/backend/internal/documents"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/logger"
)

type attachDocumentRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// AttachDocument stores a base64-encoded supporting document on an open order.
func AttachDocument(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "documents service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		uploader, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req attachDocumentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Attach(r.Context(), documents.AttachInput{
			OrderID:    orderID,
			Name:       req.Name,
			Type:       req.Type,
			Content:    req.Content,
			UploadedBy: uploader,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "document attached", doc)
	}
}

// ListDocuments returns the documents attached to an order.
func ListDocuments(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "documents service unavailable"))
			return
		}

		orderID, err := parseUUIDParam(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		docs, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "order documents", docs)
	}
}
