package documents

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/storage"
)

// AttachInput carries a base64-encoded supporting document upload.
type AttachInput struct {
	OrderID    uuid.UUID
	Name       string
	Type       string
	Content    string
	UploadedBy uuid.UUID
}

// Service stores supporting documents for rental orders.
type Service interface {
	Attach(ctx context.Context, input AttachInput) (*models.Document, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Document, error)
}

type service struct {
	repo     Repository
	orders   OrderFinder
	blobs    storage.BlobStore
	maxBytes int64
}

// NewService builds a documents service. maxBytes caps the decoded upload
// size.
func NewService(repo Repository, orders OrderFinder, blobs storage.BlobStore, maxBytes int64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("documents repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order finder required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &service{
		repo:     repo,
		orders:   orders,
		blobs:    blobs,
		maxBytes: maxBytes,
	}, nil
}

func (s *service) Attach(ctx context.Context, input AttachInput) (*models.Document, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document name required")
	}
	if input.UploadedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "uploader identity missing")
	}
	docType, err := enums.ParseDocumentType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown document type")
	}

	data, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content must be base64 encoded")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content must not be empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document exceeds the upload size limit")
	}

	order, err := s.orders.Find(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental order")
	}
	if order.LifecycleStatus.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "documents cannot be attached to closed rentals")
	}

	path, err := s.blobs.Put(ctx, input.Name, data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document blob")
	}

	doc := &models.Document{
		RentalOrderID: order.ID,
		Name:          input.Name,
		Type:          docType,
		StoragePath:   path,
		SizeBytes:     int64(len(data)),
		UploadedBy:    input.UploadedBy,
	}
	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist document")
	}
	return created, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Document, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	docs, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	return docs, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document id required")
	}
	doc, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	return doc, nil
}
