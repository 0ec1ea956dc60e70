package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
)

// Repository defines persistence operations for staff accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, member *models.Staff) (*models.Staff, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, member *models.Staff) (*models.Staff, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var member models.Staff
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var member models.Staff
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
