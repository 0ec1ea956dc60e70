package staff

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/config"
	"github.com/heavyrent/backend/pkg/db"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	"github.com/heavyrent/backend/pkg/logger"
	"github.com/heavyrent/backend/pkg/security"
)

// EnsureDefaultAdmin creates the bootstrap admin account on first start when
// the bootstrap credentials are configured and no such account exists yet.
func EnsureDefaultAdmin(ctx context.Context, repo Repository, cfg *config.Config, logg *logger.Logger) error {
	email := cfg.Bootstrap.AdminEmail
	password := cfg.Bootstrap.AdminPassword
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	member, err := repo.Create(ctx, &models.Staff{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         enums.ActorRoleStaff,
	})
	if err != nil {
		// another instance may have won the bootstrap race
		if db.IsUniqueViolation(err, "staff_email_key") {
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "staff_id", member.ID.String())
		logg.Info(ctx, "bootstrap admin account created")
	}
	return nil
}
