package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/pkg/config"
	"github.com/yanisbelkaid/intervia-backend/pkg/db"
	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	"github.com/yanisbelkaid/intervia-backend/pkg/logger"
	"github.com/yanisbelkaid/intervia-backend/pkg/security"
)

// DemoPassword is the login password for both seeded demo accounts.
const DemoPassword = "intervia-demo"

// MaybeRunDev loads the demo fixtures when the app runs in dev mode with
// the seed flag enabled. It is a no-op on a non-empty database.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.SeedDemoData {
		return nil
	}
	return Run(ctx, cfg, logg, client.DB())
}

// Run inserts one demo agency, one demo contractor, and a pending
// intervention between them. Both accounts share DemoPassword.
func Run(ctx context.Context, cfg *config.Config, logg *logger.Logger, gdb *gorm.DB) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		if logg != nil {
			logg.Info(ctx, "seed skipped: database already has users")
		}
		return nil
	}

	hash, err := security.HashPassword(DemoPassword, cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	now := time.Now().UTC()

	agencyUser := &models.User{
		ID:           uuid.New(),
		Email:        "agency@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleAgency,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	contractorUser := &models.User{
		ID:           uuid.New(),
		Email:        "contractor@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleContractor,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	agency := &models.Agency{
		ID:           uuid.New(),
		UserID:       agencyUser.ID,
		Name:         "Banque Nationale",
		Manager:      "Jean Dupont",
		Address:      "123 Avenue des Finances, 75001 Paris",
		OpeningHours: "Lun-Ven: 9h-17h",
		Phone:        "+33123456789",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	contractor := &models.Contractor{
		ID:          uuid.New(),
		UserID:      contractorUser.ID,
		CompanyName: "Réparations Pro",
		Phone:       "+33987654321",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	intervention := &models.Intervention{
		ID:            uuid.New(),
		AgencyID:      agency.ID,
		ContractorID:  contractor.ID,
		Description:   "Réparation du système de sécurité",
		RequestedDate: "2026-03-15",
		Location:      "Salle des coffres",
		Documents:     pq.StringArray{},
		Status:        enums.InterventionStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range []any{agencyUser, contractorUser, agency, contractor, intervention} {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("inserting demo fixtures: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "seeded demo agency, contractor, and pending intervention")
	}
	return nil
}
