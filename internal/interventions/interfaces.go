package interventions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	"github.com/yanisbelkaid/intervia-backend/pkg/pagination"
)

// Repository defines persistence operations for interventions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, intervention *models.Intervention) (*models.Intervention, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Intervention, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, params pagination.Params) ([]models.Intervention, string, error)
	ListByContractor(ctx context.Context, contractorID uuid.UUID, params pagination.Params) ([]models.Intervention, string, error)
	// UpdateGuarded applies the column updates only when the row still has
	// the expected status, and reports how many rows changed. Zero rows
	// means a concurrent writer advanced the intervention first.
	UpdateGuarded(ctx context.Context, id uuid.UUID, expected enums.InterventionStatus, updates map[string]any) (int64, error)
}
