package interventions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	"github.com/yanisbelkaid/intervia-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an interventions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, intervention *models.Intervention) (*models.Intervention, error) {
	if err := r.db.WithContext(ctx).Create(intervention).Error; err != nil {
		return nil, err
	}
	return intervention, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Intervention, error) {
	var intervention models.Intervention
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&intervention).Error
	if err != nil {
		return nil, err
	}
	return &intervention, nil
}

func (r *repository) ListByAgency(ctx context.Context, agencyID uuid.UUID, params pagination.Params) ([]models.Intervention, string, error) {
	return r.list(ctx, "agency_id = ?", agencyID, params)
}

func (r *repository) ListByContractor(ctx context.Context, contractorID uuid.UUID, params pagination.Params) ([]models.Intervention, string, error) {
	return r.list(ctx, "contractor_id = ?", contractorID, params)
}

func (r *repository) list(ctx context.Context, ownerClause string, ownerID uuid.UUID, params pagination.Params) ([]models.Intervention, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Where(ownerClause, ownerID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Intervention
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

func (r *repository) UpdateGuarded(ctx context.Context, id uuid.UUID, expected enums.InterventionStatus, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Intervention{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	return res.RowsAffected, res.Error
}
