package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/internal/repo"
	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
)

// Repository exposes agency and contractor profile persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CreateAgency inserts a new agency profile.
func (r *Repository) CreateAgency(ctx context.Context, agency *models.Agency) (*models.Agency, error) {
	if err := r.DB(ctx).Create(agency).Error; err != nil {
		return nil, err
	}
	return agency, nil
}

// CreateContractor inserts a new contractor profile.
func (r *Repository) CreateContractor(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error) {
	if err := r.DB(ctx).Create(contractor).Error; err != nil {
		return nil, err
	}
	return contractor, nil
}

// FindAgencyByUserID loads the agency profile owned by the given user.
func (r *Repository) FindAgencyByUserID(ctx context.Context, userID uuid.UUID) (*models.Agency, error) {
	var agency models.Agency
	if err := r.DB(ctx).Where("user_id = ?", userID).First(&agency).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

// FindContractorByUserID loads the contractor profile owned by the given user.
func (r *Repository) FindContractorByUserID(ctx context.Context, userID uuid.UUID) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := r.DB(ctx).Where("user_id = ?", userID).First(&contractor).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}

// FindAgencyByID loads an agency profile by primary key.
func (r *Repository) FindAgencyByID(ctx context.Context, id uuid.UUID) (*models.Agency, error) {
	var agency models.Agency
	if err := r.DB(ctx).First(&agency, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

// FindContractorByID loads a contractor profile by primary key.
func (r *Repository) FindContractorByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := r.DB(ctx).First(&contractor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}

// ListContractors returns every contractor profile, newest first. Agencies
// use this to pick an assignee when requesting an intervention.
func (r *Repository) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	var contractors []models.Contractor
	if err := r.DB(ctx).Order("created_at DESC").Find(&contractors).Error; err != nil {
		return nil, err
	}
	return contractors, nil
}
