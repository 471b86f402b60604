package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
)

type repository interface {
	CreateAgency(ctx context.Context, agency *models.Agency) (*models.Agency, error)
	CreateContractor(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error)
	FindAgencyByUserID(ctx context.Context, userID uuid.UUID) (*models.Agency, error)
	FindContractorByUserID(ctx context.Context, userID uuid.UUID) (*models.Contractor, error)
	ListContractors(ctx context.Context) ([]models.Contractor, error)
}

// Service manages the one-time profile setup each user completes before
// taking part in the workflow.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*ProfileDTO, error)
	Create(ctx context.Context, userID uuid.UUID, role enums.UserRole, input CreateInput) (*ProfileDTO, error)
	ListContractors(ctx context.Context) ([]ContractorDTO, error)
}

type service struct {
	repo repository
}

// NewService builds a profiles service with the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

// Me returns the actor's profile. NOT_FOUND signals that profile setup has
// not happened yet; presentation layers redirect on it.
func (s *service) Me(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	switch role {
	case enums.UserRoleAgency:
		agency, err := s.repo.FindAgencyByUserID(ctx, userID)
		if err != nil {
			return nil, profileLookupError(err)
		}
		return &ProfileDTO{Role: role, Agency: agencyFromModel(agency)}, nil
	case enums.UserRoleContractor:
		contractor, err := s.repo.FindContractorByUserID(ctx, userID)
		if err != nil {
			return nil, profileLookupError(err)
		}
		return &ProfileDTO{Role: role, Contractor: contractorFromModel(contractor)}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
}

// Create persists the actor's profile. Each user owns at most one profile,
// matching their role.
func (s *service) Create(ctx context.Context, userID uuid.UUID, role enums.UserRole, input CreateInput) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	switch role {
	case enums.UserRoleAgency:
		if err := requireFields(map[string]string{
			"name":          input.Name,
			"manager":       input.Manager,
			"address":       input.Address,
			"opening_hours": input.OpeningHours,
			"phone":         input.Phone,
		}); err != nil {
			return nil, err
		}
		if _, err := s.repo.FindAgencyByUserID(ctx, userID); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agency profile")
		}
		agency, err := s.repo.CreateAgency(ctx, &models.Agency{
			UserID:       userID,
			Name:         strings.TrimSpace(input.Name),
			Manager:      strings.TrimSpace(input.Manager),
			Address:      strings.TrimSpace(input.Address),
			OpeningHours: strings.TrimSpace(input.OpeningHours),
			Phone:        strings.TrimSpace(input.Phone),
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agency profile")
		}
		return &ProfileDTO{Role: role, Agency: agencyFromModel(agency)}, nil

	case enums.UserRoleContractor:
		if err := requireFields(map[string]string{
			"company_name": input.CompanyName,
			"phone":        input.Phone,
		}); err != nil {
			return nil, err
		}
		if _, err := s.repo.FindContractorByUserID(ctx, userID); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "profile already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check contractor profile")
		}
		contractor, err := s.repo.CreateContractor(ctx, &models.Contractor{
			UserID:      userID,
			CompanyName: strings.TrimSpace(input.CompanyName),
			Phone:       strings.TrimSpace(input.Phone),
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor profile")
		}
		return &ProfileDTO{Role: role, Contractor: contractorFromModel(contractor)}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
}

func (s *service) ListContractors(ctx context.Context) ([]ContractorDTO, error) {
	contractors, err := s.repo.ListContractors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contractors")
	}
	dtos := make([]ContractorDTO, 0, len(contractors))
	for i := range contractors {
		dtos = append(dtos, *contractorFromModel(&contractors[i]))
	}
	return dtos, nil
}

func profileLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile not set up")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
}

func requireFields(fields map[string]string) error {
	missing := map[string]string{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = "is required"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing profile fields").WithDetails(missing)
	}
	return nil
}
