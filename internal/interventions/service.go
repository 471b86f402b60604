package interventions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
	"github.com/yanisbelkaid/intervia-backend/pkg/metrics"
	"github.com/yanisbelkaid/intervia-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// profileDirectory resolves the acting user's profile and validates
// assignment targets. Implemented by the profiles repository.
type profileDirectory interface {
	FindAgencyByUserID(ctx context.Context, userID uuid.UUID) (*models.Agency, error)
	FindContractorByUserID(ctx context.Context, userID uuid.UUID) (*models.Contractor, error)
	FindContractorByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
}

// Service owns the intervention lifecycle: creation plus every status
// transition. Status never changes through any other path.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateInput) (*InterventionDTO, error)
	ListForActor(ctx context.Context, actor Actor, params pagination.Params) (*List, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*Detail, error)
	ApplyTransition(ctx context.Context, actor Actor, id uuid.UUID, target enums.InterventionStatus, payload TransitionPayload) (*InterventionDTO, error)
}

type service struct {
	repo     Repository
	profiles profileDirectory
	tx       txRunner
	metrics  *metrics.WorkflowMetrics
}

// NewService builds an interventions service with the required dependencies.
func NewService(repo Repository, profiles profileDirectory, tx txRunner, workflowMetrics *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("interventions repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile directory required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		tx:       tx,
		metrics:  workflowMetrics,
	}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*InterventionDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actor.Role != enums.UserRoleAgency {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only agencies create interventions")
	}
	if input.ContractorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contractor id required")
	}
	if err := requireFields(map[string]string{
		"description":    input.Description,
		"requested_date": input.RequestedDate,
		"location":       input.Location,
	}); err != nil {
		return nil, err
	}

	agency, err := s.profiles.FindAgencyByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "agency profile required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agency profile")
	}

	if _, err := s.profiles.FindContractorByID(ctx, input.ContractorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
	}

	documents := input.Documents
	if documents == nil {
		documents = []string{}
	}

	now := time.Now().UTC()
	intervention := &models.Intervention{
		AgencyID:      agency.ID,
		ContractorID:  input.ContractorID,
		Description:   strings.TrimSpace(input.Description),
		RequestedDate: strings.TrimSpace(input.RequestedDate),
		Location:      strings.TrimSpace(input.Location),
		Documents:     documents,
		Status:        enums.InterventionStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, intervention)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create intervention")
	}
	return FromModel(created), nil
}

func (s *service) ListForActor(ctx context.Context, actor Actor, params pagination.Params) (*List, error) {
	ownerID, err := s.resolveOwnerID(ctx, actor)
	if err != nil {
		return nil, err
	}

	var rows []models.Intervention
	var next string
	switch actor.Role {
	case enums.UserRoleAgency:
		rows, next, err = s.repo.ListByAgency(ctx, ownerID, params)
	case enums.UserRoleContractor:
		rows, next, err = s.repo.ListByContractor(ctx, ownerID, params)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list interventions")
	}

	return &List{Interventions: fromModels(rows), NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Detail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "intervention id required")
	}
	ownerID, err := s.resolveOwnerID(ctx, actor)
	if err != nil {
		return nil, err
	}

	intervention, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "intervention not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load intervention")
	}

	if err := checkOwnership(intervention, actor.Role, ownerID); err != nil {
		return nil, err
	}

	return &Detail{
		Intervention:       FromModel(intervention),
		AllowedTransitions: AllowedTargets(intervention.Status, actor.Role),
	}, nil
}

// ApplyTransition is the only path by which an intervention's status
// changes. A failed call leaves the row untouched; a successful call
// performs exactly one status-guarded write.
func (s *service) ApplyTransition(ctx context.Context, actor Actor, id uuid.UUID, target enums.InterventionStatus, payload TransitionPayload) (*InterventionDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "intervention id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	ownerID, err := s.resolveOwnerID(ctx, actor)
	if err != nil {
		return nil, err
	}

	var result *models.Intervention
	var from enums.InterventionStatus
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		intervention, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "intervention not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load intervention")
		}
		from = intervention.Status

		edge, err := findTransition(intervention.Status, target, actor.Role)
		if err != nil {
			return err
		}
		if err := checkOwnership(intervention, actor.Role, ownerID); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates, err := edge.apply(payload, now)
		if err != nil {
			return err
		}
		updates["status"] = target
		updates["updated_at"] = now

		affected, err := repo.UpdateGuarded(ctx, intervention.ID, intervention.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update intervention")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "intervention was updated concurrently")
		}

		result, err = repo.FindByID(ctx, intervention.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload intervention")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(string(from), string(target), string(actor.Role))
	return FromModel(result), nil
}

func (s *service) resolveOwnerID(ctx context.Context, actor Actor) (uuid.UUID, error) {
	if actor.UserID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	switch actor.Role {
	case enums.UserRoleAgency:
		agency, err := s.profiles.FindAgencyByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "agency profile required")
			}
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agency profile")
		}
		return agency.ID, nil
	case enums.UserRoleContractor:
		contractor, err := s.profiles.FindContractorByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "contractor profile required")
			}
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor profile")
		}
		return contractor.ID, nil
	default:
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
}

// checkOwnership enforces that the acting profile is the intervention's
// owning agency or assigned contractor. No other actor may touch it.
func checkOwnership(intervention *models.Intervention, role enums.UserRole, ownerID uuid.UUID) error {
	switch role {
	case enums.UserRoleAgency:
		if intervention.AgencyID != ownerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "intervention does not belong to agency")
		}
	case enums.UserRoleContractor:
		if intervention.ContractorID != ownerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "intervention is not assigned to contractor")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
	return nil
}
