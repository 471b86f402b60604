package profiles

import (
	"github.com/google/uuid"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
)

// CreateInput carries the profile-setup fields for either role. The
// agency-only fields are ignored for contractors and vice versa.
type CreateInput struct {
	Name         string
	Manager      string
	Address      string
	OpeningHours string
	Phone        string
	CompanyName  string
}

// AgencyDTO is the transport shape of an agency profile.
type AgencyDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Manager      string    `json:"manager"`
	Address      string    `json:"address"`
	OpeningHours string    `json:"opening_hours"`
	Phone        string    `json:"phone"`
}

// ContractorDTO is the transport shape of a contractor profile.
type ContractorDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Phone       string    `json:"phone"`
}

// ProfileDTO wraps whichever profile kind the user owns.
type ProfileDTO struct {
	Role       enums.UserRole `json:"role"`
	Agency     *AgencyDTO     `json:"agency,omitempty"`
	Contractor *ContractorDTO `json:"contractor,omitempty"`
}

func agencyFromModel(a *models.Agency) *AgencyDTO {
	if a == nil {
		return nil
	}
	return &AgencyDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		Name:         a.Name,
		Manager:      a.Manager,
		Address:      a.Address,
		OpeningHours: a.OpeningHours,
		Phone:        a.Phone,
	}
}

func contractorFromModel(c *models.Contractor) *ContractorDTO {
	if c == nil {
		return nil
	}
	return &ContractorDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		CompanyName: c.CompanyName,
		Phone:       c.Phone,
	}
}
