package interventions

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
)

// PVDTO is the contractor's completion report.
type PVDTO struct {
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// InvoiceDTO is the contractor's invoice plus the agency's payment stamp.
type InvoiceDTO struct {
	FileURL string     `json:"file_url"`
	SentAt  time.Time  `json:"sent_at"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`
}

// InterventionDTO is the transport shape of an intervention.
type InterventionDTO struct {
	ID            uuid.UUID                `json:"id"`
	AgencyID      uuid.UUID                `json:"agency_id"`
	ContractorID  uuid.UUID                `json:"contractor_id"`
	Description   string                   `json:"description"`
	RequestedDate string                   `json:"requested_date"`
	Location      string                   `json:"location"`
	Documents     []string                 `json:"documents"`
	Status        enums.InterventionStatus `json:"status"`
	ScheduledDate *string                  `json:"scheduled_date,omitempty"`
	ScheduledTime *string                  `json:"scheduled_time,omitempty"`
	Team          *string                  `json:"team,omitempty"`
	Comments      *string                  `json:"comments,omitempty"`
	PV            *PVDTO                   `json:"pv,omitempty"`
	Signature     *string                  `json:"signature,omitempty"`
	Invoice       *InvoiceDTO              `json:"invoice,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// Detail pairs an intervention with the transitions the actor may take now.
type Detail struct {
	Intervention       *InterventionDTO           `json:"intervention"`
	AllowedTransitions []enums.InterventionStatus `json:"allowed_transitions"`
}

// List wraps a page of interventions plus the next page cursor.
type List struct {
	Interventions []InterventionDTO `json:"interventions"`
	NextCursor    string            `json:"next_cursor,omitempty"`
}

// CreateInput captures the fields an agency submits when requesting work.
type CreateInput struct {
	ContractorID  uuid.UUID
	Description   string
	RequestedDate string
	Location      string
	Documents     []string
}

// Actor identifies the authenticated user attempting an operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// FromModel converts the persistence model into its transport shape.
func FromModel(iv *models.Intervention) *InterventionDTO {
	if iv == nil {
		return nil
	}

	dto := &InterventionDTO{
		ID:            iv.ID,
		AgencyID:      iv.AgencyID,
		ContractorID:  iv.ContractorID,
		Description:   iv.Description,
		RequestedDate: iv.RequestedDate,
		Location:      iv.Location,
		Documents:     append([]string{}, iv.Documents...),
		Status:        iv.Status,
		ScheduledDate: iv.ScheduledDate,
		ScheduledTime: iv.ScheduledTime,
		Team:          iv.Team,
		Comments:      iv.Comments,
		Signature:     iv.Signature,
		CreatedAt:     iv.CreatedAt,
		UpdatedAt:     iv.UpdatedAt,
	}

	if iv.PVContent != nil && iv.PVSubmittedAt != nil {
		dto.PV = &PVDTO{
			Content:     *iv.PVContent,
			Attachments: append([]string{}, iv.PVAttachments...),
			SubmittedAt: *iv.PVSubmittedAt,
		}
	}
	if iv.InvoiceFileURL != nil && iv.InvoiceSentAt != nil {
		dto.Invoice = &InvoiceDTO{
			FileURL: *iv.InvoiceFileURL,
			SentAt:  *iv.InvoiceSentAt,
			PaidAt:  iv.InvoicePaidAt,
		}
	}
	return dto
}

func fromModels(rows []models.Intervention) []InterventionDTO {
	dtos := make([]InterventionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
