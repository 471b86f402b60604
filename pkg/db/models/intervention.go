package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
)

// Intervention is the workflow subject: one maintenance request from an
// agency to its assigned contractor. Status only moves forward through the
// lifecycle; the optional column groups below are populated by the
// transition that produces them and never cleared.
type Intervention struct {
	ID            uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AgencyID      uuid.UUID                `gorm:"column:agency_id;type:uuid;not null;index"`
	ContractorID  uuid.UUID                `gorm:"column:contractor_id;type:uuid;not null;index"`
	Description   string                   `gorm:"column:description;not null"`
	RequestedDate string                   `gorm:"column:requested_date;not null"`
	Location      string                   `gorm:"column:location;not null"`
	Documents     pq.StringArray           `gorm:"column:documents;type:text[]"`
	Status        enums.InterventionStatus `gorm:"column:status;type:intervention_status;not null;default:'pending'"`

	// Set by the schedule transition.
	ScheduledDate *string `gorm:"column:scheduled_date"`
	ScheduledTime *string `gorm:"column:scheduled_time"`
	Team          *string `gorm:"column:team"`
	Comments      *string `gorm:"column:comments"`

	// Set by the sign-off transition (contractor PV path).
	PVContent     *string        `gorm:"column:pv_content"`
	PVAttachments pq.StringArray `gorm:"column:pv_attachments;type:text[]"`
	PVSubmittedAt *time.Time     `gorm:"column:pv_submitted_at"`

	// Set by the sign-off transition (agency signature path). Opaque
	// encoded payload; content handling lives outside this service.
	Signature *string `gorm:"column:signature"`

	// Set by the invoice and confirm-payment transitions.
	InvoiceFileURL *string    `gorm:"column:invoice_file_url"`
	InvoiceSentAt  *time.Time `gorm:"column:invoice_sent_at"`
	InvoicePaidAt  *time.Time `gorm:"column:invoice_paid_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
