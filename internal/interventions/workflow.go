package interventions

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
)

// TransitionPayload carries the data a transition may require. Which fields
// are mandatory depends on the edge being taken; unused fields are ignored.
type TransitionPayload struct {
	ScheduledDate  string
	ScheduledTime  string
	Team           string
	Comments       *string
	PVContent      string
	PVAttachments  []string
	Signature      string
	InvoiceFileURL string
}

// transition is one edge of the workflow: who may move an intervention from
// one status to the next, and which column updates the move produces.
type transition struct {
	from  enums.InterventionStatus
	to    enums.InterventionStatus
	actor enums.UserRole
	apply func(p TransitionPayload, now time.Time) (map[string]any, error)
}

// transitionTable is the single source of truth for the workflow. Note the
// two edges out of completed: the contractor's PV submission and the
// agency's signature both land on signed_off, and either alone suffices.
var transitionTable = []transition{
	{
		from:  enums.InterventionStatusPending,
		to:    enums.InterventionStatusScheduled,
		actor: enums.UserRoleContractor,
		apply: applySchedule,
	},
	{
		from:  enums.InterventionStatusScheduled,
		to:    enums.InterventionStatusCompleted,
		actor: enums.UserRoleContractor,
		apply: applyNoPayload,
	},
	{
		from:  enums.InterventionStatusCompleted,
		to:    enums.InterventionStatusSignedOff,
		actor: enums.UserRoleContractor,
		apply: applyPV,
	},
	{
		from:  enums.InterventionStatusCompleted,
		to:    enums.InterventionStatusSignedOff,
		actor: enums.UserRoleAgency,
		apply: applySignature,
	},
	{
		from:  enums.InterventionStatusSignedOff,
		to:    enums.InterventionStatusInvoiced,
		actor: enums.UserRoleContractor,
		apply: applyInvoice,
	},
	{
		from:  enums.InterventionStatusInvoiced,
		to:    enums.InterventionStatusPaid,
		actor: enums.UserRoleAgency,
		apply: applyPaymentConfirmation,
	},
}

// findTransition resolves the edge for the requested move. A target that is
// not the unique successor of the current status is a state conflict; a
// successor edge reserved for the other role is a permission failure.
func findTransition(from, to enums.InterventionStatus, actor enums.UserRole) (*transition, error) {
	successor, ok := from.Next()
	if !ok || successor != to {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("no transition from %s to %s", from, to),
		)
	}

	roleAllowed := false
	for i := range transitionTable {
		t := &transitionTable[i]
		if t.from != from || t.to != to {
			continue
		}
		if t.actor == actor {
			return t, nil
		}
		roleAllowed = true
	}

	if roleAllowed {
		return nil, pkgerrors.New(
			pkgerrors.CodeForbidden,
			fmt.Sprintf("role %s may not move an intervention from %s to %s", actor, from, to),
		)
	}
	return nil, pkgerrors.New(
		pkgerrors.CodeStateConflict,
		fmt.Sprintf("no transition from %s to %s", from, to),
	)
}

// AllowedTargets lists the statuses the given role could move an
// intervention with the given status to. Presentation layers ask this
// instead of re-implementing the rules.
func AllowedTargets(status enums.InterventionStatus, actor enums.UserRole) []enums.InterventionStatus {
	targets := []enums.InterventionStatus{}
	for i := range transitionTable {
		t := &transitionTable[i]
		if t.from == status && t.actor == actor {
			targets = append(targets, t.to)
		}
	}
	return targets
}

func applySchedule(p TransitionPayload, _ time.Time) (map[string]any, error) {
	if err := requireFields(map[string]string{
		"scheduled_date": p.ScheduledDate,
		"scheduled_time": p.ScheduledTime,
		"team":           p.Team,
	}); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"scheduled_date": p.ScheduledDate,
		"scheduled_time": p.ScheduledTime,
		"team":           p.Team,
	}
	if p.Comments != nil && strings.TrimSpace(*p.Comments) != "" {
		updates["comments"] = strings.TrimSpace(*p.Comments)
	}
	return updates, nil
}

func applyNoPayload(_ TransitionPayload, _ time.Time) (map[string]any, error) {
	return map[string]any{}, nil
}

func applyPV(p TransitionPayload, now time.Time) (map[string]any, error) {
	if err := requireFields(map[string]string{"pv_content": p.PVContent}); err != nil {
		return nil, err
	}
	attachments := p.PVAttachments
	if attachments == nil {
		attachments = []string{}
	}
	return map[string]any{
		"pv_content":      p.PVContent,
		"pv_attachments":  pq.StringArray(attachments),
		"pv_submitted_at": now,
	}, nil
}

func applySignature(p TransitionPayload, _ time.Time) (map[string]any, error) {
	if err := requireFields(map[string]string{"signature": p.Signature}); err != nil {
		return nil, err
	}
	return map[string]any{"signature": p.Signature}, nil
}

func applyInvoice(p TransitionPayload, now time.Time) (map[string]any, error) {
	if err := requireFields(map[string]string{"invoice_file_url": p.InvoiceFileURL}); err != nil {
		return nil, err
	}
	return map[string]any{
		"invoice_file_url": p.InvoiceFileURL,
		"invoice_sent_at":  now,
	}, nil
}

func applyPaymentConfirmation(_ TransitionPayload, now time.Time) (map[string]any, error) {
	return map[string]any{"invoice_paid_at": now}, nil
}

func requireFields(fields map[string]string) error {
	missing := map[string]string{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = "is required"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing transition payload fields").WithDetails(missing)
	}
	return nil
}
