package enums

import "fmt"

// InterventionStatus tracks the lifecycle of a maintenance intervention.
// The order is total: every intervention walks the sequence forward and
// never skips or reverses a step.
type InterventionStatus string

const (
	InterventionStatusPending   InterventionStatus = "pending"
	InterventionStatusScheduled InterventionStatus = "scheduled"
	InterventionStatusCompleted InterventionStatus = "completed"
	InterventionStatusSignedOff InterventionStatus = "signed_off"
	InterventionStatusInvoiced  InterventionStatus = "invoiced"
	InterventionStatusPaid      InterventionStatus = "paid"
)

var orderedInterventionStatuses = []InterventionStatus{
	InterventionStatusPending,
	InterventionStatusScheduled,
	InterventionStatusCompleted,
	InterventionStatusSignedOff,
	InterventionStatusInvoiced,
	InterventionStatusPaid,
}

// String implements fmt.Stringer.
func (s InterventionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InterventionStatus.
func (s InterventionStatus) IsValid() bool {
	for _, candidate := range orderedInterventionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Order returns the position of the status in the lifecycle, or -1 when unknown.
func (s InterventionStatus) Order() int {
	for i, candidate := range orderedInterventionStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the unique successor status. The second return is false for
// the terminal status and for unknown values.
func (s InterventionStatus) Next() (InterventionStatus, bool) {
	idx := s.Order()
	if idx < 0 || idx >= len(orderedInterventionStatuses)-1 {
		return "", false
	}
	return orderedInterventionStatuses[idx+1], true
}

// ParseInterventionStatus converts raw input into an InterventionStatus.
func ParseInterventionStatus(value string) (InterventionStatus, error) {
	for _, candidate := range orderedInterventionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intervention status %q", value)
}
