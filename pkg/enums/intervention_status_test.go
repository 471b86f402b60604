package enums

import "testing"

func TestInterventionStatusOrderIsTotal(t *testing.T) {
	ordered := []InterventionStatus{
		InterventionStatusPending,
		InterventionStatusScheduled,
		InterventionStatusCompleted,
		InterventionStatusSignedOff,
		InterventionStatusInvoiced,
		InterventionStatusPaid,
	}

	for i, status := range ordered {
		if !status.IsValid() {
			t.Fatalf("%s should be valid", status)
		}
		if status.Order() != i {
			t.Fatalf("%s expected order %d, got %d", status, i, status.Order())
		}
	}
}

func TestInterventionStatusNextWalksLifecycle(t *testing.T) {
	status := InterventionStatusPending
	visited := []InterventionStatus{status}
	for {
		next, ok := status.Next()
		if !ok {
			break
		}
		if next.Order() != status.Order()+1 {
			t.Fatalf("%s -> %s skips a step", status, next)
		}
		visited = append(visited, next)
		status = next
	}

	if status != InterventionStatusPaid {
		t.Fatalf("walk should terminate at paid, got %s", status)
	}
	if len(visited) != 6 {
		t.Fatalf("expected 6 lifecycle states, visited %d", len(visited))
	}

	if _, ok := InterventionStatusPaid.Next(); ok {
		t.Fatal("paid must not have a successor")
	}
}

func TestParseInterventionStatus(t *testing.T) {
	status, err := ParseInterventionStatus("signed_off")
	if err != nil {
		t.Fatalf("parse signed_off: %v", err)
	}
	if status != InterventionStatusSignedOff {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseInterventionStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseInterventionStatus(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestInterventionStatusUnknownValue(t *testing.T) {
	unknown := InterventionStatus("archived")
	if unknown.IsValid() {
		t.Fatal("archived should not be valid")
	}
	if unknown.Order() != -1 {
		t.Fatalf("unknown status order should be -1, got %d", unknown.Order())
	}
	if _, ok := unknown.Next(); ok {
		t.Fatal("unknown status must not have a successor")
	}
}
