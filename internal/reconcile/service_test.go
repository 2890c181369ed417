package reconcile

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/acm-udst/club-portal-backend/internal/models"
)

type fakeMembers struct {
	counts map[uuid.UUID]int
	dups   []Pair
}

func (f *fakeMembers) MembershipCounts(context.Context) (map[uuid.UUID]int, error) {
	return f.counts, nil
}
func (f *fakeMembers) DuplicatePairs(context.Context) ([]Pair, error) { return f.dups, nil }

type fakeHistory struct {
	records map[uuid.UUID][]models.XPRecord
}

func (f *fakeHistory) HistoryFor(_ context.Context, userID uuid.UUID) ([]models.XPRecord, error) {
	return f.records[userID], nil
}

func recs(deltas ...int) []models.XPRecord {
	var out []models.XPRecord
	for _, d := range deltas {
		out = append(out, models.XPRecord{ID: uuid.New(), XPChange: d})
	}
	return out
}

func TestRun_Clean(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	members := &fakeMembers{counts: map[uuid.UUID]int{alice: 2, bob: 0}}
	history := &fakeHistory{records: map[uuid.UUID][]models.XPRecord{
		// Two current memberships plus one join/leave round-trip, and a
		// +100 create entry that must not disturb the flow check.
		alice: recs(50, 50, 50, -50, 100),
		bob:   nil,
	}}

	report, err := NewService(members, history, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report)
	}
	if report.UsersChecked != 2 {
		t.Errorf("users checked: got %d, want 2", report.UsersChecked)
	}
}

func TestRun_FlagsMismatch(t *testing.T) {
	carol := uuid.New()

	members := &fakeMembers{counts: map[uuid.UUID]int{carol: 1}}
	// A membership exists but its +50 was never written.
	history := &fakeHistory{records: map[uuid.UUID][]models.XPRecord{carol: recs(100)}}

	report, err := NewService(members, history, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches: got %d, want 1", len(report.Mismatches))
	}
	m := report.Mismatches[0]
	if m.UserID != carol || m.NetFlowXP != 0 || m.ExpectedFlow != 50 {
		t.Errorf("mismatch detail: got %+v", m)
	}
}

func TestRun_FlagsDuplicates(t *testing.T) {
	members := &fakeMembers{
		counts: map[uuid.UUID]int{},
		dups:   []Pair{{EventID: uuid.New(), UserID: uuid.New(), Rows: 2}},
	}
	report, err := NewService(members, &fakeHistory{}, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Duplicates) != 1 {
		t.Errorf("duplicates: got %d, want 1", len(report.Duplicates))
	}
	if report.Clean() {
		t.Error("report with duplicates must not be clean")
	}
}
