// Package reconcile audits the XP ledger against the membership table.
// Membership writes and their paired ledger appends commit in one
// transaction, so the two should never drift; this audit exists to flag
// any drift that slips in anyway (manual edits, imported data) rather
// than fix it.
package reconcile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acm-udst/club-portal-backend/internal/ledger"
	"github.com/acm-udst/club-portal-backend/internal/models"
)

// Pair is a duplicated (event, user) membership pair.
type Pair struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Rows    int
}

// Mismatch is a user whose membership-flow XP does not account for
// their current memberships.
type Mismatch struct {
	UserID       uuid.UUID
	Memberships  int
	NetFlowXP    int
	ExpectedFlow int
}

// Report is the outcome of one audit pass.
type Report struct {
	UsersChecked int
	Mismatches   []Mismatch
	Duplicates   []Pair
}

// Clean reports whether the audit found nothing to flag.
func (r Report) Clean() bool {
	return len(r.Mismatches) == 0 && len(r.Duplicates) == 0
}

// HistorySource is the slice of the ledger the audit reads.
type HistorySource interface {
	HistoryFor(ctx context.Context, userID uuid.UUID) ([]models.XPRecord, error)
}

// MembershipSource supplies the membership side of the invariant.
type MembershipSource interface {
	MembershipCounts(ctx context.Context) (map[uuid.UUID]int, error)
	DuplicatePairs(ctx context.Context) ([]Pair, error)
}

type Service struct {
	members MembershipSource
	history HistorySource
	log     *slog.Logger
}

func NewService(members MembershipSource, history HistorySource, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{members: members, history: history, log: log}
}

// membershipNet sums only the join/leave deltas of a user's ledger.
// Joins and leaves are the sole sources of +/-50 entries, so for
// consistent data the net equals 50 XP per current membership.
func membershipNet(records []models.XPRecord) int {
	var flow []models.XPRecord
	for _, rec := range records {
		if rec.XPChange == models.XPJoinEvent || rec.XPChange == models.XPLeaveEvent {
			flow = append(flow, rec)
		}
	}
	return ledger.Total(flow)
}

// Run executes one audit pass and logs every finding.
func (s *Service) Run(ctx context.Context) (Report, error) {
	var report Report

	counts, err := s.members.MembershipCounts(ctx)
	if err != nil {
		return report, err
	}
	for userID, memberships := range counts {
		records, err := s.history.HistoryFor(ctx, userID)
		if err != nil {
			return report, err
		}
		report.UsersChecked++
		net := membershipNet(records)
		expected := memberships * models.XPJoinEvent
		if net != expected {
			m := Mismatch{UserID: userID, Memberships: memberships, NetFlowXP: net, ExpectedFlow: expected}
			report.Mismatches = append(report.Mismatches, m)
			s.log.Warn("xp ledger out of step with memberships",
				"user_id", userID, "memberships", memberships,
				"net_flow_xp", net, "expected_flow_xp", expected)
		}
	}

	dups, err := s.members.DuplicatePairs(ctx)
	if err != nil {
		return report, err
	}
	report.Duplicates = dups
	for _, d := range dups {
		s.log.Warn("duplicate membership pair",
			"event_id", d.EventID, "user_id", d.UserID, "rows", d.Rows)
	}

	return report, nil
}
