package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acm-udst/club-portal-backend/internal/models"
)

type Service interface {
	AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int, reason string) (uuid.UUID, error)
	Append(ctx context.Context, userID uuid.UUID, delta int, reason string) (uuid.UUID, error)
	TotalFor(ctx context.Context, userID uuid.UUID) (int, error)
	HistoryFor(ctx context.Context, userID uuid.UUID) ([]models.XPRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	RankFor(ctx context.Context, userID uuid.UUID) (int, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

var _ Service = (*service)(nil)

func (s *service) AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int, reason string) (uuid.UUID, error) {
	return s.repo.AppendTx(ctx, tx, userID, delta, reason)
}

func (s *service) Append(ctx context.Context, userID uuid.UUID, delta int, reason string) (uuid.UUID, error) {
	return s.repo.Append(ctx, userID, delta, reason)
}

func (s *service) TotalFor(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.TotalFor(ctx, userID)
}

func (s *service) HistoryFor(ctx context.Context, userID uuid.UUID) ([]models.XPRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return s.repo.Leaderboard(ctx, limit)
}

func (s *service) RankFor(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.RankFor(ctx, userID)
}

// Total sums the deltas of a slice of ledger records. The sum is
// order-independent; callers holding a user's records in memory (the
// reconcile audit does) use this instead of a second store round trip.
func Total(records []models.XPRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.XPChange
	}
	return total
}
