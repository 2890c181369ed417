package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acm-udst/club-portal-backend/internal/models"
)

// Repository persists the append-only xp_history ledger. Records are
// never updated, reordered, or deleted; totals are always derived by
// summing.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AppendTx inserts a ledger record inside the caller's transaction.
// Membership transitions use this so the membership write and the XP
// credit commit or roll back together.
func (r *Repository) AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int, reason string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := tx.Exec(ctx, `
		INSERT INTO xp_history (record_id, user_id, xp_change, reason, time_give)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, delta, reason, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("append xp record: %w", err)
	}
	return id, nil
}

// Append inserts a ledger record outside any transaction.
func (r *Repository) Append(ctx context.Context, userID uuid.UUID, delta int, reason string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO xp_history (record_id, user_id, xp_change, reason, time_give)
		VALUES ($1, $2, $3, $4, $5)
	`, id, userID, delta, reason, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("append xp record: %w", err)
	}
	return id, nil
}

// TotalFor sums all deltas for a user. A user with no records has a
// total of 0; that is not an error.
func (r *Repository) TotalFor(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(xp_change), 0) FROM xp_history WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total xp: %w", err)
	}
	return total, nil
}

// ListByUser returns a user's ledger records, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.XPRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT record_id, user_id, xp_change, reason, time_give
		FROM xp_history WHERE user_id = $1
		ORDER BY time_give DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list xp history: %w", err)
	}
	defer rows.Close()

	var records []models.XPRecord
	for rows.Next() {
		var rec models.XPRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.XPChange, &rec.Reason, &rec.TimeGive); err != nil {
			return nil, fmt.Errorf("scan xp record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Leaderboard returns the top-N members by total XP. Members with no
// ledger records count as 0.
func (r *Repository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.user_id, u.username, COALESCE(SUM(h.xp_change), 0) AS total_xp
		FROM users u
		LEFT JOIN xp_history h ON h.user_id = u.user_id
		GROUP BY u.user_id, u.username
		ORDER BY total_xp DESC, u.username ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalXP); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RankFor returns a user's 1-based position when all members are
// ordered by total XP descending.
func (r *Repository) RankFor(ctx context.Context, userID uuid.UUID) (int, error) {
	var rank int
	err := r.pool.QueryRow(ctx, `
		SELECT seq FROM (
			SELECT u.user_id,
			       ROW_NUMBER() OVER (ORDER BY COALESCE(SUM(h.xp_change), 0) DESC, u.username ASC) AS seq
			FROM users u
			LEFT JOIN xp_history h ON h.user_id = u.user_id
			GROUP BY u.user_id, u.username
		) ranked WHERE user_id = $1
	`, userID).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("rank: %w", err)
	}
	return rank, nil
}
