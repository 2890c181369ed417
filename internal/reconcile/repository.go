package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MembershipCounts returns the number of current memberships per user,
// including users with none.
func (r *Repository) MembershipCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.user_id, COUNT(p.event_id)
		FROM users u
		LEFT JOIN event_participants p ON p.user_id = u.user_id
		GROUP BY u.user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("membership counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan membership count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// DuplicatePairs returns any (event_id, user_id) pairs with more than
// one membership row. The unique constraint makes this impossible for
// rows this service wrote; data imported from elsewhere may violate it.
func (r *Repository) DuplicatePairs(ctx context.Context) ([]Pair, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, user_id, COUNT(*)
		FROM event_participants
		GROUP BY event_id, user_id
		HAVING COUNT(*) > 1
	`)
	if err != nil {
		return nil, fmt.Errorf("duplicate pairs: %w", err)
	}
	defer rows.Close()

	var dups []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Rows); err != nil {
			return nil, fmt.Errorf("scan duplicate pair: %w", err)
		}
		dups = append(dups, p)
	}
	return dups, rows.Err()
}
