package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acm-udst/club-portal-backend/internal/models"
)

// Repository persists events and the event_participants membership
// table. The UNIQUE (event_id, user_id) constraint plus conditional
// inserts make membership exactly-once even under concurrent joins.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// InsertTx creates a new event inside the caller's transaction.
func (r *Repository) InsertTx(ctx context.Context, tx pgx.Tx, ev *models.Event) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO event (event_id, title, event_date, created_by, creator_id, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, ev.ID, ev.Title, ev.EventDate, ev.CreatedBy, ev.CreatorID, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID returns a visible (not soft-deleted) event or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var ev models.Event
	row := r.pool.QueryRow(ctx, `
		SELECT event_id, title, event_date, created_by, creator_id, is_deleted, created_at
		FROM event WHERE event_id = $1 AND is_deleted = FALSE
	`, id)
	err := row.Scan(&ev.ID, &ev.Title, &ev.EventDate, &ev.CreatedBy, &ev.CreatorID, &ev.IsDeleted, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &ev, nil
}

// ListVisible returns all non-deleted events ordered by event date,
// each decorated with the viewer's membership state and the
// participant count.
func (r *Repository) ListVisible(ctx context.Context, viewerID uuid.UUID) ([]models.EventWithJoined, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.event_id, e.title, e.event_date, e.created_by, e.creator_id, e.created_at,
		       COUNT(p.user_id) AS participants,
		       COALESCE(BOOL_OR(p.user_id = $1), FALSE) AS joined
		FROM event e
		LEFT JOIN event_participants p ON p.event_id = e.event_id
		WHERE e.is_deleted = FALSE
		GROUP BY e.event_id, e.title, e.event_date, e.created_by, e.creator_id, e.created_at
		ORDER BY e.event_date ASC NULLS LAST, e.created_at ASC
	`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []models.EventWithJoined
	for rows.Next() {
		var ev models.EventWithJoined
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.EventDate, &ev.CreatedBy, &ev.CreatorID,
			&ev.CreatedAt, &ev.Participants, &ev.Joined); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// AddParticipantTx conditionally inserts a membership row. Returns
// false when the pair already exists: ON CONFLICT DO NOTHING against
// the unique constraint means two concurrent joins cannot both insert.
func (r *Repository) AddParticipantTx(ctx context.Context, tx pgx.Tx, eventID, userID uuid.UUID, email, role string) (bool, error) {
	ct, err := tx.Exec(ctx, `
		INSERT INTO event_participants (event_id, user_id, user_email, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID, email, role, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("add participant: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

// RemoveParticipantTx deletes a membership row. Returns false when the
// pair was not joined.
func (r *Repository) RemoveParticipantTx(ctx context.Context, tx pgx.Tx, eventID, userID uuid.UUID) (bool, error) {
	ct, err := tx.Exec(ctx, `
		DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("remove participant: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

// ListParticipants returns an event's members in join order.
func (r *Repository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, user_id, user_email, role, joined_at
		FROM event_participants WHERE event_id = $1
		ORDER BY joined_at ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var list []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.EventID, &p.UserID, &p.UserEmail, &p.Role, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoftDelete marks an event deleted. The row is never removed; the
// visible-events listing filters it out.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE event SET is_deleted = TRUE WHERE event_id = $1 AND is_deleted = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
