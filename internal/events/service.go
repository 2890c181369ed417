package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acm-udst/club-portal-backend/internal/auth"
	"github.com/acm-udst/club-portal-backend/internal/models"
)

// ErrNotFound is returned when an event does not exist or is deleted.
var ErrNotFound = errors.New("event not found")

// ErrTitleRequired is returned before any store call when the event
// title is empty.
var ErrTitleRequired = errors.New("event title is required")

// ErrAuthRequired is returned before any store call when the operation
// needs an identified member and none was supplied.
var ErrAuthRequired = errors.New("login required")

// ErrNotCreator is returned when someone other than the creator tries
// to delete an event.
var ErrNotCreator = errors.New("only the creator can delete an event")

// EventStore is the minimal event/membership store interface the
// membership gate needs.
type EventStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	InsertTx(ctx context.Context, tx pgx.Tx, ev *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListVisible(ctx context.Context, viewerID uuid.UUID) ([]models.EventWithJoined, error)
	AddParticipantTx(ctx context.Context, tx pgx.Tx, eventID, userID uuid.UUID, email, role string) (bool, error)
	RemoveParticipantTx(ctx context.Context, tx pgx.Tx, eventID, userID uuid.UUID) (bool, error)
	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// LedgerWriter is the slice of the XP ledger the gate needs: each
// membership transition pairs with exactly one append, inside the same
// transaction as the membership write.
type LedgerWriter interface {
	AppendTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta int, reason string) (uuid.UUID, error)
}

type Service interface {
	Create(ctx context.Context, sess *auth.Session, title string, eventDate *time.Time) (*models.Event, error)
	Join(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error
	Leave(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error
	Delete(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error
	List(ctx context.Context, sess *auth.Session) ([]models.EventWithJoined, error)
	Participants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error)
}

type service struct {
	store  EventStore
	ledger LedgerWriter
	log    *slog.Logger
}

func NewService(store EventStore, ledger LedgerWriter, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{store: store, ledger: ledger, log: log}
}

var _ Service = (*service)(nil)

// Create inserts a new event and credits the creator 100 XP. Both
// writes commit together.
func (s *service) Create(ctx context.Context, sess *auth.Session, title string, eventDate *time.Time) (*models.Event, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	ev := &models.Event{
		ID:        uuid.New(),
		Title:     title,
		EventDate: eventDate,
		CreatedBy: sess.Email,
		CreatorID: sess.UserID,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.store.InsertTx(ctx, tx, ev); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AppendTx(ctx, tx, sess.UserID, models.XPCreateEvent,
		fmt.Sprintf("Created event %s", ev.Title)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ev, nil
}

// Join moves a (event, user) pair from NotJoined to Joined and credits
// 50 XP. Joining an event twice is a no-op, not an error: the
// conditional insert reports the pair already exists and no second XP
// record is written.
func (s *service) Join(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error {
	if sess == nil {
		return ErrAuthRequired
	}
	if _, err := s.store.GetByID(ctx, eventID); err != nil {
		return err
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	added, err := s.store.AddParticipantTx(ctx, tx, eventID, sess.UserID, sess.Email, models.RoleParticipant)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}
	if _, err := s.ledger.AppendTx(ctx, tx, sess.UserID, models.XPJoinEvent,
		fmt.Sprintf("Joined event %s", eventID)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Leave is the inverse of Join: the membership row is removed and 50 XP
// deducted, in one transaction. Leaving an event the member never
// joined is a no-op.
func (s *service) Leave(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error {
	if sess == nil {
		return ErrAuthRequired
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	removed, err := s.store.RemoveParticipantTx(ctx, tx, eventID, sess.UserID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	if _, err := s.ledger.AppendTx(ctx, tx, sess.UserID, models.XPLeaveEvent,
		fmt.Sprintf("Left event %s", eventID)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete soft-deletes an event. Only the creator may delete. A store
// failure after the permission checks is downgraded to a warning: the
// board has already removed the entry optimistically and the row stays
// recoverable either way.
func (s *service) Delete(ctx context.Context, sess *auth.Session, eventID uuid.UUID) error {
	if sess == nil {
		return ErrAuthRequired
	}
	ev, err := s.store.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.CreatorID != sess.UserID {
		return ErrNotCreator
	}
	if err := s.store.SoftDelete(ctx, eventID); err != nil {
		s.log.Warn("event soft delete failed", "event_id", eventID, "error", err)
	}
	return nil
}

func (s *service) List(ctx context.Context, sess *auth.Session) ([]models.EventWithJoined, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	return s.store.ListVisible(ctx, sess.UserID)
}

func (s *service) Participants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error) {
	if _, err := s.store.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListParticipants(ctx, eventID)
}
