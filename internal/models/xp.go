package models

import (
	"time"

	"github.com/google/uuid"
)

// XP awards for membership transitions. The ledger is the single source
// of truth for a member's score; these are the only deltas the gate
// produces.
const (
	XPJoinEvent   = 50
	XPLeaveEvent  = -50
	XPCreateEvent = 100
)

// XPRecord is one append-only entry in xp_history. A user's total score
// is always the sum of XPChange over their records; there is no mutable
// current-score column anywhere.
type XPRecord struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	XPChange int       `json:"xp_change"`
	Reason   string    `json:"reason"`
	TimeGive time.Time `json:"time_give"`
}

// LeaderboardEntry is one row of the top-N members board.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Rank     int       `json:"rank"`
	TotalXP  int       `json:"total_xp"`
}
