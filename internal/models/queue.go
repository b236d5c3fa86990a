package models

import "time"

type QueueEntryStatus string

const (
	QueueStatusWaiting QueueEntryStatus = "waiting"
	QueueStatusMatched QueueEntryStatus = "matched"
	QueueStatusExpired QueueEntryStatus = "expired"
)

// QueueEntry is one player's attempt to be matched. Status transitions
// are waiting -> matched or waiting -> expired, nothing leaves a
// terminal state. BattleID is set exactly when status is matched; the
// schema enforces this with a CHECK constraint and the waiting
// uniqueness per player with a partial unique index.
type QueueEntry struct {
	ID        string           `db:"id" json:"id"`
	PlayerID  string           `db:"player_id" json:"playerId"`
	TeamID    string           `db:"team_id" json:"teamId"`
	Rating    int              `db:"rating" json:"rating"`
	Status    QueueEntryStatus `db:"status" json:"status"`
	JoinedAt  time.Time        `db:"joined_at" json:"joinedAt"`
	BattleID  *string          `db:"battle_id" json:"battleId,omitempty"`
	MatchedAt *time.Time       `db:"matched_at" json:"matchedAt,omitempty"`
}

// WaitTime reports how long the entry has been (or was) in the pool.
func (e *QueueEntry) WaitTime(now time.Time) time.Duration {
	if e.MatchedAt != nil {
		return e.MatchedAt.Sub(e.JoinedAt)
	}
	return now.Sub(e.JoinedAt)
}

// View projects an entry for API responses.
func (e *QueueEntry) View(now time.Time) *QueueEntryView {
	return &QueueEntryView{
		ID:       e.ID,
		PlayerID: e.PlayerID,
		TeamID:   e.TeamID,
		Rating:   e.Rating,
		Status:   e.Status,
		JoinedAt: e.JoinedAt,
		WaitMs:   e.WaitTime(now).Milliseconds(),
		BattleID: e.BattleID,
	}
}

type QueueEntryView struct {
	ID       string           `json:"id"`
	PlayerID string           `json:"playerId"`
	TeamID   string           `json:"teamId"`
	Rating   int              `json:"rating"`
	Status   QueueEntryStatus `json:"status"`
	JoinedAt time.Time        `json:"joinedAt"`
	WaitMs   int64            `json:"waitMs"`
	BattleID *string          `json:"battleId,omitempty"`
}

// MatchResult is returned by a successful find-match call.
type MatchResult struct {
	Entry      *QueueEntryView `json:"entry"`
	Opponent   *QueueEntryView `json:"opponent"`
	RatingDiff int             `json:"ratingDiff"`
	BattleID   string          `json:"battleId"`
}

// MatchRecord is the unit the store commits atomically: both entries
// move to matched with the battle id stamped, and a history row is
// written, or nothing happens at all.
type MatchRecord struct {
	EntryID1   string
	EntryID2   string
	Player1ID  string
	Player2ID  string
	BattleID   string
	RatingDiff int
}

// QueueStats aggregates the waiting pool. Zero-valued when empty.
type QueueStats struct {
	WaitingCount  int     `json:"waitingCount"`
	AverageWaitMs int64   `json:"averageWaitMs"`
	RatingMin     int     `json:"ratingMin"`
	RatingMax     int     `json:"ratingMax"`
	RatingAvg     float64 `json:"ratingAvg"`
}
