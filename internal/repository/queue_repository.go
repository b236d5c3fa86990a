package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/models"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/database"
)

const queueColumns = "id, player_id, team_id, rating, status, joined_at, battle_id, matched_at"

type QueueRepository struct {
	db *database.DB
}

func NewQueueRepository(db *database.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Requeue removes any waiting entry the player has and inserts a fresh
// one in the same transaction, so the wait clock resets and the partial
// unique index on (player_id) WHERE status='waiting' is never violated.
func (r *QueueRepository) Requeue(ctx context.Context, playerID, teamID string, rating int) (*models.QueueEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin requeue: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM queue_entries
		WHERE player_id = $1 AND status = 'waiting'
	`, playerID); err != nil {
		return nil, fmt.Errorf("failed to clear waiting entry: %w", err)
	}

	entry := &models.QueueEntry{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO queue_entries (id, player_id, team_id, rating, status)
		VALUES ($1, $2, $3, $4, 'waiting')
		RETURNING `+queueColumns, uuid.New().String(), playerID, teamID, rating).Scan(
		&entry.ID,
		&entry.PlayerID,
		&entry.TeamID,
		&entry.Rating,
		&entry.Status,
		&entry.JoinedAt,
		&entry.BattleID,
		&entry.MatchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert queue entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit requeue: %w", err)
	}

	return entry, nil
}

// FindWaitingByPlayer returns the player's waiting entry, nil when none.
func (r *QueueRepository) FindWaitingByPlayer(ctx context.Context, playerID string) (*models.QueueEntry, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queue_entries
		WHERE player_id = $1 AND status = 'waiting'
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, playerID))
}

// FindByID returns the entry regardless of status, nil when none.
func (r *QueueRepository) FindByID(ctx context.Context, id string) (*models.QueueEntry, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queue_entries
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindLatestByPlayer returns the player's most recent entry in any
// status, for client-side status polling.
func (r *QueueRepository) FindLatestByPlayer(ctx context.Context, playerID string) (*models.QueueEntry, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queue_entries
		WHERE player_id = $1
		ORDER BY joined_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, playerID))
}

// FindBestOpponent picks the waiting entry of another player whose
// rating lies inside the window, closest rating first and earliest
// joiner on ties.
func (r *QueueRepository) FindBestOpponent(ctx context.Context, entry *models.QueueEntry, window int) (*models.QueueEntry, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queue_entries
		WHERE status = 'waiting'
		  AND player_id != $1
		  AND rating BETWEEN $2 AND $3
		ORDER BY ABS(rating - $4) ASC, joined_at ASC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query,
		entry.PlayerID,
		entry.Rating-window,
		entry.Rating+window,
		entry.Rating,
	))
}

// DeleteWaiting removes the player's waiting entry. Returns false when
// there was none, which includes an entry that a concurrent match
// already moved out of waiting.
func (r *QueueRepository) DeleteWaiting(ctx context.Context, playerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM queue_entries
		WHERE player_id = $1 AND status = 'waiting'
	`, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete waiting entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return rows > 0, nil
}

// CompleteMatch is the only writer allowed to set battle_id or the
// matched status. Both entries transition in one transaction guarded by
// a status re-check: unless exactly two rows were still waiting the
// transaction rolls back and false is returned, leaving the winner of
// the concurrent race untouched.
func (r *QueueRepository) CompleteMatch(ctx context.Context, rec *models.MatchRecord) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin match commit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE queue_entries
		SET status = 'matched', battle_id = $1, matched_at = NOW()
		WHERE id = ANY($2) AND status = 'waiting'
	`, rec.BattleID, pq.Array([]string{rec.EntryID1, rec.EntryID2}))
	if err != nil {
		return false, fmt.Errorf("failed to mark entries matched: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read match commit result: %w", err)
	}
	if rows != 2 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO matchmaking_history (id, entry1_id, entry2_id, player1_id, player2_id, battle_id, rating_diff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New().String(), rec.EntryID1, rec.EntryID2, rec.Player1ID, rec.Player2ID, rec.BattleID, rec.RatingDiff); err != nil {
		return false, fmt.Errorf("failed to record match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit match: %w", err)
	}

	return true, nil
}

// ExpireStale moves waiting entries older than maxAge to expired and
// reports how many rows changed. Safe to run repeatedly.
func (r *QueueRepository) ExpireStale(ctx context.Context, maxAge time.Duration) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE queue_entries
		SET status = 'expired'
		WHERE status = 'waiting' AND joined_at < NOW() - $1::interval
	`, fmt.Sprintf("%d seconds", int(maxAge.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale entries: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read expire result: %w", err)
	}

	return int(rows), nil
}

// PurgeTerminal deletes matched/expired rows older than the retention
// window; they only exist to serve status polling for a while.
func (r *QueueRepository) PurgeTerminal(ctx context.Context, retention time.Duration) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM queue_entries
		WHERE status IN ('matched', 'expired')
		  AND joined_at < NOW() - $1::interval
	`, fmt.Sprintf("%d seconds", int(retention.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to purge terminal entries: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}

	return int(rows), nil
}

// Stats aggregates the waiting pool in one query; COALESCE keeps an
// empty pool at zero instead of NULL.
func (r *QueueRepository) Stats(ctx context.Context) (*models.QueueStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(EXTRACT(EPOCH FROM (NOW() - joined_at))) * 1000, 0),
		       COALESCE(MIN(rating), 0),
		       COALESCE(MAX(rating), 0),
		       COALESCE(AVG(rating), 0)
		FROM queue_entries
		WHERE status = 'waiting'
	`

	stats := &models.QueueStats{}
	var avgWaitMs float64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.WaitingCount,
		&avgWaitMs,
		&stats.RatingMin,
		&stats.RatingMax,
		&stats.RatingAvg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate queue stats: %w", err)
	}
	stats.AverageWaitMs = int64(avgWaitMs)

	return stats, nil
}

func (r *QueueRepository) scanOne(row *sql.Row) (*models.QueueEntry, error) {
	entry := &models.QueueEntry{}
	err := row.Scan(
		&entry.ID,
		&entry.PlayerID,
		&entry.TeamID,
		&entry.Rating,
		&entry.Status,
		&entry.JoinedAt,
		&entry.BattleID,
		&entry.MatchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan queue entry: %w", err)
	}
	return entry, nil
}
