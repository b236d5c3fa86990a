package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/config"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/models"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// QueueStore is the durable waiting pool. All mutation of queue entries
// goes through it; CompleteMatch is the only operation allowed to set a
// battle id or the matched status, and it must be atomic: both entries
// transition or neither does, with a commit-time re-check that both are
// still waiting (reported as committed=false when they are not).
type QueueStore interface {
	Requeue(ctx context.Context, playerID, teamID string, rating int) (*models.QueueEntry, error)
	FindWaitingByPlayer(ctx context.Context, playerID string) (*models.QueueEntry, error)
	FindByID(ctx context.Context, id string) (*models.QueueEntry, error)
	FindLatestByPlayer(ctx context.Context, playerID string) (*models.QueueEntry, error)
	FindBestOpponent(ctx context.Context, entry *models.QueueEntry, window int) (*models.QueueEntry, error)
	DeleteWaiting(ctx context.Context, playerID string) (bool, error)
	CompleteMatch(ctx context.Context, rec *models.MatchRecord) (committed bool, err error)
	ExpireStale(ctx context.Context, maxAge time.Duration) (int, error)
	PurgeTerminal(ctx context.Context, retention time.Duration) (int, error)
	Stats(ctx context.Context) (*models.QueueStats, error)
}

// PlayerStore and TeamStore resolve entities owned by the account
// subsystem.
type PlayerStore interface {
	FindByID(ctx context.Context, id string) (*models.Player, error)
}

type TeamStore interface {
	FindActiveOwned(ctx context.Context, teamID, playerID string) (*models.Team, error)
	FindByID(ctx context.Context, teamID string) (*models.Team, error)
}

// BattleStarter is the external battle engine.
type BattleStarter interface {
	StartBattle(ctx context.Context, player1ID, player2ID string) (string, error)
}

// EntryClaimer takes a short-lived exclusive claim on a set of entries
// before orchestration, so concurrent matchers (including ones on other
// instances) do not race the same pair into the battle service. ok is
// false when any entry is already claimed. The claim is advisory; the
// store's match commit stays authoritative.
type EntryClaimer interface {
	ClaimEntries(ctx context.Context, entryIDs ...string) (release func(), ok bool, err error)
}

// MatchNotifier pushes a match-found event to a connected player.
// Polling getEntry remains the contract; this is best-effort.
type MatchNotifier interface {
	NotifyMatchFound(playerID, battleID, opponentID string, ratingDiff int)
}

type MatchmakingService struct {
	queue   QueueStore
	players PlayerStore
	teams   TeamStore
	battles BattleStarter
	claims  EntryClaimer
	notify  MatchNotifier
	cfg     *config.Config
}

func NewMatchmakingService(
	queue QueueStore,
	players PlayerStore,
	teams TeamStore,
	battles BattleStarter,
	cfg *config.Config,
) *MatchmakingService {
	return &MatchmakingService{
		queue:   queue,
		players: players,
		teams:   teams,
		battles: battles,
		cfg:     cfg,
	}
}

// SetClaimer enables cross-matcher entry claiming (optional).
func (s *MatchmakingService) SetClaimer(claims EntryClaimer) {
	s.claims = claims
}

// SetNotifier enables match-found push notifications (optional).
func (s *MatchmakingService) SetNotifier(notify MatchNotifier) {
	s.notify = notify
}

// JoinQueue puts the player into the waiting pool with the given team.
// A player that is already waiting is requeued: the old entry is
// removed and a fresh one created, resetting the wait clock.
func (s *MatchmakingService) JoinQueue(ctx context.Context, playerID, teamID string) (*models.QueueEntryView, error) {
	player, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	team, err := s.teams.FindActiveOwned(ctx, teamID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}

	entry, err := s.queue.Requeue(ctx, playerID, teamID, s.cfg.DefaultRating)
	if err != nil {
		return nil, fmt.Errorf("failed to join queue: %w", err)
	}

	logger.Info("Player joined matchmaking queue",
		"entryId", entry.ID,
		"playerId", playerID,
		"teamId", teamID,
		"rating", entry.Rating,
	)

	return entry.View(time.Now()), nil
}

// LeaveQueue removes the player's waiting entry. Once a match commit
// has moved the entry out of waiting, leaving is no longer possible and
// reports ErrEntryNotFound.
func (s *MatchmakingService) LeaveQueue(ctx context.Context, playerID string) error {
	deleted, err := s.queue.DeleteWaiting(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to leave queue: %w", err)
	}
	if !deleted {
		return ErrEntryNotFound
	}

	logger.Info("Player left matchmaking queue", "playerId", playerID)
	return nil
}

// FindMatch runs one matching attempt for the player. A nil result with
// nil error means no compatible opponent this attempt; callers poll
// again later. Losing a race against a concurrent matcher is reported
// the same way.
func (s *MatchmakingService) FindMatch(ctx context.Context, playerID string) (*models.MatchResult, error) {
	entry, err := s.queue.FindWaitingByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find queue entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	window := RatingWindow(
		s.cfg.BaseRatingWindow,
		s.cfg.WindowPerMinute,
		s.cfg.WindowHardCap,
		time.Since(entry.JoinedAt),
	)

	opponent, err := s.queue.FindBestOpponent(ctx, entry, window)
	if err != nil {
		return nil, fmt.Errorf("failed to search for opponent: %w", err)
	}
	if opponent == nil {
		logger.Debug("No opponent in rating window",
			"playerId", playerID,
			"rating", entry.Rating,
			"window", window,
		)
		return nil, nil
	}

	result, err := s.orchestrateBattle(ctx, entry, opponent)
	if err == errMatchConflict {
		logger.Debug("Lost match race, reporting no match",
			"playerId", playerID,
			"opponentId", opponent.PlayerID,
		)
		return nil, nil
	}
	return result, err
}

// orchestrateBattle turns two waiting entries into a started battle.
// Order matters: claim both entries, re-confirm both are still waiting,
// resolve team data, call the battle service, then commit the terminal
// transition. The commit re-checks the waiting status inside its own
// transaction, so even without claims a concurrent matcher can never
// leave one entry matched and the other waiting.
func (s *MatchmakingService) orchestrateBattle(ctx context.Context, entry, opponent *models.QueueEntry) (*models.MatchResult, error) {
	if s.claims != nil {
		release, ok, err := s.claims.ClaimEntries(ctx, entry.ID, opponent.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to claim entries: %w", err)
		}
		if !ok {
			return nil, errMatchConflict
		}
		defer release()
	}

	// Re-confirm under the claim, before spending a battle-service call.
	for _, id := range []string{entry.ID, opponent.ID} {
		fresh, err := s.queue.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to re-check entry: %w", err)
		}
		if fresh == nil || fresh.Status != models.QueueStatusWaiting {
			return nil, errMatchConflict
		}
	}

	for _, e := range []*models.QueueEntry{entry, opponent} {
		team, err := s.teams.FindByID(ctx, e.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve team: %w", err)
		}
		if team == nil {
			return nil, fmt.Errorf("%w: team %s for entry %s", ErrTeamDataMissing, e.TeamID, e.ID)
		}
	}

	battleID, err := s.battles.StartBattle(ctx, entry.PlayerID, opponent.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBattleUpstream, err)
	}

	ratingDiff := entry.Rating - opponent.Rating
	if ratingDiff < 0 {
		ratingDiff = -ratingDiff
	}

	committed, err := s.queue.CompleteMatch(ctx, &models.MatchRecord{
		EntryID1:   entry.ID,
		EntryID2:   opponent.ID,
		Player1ID:  entry.PlayerID,
		Player2ID:  opponent.PlayerID,
		BattleID:   battleID,
		RatingDiff: ratingDiff,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	if !committed {
		// The battle was started but the pair was taken meanwhile; the
		// battle service reconciles battles nobody polls for.
		logger.Warn("Match commit lost race after battle start",
			"battleId", battleID,
			"entry1", entry.ID,
			"entry2", opponent.ID,
		)
		return nil, errMatchConflict
	}

	now := time.Now()
	for _, e := range []*models.QueueEntry{entry, opponent} {
		e.Status = models.QueueStatusMatched
		e.BattleID = &battleID
		matchedAt := now
		e.MatchedAt = &matchedAt
	}

	logger.Info("Match created",
		"battleId", battleID,
		"player1", entry.PlayerID,
		"player2", opponent.PlayerID,
		"ratingDiff", ratingDiff,
	)

	if s.notify != nil {
		s.notify.NotifyMatchFound(entry.PlayerID, battleID, opponent.PlayerID, ratingDiff)
		s.notify.NotifyMatchFound(opponent.PlayerID, battleID, entry.PlayerID, ratingDiff)
	}

	return &models.MatchResult{
		Entry:      entry.View(now),
		Opponent:   opponent.View(now),
		RatingDiff: ratingDiff,
		BattleID:   battleID,
	}, nil
}

// GetEntry returns the player's latest entry in any status, nil when
// the player never queued (or the janitor purged the history).
func (s *MatchmakingService) GetEntry(ctx context.Context, playerID string) (*models.QueueEntryView, error) {
	entry, err := s.queue.FindLatestByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	return entry.View(time.Now()), nil
}

// GetStats aggregates the waiting pool.
func (s *MatchmakingService) GetStats(ctx context.Context) (*models.QueueStats, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue stats: %w", err)
	}
	return stats, nil
}

// CleanupExpired retires waiting entries older than the configured
// maximum queue time and returns how many were affected. Idempotent.
func (s *MatchmakingService) CleanupExpired(ctx context.Context) (int, error) {
	count, err := s.queue.ExpireStale(ctx, s.cfg.MaxQueueWait)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale entries: %w", err)
	}

	if count > 0 {
		logger.Info("Expired stale queue entries", "count", count)
	}

	return count, nil
}

// PurgeTerminal deletes terminal entries past the retention window.
func (s *MatchmakingService) PurgeTerminal(ctx context.Context) (int, error) {
	count, err := s.queue.PurgeTerminal(ctx, s.cfg.TerminalRetention)
	if err != nil {
		return 0, fmt.Errorf("failed to purge terminal entries: %w", err)
	}

	if count > 0 {
		logger.Debug("Purged terminal queue entries", "count", count)
	}

	return count, nil
}
