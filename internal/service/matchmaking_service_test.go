package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/config"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/models"
)

// memQueueStore implements QueueStore in memory with the same atomicity
// contract as the Postgres store: CompleteMatch transitions both
// entries or neither, under one lock.
type memQueueStore struct {
	mu      sync.Mutex
	seq     int
	entries map[string]*models.QueueEntry
	history []*models.MatchRecord
}

func newMemQueueStore() *memQueueStore {
	return &memQueueStore{entries: make(map[string]*models.QueueEntry)}
}

func copyEntry(e *models.QueueEntry) *models.QueueEntry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.BattleID != nil {
		b := *e.BattleID
		cp.BattleID = &b
	}
	if e.MatchedAt != nil {
		m := *e.MatchedAt
		cp.MatchedAt = &m
	}
	return &cp
}

func (s *memQueueStore) insertLocked(playerID, teamID string, rating int, joinedAt time.Time) *models.QueueEntry {
	s.seq++
	entry := &models.QueueEntry{
		ID:       fmt.Sprintf("entry-%d", s.seq),
		PlayerID: playerID,
		TeamID:   teamID,
		Rating:   rating,
		Status:   models.QueueStatusWaiting,
		JoinedAt: joinedAt,
	}
	s.entries[entry.ID] = entry
	return entry
}

func (s *memQueueStore) Requeue(_ context.Context, playerID, teamID string, rating int) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if e.PlayerID == playerID && e.Status == models.QueueStatusWaiting {
			delete(s.entries, id)
		}
	}

	return copyEntry(s.insertLocked(playerID, teamID, rating, time.Now())), nil
}

func (s *memQueueStore) FindWaitingByPlayer(_ context.Context, playerID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.PlayerID == playerID && e.Status == models.QueueStatusWaiting {
			return copyEntry(e), nil
		}
	}
	return nil, nil
}

func (s *memQueueStore) FindByID(_ context.Context, id string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntry(s.entries[id]), nil
}

func (s *memQueueStore) FindLatestByPlayer(_ context.Context, playerID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.QueueEntry
	for _, e := range s.entries {
		if e.PlayerID != playerID {
			continue
		}
		if latest == nil || e.JoinedAt.After(latest.JoinedAt) {
			latest = e
		}
	}
	return copyEntry(latest), nil
}

func (s *memQueueStore) FindBestOpponent(_ context.Context, entry *models.QueueEntry, window int) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *models.QueueEntry
	bestDiff := 0
	for _, e := range s.entries {
		if e.PlayerID == entry.PlayerID || e.Status != models.QueueStatusWaiting {
			continue
		}
		diff := e.Rating - entry.Rating
		if diff < 0 {
			diff = -diff
		}
		if diff > window {
			continue
		}
		if best == nil || diff < bestDiff || (diff == bestDiff && e.JoinedAt.Before(best.JoinedAt)) {
			best = e
			bestDiff = diff
		}
	}
	return copyEntry(best), nil
}

func (s *memQueueStore) DeleteWaiting(_ context.Context, playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if e.PlayerID == playerID && e.Status == models.QueueStatusWaiting {
			delete(s.entries, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *memQueueStore) CompleteMatch(_ context.Context, rec *models.MatchRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e1, ok1 := s.entries[rec.EntryID1]
	e2, ok2 := s.entries[rec.EntryID2]
	if !ok1 || !ok2 || e1.Status != models.QueueStatusWaiting || e2.Status != models.QueueStatusWaiting {
		return false, nil
	}

	now := time.Now()
	for _, e := range []*models.QueueEntry{e1, e2} {
		battleID := rec.BattleID
		matchedAt := now
		e.Status = models.QueueStatusMatched
		e.BattleID = &battleID
		e.MatchedAt = &matchedAt
	}
	s.history = append(s.history, rec)

	return true, nil
}

func (s *memQueueStore) ExpireStale(_ context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	count := 0
	for _, e := range s.entries {
		if e.Status == models.QueueStatusWaiting && e.JoinedAt.Before(cutoff) {
			e.Status = models.QueueStatusExpired
			count++
		}
	}
	return count, nil
}

func (s *memQueueStore) PurgeTerminal(_ context.Context, retention time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention)
	count := 0
	for id, e := range s.entries {
		if e.Status != models.QueueStatusWaiting && e.JoinedAt.Before(cutoff) {
			delete(s.entries, id)
			count++
		}
	}
	return count, nil
}

func (s *memQueueStore) Stats(_ context.Context) (*models.QueueStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &models.QueueStats{}
	now := time.Now()
	var totalWait time.Duration
	var totalRating int
	for _, e := range s.entries {
		if e.Status != models.QueueStatusWaiting {
			continue
		}
		stats.WaitingCount++
		totalWait += now.Sub(e.JoinedAt)
		totalRating += e.Rating
		if stats.RatingMin == 0 || e.Rating < stats.RatingMin {
			stats.RatingMin = e.Rating
		}
		if e.Rating > stats.RatingMax {
			stats.RatingMax = e.Rating
		}
	}
	if stats.WaitingCount > 0 {
		stats.AverageWaitMs = (totalWait / time.Duration(stats.WaitingCount)).Milliseconds()
		stats.RatingAvg = float64(totalRating) / float64(stats.WaitingCount)
	}
	return stats, nil
}

// waitingCount reports how many waiting entries the player has.
func (s *memQueueStore) waitingCount(playerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.entries {
		if e.PlayerID == playerID && e.Status == models.QueueStatusWaiting {
			count++
		}
	}
	return count
}

type fakePlayerStore struct {
	players map[string]*models.Player
}

func (s *fakePlayerStore) FindByID(_ context.Context, id string) (*models.Player, error) {
	return s.players[id], nil
}

type fakeTeamStore struct {
	mu    sync.Mutex
	teams map[string]*models.Team
}

func (s *fakeTeamStore) FindActiveOwned(_ context.Context, teamID, playerID string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := s.teams[teamID]
	if team == nil || team.PlayerID != playerID || !team.IsActive {
		return nil, nil
	}
	return team, nil
}

func (s *fakeTeamStore) FindByID(_ context.Context, teamID string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams[teamID], nil
}

type fakeBattleEngine struct {
	mu       sync.Mutex
	calls    int
	failWith error
}

func (f *fakeBattleEngine) StartBattle(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.failWith != nil {
		return "", f.failWith
	}
	return fmt.Sprintf("battle-%d", f.calls), nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) NotifyMatchFound(playerID, battleID, opponentID string, _ int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, playerID+":"+battleID+":"+opponentID)
}

type fixture struct {
	store   *memQueueStore
	players *fakePlayerStore
	teams   *fakeTeamStore
	battles *fakeBattleEngine
	svc     *MatchmakingService
}

func newFixture() *fixture {
	f := &fixture{
		store:   newMemQueueStore(),
		players: &fakePlayerStore{players: make(map[string]*models.Player)},
		teams:   &fakeTeamStore{teams: make(map[string]*models.Team)},
		battles: &fakeBattleEngine{},
	}

	cfg := &config.Config{
		DefaultRating:     1200,
		BaseRatingWindow:  100,
		WindowPerMinute:   20,
		WindowHardCap:     500,
		MaxQueueWait:      10 * time.Minute,
		TerminalRetention: time.Hour,
	}

	f.svc = NewMatchmakingService(f.store, f.players, f.teams, f.battles, cfg)
	return f
}

// addPlayer registers a player with one active owned team "team-<id>".
func (f *fixture) addPlayer(id string) {
	f.players.players[id] = &models.Player{ID: id, Username: id}
	f.teams.teams["team-"+id] = &models.Team{
		ID:       "team-" + id,
		PlayerID: id,
		Name:     "Team " + id,
		IsActive: true,
	}
}

// seedEntry inserts a waiting entry directly, bypassing JoinQueue, so
// tests can control rating and join time.
func (f *fixture) seedEntry(playerID string, rating int, joinedAt time.Time) *models.QueueEntry {
	f.addPlayer(playerID)
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	entry := f.store.insertLocked(playerID, "team-"+playerID, rating, joinedAt)
	return copyEntry(entry)
}

func TestJoinQueue_CreatesWaitingEntry(t *testing.T) {
	f := newFixture()
	f.addPlayer("alice")

	view, err := f.svc.JoinQueue(context.Background(), "alice", "team-alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", view.PlayerID)
	assert.Equal(t, "team-alice", view.TeamID)
	assert.Equal(t, 1200, view.Rating)
	assert.Equal(t, models.QueueStatusWaiting, view.Status)
	assert.Less(t, view.WaitMs, int64(1000))
	assert.Nil(t, view.BattleID)
}

func TestJoinQueue_UnknownPlayer(t *testing.T) {
	f := newFixture()

	_, err := f.svc.JoinQueue(context.Background(), "ghost", "team-ghost")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestJoinQueue_BadTeam(t *testing.T) {
	f := newFixture()
	f.addPlayer("alice")
	f.addPlayer("bob")
	f.teams.teams["team-idle"] = &models.Team{ID: "team-idle", PlayerID: "alice", IsActive: false}

	ctx := context.Background()

	_, err := f.svc.JoinQueue(ctx, "alice", "no-such-team")
	assert.ErrorIs(t, err, ErrTeamNotFound, "unknown team")

	_, err = f.svc.JoinQueue(ctx, "alice", "team-bob")
	assert.ErrorIs(t, err, ErrTeamNotFound, "team owned by someone else")

	_, err = f.svc.JoinQueue(ctx, "alice", "team-idle")
	assert.ErrorIs(t, err, ErrTeamNotFound, "inactive team")
}

func TestJoinQueue_RejoinResetsWaitClock(t *testing.T) {
	f := newFixture()
	old := f.seedEntry("alice", 1200, time.Now().Add(-5*time.Minute))

	view, err := f.svc.JoinQueue(context.Background(), "alice", "team-alice")
	require.NoError(t, err)

	assert.NotEqual(t, old.ID, view.ID, "rejoin must create a fresh entry")
	assert.Less(t, view.WaitMs, int64(1000), "wait clock must reset")
	assert.Equal(t, 1, f.store.waitingCount("alice"), "only one waiting entry per player")

	stale, err := f.store.FindByID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Nil(t, stale, "old entry must be gone")
}

func TestLeaveQueue(t *testing.T) {
	f := newFixture()
	f.addPlayer("alice")
	ctx := context.Background()

	_, err := f.svc.JoinQueue(ctx, "alice", "team-alice")
	require.NoError(t, err)

	require.NoError(t, f.svc.LeaveQueue(ctx, "alice"))
	assert.Equal(t, 0, f.store.waitingCount("alice"))

	// Leaving twice, or finding a match afterwards, is not-found.
	assert.ErrorIs(t, f.svc.LeaveQueue(ctx, "alice"), ErrEntryNotFound)

	_, err = f.svc.FindMatch(ctx, "alice")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestFindMatch_SelectsOnlyCandidate(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now().Add(-time.Second))
	bob := f.seedEntry("bob", 1200, time.Now())
	ctx := context.Background()

	result, err := f.svc.FindMatch(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "bob", result.Opponent.PlayerID)
	assert.Equal(t, 0, result.RatingDiff)
	assert.NotEmpty(t, result.BattleID)
	assert.Equal(t, models.QueueStatusMatched, result.Entry.Status)
	assert.Equal(t, models.QueueStatusMatched, result.Opponent.Status)

	// Both entries are out of the pool.
	stored, err := f.store.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusMatched, stored.Status)
	require.NotNil(t, stored.BattleID)
	assert.Equal(t, result.BattleID, *stored.BattleID)

	_, err = f.svc.FindMatch(ctx, "alice")
	assert.ErrorIs(t, err, ErrEntryNotFound, "matched player is no longer queued")
}

func TestFindMatch_WindowFiltersCandidates(t *testing.T) {
	f := newFixture()
	// Waited 4 minutes: window = min(100 + 4*20, 500) = 180.
	f.seedEntry("alice", 1200, time.Now().Add(-4*time.Minute))
	f.seedEntry("near", 1350, time.Now())  // diff 150, inside
	f.seedEntry("far", 1390, time.Now())   // diff 190, outside

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "near", result.Opponent.PlayerID)
	assert.Equal(t, 150, result.RatingDiff)
}

func TestFindMatch_NoCandidateInsideWindow(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("far", 1390, time.Now()) // diff 190 > base window 100

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, result, "no eligible opponent is not an error")
	assert.Equal(t, 0, f.battles.calls, "battle service must not be called")
}

func TestFindMatch_TieBreakEarliestJoiner(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now().Add(-time.Minute))
	// Equal rating distance, different join times.
	f.seedEntry("early", 1250, time.Now().Add(-30*time.Second))
	f.seedEntry("late", 1150, time.Now())

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "early", result.Opponent.PlayerID, "earliest joiner wins rating ties")
}

func TestFindMatch_NotQueued(t *testing.T) {
	f := newFixture()
	f.addPlayer("alice")

	_, err := f.svc.FindMatch(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestFindMatch_BattleFailureLeavesEntriesWaiting(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("bob", 1200, time.Now())
	f.battles.failWith = fmt.Errorf("engine exploded")
	ctx := context.Background()

	_, err := f.svc.FindMatch(ctx, "alice")
	require.ErrorIs(t, err, ErrBattleUpstream)

	// Nothing was mutated; both stay eligible.
	assert.Equal(t, 1, f.store.waitingCount("alice"))
	assert.Equal(t, 1, f.store.waitingCount("bob"))

	// Once the engine recovers, the same pair matches.
	f.battles.failWith = nil
	result, err := f.svc.FindMatch(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "bob", result.Opponent.PlayerID)
}

func TestFindMatch_MissingTeamDataAborts(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("bob", 1200, time.Now())

	// Bob's team data vanished between selection and orchestration.
	f.teams.mu.Lock()
	delete(f.teams.teams, "team-bob")
	f.teams.mu.Unlock()

	_, err := f.svc.FindMatch(context.Background(), "alice")
	require.ErrorIs(t, err, ErrTeamDataMissing)

	assert.Equal(t, 0, f.battles.calls, "battle service must not be called")
	assert.Equal(t, 1, f.store.waitingCount("alice"))
	assert.Equal(t, 1, f.store.waitingCount("bob"))
}

func TestFindMatch_ConcurrentCallersNeverDoubleMatch(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now().Add(-3*time.Second))
	f.seedEntry("bob", 1200, time.Now().Add(-2*time.Second))
	f.seedEntry("carol", 1200, time.Now().Add(-time.Second))
	ctx := context.Background()

	type outcome struct {
		result *models.MatchResult
		err    error
	}
	outcomes := make(chan outcome, 2)

	var wg sync.WaitGroup
	for _, player := range []string{"alice", "carol"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			result, err := f.svc.FindMatch(ctx, p)
			outcomes <- outcome{result, err}
		}(player)
	}
	wg.Wait()
	close(outcomes)

	successes := 0
	for o := range outcomes {
		if o.err != nil {
			// A caller whose own entry was matched meanwhile sees
			// not-found; anything else is a real failure.
			assert.ErrorIs(t, o.err, ErrEntryNotFound)
			continue
		}
		if o.result != nil {
			successes++
		}
	}

	assert.LessOrEqual(t, successes, 1, "three players can produce at most one match")

	// Store invariants hold regardless of which caller won: every
	// matched entry carries a battle id and belongs to exactly one pair.
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	matched := 0
	for _, e := range f.store.entries {
		if e.Status == models.QueueStatusMatched {
			matched++
			assert.NotNil(t, e.BattleID)
		}
	}
	assert.True(t, matched == 0 || matched == 2, "matched entries must come in pairs, got %d", matched)
	assert.LessOrEqual(t, len(f.store.history), 1)
}

func TestFindMatch_LosingClaimIsNoMatch(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("bob", 1200, time.Now())

	f.svc.SetClaimer(claimerFunc(func(_ context.Context, _ ...string) (func(), bool, error) {
		return nil, false, nil
	}))

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, result, "losing the claim is a retryable no-match")
	assert.Equal(t, 0, f.battles.calls)
	assert.Equal(t, 1, f.store.waitingCount("bob"))
}

func TestFindMatch_ReleasesClaimAfterMatch(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("bob", 1200, time.Now())

	released := 0
	f.svc.SetClaimer(claimerFunc(func(_ context.Context, ids ...string) (func(), bool, error) {
		assert.Len(t, ids, 2)
		return func() { released++ }, true, nil
	}))

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, released)
}

func TestFindMatch_NotifiesBothPlayers(t *testing.T) {
	f := newFixture()
	f.seedEntry("alice", 1200, time.Now())
	f.seedEntry("bob", 1200, time.Now())

	notifier := &fakeNotifier{}
	f.svc.SetNotifier(notifier)

	result, err := f.svc.FindMatch(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, notifier.events, 2)
	assert.Contains(t, notifier.events, "alice:"+result.BattleID+":bob")
	assert.Contains(t, notifier.events, "bob:"+result.BattleID+":alice")
}

func TestCleanupExpired_Idempotent(t *testing.T) {
	f := newFixture()
	f.seedEntry("old1", 1200, time.Now().Add(-20*time.Minute))
	f.seedEntry("old2", 1300, time.Now().Add(-15*time.Minute))
	fresh := f.seedEntry("fresh", 1200, time.Now())
	ctx := context.Background()

	count, err := f.svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = f.svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "second sweep with no new stale entries affects nothing")

	entry, err := f.store.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusWaiting, entry.Status)

	view, err := f.svc.GetEntry(ctx, "old1")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, models.QueueStatusExpired, view.Status)
}

func TestGetEntry(t *testing.T) {
	f := newFixture()
	f.addPlayer("alice")
	ctx := context.Background()

	view, err := f.svc.GetEntry(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, view, "never queued")

	_, err = f.svc.JoinQueue(ctx, "alice", "team-alice")
	require.NoError(t, err)

	view, err = f.svc.GetEntry(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, models.QueueStatusWaiting, view.Status)

	f.seedEntry("bob", 1200, time.Now())
	result, err := f.svc.FindMatch(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, result)

	view, err = f.svc.GetEntry(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, models.QueueStatusMatched, view.Status)
	require.NotNil(t, view.BattleID)
	assert.Equal(t, result.BattleID, *view.BattleID)
}

func TestGetStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stats, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.WaitingCount)
	assert.Equal(t, int64(0), stats.AverageWaitMs)
	assert.Equal(t, float64(0), stats.RatingAvg)

	f.seedEntry("alice", 1100, time.Now().Add(-time.Minute))
	f.seedEntry("bob", 1300, time.Now().Add(-3*time.Minute))

	stats, err = f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.WaitingCount)
	assert.Equal(t, 1100, stats.RatingMin)
	assert.Equal(t, 1300, stats.RatingMax)
	assert.InDelta(t, 1200, stats.RatingAvg, 0.01)
	assert.Greater(t, stats.AverageWaitMs, int64(60*1000))
}

func TestJanitor_SweepsOnStart(t *testing.T) {
	f := newFixture()
	f.seedEntry("old", 1200, time.Now().Add(-20*time.Minute))

	janitor := NewJanitor(f.svc, time.Hour)
	janitor.Start()
	defer janitor.Stop()

	require.Eventually(t, func() bool {
		view, err := f.svc.GetEntry(context.Background(), "old")
		return err == nil && view != nil && view.Status == models.QueueStatusExpired
	}, time.Second, 10*time.Millisecond)
}

// claimerFunc adapts a function to the EntryClaimer interface.
type claimerFunc func(ctx context.Context, entryIDs ...string) (func(), bool, error)

func (fn claimerFunc) ClaimEntries(ctx context.Context, entryIDs ...string) (func(), bool, error) {
	return fn(ctx, entryIDs...)
}
