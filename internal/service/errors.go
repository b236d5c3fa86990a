package service

import "errors"

// Not-found class: the referenced resource does not exist from the
// caller's point of view.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found or not active")
	ErrEntryNotFound  = errors.New("queue entry not found")
)

// Bad-request class: queue state references data that no longer
// resolves (found during orchestration, before anything is mutated).
var ErrTeamDataMissing = errors.New("team data missing for queue entry")

// Upstream class: the battle service failed. Entries stay waiting and
// the caller may retry after backoff.
var ErrBattleUpstream = errors.New("battle service failure")

// errMatchConflict marks a lost match-assignment race. It never leaves
// the service: the losing find-match attempt reports "no match this
// attempt" instead.
var errMatchConflict = errors.New("entry no longer available")
