package businessflow

import (
	"context"

	"github.com/amirphl/campaign-forge/app/dto"
)

// GuardState is a state of the regeneration guard
type GuardState string

const (
	GuardNotRequested GuardState = "NOT_REQUESTED"
	GuardSkipCheck    GuardState = "SKIP_CHECK"
	GuardRequested    GuardState = "REQUESTED"
	GuardCheckSync    GuardState = "CHECK_SYNC"
	GuardBlocked      GuardState = "BLOCKED"
	GuardCleared      GuardState = "CLEARED"
)

// SyncChecker answers whether a campaign set has campaigns pushed to a platform
type SyncChecker interface {
	HasSyncedCampaigns(ctx context.Context, campaignSetID string) (bool, error)
}

// RegenerationGuard decides whether prior output of a campaign set may be destroyed.
// A guard is evaluated once per generation run.
type RegenerationGuard struct {
	checker SyncChecker
	trace   []GuardState
}

// NewRegenerationGuard creates a guard backed by checker
func NewRegenerationGuard(checker SyncChecker) *RegenerationGuard {
	return &RegenerationGuard{checker: checker}
}

// Evaluate walks the guard to a terminal state: SKIP_CHECK, BLOCKED or CLEARED.
// force skips the sync query altogether. A failed query leaves the guard in CHECK_SYNC.
func (g *RegenerationGuard) Evaluate(ctx context.Context, campaignSetID string, opts dto.GenerationOptions) (GuardState, error) {
	if !opts.Regenerate {
		g.enter(GuardNotRequested)
		g.enter(GuardSkipCheck)
		return GuardSkipCheck, nil
	}

	g.enter(GuardRequested)
	if opts.Force {
		g.enter(GuardCleared)
		return GuardCleared, nil
	}

	g.enter(GuardCheckSync)
	synced, err := g.checker.HasSyncedCampaigns(ctx, campaignSetID)
	if err != nil {
		return GuardCheckSync, storageError(err)
	}
	if synced {
		g.enter(GuardBlocked)
		return GuardBlocked, conflictError(ErrCampaignsAlreadySynced)
	}

	g.enter(GuardCleared)
	return GuardCleared, nil
}

// State returns the current state, NOT_REQUESTED before evaluation
func (g *RegenerationGuard) State() GuardState {
	if len(g.trace) == 0 {
		return GuardNotRequested
	}
	return g.trace[len(g.trace)-1]
}

// Trace returns every state the guard passed through
func (g *RegenerationGuard) Trace() []GuardState {
	return append([]GuardState(nil), g.trace...)
}

// ShouldDelete reports whether prior output must be deleted before inserting
func (g *RegenerationGuard) ShouldDelete() bool {
	return g.State() == GuardCleared
}

func (g *RegenerationGuard) enter(state GuardState) {
	g.trace = append(g.trace, state)
}
