package session

import (
	"fmt"

	"github.com/uschan/reflecting-light/internal/domain"
)

// Phase is one of the five presentation stages plus the start screen.
type Phase string

const (
	PhaseStart     Phase = "START"
	PhaseDiagnose  Phase = "DIAGNOSE"
	PhaseVisualize Phase = "VISUALIZE"
	PhaseInterpret Phase = "INTERPRET"
	PhaseJudge     Phase = "JUDGE"
	PhaseEnlighten Phase = "ENLIGHTEN"
)

// Intent is a user-driven transition request. Each phase view emits exactly
// one advance intent; the diagnose->visualize edge is not an intent at all,
// it only fires through a successful pipeline run.
type Intent string

const (
	IntentBegin   Intent = "begin"   // start -> diagnose
	IntentReview  Intent = "review"  // start -> enlighten, needs a non-empty archive
	IntentBurn    Intent = "burn"    // visualize -> interpret (the ritual gesture)
	IntentAccept  Intent = "accept"  // interpret -> judge
	IntentBow     Intent = "bow"     // judge -> enlighten
	IntentRestart Intent = "restart" // enlighten -> diagnose
	IntentHome    Intent = "home"    // any -> start
)

type transitionKey struct {
	from   Phase
	intent Intent
}

// transitions is the full legal (phase, intent) table. Anything absent is an
// illegal transition, reported as such rather than risking a nil current
// result downstream.
var transitions = map[transitionKey]Phase{
	{PhaseStart, IntentBegin}:       PhaseDiagnose,
	{PhaseStart, IntentReview}:      PhaseEnlighten,
	{PhaseVisualize, IntentBurn}:    PhaseInterpret,
	{PhaseInterpret, IntentAccept}:  PhaseJudge,
	{PhaseJudge, IntentBow}:         PhaseEnlighten,
	{PhaseEnlighten, IntentRestart}: PhaseDiagnose,

	{PhaseDiagnose, IntentHome}:  PhaseStart,
	{PhaseVisualize, IntentHome}: PhaseStart,
	{PhaseInterpret, IntentHome}: PhaseStart,
	{PhaseJudge, IntentHome}:     PhaseStart,
	{PhaseEnlighten, IntentHome}: PhaseStart,
}

// needsResult marks phases that cannot be entered without a current result.
var needsResult = map[Phase]bool{
	PhaseInterpret: true,
	PhaseJudge:     true,
}

// next resolves one transition. archiveLen and hasResult carry the guard
// inputs so the table stays pure data.
func next(from Phase, intent Intent, archiveLen int, hasResult bool) (Phase, error) {
	to, ok := transitions[transitionKey{from, intent}]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", domain.ErrIllegalTransition, intent, from)
	}
	if intent == IntentReview && archiveLen == 0 {
		return from, fmt.Errorf("%w: %s from %s with empty archive", domain.ErrIllegalTransition, intent, from)
	}
	if needsResult[to] && !hasResult {
		return from, fmt.Errorf("%w: entering %s", domain.ErrNoCurrentResult, to)
	}
	return to, nil
}
