package entities

import (
	"time"
)

// Medal tiers awarded by the scoring engine.
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

// GameResult is the outcome of the single guess allowed per target
type GameResult struct {
	Success      bool    `json:"success"`
	Medal        string  `json:"medal,omitempty"`
	Guess        float64 `json:"guess"`
	ActualPrice  float64 `json:"actualPrice"`
	DeviationPct float64 `json:"deviation"`
	Message      string  `json:"message"`
}

// SearchResultEntry is a comparable listing plus the relevance score the
// search service assigned and the distance to the current target. The
// distance is nil when either side has no usable coordinates.
type SearchResultEntry struct {
	Property
	Score            *float64  `json:"score,omitempty"`
	DistanceToTarget *Distance `json:"distanceToTarget,omitempty"`
}

// SearchOutcome captures one settled search: the ranked entries in service
// order, the echoed search parameters, and the filter set that produced it.
type SearchOutcome struct {
	Entries        []SearchResultEntry `json:"entries"`
	SearchParams   map[string]any      `json:"searchParams,omitempty"`
	AppliedFilters FilterSet           `json:"appliedFilters"`
	Query          string              `json:"query"`
}

// Session is the whole mutable state of one game. It is owned by the game
// service and replaced wholesale on a new game, never patched field by
// field from multiple call sites.
type Session struct {
	ID         string         `json:"id"`
	Target     *Property      `json:"target,omitempty"`
	Filters    FilterSet      `json:"filters"`
	Weights    WeightVector   `json:"weights"`
	LastSearch *SearchOutcome `json:"lastSearch,omitempty"`
	Page       int            `json:"page"`
	Result     *GameResult    `json:"result,omitempty"`

	// Generation increments each time the target is replaced. A search
	// settling under an older generation is stale and must be discarded.
	Generation uint64 `json:"generation"`

	// Searching marks one request in flight; a second concurrent search
	// for the same session is refused.
	Searching bool `json:"searching"`

	CreatedAt time.Time `json:"createdAt"`
}

// FilterDisplay is one filter rendered for the applied/detected panels
type FilterDisplay struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// FilterReconciliation separates what the player chose from what the
// search service inferred from free text.
type FilterReconciliation struct {
	Applied   []FilterDisplay `json:"applied"`
	Detected  []FilterDisplay `json:"detected"`
	NoFilters bool            `json:"noFilters"`
}
