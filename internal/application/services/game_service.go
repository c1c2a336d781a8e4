package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gururaser/real-estate-game/internal/adapters/paging"
	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/domain/providers"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/propertyindex"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/semanticsearch"
	"github.com/gururaser/real-estate-game/internal/infrastructure/observability"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

// GameService orchestrates one price-guessing game per session: target
// acquisition from the property index, comparable search through the
// semantic search service, paging, reconciliation, and scoring.
type GameService struct {
	store    providers.SessionStore
	index    propertyindex.Client
	search   semanticsearch.Client
	geo      providers.GeolocationProvider
	metrics  *observability.Metrics
	pageSize int
	limit    int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameService creates a game service. metrics may be nil.
func NewGameService(
	store providers.SessionStore,
	index propertyindex.Client,
	search semanticsearch.Client,
	geo providers.GeolocationProvider,
	metrics *observability.Metrics,
	pageSize, searchLimit int,
) *GameService {
	if pageSize < 1 {
		pageSize = paging.DefaultPageSize
	}
	if searchLimit < 1 {
		searchLimit = DefaultSearchLimit
	}
	return &GameService{
		store:    store,
		index:    index,
		search:   search,
		geo:      geo,
		metrics:  metrics,
		pageSize: pageSize,
		limit:    searchLimit,
		locks:    make(map[string]*sync.Mutex),
	}
}

// GameView is the session state rendered for the player. The target's
// price fields are zeroed until a guess has been scored.
type GameView struct {
	ID             string                        `json:"id"`
	Target         *entities.Property            `json:"target,omitempty"`
	Filters        entities.FilterSet            `json:"filters"`
	Weights        entities.WeightVector         `json:"weights"`
	Reconciliation *entities.FilterReconciliation `json:"reconciliation,omitempty"`
	Entries        []entities.SearchResultEntry  `json:"entries"`
	Page           int                           `json:"page"`
	TotalPages     int                           `json:"totalPages"`
	Result         *entities.GameResult          `json:"result,omitempty"`
	Scored         bool                          `json:"scored"`
}

// SearchInput is one player-initiated comparable search
type SearchInput struct {
	Query   string                `json:"query"`
	Limit   int                   `json:"limit"`
	Filters entities.FilterSet    `json:"filters"`
	Weights entities.WeightVector `json:"weights"`
}

// NewGame creates a session and acquires its first target. When the index
// yields no target the session is rolled back, so a retry starts clean.
func (s *GameService) NewGame(ctx context.Context) (*GameView, error) {
	session := &entities.Session{
		ID:         uuid.NewString(),
		Filters:    entities.ClearFilters(),
		Weights:    entities.DefaultWeights(),
		Page:       1,
		Generation: 1,
		CreatedAt:  time.Now().UTC(),
	}

	target, err := s.fetchTarget(ctx)
	if err != nil {
		return nil, err
	}
	session.Target = target

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Get returns the current session view
func (s *GameService) Get(ctx context.Context, id string) (*GameView, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// NewTarget replaces the session's target with a fresh random listing and
// resets search and scoring state. A failed acquisition leaves the prior
// target, results, and score untouched.
func (s *GameService) NewTarget(ctx context.Context, id string) (*GameView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := s.fetchTarget(ctx)
	if err != nil {
		return nil, err
	}

	session.Target = target
	session.Generation++
	session.LastSearch = nil
	session.Page = 1
	session.Result = nil
	session.Searching = false

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("session_id", id).
		Uint64("generation", session.Generation).
		Msg("target replaced")

	return s.view(session), nil
}

// Search runs one comparable search for the session. Only one search may
// be in flight per session; a result arriving after the target changed is
// discarded as stale and the player keeps the state they can see.
func (s *GameService) Search(ctx context.Context, id string, input SearchInput) (*GameView, error) {
	lock := s.sessionLock(id)

	lock.Lock()
	session, err := s.store.Get(ctx, id)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if session.Searching {
		lock.Unlock()
		return nil, apperrors.NewConflictError("a search is already in flight for this session")
	}

	var excludeIDs []string
	if session.Target != nil && session.Target.RealID != "" {
		excludeIDs = []string{session.Target.RealID}
	}
	limit := input.Limit
	if limit < 1 {
		limit = s.limit
	}
	req, err := BuildSearchRequest(input.Query, excludeIDs, input.Filters, input.Weights, limit)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	generation := session.Generation
	session.Searching = true
	session.Filters = input.Filters
	session.Weights = req.Weights
	if err := s.store.Save(ctx, session); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()

	start := time.Now()
	resp, searchErr := s.search.Search(ctx, req)
	elapsed := time.Since(start)

	lock.Lock()
	defer lock.Unlock()

	session, err = s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Searching = false

	logger := observability.LoggerFromContext(ctx)

	if session.Generation != generation {
		// The target moved while the search was on the wire. Persist only
		// the cleared in-flight mark; the result belongs to a dead target.
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		s.countStaleDiscard(ctx)
		logger.Warn().
			Str("session_id", id).
			Uint64("request_generation", generation).
			Uint64("session_generation", session.Generation).
			Msg("discarding stale search result")
		return nil, apperrors.NewConflictError("search superseded by a new target")
	}

	if searchErr != nil {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		s.countSearch(ctx, "error", elapsed)
		logger.Error().Err(searchErr).Str("session_id", id).Msg("comparable search failed")
		return nil, apperrors.NewExternalError("comparable search failed", searchErr)
	}

	session.LastSearch = &entities.SearchOutcome{
		Entries:        s.annotateEntries(session.Target, resp.Entries),
		SearchParams:   resp.Metadata.SearchParams,
		AppliedFilters: input.Filters,
		Query:          req.NaturalQuery,
	}
	session.Page = 1

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.countSearch(ctx, "ok", elapsed)
	logger.Info().
		Str("session_id", id).
		Int("entries", len(session.LastSearch.Entries)).
		Msg("search settled")

	return s.view(session), nil
}

// ResultsPage moves the session to the requested page, clamped into the
// valid range, and returns the view.
func (s *GameService) ResultsPage(ctx context.Context, id string, page int) (*GameView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pager := s.pagerFor(session)
	pager.Goto(page)
	session.Page = pager.PageNumber()

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Guess scores one guess against the target price. A target is scored at
// most once; repeat guesses are refused and the prior result stands.
func (s *GameService) Guess(ctx context.Context, id string, rawGuess string) (*GameView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Target == nil {
		return nil, apperrors.NewInvalidStateError("no target to guess against")
	}
	if session.Result != nil {
		return nil, apperrors.NewAlreadyScoredError("this target has already been scored")
	}

	result, err := ScoreGuess(rawGuess, session.Target.Fields.Price)
	if err != nil {
		return nil, err
	}
	session.Result = result

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.countGuess(ctx, result)

	observability.LoggerFromContext(ctx).Info().
		Str("session_id", id).
		Str("medal", result.Medal).
		Float64("deviation_pct", result.DeviationPct).
		Msg("guess scored")

	return s.view(session), nil
}

func (s *GameService) fetchTarget(ctx context.Context) (*entities.Property, error) {
	point, err := s.index.SampleRandom(ctx)
	if err != nil {
		s.countTargetFetch(ctx, "error")
		return nil, apperrors.NewExternalError("target acquisition failed", err)
	}
	if point == nil {
		s.countTargetFetch(ctx, "empty")
		return nil, apperrors.NewNotFoundError("property index has no listings to sample")
	}
	s.countTargetFetch(ctx, "ok")
	return entities.PropertyFromIndexPayload(string(point.ID), point.Payload), nil
}

// annotateEntries transforms ranked search entries into result entries
// with relevance score and distance to the target. Entries or targets
// without usable coordinates simply carry no distance.
func (s *GameService) annotateEntries(target *entities.Property, raw []semanticsearch.Entry) []entities.SearchResultEntry {
	entries := make([]entities.SearchResultEntry, 0, len(raw))
	for _, e := range raw {
		property := entities.PropertyFromFields(e.ID, e.Fields)

		entry := entities.SearchResultEntry{Property: *property}
		if e.Metadata != nil {
			score := e.Metadata.Score
			entry.Score = &score
		}
		if target != nil {
			from := target.Coordinates()
			to := property.Coordinates()
			if !from.Absent() && !to.Absent() {
				distance := s.geo.Distance(from, to)
				entry.DistanceToTarget = &distance
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// view renders a session for the player. Until the target is scored its
// price and price-per-square-foot are zeroed; the per-square-foot value
// would leak the answer through the living area.
func (s *GameService) view(session *entities.Session) *GameView {
	view := &GameView{
		ID:      session.ID,
		Filters: session.Filters,
		Weights: session.Weights.Complete(),
		Entries: []entities.SearchResultEntry{},
		Page:    session.Page,
		Result:  session.Result,
		Scored:  session.Result != nil,
	}

	if session.Target != nil {
		target := *session.Target
		if session.Result == nil {
			target.Fields.Price = 0
			target.Fields.PricePerSquareFoot = 0
		}
		view.Target = &target
	}

	if session.LastSearch != nil {
		rec := Reconcile(session.LastSearch.AppliedFilters, session.LastSearch.SearchParams)
		view.Reconciliation = &rec

		pager := s.pagerFor(session)
		view.Entries = pager.Goto(session.Page)
		view.Page = pager.PageNumber()
		view.TotalPages = pager.TotalPages()
	}
	return view
}

func (s *GameService) pagerFor(session *entities.Session) *paging.Pager[entities.SearchResultEntry] {
	pager := paging.New[entities.SearchResultEntry](s.pageSize)
	if session.LastSearch != nil {
		pager.SetEntries(session.LastSearch.Entries)
	}
	pager.Goto(session.Page)
	return pager
}

func (s *GameService) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *GameService) countTargetFetch(ctx context.Context, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.TargetFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (s *GameService) countSearch(ctx context.Context, outcome string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.metrics.Searches.Add(ctx, 1, attrs)
	s.metrics.SearchDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}

func (s *GameService) countStaleDiscard(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	s.metrics.StaleDiscards.Add(ctx, 1)
}

func (s *GameService) countGuess(ctx context.Context, result *entities.GameResult) {
	if s.metrics == nil {
		return
	}
	medal := result.Medal
	if medal == "" {
		medal = "none"
	}
	s.metrics.Guesses.Add(ctx, 1, metric.WithAttributes(attribute.String("medal", medal)))
}
