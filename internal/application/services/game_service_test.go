package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gururaser/real-estate-game/internal/adapters/providers/geolocation"
	"github.com/gururaser/real-estate-game/internal/adapters/session"
	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/propertyindex"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/semanticsearch"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

type stubIndex struct {
	point *propertyindex.Point
	err   error
}

func (s *stubIndex) SampleRandom(ctx context.Context) (*propertyindex.Point, error) {
	return s.point, s.err
}

type stubSearch struct {
	resp    *semanticsearch.SearchResponse
	err     error
	lastReq *semanticsearch.SearchRequest

	// onSearch runs between capture and settle, while no session lock is
	// held, mimicking work racing the network call.
	onSearch func()
}

func (s *stubSearch) Search(ctx context.Context, req *semanticsearch.SearchRequest) (*semanticsearch.SearchResponse, error) {
	s.lastReq = req
	if s.onSearch != nil {
		s.onSearch()
	}
	return s.resp, s.err
}

func samplePoint(price float64) *propertyindex.Point {
	return &propertyindex.Point{
		ID: "point-1",
		Payload: map[string]any{
			"__original_entity_id__":                         "RealEstate:prop-42",
			"__schema_field__RealEstate_description":         "charming craftsman near the park",
			"__schema_field__RealEstate_city":                "Los Angeles",
			"__schema_field__RealEstate_state":               "CA",
			"__schema_field__RealEstate_price":               price,
			"__schema_field__RealEstate_pricePerSquareFoot":  250.0,
			"__schema_field__RealEstate_latitude":            34.0522,
			"__schema_field__RealEstate_longitude":           -118.2437,
			"__schema_field__RealEstate_bedrooms":            3.0,
		},
	}
}

func sampleEntries() []semanticsearch.Entry {
	score := 0.91
	return []semanticsearch.Entry{
		{
			ID: "prop-7",
			Fields: map[string]any{
				"city":      "San Francisco",
				"price":     480000.0,
				"latitude":  37.7749,
				"longitude": -122.4194,
			},
			Metadata: &semanticsearch.EntryMetadata{Score: score},
		},
		{
			ID: "prop-8",
			Fields: map[string]any{
				"city":  "Fresno",
				"price": 310000.0,
				// no coordinates: distance stays unset
			},
		},
	}
}

func newTestService(index propertyindex.Client, search semanticsearch.Client) *GameService {
	store, _ := session.NewMemoryStore(16)
	return NewGameService(store, index, search, geolocation.NewHaversineProvider(), nil, 3, 5)
}

func TestNewGame_AcquiresAndMasksTarget(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	view, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	require.NotNil(t, view.Target)
	assert.Equal(t, "point-1", view.Target.IndexID)
	assert.Equal(t, "prop-42", view.Target.RealID)
	assert.Equal(t, "Los Angeles", view.Target.Fields.City)
	assert.Zero(t, view.Target.Fields.Price, "price must be hidden before scoring")
	assert.Zero(t, view.Target.Fields.PricePerSquareFoot, "price per sqft leaks the answer")
	assert.False(t, view.Scored)
}

func TestNewGame_IndexFailure(t *testing.T) {
	svc := newTestService(&stubIndex{err: errors.New("connection refused")}, &stubSearch{})

	_, err := svc.NewGame(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestNewGame_EmptyIndex(t *testing.T) {
	svc := newTestService(&stubIndex{}, &stubSearch{})

	_, err := svc.NewGame(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestSearch_AnnotatesAndPages(t *testing.T) {
	search := &stubSearch{resp: &semanticsearch.SearchResponse{
		Entries: sampleEntries(),
		Metadata: semanticsearch.Metadata{SearchParams: map[string]any{
			"natural_query": "craftsman",
			"min_bedrooms":  3.0,
		}},
	}}
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, search)

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	view, err := svc.Search(context.Background(), game.ID, SearchInput{Query: "Craftsman Near Park"})
	require.NoError(t, err)

	require.NotNil(t, search.lastReq)
	assert.Equal(t, "craftsman near park", search.lastReq.NaturalQuery)
	assert.Equal(t, []string{"prop-42"}, search.lastReq.IDsExclude, "exclusion uses the business id")

	require.Len(t, view.Entries, 2)
	first := view.Entries[0]
	require.NotNil(t, first.Score)
	assert.InDelta(t, 0.91, *first.Score, 0.0001)
	require.NotNil(t, first.DistanceToTarget, "both sides have coordinates")
	assert.InDelta(t, 559, first.DistanceToTarget.Km, 5)
	assert.InDelta(t, first.DistanceToTarget.Km*0.621371, first.DistanceToTarget.Miles, 0.001)

	assert.Nil(t, view.Entries[1].DistanceToTarget, "entry without coordinates gets no distance")

	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)

	require.NotNil(t, view.Reconciliation)
	assert.ElementsMatch(t, []string{entities.FilterMinBedrooms}, displayKeys(view.Reconciliation.Detected))
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidState))
}

func TestSearch_UnknownSession(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	_, err := svc.Search(context.Background(), "missing", SearchInput{Query: "condo"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestSearch_RefusedWhileInFlight(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	stored, err := svc.store.Get(context.Background(), game.ID)
	require.NoError(t, err)
	stored.Searching = true
	require.NoError(t, svc.store.Save(context.Background(), stored))

	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestSearch_DiscardsStaleResult(t *testing.T) {
	search := &stubSearch{resp: &semanticsearch.SearchResponse{Entries: sampleEntries()}}
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, search)

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	// The target changes while the search response is on the wire.
	search.onSearch = func() {
		_, err := svc.NewTarget(context.Background(), game.ID)
		require.NoError(t, err)
	}

	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	view, err := svc.Get(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries, "stale entries never reach the session")

	// The session is free again for the next search.
	search.onSearch = nil
	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.NoError(t, err)
}

func TestSearch_CollaboratorFailureIsRecoverable(t *testing.T) {
	search := &stubSearch{err: errors.New("boom")}
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, search)

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	// The failure cleared the in-flight mark; a retry goes through.
	search.err = nil
	search.resp = &semanticsearch.SearchResponse{Entries: sampleEntries()}
	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.NoError(t, err)
}

func TestResultsPage_ClampsAndPersists(t *testing.T) {
	entries := make([]semanticsearch.Entry, 7)
	for i := range entries {
		entries[i] = semanticsearch.Entry{ID: string(rune('a' + i)), Fields: map[string]any{}}
	}
	search := &stubSearch{resp: &semanticsearch.SearchResponse{Entries: entries}}
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, search)

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.NoError(t, err)

	view, err := svc.ResultsPage(context.Background(), game.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.Entries, 1)

	view, err = svc.ResultsPage(context.Background(), game.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Page, "overshoot clamps to the last page")

	view, err = svc.ResultsPage(context.Background(), game.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page, "undershoot clamps to page 1")
}

func TestNewTarget_ResetsGameState(t *testing.T) {
	search := &stubSearch{resp: &semanticsearch.SearchResponse{Entries: sampleEntries()}}
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, search)

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), game.ID, SearchInput{Query: "condo"})
	require.NoError(t, err)
	_, err = svc.Guess(context.Background(), game.ID, "500000")
	require.NoError(t, err)

	view, err := svc.NewTarget(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Nil(t, view.Result)
	assert.False(t, view.Scored)
	assert.Zero(t, view.Target.Fields.Price, "fresh target is masked again")
}

func TestNewTarget_FailureKeepsPriorTarget(t *testing.T) {
	index := &stubIndex{point: samplePoint(500000)}
	svc := newTestService(index, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	index.err = errors.New("index down")
	_, err = svc.NewTarget(context.Background(), game.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	view, err := svc.Get(context.Background(), game.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Target)
	assert.Equal(t, "prop-42", view.Target.RealID)
}

func TestGuess_EndToEnd(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	view, err := svc.Guess(context.Background(), game.ID, "550000")
	require.NoError(t, err)

	require.NotNil(t, view.Result)
	assert.True(t, view.Result.Success)
	assert.Equal(t, entities.MedalGold, view.Result.Medal)
	assert.InDelta(t, 10.0, view.Result.DeviationPct, 0.001)
	assert.True(t, view.Scored)
	assert.Equal(t, 500000.0, view.Target.Fields.Price, "price unmasks once scored")
}

func TestGuess_SecondGuessRejected(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	first, err := svc.Guess(context.Background(), game.ID, "550000")
	require.NoError(t, err)

	_, err = svc.Guess(context.Background(), game.ID, "500000")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAlreadyScored))

	view, err := svc.Get(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Result, view.Result, "the prior result stands")
}

func TestGuess_InvalidInput(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(500000)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	_, err = svc.Guess(context.Background(), game.ID, "not a number")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidGuess))

	view, err := svc.Get(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Result, "an invalid guess does not consume the attempt")
}

func TestGuess_ZeroPriceTarget(t *testing.T) {
	svc := newTestService(&stubIndex{point: samplePoint(0)}, &stubSearch{})

	game, err := svc.NewGame(context.Background())
	require.NoError(t, err)

	_, err = svc.Guess(context.Background(), game.ID, "100000")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDivisionUndefined))
}
