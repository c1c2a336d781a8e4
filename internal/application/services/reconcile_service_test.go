package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
)

func displayKeys(panel []entities.FilterDisplay) []string {
	keys := make([]string, 0, len(panel))
	for _, d := range panel {
		keys = append(keys, d.Key)
	}
	return keys
}

func TestReconcile_NoFilters(t *testing.T) {
	rec := Reconcile(entities.FilterSet{}, nil)

	assert.Empty(t, rec.Applied)
	assert.Empty(t, rec.Detected)
	assert.True(t, rec.NoFilters)
}

func TestReconcile_AppliedEchoedBack(t *testing.T) {
	applied := entities.FilterSet{City: "denver", MinPrice: "250000"}
	echoed := map[string]any{
		"city_filter": "denver",
		"min_price":   250000.0,
	}

	rec := Reconcile(applied, echoed)

	assert.ElementsMatch(t, []string{entities.FilterCity, entities.FilterMinPrice}, displayKeys(rec.Applied))
	assert.Empty(t, rec.Detected, "echoed values matching applied ones are not detections")
	assert.False(t, rec.NoFilters)
}

func TestReconcile_DetectsServiceInferredFilters(t *testing.T) {
	applied := entities.FilterSet{City: "denver"}
	echoed := map[string]any{
		"city_filter":      "denver",
		"min_bedrooms":     3.0,
		"home_type_filter": []any{"SINGLE_FAMILY"},
	}

	rec := Reconcile(applied, echoed)

	assert.ElementsMatch(t, []string{entities.FilterMinBedrooms, entities.FilterHomeType}, displayKeys(rec.Detected))
}

func TestReconcile_NumberStringEquivalence(t *testing.T) {
	applied := entities.FilterSet{MinBedrooms: "3"}
	rec := Reconcile(applied, map[string]any{"min_bedrooms": 3.0})
	assert.Empty(t, rec.Detected)

	applied = entities.FilterSet{MinPrice: "250000.0"}
	rec = Reconcile(applied, map[string]any{"min_price": "250000"})
	assert.Empty(t, rec.Detected)
}

func TestReconcile_SingleElementArrayEqualsScalar(t *testing.T) {
	applied := entities.FilterSet{State: []string{"CO"}}
	rec := Reconcile(applied, map[string]any{"state_filter": "CO"})
	assert.Empty(t, rec.Detected)
}

func TestReconcile_IgnoresNonFilterParams(t *testing.T) {
	echoed := map[string]any{
		"natural_query":      "cozy home",
		"limit":              5.0,
		"ids_exclude":        []any{"RealEstate:42"},
		"description_weight": 1.0,
	}

	rec := Reconcile(entities.FilterSet{}, echoed)

	assert.Empty(t, rec.Detected)
	assert.True(t, rec.NoFilters)
}

func TestReconcile_SkipsAbsentEchoedValues(t *testing.T) {
	echoed := map[string]any{
		"city_filter":      nil,
		"county_filter":    "",
		"home_type_filter": []any{},
	}

	rec := Reconcile(entities.FilterSet{}, echoed)
	assert.True(t, rec.NoFilters)
}

func TestReconcile_DisplayFormatting(t *testing.T) {
	applied := entities.FilterSet{MinPrice: "1250000", City: "austin"}

	rec := Reconcile(applied, nil)

	require.Len(t, rec.Applied, 2)
	byKey := make(map[string]entities.FilterDisplay, 2)
	for _, d := range rec.Applied {
		byKey[d.Key] = d
	}
	assert.Equal(t, "Min Price", byKey[entities.FilterMinPrice].Label)
	assert.Equal(t, "1,250,000", byKey[entities.FilterMinPrice].Value)
	assert.Equal(t, "City", byKey[entities.FilterCity].Label)
	assert.Equal(t, "austin", byKey[entities.FilterCity].Value)
}

func TestReconcile_Idempotent(t *testing.T) {
	applied := entities.FilterSet{City: "denver", State: []string{"CO"}}
	echoed := map[string]any{
		"city_filter":  "denver",
		"min_bedrooms": 3.0,
		"max_price":    "450000",
	}

	first := Reconcile(applied, echoed)
	second := Reconcile(applied, echoed)
	assert.Equal(t, first, second)
}

func TestReconcile_HumanizedBooleanFlagLabel(t *testing.T) {
	rec := Reconcile(entities.FilterSet{BankOwned: "1"}, nil)

	require.Len(t, rec.Applied, 1)
	assert.Equal(t, "Is Bank Owned", rec.Applied[0].Label)
}
