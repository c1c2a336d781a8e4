package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFromIndexPayload_StripsPrefixAndDefaults(t *testing.T) {
	payload := map[string]any{
		"__schema_field__RealEstate_city":     "atlanta",
		"__schema_field__RealEstate_state":    "ga",
		"__schema_field__RealEstate_price":    float64(425000),
		"__schema_field__RealEstate_bedrooms": float64(4),
		"__schema_field__RealEstate_latitude": 33.749,
		"__original_entity_id__":              "RealEstate:zpid-14291",
	}

	property := PropertyFromIndexPayload("point-7", payload)

	assert.Equal(t, "point-7", property.IndexID)
	assert.Equal(t, "zpid-14291", property.RealID)
	assert.Equal(t, "atlanta", property.Fields.City)
	assert.Equal(t, float64(425000), property.Fields.Price)
	assert.Equal(t, 4, property.Fields.Bedrooms)

	// Everything the payload omits falls back to its zero value.
	assert.Equal(t, "", property.Fields.Description)
	assert.Equal(t, "", property.Fields.HomeType)
	assert.Equal(t, float64(0), property.Fields.Bathrooms)
	assert.Equal(t, 0, property.Fields.YearBuilt)
	assert.Equal(t, float64(0), property.Fields.Longitude)
}

func TestPropertyFromIndexPayload_MissingOriginalID(t *testing.T) {
	property := PropertyFromIndexPayload("point-1", map[string]any{
		"__schema_field__RealEstate_city": "fresno",
	})

	assert.Equal(t, "point-1", property.IndexID)
	assert.Equal(t, "", property.RealID)
}

func TestPropertyFromFields_EntryIDIsBusinessID(t *testing.T) {
	property := PropertyFromFields("zpid-801", map[string]any{
		"city":      "sacramento",
		"price":     float64(310500.5),
		"bathrooms": 2.5,
		"pool":      float64(1),
	})

	assert.Equal(t, "zpid-801", property.IndexID)
	assert.Equal(t, "zpid-801", property.RealID)
	assert.Equal(t, 2.5, property.Fields.Bathrooms)
	assert.Equal(t, 1, property.Fields.Pool)
}

func TestCoordinates_AbsentZeroSentinel(t *testing.T) {
	assert.True(t, Coordinates{Latitude: 0, Longitude: -118.24}.Absent())
	assert.True(t, Coordinates{Latitude: 34.05, Longitude: 0}.Absent())
	assert.False(t, Coordinates{Latitude: 34.05, Longitude: -118.24}.Absent())
}
