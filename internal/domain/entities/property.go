package entities

import (
	"strings"
)

const (
	// payloadFieldPrefix is the flat key prefix the property index uses for
	// every schema field in a point payload.
	payloadFieldPrefix = "__schema_field__RealEstate_"

	// originalIDField holds the durable entity identifier inside a point
	// payload, prefixed with the schema name.
	originalIDField = "__original_entity_id__"

	// realIDPrefix is stripped from the original entity ID to obtain the
	// business identifier used for exclusion and display.
	realIDPrefix = "RealEstate:"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Absent reports whether either axis carries the zero sentinel that marks
// a listing without a usable location.
func (c Coordinates) Absent() bool {
	return c.Latitude == 0 || c.Longitude == 0
}

// Distance is a great-circle distance in both display units
type Distance struct {
	Km    float64 `json:"km"`
	Miles float64 `json:"miles"`
}

// PropertyFields holds the flat attribute payload of one listing. Every
// field defaults to its zero value when the source payload omits it.
type PropertyFields struct {
	Description        string  `json:"description"`
	StreetAddress      string  `json:"streetAddress"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	County             string  `json:"county"`
	Country            string  `json:"country"`
	Zipcode            int     `json:"zipcode"`
	Price              float64 `json:"price"`
	PricePerSquareFoot float64 `json:"pricePerSquareFoot"`
	YearBuilt          int     `json:"yearBuilt"`
	Longitude          float64 `json:"longitude"`
	Latitude           float64 `json:"latitude"`
	LivingArea         float64 `json:"livingArea"`
	LivingAreaValue    float64 `json:"livingAreaValue"`
	Bathrooms          float64 `json:"bathrooms"`
	Bedrooms           int     `json:"bedrooms"`
	BuildingArea       float64 `json:"buildingArea"`
	GarageSpaces       int     `json:"garageSpaces"`
	Levels             string  `json:"levels"`
	DatePostedString   string  `json:"datePostedString"`
	Event              string  `json:"event"`
	Currency           string  `json:"currency"`
	LotAreaUnits       string  `json:"lotAreaUnits"`
	HomeType           string  `json:"homeType"`
	IsBankOwned        int     `json:"is_bankOwned"`
	IsForAuction       int     `json:"is_forAuction"`
	Parking            int     `json:"parking"`
	HasGarage          int     `json:"hasGarage"`
	Pool               int     `json:"pool"`
	Spa                int     `json:"spa"`
	IsNewConstruction  int     `json:"isNewConstruction"`
	HasPetsAllowed     int     `json:"hasPetsAllowed"`
	Time               int64   `json:"time"`
}

// Property is one real-estate listing. IndexID is the opaque identifier of
// the point in the search index; RealID is the durable business identifier
// used for exclusion from comparison results and for display. The two
// differ in value and must not be conflated.
type Property struct {
	IndexID string         `json:"id"`
	RealID  string         `json:"realId"`
	Fields  PropertyFields `json:"fields"`
}

// Coordinates returns the listing's location
func (p *Property) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Fields.Latitude, Longitude: p.Fields.Longitude}
}

// PropertyFromIndexPayload transforms a flat prefixed point payload from
// the property index into a Property. The whole default policy lives here:
// absent numerics become 0, absent strings become "".
func PropertyFromIndexPayload(indexID string, payload map[string]any) *Property {
	fields := make(map[string]any, len(payload))
	for key, value := range payload {
		if strings.HasPrefix(key, payloadFieldPrefix) {
			fields[strings.TrimPrefix(key, payloadFieldPrefix)] = value
		}
	}

	realID := payloadString(payload, originalIDField)
	realID = strings.TrimPrefix(realID, realIDPrefix)

	property := PropertyFromFields(indexID, fields)
	property.RealID = realID
	return property
}

// PropertyFromFields transforms an unprefixed field map, as returned by the
// semantic search service, into a Property. Entries echo the business
// identifier directly, so RealID mirrors the entry ID.
func PropertyFromFields(id string, fields map[string]any) *Property {
	return &Property{
		IndexID: id,
		RealID:  id,
		Fields: PropertyFields{
			Description:        payloadString(fields, "description"),
			StreetAddress:      payloadString(fields, "streetAddress"),
			City:               payloadString(fields, "city"),
			State:              payloadString(fields, "state"),
			County:             payloadString(fields, "county"),
			Country:            payloadString(fields, "country"),
			Zipcode:            payloadInt(fields, "zipcode"),
			Price:              payloadFloat(fields, "price"),
			PricePerSquareFoot: payloadFloat(fields, "pricePerSquareFoot"),
			YearBuilt:          payloadInt(fields, "yearBuilt"),
			Longitude:          payloadFloat(fields, "longitude"),
			Latitude:           payloadFloat(fields, "latitude"),
			LivingArea:         payloadFloat(fields, "livingArea"),
			LivingAreaValue:    payloadFloat(fields, "livingAreaValue"),
			Bathrooms:          payloadFloat(fields, "bathrooms"),
			Bedrooms:           payloadInt(fields, "bedrooms"),
			BuildingArea:       payloadFloat(fields, "buildingArea"),
			GarageSpaces:       payloadInt(fields, "garageSpaces"),
			Levels:             payloadString(fields, "levels"),
			DatePostedString:   payloadString(fields, "datePostedString"),
			Event:              payloadString(fields, "event"),
			Currency:           payloadString(fields, "currency"),
			LotAreaUnits:       payloadString(fields, "lotAreaUnits"),
			HomeType:           payloadString(fields, "homeType"),
			IsBankOwned:        payloadInt(fields, "is_bankOwned"),
			IsForAuction:       payloadInt(fields, "is_forAuction"),
			Parking:            payloadInt(fields, "parking"),
			HasGarage:          payloadInt(fields, "hasGarage"),
			Pool:               payloadInt(fields, "pool"),
			Spa:                payloadInt(fields, "spa"),
			IsNewConstruction:  payloadInt(fields, "isNewConstruction"),
			HasPetsAllowed:     payloadInt(fields, "hasPetsAllowed"),
			Time:               int64(payloadFloat(fields, "time")),
		},
	}
}

func payloadString(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

func payloadFloat(payload map[string]any, key string) float64 {
	switch value := payload[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return 0
	}
}

func payloadInt(payload map[string]any, key string) int {
	return int(payloadFloat(payload, key))
}
