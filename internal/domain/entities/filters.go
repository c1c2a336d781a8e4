package entities

// Structured filter parameter names, matching the search service contract.
const (
	FilterState           = "state_filter"
	FilterCity            = "city_filter"
	FilterCounty          = "county_filter"
	FilterStreetAddress   = "street_address_filter"
	FilterHomeType        = "home_type_filter"
	FilterEvent           = "event_filter"
	FilterLevels          = "levels_filter"
	FilterBankOwned       = "is_bank_owned_filter"
	FilterForAuction      = "is_for_auction_filter"
	FilterParking         = "parking_filter"
	FilterHasGarage       = "has_garage_filter"
	FilterPool            = "pool_filter"
	FilterSpa             = "spa_filter"
	FilterNewConstruction = "is_new_construction_filter"
	FilterPetsAllowed     = "has_pets_allowed_filter"
	FilterMinPrice        = "min_price"
	FilterMaxPrice        = "max_price"
	FilterMinBedrooms     = "min_bedrooms"
	FilterMaxBedrooms     = "max_bedrooms"
	FilterMinBathrooms    = "min_bathrooms"
	FilterMaxBathrooms    = "max_bathrooms"
	FilterMinLivingArea   = "min_living_area"
	FilterMaxLivingArea   = "max_living_area"
)

// FilterSet is the structured query configuration chosen by the player.
// Multi-select keys are slices, everything else a string; the absent
// representation is the empty slice or empty string. An empty slice is
// equivalent to absent and must never be rendered as applied.
type FilterSet struct {
	State           []string `json:"state_filter,omitempty"`
	HomeType        []string `json:"home_type_filter,omitempty"`
	City            string   `json:"city_filter,omitempty"`
	County          string   `json:"county_filter,omitempty"`
	StreetAddress   string   `json:"street_address_filter,omitempty"`
	Event           string   `json:"event_filter,omitempty"`
	Levels          string   `json:"levels_filter,omitempty"`
	BankOwned       string   `json:"is_bank_owned_filter,omitempty"`
	ForAuction      string   `json:"is_for_auction_filter,omitempty"`
	Parking         string   `json:"parking_filter,omitempty"`
	HasGarage       string   `json:"has_garage_filter,omitempty"`
	Pool            string   `json:"pool_filter,omitempty"`
	Spa             string   `json:"spa_filter,omitempty"`
	NewConstruction string   `json:"is_new_construction_filter,omitempty"`
	PetsAllowed     string   `json:"has_pets_allowed_filter,omitempty"`
	MinPrice        string   `json:"min_price,omitempty"`
	MaxPrice        string   `json:"max_price,omitempty"`
	MinBedrooms     string   `json:"min_bedrooms,omitempty"`
	MaxBedrooms     string   `json:"max_bedrooms,omitempty"`
	MinBathrooms    string   `json:"min_bathrooms,omitempty"`
	MaxBathrooms    string   `json:"max_bathrooms,omitempty"`
	MinLivingArea   string   `json:"min_living_area,omitempty"`
	MaxLivingArea   string   `json:"max_living_area,omitempty"`
}

// FilterEntry is one non-absent filter value keyed by its wire name
type FilterEntry struct {
	Key   string
	Value any
}

// Entries returns the non-absent filter values in a fixed display order.
// Absent entries (empty string or empty slice) are omitted entirely so the
// search service's own defaults apply.
func (f FilterSet) Entries() []FilterEntry {
	entries := make([]FilterEntry, 0, 8)

	appendMulti := func(key string, values []string) {
		if len(values) > 0 {
			entries = append(entries, FilterEntry{Key: key, Value: values})
		}
	}
	appendScalar := func(key, value string) {
		if value != "" {
			entries = append(entries, FilterEntry{Key: key, Value: value})
		}
	}

	appendMulti(FilterState, f.State)
	appendMulti(FilterHomeType, f.HomeType)
	appendScalar(FilterCity, f.City)
	appendScalar(FilterCounty, f.County)
	appendScalar(FilterStreetAddress, f.StreetAddress)
	appendScalar(FilterEvent, f.Event)
	appendScalar(FilterLevels, f.Levels)
	appendScalar(FilterBankOwned, f.BankOwned)
	appendScalar(FilterForAuction, f.ForAuction)
	appendScalar(FilterParking, f.Parking)
	appendScalar(FilterHasGarage, f.HasGarage)
	appendScalar(FilterPool, f.Pool)
	appendScalar(FilterSpa, f.Spa)
	appendScalar(FilterNewConstruction, f.NewConstruction)
	appendScalar(FilterPetsAllowed, f.PetsAllowed)
	appendScalar(FilterMinPrice, f.MinPrice)
	appendScalar(FilterMaxPrice, f.MaxPrice)
	appendScalar(FilterMinBedrooms, f.MinBedrooms)
	appendScalar(FilterMaxBedrooms, f.MaxBedrooms)
	appendScalar(FilterMinBathrooms, f.MinBathrooms)
	appendScalar(FilterMaxBathrooms, f.MaxBathrooms)
	appendScalar(FilterMinLivingArea, f.MinLivingArea)
	appendScalar(FilterMaxLivingArea, f.MaxLivingArea)

	return entries
}

// IsEmpty reports whether no filter is applied
func (f FilterSet) IsEmpty() bool {
	return len(f.Entries()) == 0
}

// ClearFilters returns the all-absent filter configuration: empty slices
// for multi-select keys, empty strings for everything else.
func ClearFilters() FilterSet {
	return FilterSet{
		State:    []string{},
		HomeType: []string{},
	}
}

// FilterKeys is the closed set of recognized structured filter parameters
var FilterKeys = []string{
	FilterState, FilterCity, FilterCounty, FilterStreetAddress,
	FilterHomeType, FilterEvent, FilterLevels,
	FilterBankOwned, FilterForAuction, FilterParking, FilterHasGarage,
	FilterPool, FilterSpa, FilterNewConstruction, FilterPetsAllowed,
	FilterMinPrice, FilterMaxPrice,
	FilterMinBedrooms, FilterMaxBedrooms,
	FilterMinBathrooms, FilterMaxBathrooms,
	FilterMinLivingArea, FilterMaxLivingArea,
}

// IsFilterKey reports whether key belongs to the structured filter set
func IsFilterKey(key string) bool {
	for _, known := range FilterKeys {
		if known == key {
			return true
		}
	}
	return false
}

// Relevance weight parameter names, matching the search service contract.
const (
	WeightDescription   = "description_weight"
	WeightCity          = "city_weight"
	WeightStreetAddress = "street_address_weight"
	WeightCounty        = "county_weight"
	WeightPrice         = "price_weight"
	WeightPricePerSqft  = "price_per_sqft_weight"
	WeightLivingArea    = "living_area_weight"
	WeightHomeType      = "home_type_weight"
	WeightEvent         = "event_weight"
	WeightLevels        = "levels_weight"
)

// WeightKeys is the closed set of relevance weight parameters
var WeightKeys = []string{
	WeightDescription, WeightCity, WeightStreetAddress, WeightCounty,
	WeightPrice, WeightPricePerSqft, WeightLivingArea, WeightHomeType,
	WeightEvent, WeightLevels,
}

// WeightVector maps each weight key to an independent importance scalar in
// [0.0, 1.0]. Weights do not need to sum to one.
type WeightVector map[string]float64

// DefaultWeights returns the fixed default relevance vector
func DefaultWeights() WeightVector {
	return WeightVector{
		WeightDescription:   1.0,
		WeightCity:          0.8,
		WeightStreetAddress: 0.6,
		WeightCounty:        0.6,
		WeightPrice:         0.5,
		WeightPricePerSqft:  0.4,
		WeightLivingArea:    0.3,
		WeightHomeType:      0.7,
		WeightEvent:         0.2,
		WeightLevels:        0.1,
	}
}

// Complete returns a copy of w with every missing key filled from the
// default vector, so requests always carry all ten weights.
func (w WeightVector) Complete() WeightVector {
	full := DefaultWeights()
	for key, value := range w {
		if _, known := full[key]; known {
			full[key] = value
		}
	}
	return full
}
