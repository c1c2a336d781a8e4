package services

import (
	"strconv"
	"strings"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/infrastructure/clients/semanticsearch"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

// DefaultSearchLimit bounds the result count requested from the search
// service when the caller does not specify one.
const DefaultSearchLimit = 5

// numericParams are the structured filter parameters transmitted as
// numbers when the value parses; unparseable values pass through as-is,
// the search service is the sole authority on interpretation.
var numericParams = map[string]struct{}{
	entities.FilterBankOwned:       {},
	entities.FilterForAuction:      {},
	entities.FilterParking:         {},
	entities.FilterHasGarage:       {},
	entities.FilterPool:            {},
	entities.FilterSpa:             {},
	entities.FilterNewConstruction: {},
	entities.FilterPetsAllowed:     {},
	entities.FilterMinPrice:        {},
	entities.FilterMaxPrice:        {},
	entities.FilterMinBedrooms:     {},
	entities.FilterMaxBedrooms:     {},
	entities.FilterMinBathrooms:    {},
	entities.FilterMaxBathrooms:    {},
	entities.FilterMinLivingArea:   {},
	entities.FilterMaxLivingArea:   {},
}

// BuildSearchRequest merges the free-text query, the structured filters,
// and the weight vector into one outbound search request.
//
// The query is lower-cased so the service sees a canonical casing. Only
// non-absent filters are included; the weight vector is always sent in
// full so requests stay deterministic. Exclusion uses the target's
// business identifier, never the index point ID.
func BuildSearchRequest(query string, excludeIDs []string, filters entities.FilterSet, weights entities.WeightVector, limit int) (*semanticsearch.SearchRequest, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperrors.NewInvalidStateError("search query is empty")
	}

	valid := make([]string, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		if id != "" {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, apperrors.NewInvalidStateError("target property is not resolved")
	}

	if limit < 1 {
		limit = DefaultSearchLimit
	}

	return &semanticsearch.SearchRequest{
		NaturalQuery: strings.ToLower(trimmed),
		Limit:        limit,
		IDsExclude:   valid,
		Filters:      coerceFilters(filters.Entries()),
		Weights:      weights.Complete(),
	}, nil
}

func coerceFilters(entries []entities.FilterEntry) []entities.FilterEntry {
	coerced := make([]entities.FilterEntry, 0, len(entries))
	for _, entry := range entries {
		if _, numeric := numericParams[entry.Key]; numeric {
			if raw, ok := entry.Value.(string); ok {
				if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
					entry.Value = parsed
				}
			}
		}
		coerced = append(coerced, entry)
	}
	return coerced
}
