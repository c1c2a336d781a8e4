package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
)

var displayPrinter = message.NewPrinter(language.English)

// Reconcile separates the filters the player applied from the ones the
// search service detected in the free-text query. The echoed parameters
// are authoritative for detection; keys outside the structured filter set
// (query, limit, exclusions, weights) are ignored. Values compare under
// normalization, so an echoed 250000 matches an applied "250000" and a
// one-element array matches its scalar.
func Reconcile(applied entities.FilterSet, echoed map[string]any) entities.FilterReconciliation {
	appliedEntries := applied.Entries()

	appliedNorm := make(map[string]string, len(appliedEntries))
	appliedPanel := make([]entities.FilterDisplay, 0, len(appliedEntries))
	for _, entry := range appliedEntries {
		appliedNorm[entry.Key] = normalizeFilterValue(entry.Value)
		appliedPanel = append(appliedPanel, entities.FilterDisplay{
			Key:   entry.Key,
			Label: filterLabel(entry.Key),
			Value: displayFilterValue(entry.Value),
		})
	}

	keys := make([]string, 0, len(echoed))
	for key := range echoed {
		if entities.IsFilterKey(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	detected := make([]entities.FilterDisplay, 0, len(keys))
	for _, key := range keys {
		value := echoed[key]
		if isAbsentValue(value) {
			continue
		}
		if norm, ok := appliedNorm[key]; ok && norm == normalizeFilterValue(value) {
			continue
		}
		detected = append(detected, entities.FilterDisplay{
			Key:   key,
			Label: filterLabel(key),
			Value: displayFilterValue(value),
		})
	}

	return entities.FilterReconciliation{
		Applied:   appliedPanel,
		Detected:  detected,
		NoFilters: len(appliedPanel) == 0 && len(detected) == 0,
	}
}

// normalizeFilterValue reduces a value to a canonical comparison form:
// one-element arrays collapse to their element, and numeric strings and
// numbers share one rendering.
func normalizeFilterValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []string:
		parts := make([]string, 0, len(v))
		for _, s := range v {
			parts = append(parts, normalizeFilterValue(s))
		}
		sort.Strings(parts)
		return strings.Join(parts, "|")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, normalizeFilterValue(e))
		}
		sort.Strings(parts)
		return strings.Join(parts, "|")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case string:
		trimmed := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		// Text compares strictly; only numbers get a shared rendering.
		return trimmed
	default:
		return ""
	}
}

func isAbsentValue(value any) bool {
	return normalizeFilterValue(value) == ""
}

// displayFilterValue renders a filter value for the UI panels, with
// thousands separators on numbers.
func displayFilterValue(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, displayFilterValue(e))
		}
		return strings.Join(parts, ", ")
	case float64:
		if v == math.Trunc(v) {
			return displayPrinter.Sprintf("%d", int64(v))
		}
		return displayPrinter.Sprintf("%.2f", v)
	case int:
		return displayPrinter.Sprintf("%d", v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return displayFilterValue(f)
		}
		return v
	default:
		return ""
	}
}

// filterLabel humanizes a wire parameter name: "is_bank_owned_filter"
// becomes "Is Bank Owned".
func filterLabel(key string) string {
	trimmed := strings.TrimSuffix(key, "_filter")
	words := strings.Split(trimmed, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
