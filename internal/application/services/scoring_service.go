package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

// Medal thresholds on the raw deviation |guess-price|/price, inclusive.
const (
	goldThreshold   = 0.10
	silverThreshold = 0.20
	bronzeThreshold = 0.30
)

const (
	goldMessage    = "Amazing guess! You're a real estate expert!"
	silverMessage  = "Excellent work! You have great market insight!"
	bronzeMessage  = "Great job! You're getting better at this!"
	failureMessage = "Great effort! Try again with more research."
)

// SanitizeGuess strips everything but digits and the first decimal point
// from a raw guess, so "$275,000" and "275000" parse the same. A guess
// with no usable numeric content is an InvalidGuess.
func SanitizeGuess(raw string) (float64, error) {
	var b strings.Builder
	decimalSeen := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !decimalSeen:
			decimalSeen = true
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return 0, apperrors.NewInvalidGuessError("guess has no numeric content")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, apperrors.NewInvalidGuessError("guess is not a number")
	}
	return value, nil
}

// ScoreGuess evaluates one guess against the actual price. The medal tier
// is decided on the exact deviation; the reported percentage is rounded to
// one decimal for display only, so a deviation just past a boundary never
// rounds into a better tier.
func ScoreGuess(rawGuess string, actualPrice float64) (*entities.GameResult, error) {
	guess, err := SanitizeGuess(rawGuess)
	if err != nil {
		return nil, err
	}
	if actualPrice == 0 {
		return nil, apperrors.NewDivisionUndefinedError("actual price is zero, deviation is undefined")
	}

	deviation := math.Abs(guess-actualPrice) / math.Abs(actualPrice)

	result := &entities.GameResult{
		Guess:        guess,
		ActualPrice:  actualPrice,
		DeviationPct: math.Round(deviation*1000) / 10,
	}

	switch {
	case deviation <= goldThreshold:
		result.Success = true
		result.Medal = entities.MedalGold
		result.Message = goldMessage
	case deviation <= silverThreshold:
		result.Success = true
		result.Medal = entities.MedalSilver
		result.Message = silverMessage
	case deviation <= bronzeThreshold:
		result.Success = true
		result.Medal = entities.MedalBronze
		result.Message = bronzeMessage
	default:
		result.Message = failureMessage
	}
	return result, nil
}

// FormatPrice renders a price for display with thousands separators,
// e.g. "$1,250,000".
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return displayPrinter.Sprintf("$%d", int64(price))
	}
	return displayPrinter.Sprintf("$%.2f", price)
}
