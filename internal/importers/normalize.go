package importers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mrlokans/zipshelf/internal/entities"
)

// Normalize maps raw records onto books. The fallback name uses the record's
// 1-based position in records, not its position inside its own document.
func Normalize(records []RawRecord) []entities.Book {
	books := make([]entities.Book, len(records))
	for idx, record := range records {
		// non-object records have no fields and take every fallback
		fields, _ := record.(map[string]any)

		books[idx] = entities.Book{
			Name:        valueOr(fields["name"], fmt.Sprintf(entities.UnknownBookNameFormat, idx+1)),
			Price:       valueOr(fields["price"], entities.UnknownPrice),
			Description: valueOr(fields["description"], entities.NoDescription),
		}
	}
	return books
}

// valueOr stringifies v, or returns fallback when v is missing, null or "".
// Zero and false are values, not absences.
func valueOr(v any, fallback string) string {
	switch value := v.(type) {
	case nil:
		return fallback
	case string:
		if value == "" {
			return fallback
		}
		return strings.ToValidUTF8(value, "\uFFFD")
	case float64:
		return formatNumber(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil || len(encoded) == 0 {
			return fallback
		}
		return strings.ToValidUTF8(string(encoded), "\uFFFD")
	}
}

// formatNumber prints integral values without a fraction and switches to
// exponent notation for magnitudes of at least 1e21 or below 1e-6, with the
// exponent written without leading zeros (1e-7, 1e+21).
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent turns "1e-07" into "1e-7".
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1:idx+2], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
