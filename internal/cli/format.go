package cli

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// formatValue renders a sequence value with digit grouping. Values beyond
// the int64 range are printed plain; grouping huge numbers helps nobody.
func formatValue(v *big.Int) string {
	if v.IsInt64() {
		return englishPrinter.Sprintf("%d", v.Int64())
	}
	return v.String()
}

// formatValues renders a value list as a single comma-separated line.
func formatValues(values []*big.Int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}
