package pricetable

import (
	"strconv"
	"strings"

	"hprcalc/pkg/contracts/domain"
)

// ExportText renders the table as tab-separated "breakpoint<TAB>price" lines,
// one per breakpoint, in ascending breakpoint order.
func ExportText(table domain.LegacyPriceTable) string {
	var b strings.Builder
	for i, bp := range domain.LegacyBreakpoints {
		b.WriteString(formatNumber(bp))
		b.WriteByte('\t')
		b.WriteString(formatNumber(table.Price(i)))
		b.WriteByte('\n')
	}
	return b.String()
}

// ExportPriceColumn renders just the prices, one per line, in ascending
// breakpoint order. Re-importing such a column assigns the prices back to the
// breakpoints positionally.
func ExportPriceColumn(table domain.LegacyPriceTable) string {
	var b strings.Builder
	for i := range domain.LegacyBreakpoints {
		b.WriteString(formatNumber(table.Price(i)))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
