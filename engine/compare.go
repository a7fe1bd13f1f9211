/*
compare.go - Quote set comparison

PURPOSE:
  Orders an RFQ's quote set two ways (ascending total price, ascending
  lead time) and emits human-readable comparison notes: cheapest vendor,
  fastest vendor, and the price spread when at least two quotes exist.

TIE-BREAKS:
  Both orderings use a stable sort, so quotes with equal keys keep
  their synthesis order.
*/
package engine

import (
	"context"
	"fmt"
	"sort"
)

// Compare builds the two orderings and notes for an RFQ's cached (or
// freshly synthesized) quote set. An RFQ with zero quotes is reported
// as ErrNoQuotes; the caller decides how to react.
func (e *Engine) Compare(ctx context.Context, s *Session, rfqID RFQID) (*Comparison, error) {
	quotes, err := e.Quotes(ctx, s, rfqID)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, &NoQuotesError{RFQID: rfqID}
	}

	byPrice := make([]VendorQuote, len(quotes))
	copy(byPrice, quotes)
	sort.SliceStable(byPrice, func(i, j int) bool {
		return byPrice[i].TotalPrice.LessThan(byPrice[j].TotalPrice)
	})

	byLeadTime := make([]VendorQuote, len(quotes))
	copy(byLeadTime, quotes)
	sort.SliceStable(byLeadTime, func(i, j int) bool {
		return byLeadTime[i].LeadTimeDays < byLeadTime[j].LeadTimeDays
	})

	lowest := byPrice[0]
	fastest := byLeadTime[0]

	notes := []string{
		fmt.Sprintf("Lowest cost: %s at %s", lowest.VendorName, FormatMoney(lowest.TotalPrice)),
		fmt.Sprintf("Fastest delivery: %s in %d days", fastest.VendorName, fastest.LeadTimeDays),
	}
	if len(byPrice) > 1 {
		spread := byPrice[len(byPrice)-1].TotalPrice.Sub(byPrice[0].TotalPrice)
		notes = append(notes, fmt.Sprintf("Price spread: %s", FormatMoney(spread)))
	}

	return &Comparison{
		RFQID:            rfqID,
		QuotesByPrice:    byPrice,
		QuotesByLeadTime: byLeadTime,
		LowestCostVendor: lowest.VendorName,
		FastestVendor:    fastest.VendorName,
		Notes:            notes,
	}, nil
}
