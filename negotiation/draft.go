/*
Package negotiation drafts supplier outreach emails.

PURPOSE:
  Renders negotiation emails against a vendor's quote on an RFQ. Three
  asks are supported: a better price, faster delivery, or both. The
  output is a ready-to-send subject and body; nothing here talks to a
  mail system.

ASK TYPES:
  better_price    Requests improved unit pricing and volume tiers
  faster_delivery Requests expedited options and partial shipments
  both            Requests optimization of price and delivery together

SEE ALSO:
  - engine/synthesize.go: Where the quotes being negotiated come from
  - api/handlers.go: HTTP exposure
*/
package negotiation

import (
	"context"
	"fmt"
	"strings"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// ASK - Closed enumeration
// =============================================================================

type Ask string

const (
	AskBetterPrice    Ask = "better_price"
	AskFasterDelivery Ask = "faster_delivery"
	AskBoth           Ask = "both"
)

// ParseAsk maps free text onto the enumeration. An empty ask means
// better_price; unrecognized values fall back to both, with ok false
// so callers can log the fallback.
func ParseAsk(s string) (ask Ask, ok bool) {
	switch Ask(strings.ToLower(strings.TrimSpace(s))) {
	case AskBetterPrice, "":
		return AskBetterPrice, true
	case AskFasterDelivery:
		return AskFasterDelivery, true
	case AskBoth:
		return AskBoth, true
	default:
		return AskBoth, false
	}
}

// Email is a drafted outreach message.
type Email struct {
	VendorID   engine.VendorID
	VendorName string
	RFQID      engine.RFQID
	Ask        Ask
	Subject    string
	Body       string
}

// =============================================================================
// DRAFTING
// =============================================================================

// DraftForVendor locates the vendor's quote in the RFQ's quote set and
// drafts the email. Returns engine.ErrRFQNotFound for unknown RFQs and
// engine.ErrVendorQuoteNotFound when the vendor did not quote.
func DraftForVendor(ctx context.Context, e *engine.Engine, s *engine.Session, rfqID engine.RFQID, vendorID engine.VendorID, ask Ask) (*Email, error) {
	rfq, ok := s.RFQ(rfqID)
	if !ok {
		return nil, &engine.RFQNotFoundError{ID: rfqID}
	}

	quotes, err := e.Quotes(ctx, s, rfqID)
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		if q.VendorID == vendorID {
			email := Draft(rfq, q, ask)
			return &email, nil
		}
	}
	return nil, &engine.VendorQuoteNotFoundError{VendorID: vendorID, RFQID: rfqID}
}

// Draft renders the email for an already-resolved quote.
func Draft(rfq engine.RFQ, quote engine.VendorQuote, ask Ask) Email {
	email := Email{
		VendorID:   quote.VendorID,
		VendorName: quote.VendorName,
		RFQID:      rfq.ID,
		Ask:        ask,
	}

	unitPrice := "$" + quote.UnitPrice.StringFixed(2)
	total := engine.FormatMoney(quote.TotalPrice)
	opening := fmt.Sprintf(
		"Dear %s Team,\n\nThank you for your quotation on %d units of %s (RFQ: %s).",
		quote.VendorName, rfq.Quantity, rfq.ItemName, rfq.ID)

	switch ask {
	case AskFasterDelivery:
		email.Subject = fmt.Sprintf("Expedited Delivery Request - %s (RFQ: %s)", rfq.ItemName, rfq.ID)
		email.Body = fmt.Sprintf(`%s

The quoted lead time of %d days presents a challenge for our project timeline. We would like to explore options for expedited delivery.

Could you please advise:
- The fastest possible delivery timeline
- Any additional costs for expedited shipping
- Partial shipment options if full order cannot be expedited

We appreciate your flexibility and look forward to your response.

Best regards`, opening, quote.LeadTimeDays)

	case AskBoth:
		email.Subject = fmt.Sprintf("Quote Optimization Request - %s (RFQ: %s)", rfq.ItemName, rfq.ID)
		email.Body = fmt.Sprintf(`%s

We are evaluating multiple proposals and would like to discuss how we can optimize both pricing and delivery terms:

Current Quote Summary:
- Unit Price: %s
- Total: %s
- Lead Time: %d days

We would appreciate if you could review and advise on:
1. Improved pricing given our order volume and partnership potential
2. Options for faster delivery without significant cost impact
3. Any value-added services or terms that differentiate your offer

We value our relationship with %s and look forward to finding a mutually beneficial arrangement.

Best regards`, opening, unitPrice, total, quote.LeadTimeDays, quote.VendorName)

	default: // better_price
		email.Subject = fmt.Sprintf("Quote Review - %s (RFQ: %s)", rfq.ItemName, rfq.ID)
		email.Body = fmt.Sprintf(`%s

We have reviewed your quote of %s per unit (%s total) and would like to discuss the possibility of improved pricing. Given our projected volume and potential for a long-term partnership, we believe there may be room for a more competitive rate.

Could you please review and advise if you can offer:
- A reduced unit price for this order
- Volume-based pricing tiers for future orders

We value our relationship with %s and look forward to your response.

Best regards`, opening, unitPrice, total, quote.VendorName)
	}

	return email
}
