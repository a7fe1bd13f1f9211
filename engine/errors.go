/*
errors.go - Centralized error types for the decision engine

PURPOSE:
  All engine error types in one place. The taxonomy follows three
  categories, and callers should branch on the category helpers rather
  than individual sentinels where possible:

  1. NotFound     - unknown SKU, RFQ id, or vendor-for-RFQ pairing
  2. EmptyResult  - zero eligible vendors / quotes / competitor prices.
                    Non-fatal data conditions: surfaced as empty
                    collections or ErrNoQuotes, never as a crash.
  3. DomainError  - invalid inputs (margin >= 100%, negative quantity
                    or cost) rejected before computation proceeds.

  No error is fatal to the process. Each operation is independently
  callable and a failure in one does not corrupt cache state for other
  RFQs.

USAGE:
  if engine.IsNotFound(err) {
      // 404
  }

SEE ALSO:
  - synthesize.go, price.go: Validation at the operation boundary
  - api/handlers.go: HTTP status mapping
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrItemNotFound is returned when a SKU does not resolve in the catalog.
	ErrItemNotFound = errors.New("item not found")

	// ErrRFQNotFound is returned when an RFQ id is unknown to the session.
	ErrRFQNotFound = errors.New("rfq not found")

	// ErrVendorQuoteNotFound is returned when a vendor has no cached quote
	// on the given RFQ (e.g., drafting an email to a non-quoting vendor).
	ErrVendorQuoteNotFound = errors.New("no quote for vendor on rfq")

	// ErrCostBasisNotFound is returned when a SKU has no recorded cost basis.
	ErrCostBasisNotFound = errors.New("cost basis not found")

	// ErrNoQuotes is returned by comparison and award when the RFQ produced
	// zero quotes. An empty synthesis result itself is NOT an error; only
	// operations that require at least one quote report this.
	ErrNoQuotes = errors.New("no quotes available")

	// ErrInvalidQuantity is returned for non-positive RFQ quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidCost is returned for negative unit costs.
	ErrInvalidCost = errors.New("cost must not be negative")

	// ErrInvalidMargin is returned for target margins outside [0, 100).
	// A margin of 100% or above makes the margin inversion divide by
	// zero or go negative.
	ErrInvalidMargin = errors.New("target margin must be in [0, 100)")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ItemNotFoundError identifies the missing SKU.
type ItemNotFoundError struct {
	SKU SKU
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item with SKU %q not found", e.SKU)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrItemNotFound }

// RFQNotFoundError identifies the missing RFQ.
type RFQNotFoundError struct {
	ID RFQID
}

func (e *RFQNotFoundError) Error() string {
	return fmt.Sprintf("RFQ %q not found", e.ID)
}

func (e *RFQNotFoundError) Unwrap() error { return ErrRFQNotFound }

// VendorQuoteNotFoundError identifies the vendor/RFQ pairing that has
// no cached quote.
type VendorQuoteNotFoundError struct {
	VendorID VendorID
	RFQID    RFQID
}

func (e *VendorQuoteNotFoundError) Error() string {
	return fmt.Sprintf("no quote found for vendor %q on RFQ %q", e.VendorID, e.RFQID)
}

func (e *VendorQuoteNotFoundError) Unwrap() error { return ErrVendorQuoteNotFound }

// NoQuotesError identifies the RFQ whose quote set is empty.
type NoQuotesError struct {
	RFQID RFQID
}

func (e *NoQuotesError) Error() string {
	return fmt.Sprintf("no quotes available for RFQ %q", e.RFQID)
}

func (e *NoQuotesError) Unwrap() error { return ErrNoQuotes }

// MarginError reports the rejected target margin.
type MarginError struct {
	TargetMarginPct float64
}

func (e *MarginError) Error() string {
	return fmt.Sprintf("target margin %.1f%% out of range [0, 100)", e.TargetMarginPct)
}

func (e *MarginError) Unwrap() error { return ErrInvalidMargin }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrRFQNotFound) ||
		errors.Is(err, ErrVendorQuoteNotFound) ||
		errors.Is(err, ErrCostBasisNotFound)
}

// IsEmptyResult reports whether the error is a non-fatal empty-data condition.
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrNoQuotes)
}

// IsDomainError reports whether the error is due to invalid client input
// that must be fixed before the computation can run.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidCost) ||
		errors.Is(err, ErrInvalidMargin)
}
