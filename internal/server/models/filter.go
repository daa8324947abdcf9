package models

import "cloud.google.com/go/civil"

// EntryFilter narrows a listing. Zero values mean "not supplied":
// an empty StoreName, nil dates and a nil Approved apply no predicate.
// DateFrom and DateTo only take effect when both are set.
type EntryFilter struct {
	StoreName      string
	DateOfPurchase *civil.Date
	DateFrom       *civil.Date
	DateTo         *civil.Date
	Approved       *bool
}

// HasDateRange reports whether the inclusive purchase-date range applies.
func (f EntryFilter) HasDateRange() bool {
	return f.DateFrom != nil && f.DateTo != nil
}
