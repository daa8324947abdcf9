// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers both over HTTP and inside the stored
	// line_items document.
	decimal.MarshalJSONWithoutQuotes = true
}

// EntryFields holds every client-writable column of a receipt entry.
// Nil pointers and nil LineItems are stored as NULL; zero amounts and a
// false Approved are the column defaults.
type EntryFields struct {
	StoreName      *string         `json:"store_name"`
	StoreAddress   *string         `json:"store_address"`
	StorePhone     *string         `json:"store_phone"`
	DateOfPurchase *civil.Date     `json:"date_of_purchase"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	GST            decimal.Decimal `json:"gst"`
	HST            decimal.Decimal `json:"hst"`
	Total          decimal.Decimal `json:"total"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	PaymentMethod  *string         `json:"payment_method"`
	LineItems      LineItems       `json:"line_items"`
	FileName       *string         `json:"file_name"`
	Approved       bool            `json:"approved"`
}

// Entry is one stored purchase receipt. ID and CreatedAt are assigned by
// the database and never taken from client input.
type Entry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	EntryFields
}

// LineItem is one product or service line on a receipt. NetPrice is stored
// as entered and not derived from the other amounts.
type LineItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	NetPrice  decimal.Decimal `json:"net_price"`
	TaxGSTHST decimal.Decimal `json:"tax_ght_hst"`
	Included  bool            `json:"included"`
}
