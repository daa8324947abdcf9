package rest

import (
	"fmt"
	"net/url"

	"cloud.google.com/go/civil"
	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
)

// parseFilter maps list query parameters onto an EntryFilter. Empty text and
// date parameters count as absent. approved filters on value == "true"
// whenever the key is present, even with an empty value.
func parseFilter(q url.Values) (models.EntryFilter, error) {
	var (
		f   models.EntryFilter
		err error
	)

	f.StoreName = q.Get("store_name")

	if f.DateOfPurchase, err = parseDate(q, "date_of_purchase"); err != nil {
		return f, err
	}
	if f.DateFrom, err = parseDate(q, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDate(q, "date_to"); err != nil {
		return f, err
	}

	if _, ok := q["approved"]; ok {
		approved := q.Get("approved") == "true"
		f.Approved = &approved
	}

	return f, nil
}

func parseDate(q url.Values, key string) (*civil.Date, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, v)
	}
	return &d, nil
}
