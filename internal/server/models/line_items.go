package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineItems is the ordered line-item sequence of an entry, persisted as a
// JSON document.
//
// Older rows hold either a bare array or an object of the form
// {"data": [...]}. Both shapes are accepted when reading, from the database
// or from a request body, and normalised to the bare sequence right after
// decoding. Writes always use the bare array. A nil sequence maps to NULL.
type LineItems []LineItem

// lineItemsEnvelope is the legacy wrapper shape.
type lineItemsEnvelope struct {
	Data []LineItem `json:"data"`
}

// UnmarshalJSON decodes either storage shape.
func (li *LineItems) UnmarshalJSON(b []byte) error {
	items, err := decodeLineItems(b)
	if err != nil {
		return err
	}
	*li = items
	return nil
}

// Scan implements sql.Scanner for json/jsonb columns.
func (li *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*li = nil
		return nil
	case []byte:
		return li.UnmarshalJSON(v)
	case string:
		return li.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("line_items: unsupported source type %T", src)
	}
}

// Value implements driver.Valuer, always writing the bare array.
func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return nil, nil
	}
	b, err := json.Marshal([]LineItem(li))
	if err != nil {
		return nil, fmt.Errorf("line_items: %w", err)
	}
	return string(b), nil
}

func decodeLineItems(b []byte) (LineItems, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []LineItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("line_items: %w", err)
		}
		return items, nil
	case '{':
		var env lineItemsEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("line_items: %w", err)
		}
		if env.Data == nil {
			return nil, nil
		}
		return env.Data, nil
	default:
		return nil, fmt.Errorf("line_items: expected array or object, got %q", trimmed[0])
	}
}
