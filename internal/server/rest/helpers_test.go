package rest

import (
	"testing"

	"cloud.google.com/go/civil"
)

func strPtr(s string) *string { return &s }

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
