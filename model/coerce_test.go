package model

import (
	"strings"
	"testing"
	"time"
)

func TestCastScalar_NilPassesThrough(t *testing.T) {
	out, err := castScalar(KindInt, "qty", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil, got %v", out)
	}
}

func TestCastScalar_WeakCoercion(t *testing.T) {
	cases := []struct {
		kind  Kind
		value any
		want  any
	}{
		{KindBool, "true", true},
		{KindBool, 0, false},
		{KindInt, "41", 41},
		{KindInt, 41.0, 41},
		{KindFloat, "2.5", 2.5},
		{KindFloat, 3, 3.0},
		{KindString, 12, "12"},
		{KindString, true, "true"},
	}
	for _, tc := range cases {
		out, err := castScalar(tc.kind, "field", tc.value)
		if err != nil {
			t.Fatalf("cast %v to %s: %v", tc.value, tc.kind, err)
		}
		if out != tc.want {
			t.Fatalf("cast %v to %s: expected %v, got %v", tc.value, tc.kind, tc.want, out)
		}
	}
}

func TestCastScalar_UncoercibleValueFails(t *testing.T) {
	if _, err := castScalar(KindInt, "qty", "not-a-number"); err == nil {
		t.Fatalf("expected error for uncoercible int")
	}
	if _, err := castScalar(KindFloat, "price", map[string]any{}); err == nil {
		t.Fatalf("expected error for uncoercible float")
	}
}

func TestCastDate_TimeValueRendersInLocation(t *testing.T) {
	moment := time.Date(2021, 3, 15, 12, 0, 0, 0, time.UTC)

	out, err := castDate(KindDateTime, "date", moment, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2021-03-15 12:00:00" {
		t.Fatalf("expected datetime layout, got %v", out)
	}

	out, err = castDate(KindDate, "date", moment, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2021-03-15" {
		t.Fatalf("expected date layout, got %v", out)
	}
}

func TestCastDate_StringParsedInLocation(t *testing.T) {
	out, err := castDate(KindDateTime, "date", "2021-03-15 12:00:00", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2021-03-15 12:00:00" {
		t.Fatalf("expected same wall time, got %v", out)
	}
}

func TestCastDate_MapWithTimezoneConvertsWallTime(t *testing.T) {
	out, err := castDate(KindDateTime, "date", map[string]any{
		"date":     "2021-03-15 12:00:00",
		"timezone": "America/New_York",
	}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Noon EDT is 16:00 UTC.
	if out != "2021-03-15 16:00:00" {
		t.Fatalf("expected timezone-shifted datetime, got %v", out)
	}
}

func TestCastDate_MapWithoutDateMemberFails(t *testing.T) {
	_, err := castDate(KindDateTime, "date", map[string]any{"timezone": "UTC"}, time.UTC)
	if err == nil {
		t.Fatalf("expected error for date map without date member")
	}
	if !strings.Contains(err.Error(), "date member") {
		t.Fatalf("expected date member error, got %v", err)
	}
}

func TestCastDate_UnknownTimezoneFails(t *testing.T) {
	_, err := castDate(KindDateTime, "date", map[string]any{
		"date":     "2021-03-15 12:00:00",
		"timezone": "Atlantis/Nowhere",
	}, time.UTC)
	if err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestCastDate_UnsupportedValueFails(t *testing.T) {
	if _, err := castDate(KindDateTime, "date", 42, time.UTC); err == nil {
		t.Fatalf("expected error for unsupported date value")
	}
}
