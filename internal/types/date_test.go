package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year != 2025 || d.Month != time.June || d.Day != 15 {
		t.Fatalf("unexpected date: %+v", d)
	}
	if d.String() != "2025-06-15" {
		t.Fatalf("String() = %s", d.String())
	}
}

func TestAddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2025, time.June, 29)
	got := d.AddDays(3)
	want := NewDate(2025, time.July, 2)
	if got != want {
		t.Fatalf("AddDays(3) = %s, want %s", got, want)
	}
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2025, time.June, 1)
	b := NewDate(2025, time.June, 8)
	if n := a.DaysUntil(b); n != 7 {
		t.Fatalf("DaysUntil = %d, want 7", n)
	}
	if n := b.DaysUntil(a); n != -7 {
		t.Fatalf("reverse DaysUntil = %d, want -7", n)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2025, time.June)
	if first != NewDate(2025, time.June, 1) {
		t.Fatalf("first = %s", first)
	}
	if last != NewDate(2025, time.June, 30) {
		t.Fatalf("last = %s", last)
	}
	// leap February
	_, lastFeb := MonthBounds(2024, time.February)
	if lastFeb.Day != 29 {
		t.Fatalf("2024 Feb last day = %d, want 29", lastFeb.Day)
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Depart Date `json:"depart"`
	}
	var p payload
	if err := json.Unmarshal([]byte(`{"depart":"2025-06-06"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Depart != NewDate(2025, time.June, 6) {
		t.Fatalf("unmarshal got %s", p.Depart)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"depart":"2025-06-06"}` {
		t.Fatalf("marshal got %s", out)
	}

	// null and empty string both mean "not set"
	if err := json.Unmarshal([]byte(`{"depart":null}`), &p); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !p.Depart.IsZero() {
		t.Fatalf("null should yield zero date, got %s", p.Depart)
	}
}
