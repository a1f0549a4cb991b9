package calendar

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestFormatNilIsEmpty(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFormatDisplayLayout(t *testing.T) {
	cases := []struct {
		date Date
		want string
	}{
		{NewDate(2025, time.January, 5), "05 January, 2025"},
		{NewDate(2024, time.February, 29), "29 February, 2024"},
		{NewDate(1999, time.December, 31), "31 December, 1999"},
		{NewDate(2030, time.September, 1), "01 September, 2030"},
	}
	for _, tc := range cases {
		d := tc.date
		if got := Format(&d); got != tc.want {
			t.Fatalf("Format(%s) = %q, want %q", d, got, tc.want)
		}
	}
}

func TestFormatReproducesOwnComponents(t *testing.T) {
	start := NewDate(2023, time.January, 1)
	for i := 0; i < 800; i += 17 {
		d := start.AddDays(i)
		got := Format(&d)
		parts := strings.Fields(strings.ReplaceAll(got, ",", ""))
		if len(parts) != 3 {
			t.Fatalf("unexpected display %q", got)
		}
		if day, _ := strconv.Atoi(parts[0]); day != d.Day || len(parts[0]) != 2 {
			t.Fatalf("%q: unexpected day component for %s", got, d)
		}
		if parts[1] != d.Month.String() {
			t.Fatalf("%q: unexpected month component for %s", got, d)
		}
		if year, _ := strconv.Atoi(parts[2]); year != d.Year {
			t.Fatalf("%q: unexpected year component for %s", got, d)
		}
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("test", -7*60*60)
	ts := time.Date(2025, time.March, 9, 23, 59, 0, 0, loc)
	if got := DateOf(ts); got != NewDate(2025, time.March, 9) {
		t.Fatalf("expected local calendar day, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-01-05 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2025, time.January, 5) {
		t.Fatalf("unexpected date %s", d)
	}
	if _, err := ParseDate("05/01/2025"); err == nil {
		t.Fatalf("expected error for non-ISO input")
	}
}

func TestNewDateNormalizes(t *testing.T) {
	if got := NewDate(2025, time.January, 32); got != NewDate(2025, time.February, 1) {
		t.Fatalf("expected rollover, got %s", got)
	}
}

func TestDaysIn(t *testing.T) {
	cases := map[Date]int{
		NewDate(2024, time.February, 10): 29,
		NewDate(2025, time.February, 10): 28,
		NewDate(2025, time.April, 30):    30,
		NewDate(2025, time.December, 1):  31,
	}
	for d, want := range cases {
		if got := DaysIn(d); got != want {
			t.Fatalf("DaysIn(%s) = %d, want %d", d, got, want)
		}
	}
}

func TestAddMonthsLandsOnFirst(t *testing.T) {
	got := NewDate(2025, time.January, 31).AddMonths(1)
	if got != NewDate(2025, time.February, 1) {
		t.Fatalf("expected first of February, got %s", got)
	}
	got = NewDate(2025, time.January, 15).AddMonths(-1)
	if got != NewDate(2024, time.December, 1) {
		t.Fatalf("expected first of December, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		On Date `json:"on"`
	}
	b, err := json.Marshal(wrapper{On: NewDate(2025, time.January, 5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"on":"2025-01-05"}` {
		t.Fatalf("unexpected json %s", b)
	}
	var out wrapper
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.On != NewDate(2025, time.January, 5) {
		t.Fatalf("unexpected round trip %s", out.On)
	}
}
