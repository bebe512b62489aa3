package utils

import (
	"errors"
	"testing"
	"time"
)

func TestBusinessDayWindow(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)

	start, end, err := BusinessDayWindow("2025-05-10", ist)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	wantStart := time.Date(2025, 5, 9, 18, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Errorf("window = [%s, %s), want [%s, %s)", start, end, wantStart, wantEnd)
	}
	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Errorf("bounds not in UTC: %s %s", start.Location(), end.Location())
	}
}

func TestBusinessDayWindowNilLocation(t *testing.T) {
	start, end, err := BusinessDayWindow(" 2024-12-31 ", nil)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Errorf("window length = %s", got)
	}
	if end.Format(BusinessDateLayout) != "2025-01-01" {
		t.Errorf("end = %s", end)
	}
}

func TestBusinessDayWindowDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start, end, err := BusinessDayWindow("2025-03-09", ny)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("spring-forward window = %s, want 23h", got)
	}
}

func TestBusinessDateValidation(t *testing.T) {
	for _, raw := range []string{"", "2025/05/10", "2025-5-10", "2025-02-29", "tomorrow"} {
		if _, _, err := BusinessDayWindow(raw, time.UTC); !errors.Is(err, ErrInvalidBusinessDate) {
			t.Errorf("BusinessDayWindow(%q) err = %v", raw, err)
		}
		if _, err := NormalizeBusinessDate(raw); !errors.Is(err, ErrInvalidBusinessDate) {
			t.Errorf("NormalizeBusinessDate(%q) err = %v", raw, err)
		}
	}
	if got, err := NormalizeBusinessDate(" 2024-02-29 "); err != nil || got != "2024-02-29" {
		t.Errorf("NormalizeBusinessDate leap day = %q, %v", got, err)
	}
}

func TestBusinessDateOf(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	at := time.Date(2025, 5, 10, 19, 0, 0, 0, time.UTC)

	if got := BusinessDateOf(at, ist); got != "2025-05-11" {
		t.Errorf("IST date = %s", got)
	}
	if got := BusinessDateOf(at, nil); got != "2025-05-10" {
		t.Errorf("UTC date = %s", got)
	}
}
