package schedule

import (
	"errors"
	"testing"
)

func TestCronSpec(t *testing.T) {
	spec, err := CronSpec("06:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec != "30 6 * * *" {
		t.Fatalf("expected %q, got %q", "30 6 * * *", spec)
	}
}

func TestCronSpecMidnight(t *testing.T) {
	spec, err := CronSpec("00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec != "0 0 * * *" {
		t.Fatalf("expected %q, got %q", "0 0 * * *", spec)
	}
}

func TestCronSpecRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "25:00", "9am", "12:61"} {
		if _, err := CronSpec(in); !errors.Is(err, ErrInvalidDailyAt) {
			t.Fatalf("expected ErrInvalidDailyAt for %q, got %v", in, err)
		}
	}
}

func TestNewRejectsNilJob(t *testing.T) {
	if _, err := New("06:30", nil, nil); err == nil {
		t.Fatal("expected error for nil job")
	}
}
