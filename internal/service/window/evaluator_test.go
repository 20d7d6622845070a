package window

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

func newUTCEvaluator() *Evaluator {
	return NewEvaluator(time.UTC, DefaultDayOfHour)
}

var allFixed = []domain.Window{domain.Window24h, domain.Window6h, domain.Window1h}

func TestShouldFire_AlreadySentNeverFires(t *testing.T) {
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for _, w := range domain.AllWindows {
		sent := map[domain.Window]bool{w: true}

		// Sweep a wide range of instants; the idempotence guard must
		// dominate every timing condition.
		for offset := -26 * time.Hour; offset <= time.Hour; offset += 13 * time.Minute {
			now := due.Add(offset)
			if e.ShouldFire(due, w, now, sent) {
				t.Errorf("window %s fired at due%+v despite being already sent", w, offset)
			}
		}
	}
}

func TestShouldFire_FixedWindowRanges(t *testing.T) {
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	empty := map[domain.Window]bool{}

	// Judged in isolation, each fixed window covers
	// [due-lookback-30m, due).
	tests := []struct {
		name   string
		window domain.Window
		offset time.Duration
		want   bool
	}{
		{"1h just before buffered start", domain.Window1h, -(time.Hour + 30*time.Minute + time.Second), false},
		{"1h at buffered start", domain.Window1h, -(time.Hour + 30*time.Minute), true},
		{"1h at nominal start", domain.Window1h, -time.Hour, true},
		{"1h one second before due", domain.Window1h, -time.Second, true},
		{"1h exactly at due", domain.Window1h, 0, false},
		{"1h after due", domain.Window1h, 10 * time.Minute, false},

		{"6h just before buffered start", domain.Window6h, -(6*time.Hour + 30*time.Minute + time.Second), false},
		{"6h at buffered start", domain.Window6h, -(6*time.Hour + 30*time.Minute), true},
		{"6h mid-range", domain.Window6h, -(4*time.Hour + 30*time.Minute), true},
		{"6h stays open close to due", domain.Window6h, -45 * time.Minute, true},

		{"24h just before buffered start", domain.Window24h, -(24*time.Hour + 30*time.Minute + time.Second), false},
		{"24h at buffered start", domain.Window24h, -(24*time.Hour + 30*time.Minute), true},
		{"24h at nominal start", domain.Window24h, -24 * time.Hour, true},
		{"24h mid-range", domain.Window24h, -12 * time.Hour, true},
		{"24h stays open close to due", domain.Window24h, -(4*time.Hour + 30*time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := due.Add(tt.offset)
			got := e.ShouldFire(due, tt.window, now, empty)
			if got != tt.want {
				t.Errorf("ShouldFire(%s at due%+v) = %v, want %v", tt.window, tt.offset, got, tt.want)
			}
		})
	}
}

func TestEligible_AtMostOneFixedWindow(t *testing.T) {
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	empty := map[domain.Window]bool{}

	for offset := -26 * time.Hour; offset < time.Hour; offset += 7 * time.Minute {
		now := due.Add(offset)
		fired := e.Eligible(due, allFixed, now, empty)
		if len(fired) > 1 {
			t.Errorf("%d fixed windows fired at due%+v, want at most 1: %v", len(fired), offset, fired)
		}
	}
}

func TestEligible_FixedWindowHandoff(t *testing.T) {
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	empty := map[domain.Window]bool{}

	// With all three fixed windows enabled, each one yields at the
	// next shorter window's buffered start.
	tests := []struct {
		name   string
		offset time.Duration
		want   []domain.Window
	}{
		{"before any window", -(24*time.Hour + 31*time.Minute), nil},
		{"24h range", -12 * time.Hour, []domain.Window{domain.Window24h}},
		{"24h yields at 6h buffered start", -(6*time.Hour + 30*time.Minute), []domain.Window{domain.Window6h}},
		{"6h range", -(4*time.Hour + 30*time.Minute), []domain.Window{domain.Window6h}},
		{"6h yields at 1h buffered start", -(time.Hour + 30*time.Minute), []domain.Window{domain.Window1h}},
		{"1h range up to due", -time.Second, []domain.Window{domain.Window1h}},
		{"at due", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Eligible(due, allFixed, due.Add(tt.offset), empty)
			if len(got) != len(tt.want) {
				t.Fatalf("Eligible at due%+v = %v, want %v", tt.offset, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Eligible at due%+v = %v, want %v", tt.offset, got, tt.want)
				}
			}
		})
	}
}

func TestEligible_SingleWindowTierStaysOpenToDue(t *testing.T) {
	// A tier with only the 24h window enabled has no shorter window to
	// hand off to, so the 24h range runs all the way to the due date.
	// A task first seen 5 hours before due must still get its
	// reminder.
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	empty := map[domain.Window]bool{}
	candidates := []domain.Window{domain.Window24h}

	for _, offset := range []time.Duration{
		-(24*time.Hour + 30*time.Minute),
		-12 * time.Hour,
		-5 * time.Hour,
		-time.Hour,
		-time.Minute,
	} {
		fired := e.Eligible(due, candidates, due.Add(offset), empty)
		if len(fired) != 1 || fired[0] != domain.Window24h {
			t.Errorf("Eligible at due%+v = %v, want [24h]", offset, fired)
		}
	}

	// Once sent, it never fires again.
	sent := map[domain.Window]bool{domain.Window24h: true}
	if fired := e.Eligible(due, candidates, due.Add(-5*time.Hour), sent); len(fired) != 0 {
		t.Errorf("sent 24h fired again: %v", fired)
	}
}

func TestEligible_DisabledShorterWindowsExtendLonger(t *testing.T) {
	// High tier with 6h disabled: 24h hands off directly to 1h.
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	empty := map[domain.Window]bool{}
	candidates := []domain.Window{domain.Window24h, domain.Window1h}

	tests := []struct {
		name   string
		offset time.Duration
		want   domain.Window
	}{
		{"24h covers the disabled 6h range", -(4*time.Hour + 30*time.Minute), domain.Window24h},
		{"24h still open just before 1h buffered start", -(time.Hour + 31*time.Minute), domain.Window24h},
		{"1h takes over at its buffered start", -(time.Hour + 30*time.Minute), domain.Window1h},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired := e.Eligible(due, candidates, due.Add(tt.offset), empty)
			if len(fired) != 1 || fired[0] != tt.want {
				t.Errorf("Eligible at due%+v = %v, want [%s]", tt.offset, fired, tt.want)
			}
		})
	}
}

func TestEligible_DueInFiveHoursScenario(t *testing.T) {
	// Task due in 5 hours, full fixed set: only the 6h window fires.
	// 24h is superseded by the enabled 6h candidate, 1h is not yet in
	// range.
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	now := due.Add(-(4*time.Hour + 30*time.Minute))
	empty := map[domain.Window]bool{}

	fired := e.Eligible(due, allFixed, now, empty)
	if len(fired) != 1 || fired[0] != domain.Window6h {
		t.Fatalf("Eligible = %v, want [6h]", fired)
	}

	// Ten minutes later with 6h marked sent: nothing new, even though
	// the 24h range taken in isolation still contains now.
	later := now.Add(10 * time.Minute)
	sent := map[domain.Window]bool{domain.Window6h: true}
	if fired := e.Eligible(due, allFixed, later, sent); len(fired) != 0 {
		t.Errorf("re-run fired %v", fired)
	}
}

func TestEligible_DayOfIndependentOfFixedCascade(t *testing.T) {
	e := newUTCEvaluator()
	empty := map[domain.Window]bool{}

	// 09:30 local, due 14:00 the same day: day_of fires alongside
	// whatever fixed window covers the instant.
	due := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	fired := e.Eligible(due, []domain.Window{domain.Window6h, domain.WindowDayOf}, now, empty)
	if len(fired) != 2 || fired[0] != domain.Window6h || fired[1] != domain.WindowDayOf {
		t.Errorf("Eligible = %v, want [6h day_of]", fired)
	}
}

func TestShouldFire_DayOf(t *testing.T) {
	e := newUTCEvaluator()
	empty := map[domain.Window]bool{}

	// Due tomorrow at 08:00.
	due := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		due  time.Time
		want bool
	}{
		{
			name: "previous calendar day does not fire even within 24h",
			now:  time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
			due:  due,
			want: false,
		},
		{
			name: "same day but after due does not fire",
			now:  time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
			due:  due,
			want: false,
		},
		{
			name: "same day before 9 does not fire",
			now:  time.Date(2026, 3, 11, 7, 30, 0, 0, time.UTC),
			due:  due,
			want: false,
		},
		{
			name: "same day, hour 9+, before due fires",
			now:  time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
			due:  time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "exactly at due does not fire",
			now:  time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			due:  time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "at the 9 o'clock boundary fires",
			now:  time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			due:  time.Date(2026, 3, 11, 23, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ShouldFire(tt.due, domain.WindowDayOf, tt.now, empty)
			if got != tt.want {
				t.Errorf("ShouldFire(day_of, now=%v, due=%v) = %v, want %v", tt.now, tt.due, got, tt.want)
			}
		})
	}
}

func TestShouldFire_DayOfUsesConfiguredLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	e := NewEvaluator(tokyo, DefaultDayOfHour)
	empty := map[domain.Window]bool{}

	// 01:00 UTC on March 11 is 10:00 JST the same day; a task due
	// 12:00 JST shares the calendar day in Tokyo and the local hour is
	// past 9, so day_of fires even though it is the middle of the
	// night in UTC.
	due := time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC) // 12:00 JST
	now := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC) // 10:00 JST

	if !e.ShouldFire(due, domain.WindowDayOf, now, empty) {
		t.Error("day_of did not fire under the configured zone")
	}

	// The same instants evaluated in UTC fail the hour condition.
	utc := newUTCEvaluator()
	if utc.ShouldFire(due, domain.WindowDayOf, now, empty) {
		t.Error("day_of fired in UTC at 01:00 local")
	}
}

func TestEligible_OverdueFiresNothing(t *testing.T) {
	e := newUTCEvaluator()
	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	now := due.Add(5 * time.Minute)
	empty := map[domain.Window]bool{}

	if fired := e.Eligible(due, domain.AllWindows, now, empty); len(fired) != 0 {
		t.Errorf("overdue task fired %v", fired)
	}
	for _, w := range domain.AllWindows {
		if e.ShouldFire(due, w, now, empty) {
			t.Errorf("window %s fired for an overdue task", w)
		}
	}
}

func TestShouldFire_CustomDayOfHour(t *testing.T) {
	e := NewEvaluator(time.UTC, 7)
	empty := map[domain.Window]bool{}

	due := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 11, 7, 15, 0, 0, time.UTC)

	if !e.ShouldFire(due, domain.WindowDayOf, now, empty) {
		t.Error("day_of did not fire at 07:15 with hour threshold 7")
	}
}
