package window

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

// DefaultDayOfHour is the earliest local hour at which a day_of
// reminder may fire.
const DefaultDayOfHour = 9

// Evaluator decides whether a reminder window should fire at a given
// instant. The calendar-day comparison for day_of uses the injected
// location, so the day boundary is a deployment decision rather than
// an accident of where the process runs.
type Evaluator struct {
	loc       *time.Location
	dayOfHour int
}

func NewEvaluator(loc *time.Location, dayOfHour int) *Evaluator {
	if loc == nil {
		loc = time.Local
	}
	if dayOfHour <= 0 {
		dayOfHour = DefaultDayOfHour
	}
	return &Evaluator{
		loc:       loc,
		dayOfHour: dayOfHour,
	}
}

// ShouldFire reports whether the window is due now for a task with the
// given due date, judged in isolation: a fixed window covers
// [due-lookback-buffer, due). Windows already in alreadySent never fire
// again; that check is the sole de-duplication mechanism. Reminders are
// forward-looking only: nothing fires once due <= now. Overlap between
// fixed windows is resolved per candidate set in Eligible.
func (e *Evaluator) ShouldFire(due time.Time, w domain.Window, now time.Time, alreadySent map[domain.Window]bool) bool {
	if alreadySent[w] {
		return false
	}
	if !now.Before(due) {
		return false
	}

	if w == domain.WindowDayOf {
		nowLocal := now.In(e.loc)
		dueLocal := due.In(e.loc)
		sameDay := nowLocal.Year() == dueLocal.Year() &&
			nowLocal.Month() == dueLocal.Month() &&
			nowLocal.Day() == dueLocal.Day()
		return sameDay && nowLocal.Hour() >= e.dayOfHour
	}

	lookback, ok := w.Lookback()
	if !ok {
		return false
	}

	return !now.Before(due.Add(-(lookback + domain.PreWindowBuffer)))
}

// Eligible returns the candidate windows that fire at now. Fixed
// candidates supersede each other: a longer window stops being
// eligible once the next shorter enabled candidate's buffered range
// opens, so at most one fixed window fires per instant and a tier
// with only the 24h window enabled keeps that window open all the way
// to the due date. day_of is judged independently of the fixed
// cascade.
func (e *Evaluator) Eligible(due time.Time, candidates []domain.Window, now time.Time, alreadySent map[domain.Window]bool) []domain.Window {
	if !now.Before(due) {
		return nil
	}

	enabled := make(map[domain.Window]bool, len(candidates))
	for _, w := range candidates {
		enabled[w] = true
	}

	// Canonical long-to-short order, regardless of candidate order.
	fixed := make([]domain.Window, 0, len(domain.AllWindows))
	for _, w := range domain.AllWindows {
		if w != domain.WindowDayOf && enabled[w] {
			fixed = append(fixed, w)
		}
	}

	fired := make([]domain.Window, 0, 2)
	for i, w := range fixed {
		lookback, ok := w.Lookback()
		if !ok {
			continue
		}

		opensAt := due.Add(-(lookback + domain.PreWindowBuffer))
		closesAt := due
		if i+1 < len(fixed) {
			next, _ := fixed[i+1].Lookback()
			closesAt = due.Add(-(next + domain.PreWindowBuffer))
		}

		if !now.Before(opensAt) && now.Before(closesAt) && !alreadySent[w] {
			fired = append(fired, w)
		}
	}

	if enabled[domain.WindowDayOf] && e.ShouldFire(due, domain.WindowDayOf, now, alreadySent) {
		fired = append(fired, domain.WindowDayOf)
	}

	return fired
}
