package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

// DefaultWindow is how far either side of a reminder instant a scan still
// counts as on time. It matches the default scan period so a polling clock
// cannot step over a reminder.
const DefaultWindow = time.Minute

// Reconciler gives the scanner exclusive access to the assignment list.
type Reconciler interface {
	Reconcile(ctx context.Context, fn func(list []domain.Assignment) bool) error
}

type Scanner struct {
	assignments Reconciler
	dispatcher  Dispatcher
	window      time.Duration
	loc         *time.Location
	logger      *slog.Logger
}

// NewScanner builds a scanner. A non-positive window means DefaultWindow and
// a nil loc means time.Local.
func NewScanner(assignments Reconciler, dispatcher Dispatcher, window time.Duration, loc *time.Location, logger *slog.Logger) *Scanner {
	if window <= 0 {
		window = DefaultWindow
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scanner{
		assignments: assignments,
		dispatcher:  dispatcher,
		window:      window,
		loc:         loc,
		logger:      logger,
	}
}

// IsDue reports whether at lies within [now-window, now+window].
func IsDue(at, now time.Time, window time.Duration) bool {
	delta := at.Sub(now)
	return delta >= -window && delta <= window
}

// Scan fires every pending reminder that is due at now and returns the
// assignments it fired. Notified flags are set before dispatch, so a second
// scan at the same instant fires nothing.
func (s *Scanner) Scan(ctx context.Context, now time.Time) ([]domain.Assignment, error) {
	var fired []domain.Assignment

	err := s.assignments.Reconcile(ctx, func(list []domain.Assignment) bool {
		for i := range list {
			a := &list[i]
			if !a.HasReminder() || a.Notified {
				continue
			}
			at, err := a.ReminderAt(s.loc)
			if err != nil {
				s.logger.Warn("skipping assignment with unreadable reminder", "id", a.ID, "error", err)
				continue
			}
			if !IsDue(at, now, s.window) {
				continue
			}
			a.Notified = true
			fired = append(fired, *a)
		}
		return len(fired) > 0
	})

	for _, a := range fired {
		s.dispatcher.Dispatch(ctx, a)
	}

	if err != nil {
		s.logger.Error("reminder scan could not persist notified flags", "fired", len(fired), "error", err)
		return fired, err
	}
	if len(fired) > 0 {
		s.logger.Info("reminders fired", "count", len(fired))
	}
	return fired, nil
}
