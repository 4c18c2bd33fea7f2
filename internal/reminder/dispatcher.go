package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

const notificationTitle = "Assignment Reminder"

// Dispatcher delivers a reminder. Dispatch is best effort: it must not
// block for long, must not panic and has nothing to report to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, a domain.Assignment)
}

// NotificationBody is the text shown for a due assignment.
func NotificationBody(a domain.Assignment) string {
	return fmt.Sprintf("%s is due on %s", a.Name, a.DueDate)
}

// LogDispatcher only records the reminder in the log.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(_ context.Context, a domain.Assignment) {
	d.logger.Info("reminder due", "id", a.ID, "title", notificationTitle, "body", NotificationBody(a))
}

// DesktopDispatcher shows a desktop notification and plays a short beep.
// The two effects are independent; a failure in one is logged and does not
// stop the other.
type DesktopDispatcher struct {
	notify  func(title, message, appIcon string) error
	beep    func(freq float64, duration int) error
	desktop bool
	sound   bool
	logger  *slog.Logger
}

func NewDesktopDispatcher(desktop, sound bool, logger *slog.Logger) *DesktopDispatcher {
	return &DesktopDispatcher{
		notify:  beeep.Notify,
		beep:    beeep.Beep,
		desktop: desktop,
		sound:   sound,
		logger:  logger,
	}
}

func (d *DesktopDispatcher) Dispatch(_ context.Context, a domain.Assignment) {
	log := d.logger.With("id", a.ID)
	log.Info("reminder due", "body", NotificationBody(a))

	if d.desktop {
		d.attempt(log, "notification", func() error {
			return d.notify(notificationTitle, NotificationBody(a), "")
		})
	}
	if d.sound {
		d.attempt(log, "sound", func() error {
			return d.beep(beeep.DefaultFreq, beeep.DefaultDuration)
		})
	}
}

// attempt runs one effect, turning both errors and panics into warnings.
func (d *DesktopDispatcher) attempt(log *slog.Logger, effect string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("reminder effect panicked", "effect", effect, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		log.Warn("reminder effect failed", "effect", effect, "error", err)
	}
}
