package usecases

import (
	"errors"
	"time"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/logger"
)

// Notifier pushes events to connected users. Implementations must not block
// for long and never fail the caller.
type Notifier interface {
	Notify(userID int64, event entities.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(int64, entities.Event) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// failure returns err unchanged when it already carries a Kind. Unique
// violations become Conflict and everything else is logged and hidden behind
// an Internal error with msg.
func failure(msg string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, db.ErrConflict) {
		return apperr.Conflict(msg + ": conflicting change, try again")
	}
	logger.Error(msg, "err", err)
	return apperr.Internal(msg, err)
}

// localDate formats t as a calendar date in loc.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func localClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04:05")
}
