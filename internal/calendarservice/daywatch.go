package calendarservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/jcal/pkg/jdatetime"
)

// WatchDay checks the local date every interval and calls onChange with
// the new date whenever it differs from the previous check. It blocks until
// ctx is cancelled.
func (s *Service) WatchDay(ctx context.Context, interval time.Duration, onChange func(jdatetime.Date)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.Today()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			today := s.Today()
			if today.Equal(last) {
				continue
			}
			s.logger.Info("day changed", slog.String("date", today.String()))
			last = today
			onChange(today)
		}
	}
}
