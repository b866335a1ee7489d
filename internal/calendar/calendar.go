package calendar

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/genba/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Calendar is the per-day decoration shown above the board columns.
type Calendar struct {
	Holidays Holidays
	Weather  Weather
}

// Load fetches holidays and weather concurrently. A failing source is
// reported to notifier and left empty; Load itself never fails. Nil
// sources are skipped.
func Load(ctx context.Context, holidays HolidaySource, weather WeatherSource, notifier domain.Notifier, logger *slog.Logger) Calendar {
	if notifier == nil {
		notifier = domain.NoopNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cal := Calendar{Holidays: Holidays{}, Weather: Weather{}}

	var g errgroup.Group
	if holidays != nil {
		g.Go(func() error {
			h, err := holidays.Fetch(ctx)
			if err != nil {
				logger.WarnContext(ctx, "holiday fetch failed", "error", err)
				notifier.Notify(domain.Notification{Message: "Failed to load holiday data.", Level: domain.NotifyError})
				return nil
			}
			cal.Holidays = h
			return nil
		})
	}
	if weather != nil {
		g.Go(func() error {
			w, err := weather.Forecast(ctx)
			if err != nil {
				logger.WarnContext(ctx, "weather fetch failed", "error", err)
				notifier.Notify(domain.Notification{Message: "Failed to load weather data.", Level: domain.NotifyError})
				return nil
			}
			cal.Weather = w
			return nil
		})
	}
	_ = g.Wait()
	return cal
}
