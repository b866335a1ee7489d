package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
)

// Holidays maps a yyyy-mm-dd date to the holiday's name.
type Holidays map[string]string

// Name returns the holiday falling on day, if any.
func (h Holidays) Name(day time.Time) (string, bool) {
	name, ok := h[domain.FormatDate(day)]
	return name, ok
}

// HolidaySource supplies public holidays.
type HolidaySource interface {
	Fetch(ctx context.Context) (Holidays, error)
}

// HolidayClient reads a flat JSON object of date → name, the format served
// by holidays-jp.
type HolidayClient struct {
	url  string
	http *http.Client
}

func NewHolidayClient(url string, timeout time.Duration) *HolidayClient {
	return &HolidayClient{url: url, http: newHTTPClient(timeout)}
}

func (c *HolidayClient) Fetch(ctx context.Context) (Holidays, error) {
	var raw map[string]string
	if err := getJSON(ctx, c.http, c.url, &raw); err != nil {
		return nil, fmt.Errorf("fetching holidays: %w", err)
	}
	out := make(Holidays, len(raw))
	for date, name := range raw {
		if _, err := domain.ParseDate(date); err != nil {
			continue
		}
		out[date] = name
	}
	return out, nil
}
