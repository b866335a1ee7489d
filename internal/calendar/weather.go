package calendar

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/genba/internal/domain"
)

// DayWeather is one day's forecast summary: the highest temperature in °C
// and the highest precipitation probability in percent.
type DayWeather struct {
	Temp   int
	Precip int
}

// Weather maps a yyyy-mm-dd date to its forecast summary.
type Weather map[string]DayWeather

func (w Weather) On(day time.Time) (DayWeather, bool) {
	d, ok := w[domain.FormatDate(day)]
	return d, ok
}

// WeatherSource supplies a short-range forecast.
type WeatherSource interface {
	Forecast(ctx context.Context) (Weather, error)
}

// WeatherClient reads the OpenWeatherMap 5 day / 3 hour forecast. With no
// API key it is disabled and returns an empty forecast without a request.
type WeatherClient struct {
	baseURL  string
	apiKey   string
	lat, lon float64
	http     *http.Client
}

func NewWeatherClient(baseURL, apiKey string, lat, lon float64, timeout time.Duration) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, apiKey: apiKey, lat: lat, lon: lon, http: newHTTPClient(timeout)}
}

type forecastResponse struct {
	List []forecastSlot `json:"list"`
}

type forecastSlot struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Pop float64 `json:"pop"`
}

func (c *WeatherClient) Enabled() bool { return c.apiKey != "" }

func (c *WeatherClient) Forecast(ctx context.Context) (Weather, error) {
	if !c.Enabled() {
		return Weather{}, nil
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var resp forecastResponse
	if err := getJSON(ctx, c.http, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	return summarize(resp.List), nil
}

// summarize folds 3-hour slots into days keyed by the date part of dt_txt.
func summarize(slots []forecastSlot) Weather {
	type acc struct{ temp, pop float64 }
	days := make(map[string]*acc)
	for _, s := range slots {
		date, _, _ := strings.Cut(s.DtTxt, " ")
		if date == "" {
			continue
		}
		a, ok := days[date]
		if !ok {
			days[date] = &acc{temp: s.Main.TempMax, pop: s.Pop}
			continue
		}
		a.temp = max(a.temp, s.Main.TempMax)
		a.pop = max(a.pop, s.Pop)
	}
	out := make(Weather, len(days))
	for date, a := range days {
		out[date] = DayWeather{Temp: roundHalfUp(a.temp), Precip: roundHalfUp(a.pop * 100)}
	}
	return out
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
