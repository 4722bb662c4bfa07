package api

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/region"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/internal/transform"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{4}$`)
)

// WeatherHandler serves the combined read APIs backing the client screens.
type WeatherHandler struct {
	locations repository.LocationRepository
	queries   repository.WeatherQueryRepository
	regions   *region.Catalog
}

// NewWeatherHandler creates a WeatherHandler.
func NewWeatherHandler(locations repository.LocationRepository, queries repository.WeatherQueryRepository, regions *region.Catalog) *WeatherHandler {
	return &WeatherHandler{locations: locations, queries: queries, regions: regions}
}

// marineObservationPair groups the two stations serving one location.
type marineObservationPair struct {
	A []entity.MarineObservation `json:"a"`
	B []entity.MarineObservation `json:"b"`
}

type weatherTideResponse struct {
	WeatherForecasts   []entity.WeatherForecast    `json:"weather_forecasts"`
	TideData           []entity.TideData           `json:"tide_data"`
	MarineObservations marineObservationPair       `json:"marine_observations"`
	Marine             []entity.MediumTermForecast `json:"marine"`
	Temper             []entity.MediumTermForecast `json:"temper"`
	WeatherAPI         struct {
		Hourly []entity.WeatherAPIData `json:"hourly"`
	} `json:"weatherapi"`
}

// WeatherTide handles GET /api/weather-tide. Every table is queried
// independently; one failing table degrades to an empty slice instead of
// failing the whole response.
func (h *WeatherHandler) WeatherTide(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	date := r.URL.Query().Get("date")
	timeParam := r.URL.Query().Get("time")

	if code == "" || date == "" {
		badRequest(w, "code and date are required")
		return
	}
	if !datePattern.MatchString(date) {
		badRequest(w, "date must be YYYY-MM-DD")
		return
	}
	if timeParam != "" && !timePattern.MatchString(timeParam) {
		badRequest(w, "time must be HHMM")
		return
	}

	base, err := time.ParseInLocation("2006-01-02", date, transform.KST)
	if err != nil {
		badRequest(w, "invalid date: "+date)
		return
	}

	ctx := r.Context()
	resp := weatherTideResponse{
		WeatherForecasts: []entity.WeatherForecast{},
		TideData:         []entity.TideData{},
		MarineObservations: marineObservationPair{
			A: []entity.MarineObservation{},
			B: []entity.MarineObservation{},
		},
		Marine: []entity.MediumTermForecast{},
		Temper: []entity.MediumTermForecast{},
	}
	resp.WeatherAPI.Hourly = []entity.WeatherAPIData{}

	if rows, err := h.queries.FindWeatherForecasts(ctx, code,
		transform.KSTOffsetString(base), transform.KSTOffsetString(base.AddDate(0, 0, 3))); err != nil {
		logger.Warnf("weather_forecasts query failed for %s: %v", code, err)
	} else {
		resp.WeatherForecasts = rows
	}

	if rows, err := h.queries.FindTideData(ctx, code, date, base.AddDate(0, 0, 13).Format("2006-01-02")); err != nil {
		logger.Warnf("tide_data query failed for %s: %v", code, err)
	} else {
		resp.TideData = rows
	}

	// A failed station lookup leaves the ids nil, yielding empty observation
	// arrays rather than an error: the client renders the rest of the screen.
	var stationA, stationB *string
	if location, err := h.locations.FindByCode(ctx, code); err != nil {
		logger.Warnf("location lookup failed for %s: %v", code, err)
	} else {
		stationA, stationB = location.StationIDA, location.StationIDB
	}
	datePrefix := base.Format("20060102")
	resp.MarineObservations.A = h.stationObservations(ctx, stationA, datePrefix, timeParam)
	resp.MarineObservations.B = h.stationObservations(ctx, stationB, datePrefix, timeParam)

	mediumStart := transform.KSTOffsetString(base.AddDate(0, 0, 3))
	mediumEnd := transform.KSTOffsetString(endOfDay(base.AddDate(0, 0, 10)))
	if rows, err := h.queries.FindMediumTermForecasts(ctx, code, entity.ForecastTypeMarine, mediumStart, mediumEnd); err != nil {
		logger.Warnf("medium-term marine query failed for %s: %v", code, err)
	} else {
		resp.Marine = rows
	}
	if rows, err := h.queries.FindMediumTermForecasts(ctx, code, entity.ForecastTypeTemperature, mediumStart, mediumEnd); err != nil {
		logger.Warnf("medium-term temperature query failed for %s: %v", code, err)
	} else {
		resp.Temper = rows
	}

	if rows, err := h.queries.FindWeatherAPIHourly(ctx, code, date, base.AddDate(0, 0, 13).Format("2006-01-02")); err != nil {
		logger.Warnf("weatherapi hourly query failed for %s: %v", code, err)
	} else {
		resp.WeatherAPI.Hourly = rows
	}

	writeJSON(w, http.StatusOK, resp)
}

// stationObservations returns a station's observations for the day, or the
// single latest one at or before the HHMM limit when a time is given.
func (h *WeatherHandler) stationObservations(ctx context.Context, stationID *string, datePrefix, timeParam string) []entity.MarineObservation {
	if stationID == nil || *stationID == "" {
		return []entity.MarineObservation{}
	}

	var rows []entity.MarineObservation
	var err error
	if timeParam != "" {
		rows, err = h.queries.FindLatestMarineObservationAt(ctx, *stationID, datePrefix, datePrefix+timeParam)
	} else {
		rows, err = h.queries.FindMarineObservationsForDay(ctx, *stationID, datePrefix)
	}
	if err != nil {
		logger.Warnf("marine observation query failed for station %s: %v", *stationID, err)
		return []entity.MarineObservation{}
	}
	if rows == nil {
		rows = []entity.MarineObservation{}
	}
	return rows
}

type mediumWeatherResponse struct {
	ShortForecasts []entity.WeatherForecast    `json:"short_forecasts"`
	Marine         []entity.MediumTermForecast `json:"marine"`
	Temper         []entity.MediumTermForecast `json:"temper"`
}

// MediumWeather handles GET /api/medium-weather: the short-term window plus
// the full medium-term range, for locations with a region mapping.
func (h *WeatherHandler) MediumWeather(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	date := r.URL.Query().Get("date")

	if code == "" || date == "" {
		badRequest(w, "code and date are required")
		return
	}
	if !datePattern.MatchString(date) {
		badRequest(w, "date must be YYYY-MM-DD")
		return
	}
	base, err := time.ParseInLocation("2006-01-02", date, transform.KST)
	if err != nil {
		badRequest(w, "invalid date: "+date)
		return
	}

	ctx := r.Context()
	if _, err := h.regions.Resolve(ctx, code); err != nil {
		if exception.KindOf(err) == exception.KindNotFound {
			writeError(w, err)
			return
		}
		logger.Warnf("region lookup failed for %s: %v", code, err)
	}

	resp := mediumWeatherResponse{
		ShortForecasts: []entity.WeatherForecast{},
		Marine:         []entity.MediumTermForecast{},
		Temper:         []entity.MediumTermForecast{},
	}

	if rows, err := h.queries.FindWeatherForecasts(ctx, code,
		transform.KSTOffsetString(base), transform.KSTOffsetString(base.AddDate(0, 0, 3))); err != nil {
		logger.Warnf("weather_forecasts query failed for %s: %v", code, err)
	} else {
		resp.ShortForecasts = rows
	}

	start := transform.KSTOffsetString(base)
	end := transform.KSTOffsetString(endOfDay(base.AddDate(0, 0, 9)))
	if rows, err := h.queries.FindMediumTermForecasts(ctx, code, entity.ForecastTypeMarine, start, end); err != nil {
		logger.Warnf("medium-term marine query failed for %s: %v", code, err)
	} else {
		resp.Marine = rows
	}
	if rows, err := h.queries.FindMediumTermForecasts(ctx, code, entity.ForecastTypeTemperature, start, end); err != nil {
		logger.Warnf("medium-term temperature query failed for %s: %v", code, err)
	} else {
		resp.Temper = rows
	}

	writeJSON(w, http.StatusOK, resp)
}

func endOfDay(t time.Time) time.Time {
	return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
