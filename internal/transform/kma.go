package transform

import (
	"sort"
	"strings"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/kma"
	logger "github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// SeaObservations converts sea_obs rows into marine observation entities.
// Rows with an unparseable station id are skipped, and so are rows whose
// measurement fields are all sentinels; an all-null observation carries no
// information worth a database row.
func SeaObservations(records []kma.SeaObsRecord) []entity.MarineObservation {
	observations := make([]entity.MarineObservation, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.StationID) == "" || strings.TrimSpace(rec.TM) == "" {
			continue
		}

		obs := entity.MarineObservation{
			StationID:          strings.TrimSpace(rec.StationID),
			ObservationTimeKST: strings.TrimSpace(rec.TM),
			ObservationType:    rec.ObservationType,
			StationName:        rec.StationName,
			Longitude:          ParseFloatOrNull(rec.Longitude),
			Latitude:           ParseFloatOrNull(rec.Latitude),
			WaveHeight:         ParseFloatOrNull(rec.WaveHeight),
			WindDirection:      ParseFloatOrNull(rec.WindDirection),
			WindSpeed:          ParseFloatOrNull(rec.WindSpeed),
			GustWindSpeed:      ParseFloatOrNull(rec.GustWindSpeed),
			WaterTemperature:   ParseFloatOrNull(rec.WaterTemp),
			AirTemperature:     ParseFloatOrNull(rec.AirTemp),
			Pressure:           ParseFloatOrNull(rec.Pressure),
			Humidity:           ParseFloatOrNull(rec.Humidity),
		}

		if obs.WaveHeight == nil && obs.WindDirection == nil && obs.WindSpeed == nil &&
			obs.GustWindSpeed == nil && obs.WaterTemperature == nil && obs.AirTemperature == nil &&
			obs.Pressure == nil && obs.Humidity == nil {
			logger.Debugf("dropping all-null observation for station %s at %s", obs.StationID, obs.ObservationTimeKST)
			continue
		}
		observations = append(observations, obs)
	}
	return observations
}

// ShortTermForecasts pivots the category/value grid forecast items into one
// row per forecast datetime, duplicated for every location code sharing the
// grid cell. PCP and SNO stay raw strings.
func ShortTermForecasts(items []kma.ShortTermItem, codes []string) []entity.WeatherForecast {
	type pivotKey struct {
		datetime string
		code     string
	}

	pivoted := make(map[pivotKey]*entity.WeatherForecast)
	for _, item := range items {
		datetime := item.FcstDate + item.FcstTime
		for _, code := range codes {
			key := pivotKey{datetime: datetime, code: code}
			row, ok := pivoted[key]
			if !ok {
				dual, err := DualFromCompactKST(datetime)
				if err != nil {
					logger.Warnf("skipping forecast item with invalid datetime %s: %v", datetime, err)
					continue
				}
				row = &entity.WeatherForecast{
					FcstDatetime:   datetime,
					LocationCode:   code,
					FcstDatetimeKR: dual.Local,
					BaseDate:       item.BaseDate,
					BaseTime:       item.BaseTime,
					GridNX:         item.NX,
					GridNY:         item.NY,
				}
				pivoted[key] = row
			}
			applyShortTermCategory(row, item.Category, item.FcstValue)
		}
	}

	rows := make([]entity.WeatherForecast, 0, len(pivoted))
	for _, row := range pivoted {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FcstDatetime != rows[j].FcstDatetime {
			return rows[i].FcstDatetime < rows[j].FcstDatetime
		}
		return rows[i].LocationCode < rows[j].LocationCode
	})
	return rows
}

func applyShortTermCategory(row *entity.WeatherForecast, category, value string) {
	switch strings.ToLower(category) {
	case "tmp":
		row.TMP = ParseFloatOrNull(value)
	case "tmn":
		row.TMN = ParseFloatOrNull(value)
	case "tmx":
		row.TMX = ParseFloatOrNull(value)
	case "uuu":
		row.UUU = ParseFloatOrNull(value)
	case "vvv":
		row.VVV = ParseFloatOrNull(value)
	case "vec":
		row.VEC = ParseFloatOrNull(value)
	case "wsd":
		row.WSD = ParseFloatOrNull(value)
	case "sky":
		row.SKY = ParseFloatOrNull(value)
	case "pty":
		row.PTY = ParseFloatOrNull(value)
	case "pop":
		row.POP = ParseFloatOrNull(value)
	case "wav":
		row.WAV = ParseFloatOrNull(value)
	case "reh":
		row.REH = ParseFloatOrNull(value)
	case "pcp":
		row.PCP = StringOrNull(value)
	case "sno":
		row.SNO = StringOrNull(value)
	}
}

// MediumTermForecasts converts medium-term feed records into forecast rows,
// duplicating each region row for every mapped location code. Regions with no
// mapping are dropped; records with unparseable times are skipped.
func MediumTermForecasts(records []kma.MediumTermRecord, forecastType string, mappings []entity.RegionMapping) []entity.MediumTermForecast {
	byRegion := make(map[string][]entity.RegionMapping)
	for _, m := range mappings {
		byRegion[m.RegID] = append(byRegion[m.RegID], m)
	}

	var rows []entity.MediumTermForecast
	for _, rec := range records {
		regID := rec["REG_ID"]
		targets := byRegion[regID]
		if len(targets) == 0 {
			logger.Debugf("no %s mapping for region %s; dropping record", forecastType, regID)
			continue
		}

		tmFc, err := DualFromCompactKST(rec["TM_FC"])
		if err != nil {
			logger.Warnf("skipping medium-term record with invalid TM_FC %q: %v", rec["TM_FC"], err)
			continue
		}
		tmEf, err := DualFromCompactKST(rec["TM_EF"])
		if err != nil {
			logger.Warnf("skipping medium-term record with invalid TM_EF %q: %v", rec["TM_EF"], err)
			continue
		}

		for _, target := range targets {
			rows = append(rows, entity.MediumTermForecast{
				RegID:        regID,
				TmEf:         rec["TM_EF"],
				Mod:          rec["MOD"],
				ForecastType: forecastType,
				LocationCode: target.LocationCode,
				RegSp:        target.RegSp,
				RegName:      target.RegName,
				TmFc:         rec["TM_FC"],
				TmFcKR:       tmFc.Local,
				TmFcUTC:      tmFc.UTC,
				TmEfKR:       tmEf.Local,
				TmEfUTC:      tmEf.UTC,
				C:            ParseFloatOrNull(rec["C"]),
				SKY:          StringOrNull(rec["SKY"]),
				PRE:          StringOrNull(rec["PRE"]),
				Conf:         StringOrNull(rec["CONF"]),
				WF:           StringOrNull(rec["WF"]),
				RnSt:         ParseFloatOrNull(rec["RN_ST"]),
				MinTemp:      ParseFloatOrNull(rec["MIN"]),
				MaxTemp:      ParseFloatOrNull(rec["MAX"]),
				MinTempL:     ParseFloatOrNull(rec["MIN_L"]),
				MinTempH:     ParseFloatOrNull(rec["MIN_H"]),
				MaxTempL:     ParseFloatOrNull(rec["MAX_L"]),
				MaxTempH:     ParseFloatOrNull(rec["MAX_H"]),
				WhA:          ParseFloatOrNull(rec["WH_A"]),
				WhB:          ParseFloatOrNull(rec["WH_B"]),
			})
		}
	}
	return rows
}
