package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/provider/kma"
	"github.com/mulgyeol/tidecast/internal/transform"
)

func TestSeaObservations(t *testing.T) {
	records := []kma.SeaObsRecord{
		{
			ObservationType: "BUOY",
			TM:              "202601151430",
			StationID:       "22104",
			StationName:     "거제도",
			Longitude:       "128.9",
			Latitude:        "34.7",
			WaveHeight:      "1.2",
			WindDirection:   "180",
			WindSpeed:       "5.5",
			GustWindSpeed:   "-99.0",
			WaterTemp:       "15.3",
			AirTemp:         "12.1",
			Pressure:        "1013.2",
			Humidity:        "-99",
		},
		// All-sentinel row carries no information and is dropped.
		{
			ObservationType: "BUOY",
			TM:              "202601151430",
			StationID:       "22105",
			WaveHeight:      "-99.0",
			WindDirection:   "-99",
			WindSpeed:       "",
			GustWindSpeed:   "-99.0",
			WaterTemp:       "-99.0",
			AirTemp:         "-99.0",
			Pressure:        "-99.0",
			Humidity:        "-99.0",
		},
		// Missing station id is dropped.
		{TM: "202601151430", WaveHeight: "1.0"},
	}

	observations := transform.SeaObservations(records)
	assert.Len(t, observations, 1)

	obs := observations[0]
	assert.Equal(t, "22104", obs.StationID)
	assert.Equal(t, "202601151430", obs.ObservationTimeKST)
	assert.Equal(t, 1.2, *obs.WaveHeight)
	assert.Equal(t, 5.5, *obs.WindSpeed)
	assert.Nil(t, obs.GustWindSpeed)
	assert.Nil(t, obs.Humidity)
}

func TestShortTermForecastsPivot(t *testing.T) {
	items := []kma.ShortTermItem{
		{BaseDate: "20260115", BaseTime: "0500", Category: "TMP", FcstDate: "20260115", FcstTime: "0900", FcstValue: "3.0", NX: 98, NY: 76},
		{BaseDate: "20260115", BaseTime: "0500", Category: "WSD", FcstDate: "20260115", FcstTime: "0900", FcstValue: "4.2", NX: 98, NY: 76},
		{BaseDate: "20260115", BaseTime: "0500", Category: "PCP", FcstDate: "20260115", FcstTime: "0900", FcstValue: "강수없음", NX: 98, NY: 76},
		{BaseDate: "20260115", BaseTime: "0500", Category: "TMP", FcstDate: "20260115", FcstTime: "1000", FcstValue: "4.0", NX: 98, NY: 76},
	}

	rows := transform.ShortTermForecasts(items, []string{"DT_0019", "DT_0063"})

	// Two datetimes, two codes sharing the grid cell.
	assert.Len(t, rows, 4)

	// Sorted by datetime then code.
	assert.Equal(t, "202601150900", rows[0].FcstDatetime)
	assert.Equal(t, "DT_0019", rows[0].LocationCode)
	assert.Equal(t, "DT_0063", rows[1].LocationCode)
	assert.Equal(t, "202601151000", rows[2].FcstDatetime)

	first := rows[0]
	assert.Equal(t, "2026-01-15T09:00:00+09:00", first.FcstDatetimeKR)
	assert.Equal(t, 3.0, *first.TMP)
	assert.Equal(t, 4.2, *first.WSD)
	assert.Equal(t, "강수없음", *first.PCP)
	assert.Nil(t, first.SKY)
	assert.Equal(t, 98, first.GridNX)
}

func TestMediumTermForecastsFanOut(t *testing.T) {
	records := []kma.MediumTermRecord{
		{
			"REG_ID": "12B20000",
			"TM_FC":  "202601150600",
			"TM_EF":  "202601180000",
			"MOD":    "A02",
			"WH_A":   "1.0",
			"WH_B":   "2.5",
			"WF":     "흐림",
			"MIN":    "-99",
		},
		// No mapping for this region: dropped.
		{
			"REG_ID": "12C10000",
			"TM_FC":  "202601150600",
			"TM_EF":  "202601180000",
			"MOD":    "A02",
		},
		// Unparseable TM_EF: skipped.
		{
			"REG_ID": "12B20000",
			"TM_FC":  "202601150600",
			"TM_EF":  "garbage",
			"MOD":    "A02",
		},
	}
	mappings := []entity.RegionMapping{
		{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "DT_0063", RegSp: "C", RegName: "남해동부"},
		{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "SO_0326", RegSp: "C", RegName: "남해동부"},
	}

	rows := transform.MediumTermForecasts(records, entity.ForecastTypeMarine, mappings)
	assert.Len(t, rows, 2)

	codes := []string{rows[0].LocationCode, rows[1].LocationCode}
	assert.ElementsMatch(t, []string{"DT_0063", "SO_0326"}, codes)

	row := rows[0]
	assert.Equal(t, "12B20000", row.RegID)
	assert.Equal(t, entity.ForecastTypeMarine, row.ForecastType)
	assert.Equal(t, "202601180000", row.TmEf)
	assert.Equal(t, "2026-01-18T00:00:00+09:00", row.TmEfKR)
	assert.Equal(t, "2026-01-17T15:00:00Z", row.TmEfUTC)
	assert.Equal(t, 1.0, *row.WhA)
	assert.Equal(t, 2.5, *row.WhB)
	assert.Equal(t, "흐림", *row.WF)
	assert.Nil(t, row.MinTemp)
}
