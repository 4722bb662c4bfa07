package kma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/korean"
	xtransform "golang.org/x/text/transform"
)

func TestDecodeEUCKR(t *testing.T) {
	encoded, _, err := xtransform.Bytes(korean.EUCKR.NewEncoder(), []byte("거제도 부이"))
	assert.NoError(t, err)

	decoded, err := decodeEUCKR(encoded)
	assert.NoError(t, err)
	assert.Equal(t, "거제도 부이", decoded)
}

func TestParseSeaObsLines(t *testing.T) {
	payload := "# sea_obs\n" +
		"# TP, TM, STN_ID, STN_KO, LON, LAT, WH, WD, WS, WS_GST, TW, TA, PA, HM\n" +
		"BUOY, 202601151430, 22104, 거제도, 128.9, 34.7, 1.2, 180, 5.5, 8.1, 15.3, 12.1, 1013.2, 65\n" +
		"short, line\n" +
		"\n" +
		"BUOY, 202601151430, 22105, 동해, 129.9, 37.5, -99.0, -99, -99.0, -99.0, -99.0, -99.0, -99.0, -99.0\n"

	records := parseSeaObsLines(payload)
	assert.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "BUOY", first.ObservationType)
	assert.Equal(t, "202601151430", first.TM)
	assert.Equal(t, "22104", first.StationID)
	assert.Equal(t, "거제도", first.StationName)
	assert.Equal(t, "1.2", first.WaveHeight)
	assert.Equal(t, "65", first.Humidity)

	// Sentinel values survive parsing untouched; scrubbing happens downstream.
	assert.Equal(t, "-99.0", records[1].WaveHeight)
}

func TestParseFramedRecords(t *testing.T) {
	payload := "#START7777\n" +
		"# REG_ID TM_FC TM_EF MOD NE STN C MAN_ID MAN_FC WH_A WH_B\n" +
		"12B20000, 202601150600, 202601180000, A02, 2, 108, 0, 12345, forecaster, 1.0, 2.5\n" +
		", 202601150600, 202601180000, A02, 2, 108, 0, 12345, forecaster, 1.0, 2.5\n" +
		"#7777END\n"

	records := parseFramedRecords(payload)
	assert.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "12B20000", rec["REG_ID"])
	assert.Equal(t, "202601150600", rec["TM_FC"])
	assert.Equal(t, "202601180000", rec["TM_EF"])
	assert.Equal(t, "A02", rec["MOD"])
	assert.Equal(t, "1.0", rec["WH_A"])
	assert.Equal(t, "2.5", rec["WH_B"])
}

func TestParseFramedRecordsStopsAtEndMarker(t *testing.T) {
	payload := "#START7777\n" +
		"# REG_ID TM_FC TM_EF MOD\n" +
		"12B20000, 202601150600, 202601180000, A02\n" +
		"#7777END\n" +
		"12B20000, 202601150600, 202601190000, A02\n"

	records := parseFramedRecords(payload)
	assert.Len(t, records, 1)
	assert.Equal(t, "202601180000", records[0]["TM_EF"])
}

func TestParseFramedRecordsWithoutMarker(t *testing.T) {
	assert.Nil(t, parseFramedRecords("REG_ID, TM_FC\n12B20000, 202601150600\n"))
	assert.Nil(t, parseFramedRecords(""))
}
