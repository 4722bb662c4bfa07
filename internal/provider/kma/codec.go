package kma

import (
	"strings"

	"golang.org/x/text/encoding/korean"
	xtransform "golang.org/x/text/transform"
)

// decodeEUCKR converts a raw EUC-KR payload into UTF-8. The apihub CSV
// endpoints always answer in EUC-KR regardless of Accept headers.
func decodeEUCKR(raw []byte) (string, error) {
	decoded, _, err := xtransform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// parseSeaObsLines extracts the 14-column data rows of a sea_obs payload.
// Comment lines (leading '#') and malformed rows are skipped.
func parseSeaObsLines(text string) []SeaObsRecord {
	var records []SeaObsRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 14 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		records = append(records, SeaObsRecord{
			ObservationType: parts[0],
			TM:              parts[1],
			StationID:       parts[2],
			StationName:     parts[3],
			Longitude:       parts[4],
			Latitude:        parts[5],
			WaveHeight:      parts[6],
			WindDirection:   parts[7],
			WindSpeed:       parts[8],
			GustWindSpeed:   parts[9],
			WaterTemp:       parts[10],
			AirTemp:         parts[11],
			Pressure:        parts[12],
			Humidity:        parts[13],
		})
	}
	return records
}

// parseFramedRecords parses the #START7777 framed CSV used by the medium-term
// feeds. The line after the marker is a whitespace-delimited header (leading
// '#' stripped); data rows are comma-delimited and mapped by header position.
// Rows missing REG_ID, TM_FC or TM_EF are dropped.
func parseFramedRecords(text string) []MediumTermRecord {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "#START7777") {
			headerIdx = i + 1
			break
		}
	}
	if headerIdx < 0 || headerIdx >= len(lines) {
		return nil
	}

	headerLine := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[headerIdx]), "#"))
	headers := strings.Fields(headerLine)
	if len(headers) == 0 {
		return nil
	}

	var records []MediumTermRecord
	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "#7777END") {
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		values := strings.Split(line, ",")
		if len(values) < len(headers) {
			continue
		}
		record := make(MediumTermRecord, len(headers))
		for i, h := range headers {
			record[h] = strings.TrimSpace(values[i])
		}
		if record["REG_ID"] == "" || record["TM_FC"] == "" || record["TM_EF"] == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}
