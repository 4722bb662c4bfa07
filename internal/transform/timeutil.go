package transform

import (
	"fmt"
	"time"
)

// KST is the fixed Korea Standard Time offset used for every KMA timestamp.
var KST = time.FixedZone("KST", 9*60*60)

// DualTime carries the same instant rendered twice: as a UTC ISO instant and
// as a local string with an explicit offset suffix.
type DualTime struct {
	UTC   string
	Local string
}

// ParseCompactKST parses a YYYYMMDDHHMM wire time as KST.
func ParseCompactKST(value string) (time.Time, error) {
	if len(value) != 12 {
		return time.Time{}, fmt.Errorf("invalid compact KST time: %q", value)
	}
	return time.ParseInLocation("200601021504", value, KST)
}

// DualFromCompactKST renders a YYYYMMDDHHMM KST wire time as a UTC ISO
// instant plus a +09:00 local string.
func DualFromCompactKST(value string) (DualTime, error) {
	t, err := ParseCompactKST(value)
	if err != nil {
		return DualTime{}, err
	}
	return DualTime{
		UTC:   t.UTC().Format("2006-01-02T15:04:05Z"),
		Local: t.Format("2006-01-02T15:04:05+09:00"),
	}, nil
}

// UTCFromEpoch renders a unix timestamp as a UTC ISO instant.
func UTCFromEpoch(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02T15:04:05Z")
}

// LocalWithOffset renders a unix timestamp in the provider's local time with
// an explicit ±HH:MM suffix built from the offset in seconds.
func LocalWithOffset(epoch int64, offsetSeconds int) string {
	local := time.Unix(epoch, 0).UTC().Add(time.Duration(offsetSeconds) * time.Second)

	abs := offsetSeconds
	sign := "+"
	if abs < 0 {
		abs = -abs
		sign = "-"
	}
	suffix := fmt.Sprintf("%s%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return local.Format("2006-01-02T15:04:05") + suffix
}

// UTCDateFromEpoch renders the YYYY-MM-DD UTC date of a unix timestamp.
func UTCDateFromEpoch(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02")
}

// UTCTimeFromEpoch renders the HH:MM:SS UTC time of day of a unix timestamp.
func UTCTimeFromEpoch(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("15:04:05")
}

// KSTOffsetString renders an instant as a KST local string with the +09:00 suffix.
func KSTOffsetString(t time.Time) string {
	return t.In(KST).Format("2006-01-02T15:04:05+09:00")
}
