package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/transform"
)

func TestParseFloatOrNull(t *testing.T) {
	assert.Nil(t, transform.ParseFloatOrNull(""))
	assert.Nil(t, transform.ParseFloatOrNull("-99"))
	assert.Nil(t, transform.ParseFloatOrNull("-99.0"))
	assert.Nil(t, transform.ParseFloatOrNull(" -99.0 "))
	assert.Nil(t, transform.ParseFloatOrNull("abc"))

	v := transform.ParseFloatOrNull("1.5")
	assert.NotNil(t, v)
	assert.Equal(t, 1.5, *v)

	// A real zero is a measurement, not a sentinel.
	zero := transform.ParseFloatOrNull("0.0")
	assert.NotNil(t, zero)
	assert.Equal(t, 0.0, *zero)

	negative := transform.ParseFloatOrNull(" -3.2 ")
	assert.NotNil(t, negative)
	assert.Equal(t, -3.2, *negative)
}

func TestStringOrNull(t *testing.T) {
	assert.Nil(t, transform.StringOrNull(""))
	assert.Nil(t, transform.StringOrNull("  "))
	assert.Nil(t, transform.StringOrNull("-99"))

	v := transform.StringOrNull(" 강수없음 ")
	assert.NotNil(t, v)
	assert.Equal(t, "강수없음", *v)
}
