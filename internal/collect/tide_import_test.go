package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

func TestTideImportValidate(t *testing.T) {
	importer := NewTideImporter(nil)

	err := importer.Validate(nil)
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))

	err = importer.Validate([]entity.TideData{{ObsDate: "2026-01-15"}})
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))
	assert.Contains(t, err.Error(), "no location code")

	err = importer.Validate([]entity.TideData{{LocationCode: "DT_0063", ObsDate: "15-01-2026"}})
	assert.Equal(t, exception.KindValidation, exception.KindOf(err))
	assert.Contains(t, err.Error(), "invalid obs_date")

	err = importer.Validate([]entity.TideData{
		{LocationCode: "DT_0063", ObsDate: "2026-01-15"},
		{LocationCode: "DT_0063", ObsDate: "2026-01-16"},
	})
	assert.NoError(t, err)
}
