package region_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/region"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

type stubRegionRepo struct {
	byType map[string][]entity.RegionMapping
	byCode map[string][]entity.RegionMapping
}

func (s *stubRegionRepo) ListByForecastType(ctx context.Context, forecastType string) ([]entity.RegionMapping, error) {
	return s.byType[forecastType], nil
}

func (s *stubRegionRepo) FindByLocationCode(ctx context.Context, locationCode string) ([]entity.RegionMapping, error) {
	return s.byCode[locationCode], nil
}

func TestResolve(t *testing.T) {
	repo := &stubRegionRepo{
		byCode: map[string][]entity.RegionMapping{
			"DT_0063": {
				{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "DT_0063"},
				{RegID: "11H20201", ForecastType: entity.ForecastTypeTemperature, LocationCode: "DT_0063"},
			},
			"SO_0536": {
				{RegID: "12C10000", ForecastType: entity.ForecastTypeMarine, LocationCode: "SO_0536"},
			},
		},
	}
	catalog := region.NewCatalog(repo)

	regions, err := catalog.Resolve(context.Background(), "DT_0063")
	assert.NoError(t, err)
	assert.Equal(t, "12B20000", regions.MarineRegID)
	assert.Equal(t, "11H20201", regions.TemperatureRegID)

	// Only one type mapped leaves the other id empty.
	regions, err = catalog.Resolve(context.Background(), "SO_0536")
	assert.NoError(t, err)
	assert.Equal(t, "12C10000", regions.MarineRegID)
	assert.Empty(t, regions.TemperatureRegID)
}

func TestResolveUnknownLocation(t *testing.T) {
	catalog := region.NewCatalog(&stubRegionRepo{})

	_, err := catalog.Resolve(context.Background(), "XX_9999")
	assert.Error(t, err)
	assert.Equal(t, exception.KindNotFound, exception.KindOf(err))
}

func TestMappingsFor(t *testing.T) {
	repo := &stubRegionRepo{
		byType: map[string][]entity.RegionMapping{
			entity.ForecastTypeMarine: {
				{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "DT_0063"},
				{RegID: "12B20000", ForecastType: entity.ForecastTypeMarine, LocationCode: "SO_0326"},
			},
		},
	}
	catalog := region.NewCatalog(repo)

	mappings, err := catalog.MappingsFor(context.Background(), entity.ForecastTypeMarine)
	assert.NoError(t, err)
	assert.Len(t, mappings, 2)
}
