// Package region answers lookups against the region_mappings table: which
// location codes a provider region feeds, and which marine/temperature
// regions cover a location.
package region

import (
	"context"

	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

const ModuleRegion = "region"

// LocationRegions holds the medium-term region ids covering one location.
type LocationRegions struct {
	MarineRegID      string
	TemperatureRegID string
}

// Catalog is the single accessor over the region mapping table.
type Catalog struct {
	repo repository.RegionRepository
}

// NewCatalog creates a Catalog.
func NewCatalog(repo repository.RegionRepository) *Catalog {
	return &Catalog{repo: repo}
}

// MappingsFor returns every mapping row of one forecast type, the input to
// the medium-term region fan-out.
func (c *Catalog) MappingsFor(ctx context.Context, forecastType string) ([]entity.RegionMapping, error) {
	return c.repo.ListByForecastType(ctx, forecastType)
}

// Resolve returns the marine and temperature region ids covering a location
// code. A code with no mapping rows at all is a not_found error; a code
// missing only one of the two types leaves that id empty.
func (c *Catalog) Resolve(ctx context.Context, locationCode string) (*LocationRegions, error) {
	rows, err := c.repo.FindByLocationCode(ctx, locationCode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, exception.NewAppErrorf(ModuleRegion, exception.KindNotFound, "no region mapping for location %s", locationCode)
	}

	var regions LocationRegions
	for _, row := range rows {
		switch row.ForecastType {
		case entity.ForecastTypeMarine:
			regions.MarineRegID = row.RegID
		case entity.ForecastTypeTemperature:
			regions.TemperatureRegID = row.RegID
		}
	}
	return &regions, nil
}
