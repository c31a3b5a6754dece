package repo

import (
	"strings"

	"github.com/regsight/regsight-core/internal/models"
)

// RPICatalog is the read-only catalogue of Regulatory Performance Indicators
// for the life of the process. Records are seeded once at construction and
// never mutated, so lookups need no locking.
type RPICatalog struct {
	rpis   []*models.RPI
	byID   map[string]*models.RPI
	trends map[string][]models.TrendPoint
}

// NewRPICatalog builds a catalogue from the given indicators and trend
// series. Callers must not mutate the inputs afterwards.
func NewRPICatalog(rpis []*models.RPI, trends map[string][]models.TrendPoint) *RPICatalog {
	byID := make(map[string]*models.RPI, len(rpis))
	for _, r := range rpis {
		byID[r.ID] = r
	}
	if trends == nil {
		trends = map[string][]models.TrendPoint{}
	}
	return &RPICatalog{rpis: rpis, byID: byID, trends: trends}
}

// Get returns the indicator with the given id, or nil when unknown.
func (c *RPICatalog) Get(id string) *models.RPI {
	return c.byID[id]
}

// All returns every indicator in catalogue order.
func (c *RPICatalog) All() []*models.RPI {
	out := make([]*models.RPI, len(c.rpis))
	copy(out, c.rpis)
	return out
}

// Len returns the catalogue size.
func (c *RPICatalog) Len() int { return len(c.rpis) }

// List applies the optional filters and returns matches in catalogue order.
// An empty filter returns everything; nothing here can fail.
func (c *RPICatalog) List(req models.RPIListRequest) []*models.RPI {
	q := strings.ToLower(req.Query)
	out := make([]*models.RPI, 0, len(c.rpis))
	for _, r := range c.rpis {
		if req.Function != "" && string(r.Function) != req.Function {
			continue
		}
		if req.Status != "" && string(r.Status) != req.Status {
			continue
		}
		if req.Critical && !r.Status.Critical() {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Code), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Trend returns the historical series for an indicator. Unknown ids yield an
// empty series, not an error.
func (c *RPICatalog) Trend(id string) []models.TrendPoint {
	points := c.trends[id]
	out := make([]models.TrendPoint, len(points))
	copy(out, points)
	return out
}
