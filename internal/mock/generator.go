package mock

import (
	"errors"
	"time"
)

// ErrInvalidCount is returned when a requested entity count is negative.
var ErrInvalidCount = errors.New("count must not be negative")

const day = 24 * time.Hour

// Generator produces entities relative to a fixed clock.
type Generator struct {
	Now     time.Time
	Catalog Catalog
}

// New returns a Generator using the default catalog and the given clock.
func New(now time.Time) *Generator {
	return &Generator{Now: now, Catalog: DefaultCatalog()}
}
