package providers

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

// Adapter is the uniform contract every upstream source implements. Each
// concrete adapter owns that upstream's sport-key naming, date/week
// formatting, authentication, pagination, and the mapping of its native
// response shape into canonical events. Adapters surface failure as a single
// error and never retry internally; retries are expressed by the
// orchestrator as fallback to the next provider.
type Adapter interface {
	Name() string
	Supports(sport string) bool
	FetchEvents(ctx context.Context, sport string, filters event.Filters) ([]event.Event, error)
}

// ErrUnsupportedSport is returned when an adapter is asked for a sport
// outside its supported set. The orchestrator treats it like any other
// adapter failure.
var ErrUnsupportedSport = errors.New("sport not supported by provider")
