package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
)

// RateLimitSpec caps one provider's outbound request volume.
type RateLimitSpec struct {
	MaxRequests int
	Window      time.Duration
	// DailyLimit of zero means no daily cap.
	DailyLimit int
}

// Registration is the static description of one upstream provider: which
// sports it can answer for, where it sits in the fallback order, and how
// hard it may be called. Registrations are immutable after startup.
type Registration struct {
	Name string
	// Priority ranks providers for the fallback chain; lower is tried first.
	Priority  int
	Sports    []string
	RateLimit RateLimitSpec
}

func (r Registration) Supports(sport string) bool {
	sport = event.NormalizeSport(sport)
	for _, s := range r.Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// Registry holds all provider registrations for one process.
type Registry struct {
	byName map[string]Registration
	names  []string
}

func New(registrations ...Registration) *Registry {
	r := &Registry{byName: make(map[string]Registration, len(registrations))}
	for _, reg := range registrations {
		r.register(reg)
	}
	return r
}

func (r *Registry) register(reg Registration) {
	name := strings.ToLower(strings.TrimSpace(reg.Name))
	if name == "" {
		return
	}
	reg.Name = name

	normalized := make([]string, 0, len(reg.Sports))
	for _, s := range reg.Sports {
		normalized = append(normalized, event.NormalizeSport(s))
	}
	reg.Sports = normalized

	if _, exists := r.byName[name]; !exists {
		r.names = append(r.names, name)
	}
	r.byName[name] = reg
}

func (r *Registry) Get(name string) (Registration, bool) {
	reg, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return reg, ok
}

// All returns every registration in priority order.
func (r *Registry) All() []Registration {
	out := make([]Registration, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// CandidatesFor returns the registrations supporting sport, ascending by
// priority rank. Registration order breaks ties.
func (r *Registry) CandidatesFor(sport string) []Registration {
	out := make([]Registration, 0, len(r.names))
	for _, reg := range r.All() {
		if reg.Supports(sport) {
			out = append(out, reg)
		}
	}
	return out
}
