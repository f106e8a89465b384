package resilience

import "sync"

// SingleFlight collapses concurrent fetches for the same key into one
// in-flight call; late arrivals block and share the leader's payload.
type SingleFlight struct {
	mu       sync.Mutex
	inFlight map[string]*flightCall
}

type flightCall struct {
	done    chan struct{}
	payload []byte
	err     error
}

// Do runs fetch for key unless an identical call is already in flight, in
// which case it waits for that call and returns its result. The bool reports
// whether the result was shared from another caller's fetch.
func (g *SingleFlight) Do(key string, fetch func() ([]byte, error)) ([]byte, error, bool) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flightCall)
	}

	if c, ok := g.inFlight[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.payload, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	g.inFlight[key] = c
	g.mu.Unlock()

	c.payload, c.err = fetch()
	close(c.done)

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()

	return c.payload, c.err, false
}
