package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mmcdole/pullfeed/internal/domain"
	"github.com/zoobzio/clockz"
)

var (
	subjects = []string{"Release", "Outage", "Benchmark", "Proposal", "Roadmap", "Patch", "Survey", "Incident"}
	topics   = []string{"scheduler", "gesture engine", "terminal renderer", "bolt store", "spinner", "config loader", "event loop", "header"}
	verbs    = []string{"lands", "slips", "ships", "improves", "regresses", "stabilizes"}
)

// Generator is a deterministic local Source. Every Fetch waits the
// configured latency on its clock and then yields a batch of items stamped
// with the clock's time.
type Generator struct {
	name    string
	batch   int
	latency time.Duration
	clock   clockz.Clock

	mu   sync.Mutex
	rng  *rand.Rand
	next int
}

var _ Source = (*Generator)(nil)

// NewGenerator creates a generator. A nil clock means clockz.RealClock.
func NewGenerator(name string, batch int, latency time.Duration, seed int64, clock clockz.Clock) *Generator {
	if clock == nil {
		clock = clockz.RealClock
	}
	if batch < 1 {
		batch = 1
	}
	return &Generator{
		name:    name,
		batch:   batch,
		latency: latency,
		clock:   clock,
		rng:     rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)),
		next:    1,
	}
}

func (g *Generator) Name() string { return g.name }

func (g *Generator) Fetch(ctx context.Context) ([]domain.Item, error) {
	if g.latency > 0 {
		timer := g.clock.NewTimer(g.latency)
		select {
		case <-timer.C():
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	items := make([]domain.Item, 0, g.batch)
	for i := 0; i < g.batch; i++ {
		n := g.next
		g.next++
		subject := subjects[g.rng.IntN(len(subjects))]
		topic := topics[g.rng.IntN(len(topics))]
		items = append(items, domain.Item{
			ID:        fmt.Sprintf("%s-%d", g.name, n),
			Title:     fmt.Sprintf("%s: %s %s", subject, topic, verbs[g.rng.IntN(len(verbs))]),
			Summary:   fmt.Sprintf("Item %d of %s about the %s", n, g.name, topic),
			Published: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return items, nil
}
