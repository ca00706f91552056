package main

import (
	"context"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/ebus"
)

// simulator publishes random values for every topic of the shown dashboard,
// spread over the widest range of the gauges on that topic.
type simulator struct {
	bus *ebus.Bus

	mu     sync.Mutex
	rnd    *rand.Rand
	topics []string
	ranges map[string][2]float64
}

func newSimulator(bus *ebus.Bus, seed uint64) *simulator {
	return &simulator{
		bus:    bus,
		rnd:    rand.New(rand.NewPCG(seed, seed)),
		ranges: make(map[string][2]float64),
	}
}

func (s *simulator) SetDashboard(d *config.Dashboard) {
	ranges := make(map[string][2]float64)
	for i := range d.Gauges {
		g := &d.Gauges[i]
		if g.Topic == "" {
			continue
		}
		cfg, err := g.EngineConfig()
		if err != nil {
			continue
		}
		r, ok := ranges[g.Topic]
		if !ok {
			r = [2]float64{cfg.Min, cfg.Max}
		}
		ranges[g.Topic] = [2]float64{math.Min(r[0], cfg.Min), math.Max(r[1], cfg.Max)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = d.Topics()
	s.ranges = ranges
}

// Tick publishes one value per topic, with two decimals.
func (s *simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, topic := range s.topics {
		r := s.ranges[topic]
		v := r[0] + s.rnd.Float64()*(r[1]-r[0])
		v = math.Round(v*100) / 100
		if err := s.bus.Publish(topic, v); err != nil {
			log.Println("simulator:", err)
		}
	}
}

func (s *simulator) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}
