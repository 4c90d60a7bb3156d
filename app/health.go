package app

import (
	"context"
	"time"

	"github.com/traduckxion/transcribe/observability"
)

const probeTimeout = 2 * time.Second

type healthProbe struct {
	name      string
	optional  bool
	available func(context.Context) bool
}

func (a *App) addProbe(name string, optional bool, available func(context.Context) bool) {
	a.health = append(a.health, healthProbe{name: name, optional: optional, available: available})
}

// HealthCheck probes every dependency. Providers, the LLM and the cache are
// optional and degrade the service; having no provider at all takes it down.
func (a *App) HealthCheck(ctx context.Context) []observability.Health {
	out := make([]observability.Health, 0, len(a.health))
	for _, p := range a.health {
		out = append(out, observability.CheckAvailability(ctx, p.name, p.optional, probeTimeout, p.available))
	}
	return out
}
