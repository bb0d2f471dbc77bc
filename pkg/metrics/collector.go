// Package metrics exposes Prometheus counters for provider resolution and chat
// model construction.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

const namespace = "chatmodel"

// Result label values.
const (
	ResultSuccess         = "success"
	ResultInvalidProvider = "invalid_provider"
	ResultUnknownProvider = "unknown_provider"
	ResultBuildError      = "build_error"
)

// Collector counts resolutions and client builds per provider. A nil
// *Collector is valid and records nothing.
type Collector struct {
	resolutions *prometheus.CounterVec
	builds      *prometheus.CounterVec
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Provider resolutions by resolved provider and result.",
		}, []string{"provider", "result"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_builds_total",
			Help:      "Chat model client constructions by provider and result.",
		}, []string{"provider", "result"}),
	}
	for _, collector := range []prometheus.Collector{c.resolutions, c.builds} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveResolution records the outcome of resolving a provider. provider is
// empty when resolution failed.
func (c *Collector) ObserveResolution(provider types.ProviderType, err error) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(string(provider), resultFor(err)).Inc()
}

// ObserveBuild records the outcome of building a chat model for provider.
func (c *Collector) ObserveBuild(provider types.ProviderType, err error) {
	if c == nil {
		return
	}
	c.builds.WithLabelValues(string(provider), resultFor(err)).Inc()
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, types.ErrInvalidProviderName):
		return ResultInvalidProvider
	case errors.Is(err, types.ErrUnknownProvider):
		return ResultUnknownProvider
	default:
		return ResultBuildError
	}
}
