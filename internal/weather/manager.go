// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/metrics"
)

// Manager holds the registry of weather providers and resolves requests against the primary
// provider first and the fallbacks in registration order afterwards.
type Manager struct {
	log *logger.Logger

	mu        sync.RWMutex
	providers map[string]Provider
	primary   string
	fallbacks []string
}

// ProvidersInfo describes the registry state.
type ProvidersInfo struct {
	Primary   string          `json:"primary"`
	Fallbacks []string        `json:"fallbacks"`
	Providers map[string]Info `json:"providers"`
}

// NewManager returns an empty Manager.
func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		log:       log,
		providers: make(map[string]Provider),
		fallbacks: make([]string, 0),
	}
}

// AddProvider registers the provider. A primary provider replaces the current primary, which
// becomes a fallback. Registering a name twice replaces the instance but never duplicates the name
// in the fallback order.
func (m *Manager) AddProvider(provider Provider, isPrimary bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := provider.Name()
	m.providers[name] = provider
	if isPrimary {
		m.setPrimary(name)
		return
	}
	if name != m.primary && !slices.Contains(m.fallbacks, name) {
		m.fallbacks = append(m.fallbacks, name)
	}
}

// SetPrimary promotes the named provider to primary. The previous primary is appended to the
// fallbacks.
func (m *Manager) SetPrimary(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	m.setPrimary(name)
	return nil
}

func (m *Manager) setPrimary(name string) {
	if m.primary != "" && m.primary != name && !slices.Contains(m.fallbacks, m.primary) {
		m.fallbacks = append(m.fallbacks, m.primary)
	}
	m.primary = name
	m.fallbacks = slices.DeleteFunc(m.fallbacks, func(n string) bool { return n == name })
}

// SwitchProvider makes the named provider the primary one. It returns false and leaves the
// registry untouched if the name is unknown. Callers should clear cached weather results after a
// successful switch.
func (m *Manager) SwitchProvider(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[name]; !ok {
		m.log.Warn("unable to switch to unknown weather provider", slog.String("provider", name))
		return false
	}
	m.setPrimary(name)
	metrics.ProviderSwitchesTotal.Inc()
	m.log.Info("switched primary weather provider", slog.String("provider", name))
	return true
}

// GetWeather returns the first result of the primary provider and the fallbacks, tried strictly
// in sequence. It returns nil if every provider failed.
func (m *Manager) GetWeather(ctx context.Context, lat, lon float64, location, tz string) *Data {
	for i, provider := range m.snapshot() {
		if i == 0 {
			m.log.Debug("trying weather provider", slog.String("provider", provider.Name()))
		} else {
			m.log.Info("trying fallback weather provider", slog.String("provider", provider.Name()))
		}
		if data := Get(ctx, provider, m.log, lat, lon, location, tz); data != nil {
			return data
		}
		if ctx.Err() != nil {
			break
		}
	}

	m.log.Error("all weather providers failed", slog.Float64("lat", lat), slog.Float64("lon", lon))
	return nil
}

// snapshot returns the providers in resolution order.
func (m *Manager) snapshot() []Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order := make([]Provider, 0, len(m.fallbacks)+1)
	if p, ok := m.providers[m.primary]; ok {
		order = append(order, p)
	}
	for _, name := range m.fallbacks {
		if p, ok := m.providers[name]; ok {
			order = append(order, p)
		}
	}
	return order
}

// Describe returns the primary, the fallback order and the metadata of every provider.
func (m *Manager) Describe() ProvidersInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info := ProvidersInfo{
		Primary:   m.primary,
		Fallbacks: slices.Clone(m.fallbacks),
		Providers: make(map[string]Info, len(m.providers)),
	}
	for name, provider := range m.providers {
		info.Providers[name] = provider.Describe()
	}
	return info
}

// Names returns the sorted names of all registered providers.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
