// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// stdLibSignalSource is the production implementation.
type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleSignals clears all caches on SIGHUP and logs the cache statistics on SIGUSR1.
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			switch sig {
			case syscall.SIGHUP:
				s.ClearCaches()
			case syscall.SIGUSR1:
				for _, c := range s.caches {
					stats := c.Stats()
					s.logger.Info("cache statistics", slog.String("cache", c.Name()),
						slog.Int("size", stats.Size), slog.Int("max_size", stats.MaxSize),
						slog.Int("ttl_seconds", stats.TTLSeconds))
				}
			}
		}
	}
}
