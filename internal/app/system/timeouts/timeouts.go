// internal/app/system/timeouts/timeouts.go
//
// Package timeouts holds the context deadlines handlers put around backend
// calls. Values are set once at startup from configuration and read on every
// request.
package timeouts

import (
	"sync"
	"time"
)

// Defaults used until Configure is called.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 60 * time.Second
)

// Config holds one value per timeout class. Zero fields are ignored by
// Configure.
type Config struct {
	Ping   time.Duration // health checks
	Short  time.Duration // single-record reads
	Medium time.Duration // list screens
	Long   time.Duration // pages that join several lists (details, analytics)
	Batch  time.Duration // workflow submissions fanning out to many calls
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Batch:  DefaultBatch,
	}
}

func read(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

func Ping() time.Duration   { return read(func(c Config) time.Duration { return c.Ping }) }
func Short() time.Duration  { return read(func(c Config) time.Duration { return c.Short }) }
func Medium() time.Duration { return read(func(c Config) time.Duration { return c.Medium }) }
func Long() time.Duration   { return read(func(c Config) time.Duration { return c.Long }) }
func Batch() time.Duration  { return read(func(c Config) time.Duration { return c.Batch }) }

// Configure overrides the non-zero fields of cfg. Call it during startup,
// before the handler is built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&current.Ping, cfg.Ping)
	set(&current.Short, cfg.Short)
	set(&current.Medium, cfg.Medium)
	set(&current.Long, cfg.Long)
	set(&current.Batch, cfg.Batch)
}

// Reset restores the defaults. Tests use it to undo Configure.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// Current returns the active values, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
