package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"ping", Ping(), DefaultPing},
		{"short", Short(), DefaultShort},
		{"medium", Medium(), DefaultMedium},
		{"long", Long(), DefaultLong},
		{"batch", Batch(), DefaultBatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second, Batch: 2 * time.Minute})

	if Short() != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", Short())
	}
	if Batch() != 2*time.Minute {
		t.Errorf("Batch() = %v, want 2m", Batch())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, want default %v", Medium(), DefaultMedium)
	}

	cur := Current()
	if cur.Short != 7*time.Second || cur.Ping != DefaultPing {
		t.Errorf("Current() = %+v", cur)
	}
}
