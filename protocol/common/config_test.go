package common

import (
	"strings"
	"testing"
	"time"
)

// TestWithDefaults verifies that zero values are replaced and explicit
// values survive.
func TestWithDefaults(t *testing.T) {
	cfg := ClientConfig{Host: "example.com", Port: 27015, Password: "pw"}.WithDefaults()

	if cfg.Version != ProtocolV2 {
		t.Errorf("default version = %d, want %d", cfg.Version, ProtocolV2)
	}
	if cfg.PoolSize != DefaultPoolSize || cfg.QueueSize != DefaultQueueSize {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.CommandTimeout() != time.Duration(DefaultTimeoutSecond)*time.Second {
		t.Errorf("command timeout = %v", cfg.CommandTimeout())
	}

	// A negative timeout means "no deadline" and must not be replaced by
	// the default.
	cfg = ClientConfig{Host: "example.com", Port: 27015, TimeoutSecond: -1}.WithDefaults()
	if cfg.TimeoutSecond != 0 {
		t.Errorf("negative timeout normalized to %d, want 0", cfg.TimeoutSecond)
	}

	cfg = ClientConfig{Host: "example.com", Port: 27015, PoolSize: 4, Version: ProtocolV1}.WithDefaults()
	if cfg.PoolSize != 4 || cfg.Version != ProtocolV1 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

// TestValidate verifies rejection of unusable configs.
func TestValidate(t *testing.T) {
	cases := map[string]ClientConfig{
		"no host":      {Port: 27015},
		"bad port":     {Host: "example.com", Port: -1},
		"port too big": {Host: "example.com", Port: 70000},
		"bad version":  {Host: "example.com", Port: 27015, Version: 3},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() accepted %+v", cfg)
			}
		})
	}

	good := ClientConfig{Host: "example.com", Port: 27015}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() rejected valid config: %v", err)
	}
}

// TestStringOmitsPassword verifies credentials never leak into logs.
func TestStringOmitsPassword(t *testing.T) {
	cfg := ClientConfig{Host: "example.com", Port: 27015, Password: "super-secret"}.WithDefaults()

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Error("String() contains the password")
	}
	if !strings.Contains(s, "example.com:27015") {
		t.Errorf("String() missing address: %s", s)
	}
}
