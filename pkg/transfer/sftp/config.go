package sftp

import (
	"fmt"
	"time"
)

type Config struct {
	HostKeyPolicy  string        // trust-all (default) or known-hosts
	KnownHostsFile string        // used by known-hosts, default ~/.ssh/known_hosts
	Timeout        time.Duration // connect and handshake timeout, 0 = none
}

func parseConfig(options map[string]string) (*Config, error) {
	cfg := &Config{
		HostKeyPolicy: PolicyTrustAll,
	}

	if v := options["host_key_policy"]; v != "" {
		cfg.HostKeyPolicy = v
	}
	cfg.KnownHostsFile = options["known_hosts_file"]

	if v := options["timeout"]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", v, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid timeout %q: must not be negative", v)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
