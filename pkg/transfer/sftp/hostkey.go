package sftp

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	// PolicyTrustAll accepts any server host key.
	PolicyTrustAll = "trust-all"
	// PolicyKnownHosts only accepts host keys listed in a known_hosts file.
	PolicyKnownHosts = "known-hosts"
)

// HostKeyCallback returns the host key verifier for a policy
func HostKeyCallback(policy, knownHostsFile string) (ssh.HostKeyCallback, error) {
	switch policy {
	case "", PolicyTrustAll:
		return ssh.InsecureIgnoreHostKey(), nil
	case PolicyKnownHosts:
		if knownHostsFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			knownHostsFile = filepath.Join(home, ".ssh", "known_hosts")
		}
		callback, err := knownhosts.New(knownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts: %w", err)
		}
		return callback, nil
	default:
		return nil, fmt.Errorf("unknown host key policy: %q", policy)
	}
}
