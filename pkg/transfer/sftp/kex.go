package sftp

import (
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

// excludedKex is removed from the negotiated key exchanges; some servers
// fail the curve25519 exchange.
const excludedKex = "curve25519"

// keyExchanges is computed once per process and shared by every connection
var keyExchanges = sync.OnceValue(func() []string {
	return filterKeyExchanges(ssh.SupportedAlgorithms().KeyExchanges, excludedKex)
})

func filterKeyExchanges(algos []string, exclude string) []string {
	filtered := make([]string, 0, len(algos))
	for _, algo := range algos {
		if strings.Contains(algo, exclude) {
			continue
		}
		filtered = append(filtered, algo)
	}
	return filtered
}
