package scheduler

import (
	"crypto/sha256"
	"fmt"
	"hash/fnv"
	"sort"
)

// DeriveKey builds the deterministic call key correlating scheduling state
// across calls to the same logical request. It hashes the method, address,
// headers (sorted for determinism) and body.
func DeriveKey(method, address string, headers map[string]string, body []byte) string {
	h := fnv.New64a()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(address))

	if len(headers) > 0 {
		names := make([]string, 0, len(headers))
		for name := range headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			h.Write([]byte{0})
			h.Write([]byte(name))
			h.Write([]byte{0})
			h.Write([]byte(headers[name]))
		}
	}

	if len(body) > 0 {
		sum := sha256.Sum256(body)
		h.Write(sum[:])
	}

	return fmt.Sprintf("%x", h.Sum64())
}
