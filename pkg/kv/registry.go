package kv

import (
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Driver{}
)

// Register binds a URI scheme to a Driver. Driver packages call this from
// an init() function, e.g. boltdriver registers "bolt" and "memory".
// Registering the same scheme twice replaces the previous binding.
func Register(scheme string, d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[scheme] = d
}

func lookupDriver(scheme string) (Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[scheme]
	return d, ok
}

// splitURI parses "scheme://rest" into its two parts. It returns an error
// wrapping ErrUnsupportedDriver for anything else, including a missing
// "://" separator or an empty remainder.
func splitURI(uri string) (scheme, rest string, err error) {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return "", "", ErrUnsupportedDriver
	}
	scheme, rest = uri[:i], uri[i+3:]
	if rest == "" {
		return "", "", ErrUnsupportedDriver
	}
	return scheme, rest, nil
}
