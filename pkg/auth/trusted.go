package auth

import (
	"sort"
	"strings"
	"sync"
)

// TrustedHosts is the set of hostnames whose certificate-validation failures
// the user has explicitly accepted. The set only grows; entries are added by
// an explicit trust decision and never evicted.
type TrustedHosts struct {
	mu    sync.RWMutex
	hosts map[string]struct{}
	// persist, when set, is called once per newly added host
	persist func(host string)
}

// NewTrustedHosts creates a trusted-host set seeded with the given hosts
func NewTrustedHosts(hosts ...string) *TrustedHosts {
	t := &TrustedHosts{hosts: make(map[string]struct{})}
	for _, h := range hosts {
		t.hosts[normalizeHost(h)] = struct{}{}
	}
	return t
}

// OnAdd registers a hook invoked whenever a host is newly trusted,
// typically to persist the updated set.
func (t *TrustedHosts) OnAdd(persist func(host string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persist = persist
}

// Contains reports whether the host has been trusted
func (t *TrustedHosts) Contains(host string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.hosts[normalizeHost(host)]
	return ok
}

// Add trusts the host. Adding an already-present host is a no-op and does
// not re-fire the persistence hook.
func (t *TrustedHosts) Add(host string) {
	host = normalizeHost(host)

	t.mu.Lock()
	if _, ok := t.hosts[host]; ok {
		t.mu.Unlock()
		return
	}
	t.hosts[host] = struct{}{}
	persist := t.persist
	t.mu.Unlock()

	if persist != nil {
		persist(host)
	}
}

// Snapshot returns the trusted hosts in sorted order
func (t *TrustedHosts) Snapshot() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	hosts := make([]string, 0, len(t.hosts))
	for h := range t.hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// String returns the trusted hosts as a comma separated list
func (t *TrustedHosts) String() string {
	return strings.Join(t.Snapshot(), ",")
}
