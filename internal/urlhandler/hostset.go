package urlhandler

import (
	"net"
	"strings"
)

// HostSet holds the hostnames the crawler itself runs on.
// Asset URLs pointing at one of them are self-referential and get dropped.
type HostSet struct {
	hosts map[string]struct{}
}

// NewHostSet builds a HostSet; entries may carry a port, which is ignored
func NewHostSet(hosts ...string) HostSet {
	hs := HostSet{hosts: make(map[string]struct{}, len(hosts))}
	for _, h := range hosts {
		hs = hs.With(h)
	}
	return hs
}

// With returns a copy of the set that also contains host
func (hs HostSet) With(host string) HostSet {
	normalized := normalizeHost(host)
	out := HostSet{hosts: make(map[string]struct{}, len(hs.hosts)+1)}
	for h := range hs.hosts {
		out.hosts[h] = struct{}{}
	}
	if normalized != "" {
		out.hosts[normalized] = struct{}{}
	}
	return out
}

// Contains reports whether host is one of the crawler's own hosts
func (hs HostSet) Contains(host string) bool {
	if len(hs.hosts) == 0 {
		return false
	}
	_, ok := hs.hosts[normalizeHost(host)]
	return ok
}

// ContainsURL reports whether the hostname of rawURL is one of the crawler's own hosts
func (hs HostSet) ContainsURL(rawURL string) bool {
	host := Hostname(rawURL)
	if host == "" {
		return false
	}
	return hs.Contains(host)
}

// Hosts lists the set members in no particular order
func (hs HostSet) Hosts() []string {
	out := make([]string, 0, len(hs.hosts))
	for h := range hs.hosts {
		out = append(out, h)
	}
	return out
}

// Len returns the number of hosts in the set
func (hs HostSet) Len() int {
	return len(hs.hosts)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Trim(host, "[]")
}
