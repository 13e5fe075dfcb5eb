package filters

import (
	"fmt"
	"net/url"
	"strings"
)

// Params is an ordered set of query parameters. Keys keep the order in which
// they were first set so that re-encoded queries stay stable.
type Params struct {
	keys []string
	vals map[string]string
}

// ParseQuery parses a raw query string. The leading "?" is optional. When a
// key repeats, the last value wins but the key keeps its first position.
func ParseQuery(raw string) (Params, error) {
	p := Params{vals: map[string]string{}}
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return p, nil
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return Params{}, fmt.Errorf("parsing query key %q: %w", k, err)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return Params{}, fmt.Errorf("parsing query value for %q: %w", key, err)
		}
		p = p.With(key, val)
	}
	return p, nil
}

// Get returns the value for key.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p.keys) }

// Keys returns the parameter names in order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// With returns a copy of p with key set to val.
func (p Params) With(key, val string) Params {
	c := p.clone()
	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = val
	return c
}

// Without returns a copy of p with the given keys removed.
func (p Params) Without(keys ...string) Params {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	c := Params{vals: map[string]string{}}
	for _, k := range p.keys {
		if !drop[k] {
			c.keys = append(c.keys, k)
			c.vals[k] = p.vals[k]
		}
	}
	return c
}

// Encode renders p as a query string with its leading "?". An empty set
// encodes as the bare "?" marker.
func (p Params) Encode() string {
	var b strings.Builder
	b.WriteString("?")
	for i, k := range p.keys {
		if i > 0 {
			b.WriteString("&")
		}
		b.WriteString(escape(k))
		b.WriteString("=")
		b.WriteString(escape(p.vals[k]))
	}
	return b.String()
}

func (p Params) clone() Params {
	c := Params{
		keys: make([]string, len(p.keys)),
		vals: make(map[string]string, len(p.vals)),
	}
	copy(c.keys, p.keys)
	for k, v := range p.vals {
		c.vals[k] = v
	}
	return c
}

// escape percent-encodes s but leaves commas readable; commas separate codes
// in list lookups and are never part of a key.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}

// SplitTarget splits a navigation target into its path and query parts.
func SplitTarget(target string) (path, query string) {
	if i := strings.Index(target, "?"); i >= 0 {
		return target[:i], target[i:]
	}
	return target, "?"
}
