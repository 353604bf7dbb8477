// Package roles resolves raw role keys into the roster column that gates
// eligibility and the ledger group that shares a fairness clock.
//
// The two groupings are independent static mappings. A key that carries
// the variant token (the auxiliary room) is stripped before lookup; the raw
// key itself is what the ledger stores, so grouping is always computed.
package roles

import (
	"strings"
)

// Key is a resolved raw role key.
type Key struct {
	Raw         string
	Eligibility string
	Fairness    string
	Variant     bool
}

// Normalizer resolves raw role keys. It is immutable after New.
type Normalizer struct {
	fairness    map[string]string
	eligibility map[string]string
	grouped     map[string]bool
	token       string
	separate    bool
}

// New creates a Normalizer. Without options every key maps to itself.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		fairness:    make(map[string]string),
		eligibility: make(map[string]string),
		grouped:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Resolve returns the eligibility column and fairness group for raw.
// Unknown keys map to themselves.
func (n *Normalizer) Resolve(raw string) Key {
	raw = strings.TrimSpace(raw)
	base, variant := n.strip(raw)
	k := Key{Raw: raw, Variant: variant}

	if col, ok := n.eligibility[raw]; ok {
		k.Eligibility = col
	} else if col, ok := n.eligibility[base]; ok {
		k.Eligibility = col
	} else {
		k.Eligibility = base
	}

	if group, ok := n.fairness[raw]; ok {
		k.Fairness = group
		return k
	}
	group := base
	if g, ok := n.fairness[base]; ok {
		group = g
	}
	if variant && n.separate {
		group = group + " " + n.token
	}
	k.Fairness = group
	return k
}

// EligibilityColumn is Resolve(raw).Eligibility.
func (n *Normalizer) EligibilityColumn(raw string) string {
	return n.Resolve(raw).Eligibility
}

// FairnessGroup is Resolve(raw).Fairness.
func (n *Normalizer) FairnessGroup(raw string) string {
	return n.Resolve(raw).Fairness
}

// Grouped reports whether raw belongs to a fairness group whose recent
// records are shown during selection. A variant follows its base role.
func (n *Normalizer) Grouped(raw string) bool {
	k := n.Resolve(raw)
	if n.grouped[k.Fairness] {
		return true
	}
	if !k.Variant {
		return false
	}
	base, _ := n.strip(k.Raw)
	return n.grouped[n.Resolve(base).Fairness]
}

// Variant returns the auxiliary room key for base.
func (n *Normalizer) Variant(base string) string {
	if n.token == "" {
		return base
	}
	return strings.TrimSpace(base) + " " + n.token
}

func (n *Normalizer) strip(raw string) (string, bool) {
	if n.token == "" {
		return raw, false
	}
	base, ok := strings.CutSuffix(raw, n.token)
	if !ok {
		return raw, false
	}
	return strings.TrimSpace(base), true
}
