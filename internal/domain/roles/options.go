package roles

import "strings"

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithFairnessGroups declares rotation groups: doing any member counts as a
// recent turn for all members.
func WithFairnessGroups(groups map[string][]string) Option {
	return func(n *Normalizer) {
		for group, members := range groups {
			for _, role := range members {
				n.fairness[strings.TrimSpace(role)] = group
			}
		}
	}
}

// WithEligibilityGroups declares which roster column qualifies each role.
func WithEligibilityGroups(groups map[string][]string) Option {
	return func(n *Normalizer) {
		for column, members := range groups {
			for _, role := range members {
				n.eligibility[strings.TrimSpace(role)] = column
			}
		}
	}
}

// WithGroupedDisplay marks fairness groups whose recent records are shown.
func WithGroupedDisplay(groups ...string) Option {
	return func(n *Normalizer) {
		for _, g := range groups {
			n.grouped[g] = true
		}
	}
}

// WithVariantToken sets the token that marks auxiliary room variants.
func WithVariantToken(token string) Option {
	return func(n *Normalizer) {
		n.token = strings.TrimSpace(token)
	}
}

// WithSeparateVariantFairness gives variants their own fairness clock.
func WithSeparateVariantFairness(separate bool) Option {
	return func(n *Normalizer) {
		n.separate = separate
	}
}
