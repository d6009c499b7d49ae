package model

// StyleCategory is one of the four management styles
type StyleCategory string

const (
	StyleDirective     StyleCategory = "directive"
	StyleInformative   StyleCategory = "informative"
	StyleParticipative StyleCategory = "participative"
	StyleDelegative    StyleCategory = "delegative"
)

// StyleCategories returns the four styles in their canonical declaration order
func StyleCategories() []StyleCategory {
	return []StyleCategory{StyleDirective, StyleInformative, StyleParticipative, StyleDelegative}
}

// Valid reports whether c is one of the four known styles
func (c StyleCategory) Valid() bool {
	switch c {
	case StyleDirective, StyleInformative, StyleParticipative, StyleDelegative:
		return true
	}
	return false
}

// AdequacyTier is a weight class for a (question, option) pair
type AdequacyTier string

const (
	TierA AdequacyTier = "a"
	TierB AdequacyTier = "b"
	TierC AdequacyTier = "c"
	TierD AdequacyTier = "d"
)

// AdequacyTiers returns the four tiers
func AdequacyTiers() []AdequacyTier {
	return []AdequacyTier{TierA, TierB, TierC, TierD}
}

// Valid reports whether t is one of the four known tiers
func (t AdequacyTier) Valid() bool {
	switch t {
	case TierA, TierB, TierC, TierD:
		return true
	}
	return false
}
