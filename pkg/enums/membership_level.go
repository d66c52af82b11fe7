package enums

import (
	"fmt"
	"strings"
)

// MembershipLevel is a member's loyalty tier.
type MembershipLevel string

const (
	MembershipLevelGold     MembershipLevel = "gold"
	MembershipLevelSilver   MembershipLevel = "silver"
	MembershipLevelPlatinum MembershipLevel = "platinum"
)

var validMembershipLevels = []MembershipLevel{
	MembershipLevelGold,
	MembershipLevelSilver,
	MembershipLevelPlatinum,
}

// String implements fmt.Stringer.
func (m MembershipLevel) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MembershipLevel.
func (m MembershipLevel) IsValid() bool {
	for _, candidate := range validMembershipLevels {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipLevel converts raw input into a MembershipLevel.
func ParseMembershipLevel(value string) (MembershipLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validMembershipLevels {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership level %q", value)
}
