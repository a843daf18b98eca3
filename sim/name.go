package sim

import "strings"

// Name is a slash-separated hierarchical NDN name, e.g.
// "uuv1/health_info/battery_level".
type Name string

// HasPrefix reports whether root is a name-component prefix of n.
// Matching is component-wise, not a raw string prefix: "uuv1/health"
// is not a prefix of "uuv1/health_info/battery_level".
func (n Name) HasPrefix(root Name) bool {
	if root == "" {
		return true
	}
	nComp := strings.Split(string(n), "/")
	rComp := strings.Split(string(root), "/")
	if len(rComp) > len(nComp) {
		return false
	}
	for i, c := range rComp {
		if nComp[i] != c {
			return false
		}
	}
	return true
}

// Equal reports exact name equality, used for CS/PIT lookups.
func (n Name) Equal(other Name) bool {
	return n == other
}

// IsHealthInfo reports whether the name contains the "health_info" token,
// which selects the HI_TTL expiry class over MI_TTL.
func (n Name) IsHealthInfo() bool {
	for _, c := range strings.Split(string(n), "/") {
		if c == "health_info" {
			return true
		}
	}
	return false
}

// String returns the name as a plain string.
func (n Name) String() string {
	return string(n)
}

// Depth returns the name's component count, used to scale a Data packet's
// size inversely with specificity.
func (n Name) Depth() int {
	return strings.Count(string(n), "/") + 1
}
