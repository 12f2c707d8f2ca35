// Package mesh defines the CultureMesh entities handled by meshkit.
//
// Values are read-only snapshots as returned by the upstream API; nothing in
// meshkit mutates or owns them.
package mesh

import (
	"strconv"
	"strings"
)

// ID identifies a network, event, or user.
type ID int64

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal ID, e.g. from a URL path segment.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// NetworkClass tags the kind of community a network groups.
type NetworkClass string

const (
	ClassLanguage NetworkClass = "_l"
	ClassCity     NetworkClass = "cc"
	ClassRegion   NetworkClass = "rc"
	ClassCountry  NetworkClass = "co"
)

// IsLocation reports whether the class groups people by place of origin.
func (c NetworkClass) IsLocation() bool {
	return c == ClassCity || c == ClassRegion || c == ClassCountry
}

// Location is a city/region/country triple. Any part may be empty.
type Location struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// String joins the non-empty parts, most specific first: "Boston, Massachusetts, United States".
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsZero reports whether every part is empty.
func (l Location) IsZero() bool {
	return l.City == "" && l.Region == "" && l.Country == ""
}
