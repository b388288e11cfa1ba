package sample

import "strings"

// Contributor is one entry from the row-wide parallel contributor
// lists. Identifier is normalized to URL form when it is an ORCID.
type Contributor struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Identifier     string `json:"identifier,omitempty"`
	IdentifierType string `json:"identifier_type,omitempty"`
}

// Creator is the sample's collector, resolved from whichever column
// shape the source file used. Any field may be empty.
type Creator struct {
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	ROR         string `json:"ror,omitempty"`
}

// IsZero reports whether the creator carries no information at all.
func (c *Creator) IsZero() bool {
	return c == nil || (c.GivenName == "" && c.FamilyName == "" &&
		c.ORCID == "" && c.Affiliation == "" && c.ROR == "")
}

// HasName reports whether at least one name component is set.
func (c *Creator) HasName() bool {
	return c != nil && (c.GivenName != "" || c.FamilyName != "")
}

// DisplayName returns the name in "Given Family" format.
func (c *Creator) DisplayName() string {
	if c == nil {
		return ""
	}
	var parts []string
	if c.GivenName != "" {
		parts = append(parts, c.GivenName)
	}
	if c.FamilyName != "" {
		parts = append(parts, c.FamilyName)
	}
	return strings.Join(parts, " ")
}

// InvertedName returns the name in "Family, Given" format.
func (c *Creator) InvertedName() string {
	if c == nil {
		return ""
	}
	if c.GivenName == "" {
		return c.FamilyName
	}
	if c.FamilyName == "" {
		return c.GivenName
	}
	return c.FamilyName + ", " + c.GivenName
}
