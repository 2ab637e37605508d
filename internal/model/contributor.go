package model

import "strings"

// Contributor is the redacted public view of a user profile attached to
// fossil detail responses and served from /users/:id/public.
//
// ID and role are always exposed. Name, affiliation and contact are gated by
// the owner's visibility flags; contact never falls back to the private
// email. Location and lattes are ungated, matching the historical behavior
// of the catalog.
type Contributor struct {
	ID          uint    `json:"id"`
	Name        *string `json:"name"`
	Affiliation *string `json:"affiliation"`
	Contact     *string `json:"contact"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	Lattes      *string `json:"lattes"`
}

// NewContributor projects a user profile through its visibility flags.
// Pure: identical input always yields identical output.
func NewContributor(u *User) *Contributor {
	if u == nil {
		return nil
	}

	c := &Contributor{
		ID:     u.ID,
		Role:   u.Role,
		Lattes: u.Lattes,
	}

	if u.ShowName {
		nome := u.Nome
		c.Name = &nome
	}
	if u.ShowAffiliation {
		c.Affiliation = u.Affiliation
	}
	if u.ShowContact {
		c.Contact = u.ContactPublic
	}

	parts := make([]string, 0, 3)
	for _, p := range []*string{u.City, u.State, u.Country} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) > 0 {
		loc := strings.Join(parts, ", ")
		c.Location = &loc
	}

	return c
}
