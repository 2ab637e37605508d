package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func baseUser() *User {
	return &User{
		ID:              7,
		Nome:            "Maria Silva",
		Email:           "maria@example.com",
		Senha:           "$2a$10$hash",
		Role:            strPtr("Pesquisadora"),
		Affiliation:     strPtr("UFPE"),
		City:            strPtr("Recife"),
		State:           strPtr("PE"),
		Country:         strPtr("Brasil"),
		Lattes:          strPtr("http://lattes.cnpq.br/123"),
		ContactPublic:   strPtr("maria@lab.example.com"),
		ShowName:        true,
		ShowAffiliation: true,
		ShowContact:     true,
	}
}

func TestNewContributor_NilUser(t *testing.T) {
	assert.Nil(t, NewContributor(nil))
}

func TestNewContributor_AllVisible(t *testing.T) {
	c := NewContributor(baseUser())

	assert.Equal(t, uint(7), c.ID)
	assert.Equal(t, "Maria Silva", *c.Name)
	assert.Equal(t, "UFPE", *c.Affiliation)
	assert.Equal(t, "maria@lab.example.com", *c.Contact)
	assert.Equal(t, "Pesquisadora", *c.Role)
	assert.Equal(t, "Recife, PE, Brasil", *c.Location)
	assert.Equal(t, "http://lattes.cnpq.br/123", *c.Lattes)
}

func TestNewContributor_FlagGating(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*User)
		check  func(*testing.T, *Contributor)
	}{
		{
			name:   "showName false hides name regardless of value",
			mutate: func(u *User) { u.ShowName = false },
			check: func(t *testing.T, c *Contributor) {
				assert.Nil(t, c.Name)
			},
		},
		{
			name:   "showAffiliation false hides affiliation",
			mutate: func(u *User) { u.ShowAffiliation = false },
			check: func(t *testing.T, c *Contributor) {
				assert.Nil(t, c.Affiliation)
			},
		},
		{
			name:   "showContact false hides contact and never falls back to email",
			mutate: func(u *User) { u.ShowContact = false },
			check: func(t *testing.T, c *Contributor) {
				assert.Nil(t, c.Contact)
			},
		},
		{
			name: "all flags off still exposes id, role, location and lattes",
			mutate: func(u *User) {
				u.ShowName = false
				u.ShowAffiliation = false
				u.ShowContact = false
			},
			check: func(t *testing.T, c *Contributor) {
				assert.Nil(t, c.Name)
				assert.Nil(t, c.Affiliation)
				assert.Nil(t, c.Contact)
				assert.Equal(t, uint(7), c.ID)
				assert.NotNil(t, c.Role)
				assert.NotNil(t, c.Location)
				assert.NotNil(t, c.Lattes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := baseUser()
			tt.mutate(u)
			tt.check(t, NewContributor(u))
		})
	}
}

func TestNewContributor_Location(t *testing.T) {
	tests := []struct {
		name     string
		city     *string
		state    *string
		country  *string
		expected *string
	}{
		{"all parts", strPtr("Recife"), strPtr("PE"), strPtr("Brasil"), strPtr("Recife, PE, Brasil")},
		{"missing middle part", strPtr("Recife"), nil, strPtr("Brasil"), strPtr("Recife, Brasil")},
		{"single part", nil, nil, strPtr("Brasil"), strPtr("Brasil")},
		{"empty strings count as absent", strPtr(""), strPtr(""), strPtr(""), nil},
		{"all absent", nil, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := baseUser()
			u.City, u.State, u.Country = tt.city, tt.state, tt.country
			c := NewContributor(u)
			if tt.expected == nil {
				assert.Nil(t, c.Location)
			} else {
				assert.Equal(t, *tt.expected, *c.Location)
			}
		})
	}
}

func TestNewContributor_Deterministic(t *testing.T) {
	u := baseUser()
	first := NewContributor(u)
	second := NewContributor(u)
	assert.Equal(t, first, second)
}
