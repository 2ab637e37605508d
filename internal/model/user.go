package model

import "time"

// User represents a registered contributor account.
//
// JSON field names mirror the public API contract; the password hash is never
// serialized. Optional profile fields are pointers so an unset value persists
// as NULL rather than an empty string.
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Nome  string `json:"nome" gorm:"size:255;not null"`
	Email string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Senha string `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed

	// Public profile attributes, all optional.
	Role        *string `json:"role" gorm:"size:100"`
	Affiliation *string `json:"affiliation" gorm:"size:255"`
	City        *string `json:"city" gorm:"size:100"`
	State       *string `json:"state" gorm:"size:100"`
	Country     *string `json:"country" gorm:"size:100"`
	Lattes      *string `json:"lattes" gorm:"size:255"`

	// Visibility preferences for the public contributor projection.
	// Invariant: ShowContact implies a non-empty ContactPublic; enforced at
	// registration and profile update.
	ShowName        bool    `json:"showName" gorm:"default:true"`
	ShowAffiliation bool    `json:"showAffiliation" gorm:"default:true"`
	ShowContact     bool    `json:"showContact" gorm:"default:false"`
	ContactPublic   *string `json:"contactPublic" gorm:"size:255"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
