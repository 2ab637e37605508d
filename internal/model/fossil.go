package model

import "time"

// Fossil represents a catalogued plant fossil specimen.
type Fossil struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Especie     string  `json:"especie" gorm:"size:255;not null;index"`
	Familia     string  `json:"familia" gorm:"size:255;not null;index"`
	Periodo     string  `json:"periodo" gorm:"size:100;not null;index"`
	Localizacao string  `json:"localizacao" gorm:"size:255;not null"`
	Descricao   *string `json:"descricao" gorm:"type:text"`
	ImageURL    *string `json:"imageUrl" gorm:"size:500"`

	// Owner is set at creation and never changes. The association is loaded
	// only for the public detail response and is never serialized raw.
	UserID uint  `json:"userId" gorm:"not null;index"`
	User   *User `json:"-" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"createdAt"`
}
