package models

import "time"

// Dynasty is one league save. A dynasty runs exactly one playoff
// tournament per season, owned by a single principal.
type Dynasty struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	OwnerEmail   string    `json:"owner_email" db:"owner_email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Season       int       `json:"season" db:"season"`
	CurrentDate  time.Time `json:"current_date" db:"current_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
