package model

import "time"

// Admin describes an operator account allowed to drive order transitions.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
