package domain

import "time"

// Shop owns customers and their ledgers.
type Shop struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Address   string
	IsActive  bool
}
