package models

import (
	"errors"
	"strings"
	"time"
)

// Gig is a service offering listed by a user. Price is in minor currency
// units. CreatedAt is assigned by the store on insert.
type Gig struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Gig) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("title required")
	}
	if strings.TrimSpace(g.UserID) == "" {
		return errors.New("user_id required")
	}
	if g.Price < 0 {
		return errors.New("price must be >= 0")
	}
	return nil
}
