package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Client struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Contact string  `json:"contact"`
	Rate    float64 `json:"rate"` // hourly rate applied to this client's entries
}

// NewClient creates a new client with required fields
func NewClient(name, contact string, rate float64) *Client {
	return &Client{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Contact: strings.TrimSpace(contact),
		Rate:    rate,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if c.Rate < 0 {
		return errors.New("hourly rate cannot be negative")
	}
	return nil
}
