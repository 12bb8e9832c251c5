package catalog

import (
	"errors"
	"strings"
)

// Review is a user-submitted rating of a framework.
//
// Reviews are part of the data model only; no operation exposes them yet.
type Review struct {
	ID          int64  `json:"id"`
	FrameworkID int64  `json:"frameworkId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	Author      string `json:"author"`
}

// Clone returns a copy of the Review.
func (r *Review) Clone() *Review {
	c := *r
	return &c
}

// GetID returns the Review's ID.
func (r *Review) GetID() int64 {
	return r.ID
}

// SetID sets the Review's ID.
func (r *Review) SetID(id int64) {
	r.ID = id
}

// Validate checks that the Review is valid.
func (r *Review) Validate() error {
	if r.FrameworkID <= 0 {
		return errors.New("framework id must be positive")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if strings.TrimSpace(r.Author) == "" {
		return errors.New("author is required")
	}
	return nil
}
