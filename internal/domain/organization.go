package domain

import "time"

type Organization struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OwnerID     int64     `json:"ownerId"`
	Description *string   `json:"description,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	Website     *string   `json:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
