package model

import "time"

// Merch represents a merchandise item. The Printify ID links the item to the
// print-on-demand product it is fulfilled from and doubles as the secondary
// uniqueness dimension besides the (case-insensitive) name.
type Merch struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Image      string    `json:"image"`
	PrintifyID string    `json:"printifyId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
