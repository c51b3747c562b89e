package models

type Venue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Pitch is the finest-grained bookable resource. Reference data: the
// scheduler reads it, never mutates it.
type Pitch struct {
	ID        int    `json:"id"`
	VenueID   int    `json:"venue_id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
