package models

import "time"

// Marker is a saved point of interest, persisted by the marker store and listed in insertion order.
type Marker struct {
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
