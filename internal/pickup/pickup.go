package pickup

import "errors"

var ErrNotFound = errors.New("pickup point not found")

// Point is a physical location where an order is collected. Reference
// data from the fulfillment engine's perspective.
type Point struct {
	ID          int     `json:"pickupPointId"`
	Address     string  `json:"address"`
	Description *string `json:"description,omitempty"`
}
