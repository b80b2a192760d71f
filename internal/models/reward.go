package models

// Reward represents a catalog reward with a finite stock
type Reward struct {
	Name     string `json:"name"`
	Points   int    `json:"points"` // cost in points
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// RedemptionResult carries the post-redemption balances back to the caller
type RedemptionResult struct {
	Points   int `json:"points"`   // user's remaining points
	Quantity int `json:"quantity"` // reward's remaining stock
}
