package models

// Code is a promotional code redeemable for a fixed number of points.
// Codes are seeded once and read-only afterwards; each user may apply a
// given code at most once (tracked in redeemed_codes).
type Code struct {
	Code   string `json:"code"`
	Points int    `json:"points"`
}

// CodeApplication carries the outcome of applying a promo code
type CodeApplication struct {
	Granted int `json:"points"`
	Total   int `json:"total"`
}
