package models

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of POST /api/reset-password
type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

// CheckCodeRequest is the body of POST /api/check-code
type CheckCodeRequest struct {
	Code string `json:"code"`
}

// RedeemRequest is the body of POST /api/redeem.
// "rewardName" is accepted as a legacy alias for "name".
type RedeemRequest struct {
	Name       string `json:"name"`
	RewardName string `json:"rewardName"`
}

// AddPointsRequest is the body of POST /api/admin/add-points
type AddPointsRequest struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// UpdateQuantityRequest is the body of POST /api/admin/update-quantity
type UpdateQuantityRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
