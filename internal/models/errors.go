package models

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is;
// everything else surfaces as a generic 500.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardExists       = errors.New("reward already exists")
	ErrOutOfStock         = errors.New("reward is out of stock")
	ErrInsufficientPoints = errors.New("insufficient points")

	ErrCodeNotFound        = errors.New("code not found")
	ErrCodeAlreadyRedeemed = errors.New("code already redeemed")

	ErrNegativePoints = errors.New("points balance cannot go negative")

	ErrTokenNotFound = errors.New("token not found")
)
