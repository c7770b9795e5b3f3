package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidPayload required field missing or of the wrong kind
	ErrInvalidPayload ErrorCode = 100001

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrTokenNotFound no token
	ErrTokenNotFound ErrorCode = 100101
	// ErrPositionNotFound a referenced position does not exist
	ErrPositionNotFound ErrorCode = 100102
	// ErrInvalidAmount amount not a positive integer
	ErrInvalidAmount ErrorCode = 100103
	// ErrInterestAnomaly computed interest multiplier outside sane bounds
	ErrInterestAnomaly ErrorCode = 100104
	// ErrBadPriceFeed oracle decimal exponent out of range
	ErrBadPriceFeed ErrorCode = 100105
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
