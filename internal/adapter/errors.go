package adapter

import "errors"

var (
	// ErrAuthenticationFailed maps HTTP 401 from connectToService. Not
	// retried automatically; the owning layer should re-prompt for the
	// password.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrConnectionFailed covers unreachable servers, non-200 connect
	// responses, and calls issued without a live session.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrServerDisconnected is surfaced when the server drops an
	// established session.
	ErrServerDisconnected = errors.New("server disconnected")

	// ErrTimeout marks a request that exceeded its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrSyncFailed is the terminal signal emitted after the resync
	// attempt budget is exhausted.
	ErrSyncFailed = errors.New("synchronization failed")

	// ErrInvalidResponse marks a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid server response")
)
