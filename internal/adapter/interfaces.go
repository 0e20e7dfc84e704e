package adapter

import (
	"context"

	"github.com/avolkov/go-tether-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_api_mock.go -package=mock

// CropEdges selects a rectangular crop for getImage. Zero values mean no
// crop.
type CropEdges struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// SessionAPI is the session-scoped client for one Capture tethering server.
// Implementations own the session id and base address; exactly one session
// is live per instance.
type SessionAPI interface {
	// Connect establishes a session against host:port. password may be
	// empty; when set it is sent as a hex SHA-1 digest. Returns the
	// positive session id on success. Fails with ErrAuthenticationFailed
	// on HTTP 401, ErrInvalidResponse when the body is not decodable
	// text, and ErrConnectionFailed otherwise.
	Connect(ctx context.Context, host string, port int, password string) (int, error)

	// Disconnect clears the session id and base address. Idempotent.
	Disconnect()

	// SessionID returns the current session id, or 0 when disconnected.
	SessionID() int

	// IsConnected reports whether a session is live.
	IsConnected() bool

	// GetServerState fetches the full authoritative snapshot. Used for
	// the initial load and for resync.
	GetServerState(ctx context.Context) (models.ServerResponse, error)

	// GetServerChanges is the long-poll call. The server holds the
	// request open until a change occurs or its own timeout elapses, in
	// which case the response carries no revision.
	GetServerChanges(ctx context.Context) (models.ServerResponse, error)

	// GetImage fetches a rendered image for the composite variant id at
	// the requested size. The payload is decoded from the server's
	// base64 text encoding, falling back to the raw bytes.
	GetImage(ctx context.Context, compositeID string, width, height int, crop CropEdges) ([]byte, error)

	// SetRating pushes a star rating (0-5) for the variant. Fire and
	// forget: the server echoes the change back through the change
	// stream; local state is not touched.
	SetRating(ctx context.Context, variant models.Variant, rating int) error

	// SetColorTag pushes a color tag for the variant. Same fire-and-forget
	// contract as SetRating.
	SetColorTag(ctx context.Context, variant models.Variant, tag models.ColorTag) error
}
