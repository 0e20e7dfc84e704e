package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/avolkov/go-tether-sync/internal/config"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/internal/utils"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/go-resty/resty/v2"
)

// Property identifiers understood by setProperty.
const (
	objectTypeImageAdjustments = "kObjectType_ImageAdjustments"
	propertyIDRating           = "kImageAdjustmentProperty_Rating"
	propertyIDColorTag         = "kImageAdjustmentProperty_ColorTag"
)

const defaultProtocolVersion = "2.4"

type sessionClient struct {
	client *resty.Client

	protocolVersion string
	requestTimeout  time.Duration
	pollTimeout     time.Duration

	mu        sync.RWMutex
	sessionID int
	baseURL   string

	logger *logger.Logger
}

// NewSessionClient constructs the HTTP implementation of [SessionAPI].
//
// The underlying resty client carries no client-level timeout: getServerChanges
// is a long-poll held open by the server, so every call gets a per-request
// context deadline instead (adapterCfg.RequestTimeout for regular calls,
// adapterCfg.PollTimeout for the long poll).
func NewSessionClient(adapterCfg config.ClientAdapter, log *logger.Logger) SessionAPI {
	c := &sessionClient{
		client:          resty.New(),
		protocolVersion: adapterCfg.ProtocolVersion,
		requestTimeout:  adapterCfg.RequestTimeout,
		pollTimeout:     adapterCfg.PollTimeout,
		logger:          log,
	}

	if c.protocolVersion == "" {
		c.protocolVersion = defaultProtocolVersion
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = 15 * time.Second
	}
	if c.pollTimeout <= 0 {
		c.pollTimeout = 90 * time.Second
	}

	return c
}

// Connect implements [SessionAPI].
func (c *sessionClient) Connect(ctx context.Context, host string, port int, password string) (int, error) {
	baseURL := fmt.Sprintf("http://%s:%d", host, port)

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("protocolVersion", c.protocolVersion).
		SetQueryParam("timestamp", utils.TimestampMillis())
	if password != "" {
		req.SetQueryParam("password", utils.SHA1Hex(password))
	}

	resp, err := req.Post(baseURL + "/connectToService")
	if err != nil {
		return 0, fmt.Errorf("connect request: %w", mapTransportError(err))
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return 0, ErrAuthenticationFailed
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("%w: http %d", ErrConnectionFailed, resp.StatusCode())
	}

	body := resp.Body()
	if !utf8.Valid(body) {
		return 0, fmt.Errorf("%w: connect body is not text", ErrInvalidResponse)
	}

	id, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad session id %q", ErrConnectionFailed, strings.TrimSpace(string(body)))
	}

	c.mu.Lock()
	c.sessionID = id
	c.baseURL = baseURL
	c.mu.Unlock()

	c.logger.Info().Int("sessionID", id).Str("server", baseURL).Msg("session established")
	return id, nil
}

// Disconnect implements [SessionAPI]. Idempotent.
func (c *sessionClient) Disconnect() {
	c.mu.Lock()
	c.sessionID = 0
	c.baseURL = ""
	c.mu.Unlock()
}

// SessionID implements [SessionAPI].
func (c *sessionClient) SessionID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// IsConnected implements [SessionAPI].
func (c *sessionClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID > 0 && c.baseURL != ""
}

// GetServerState implements [SessionAPI].
func (c *sessionClient) GetServerState(ctx context.Context) (models.ServerResponse, error) {
	return c.getResponse(ctx, "getServerState", c.requestTimeout)
}

// GetServerChanges implements [SessionAPI]. The extended deadline leaves the
// server room to hold the request open until a change occurs.
func (c *sessionClient) GetServerChanges(ctx context.Context) (models.ServerResponse, error) {
	return c.getResponse(ctx, "getServerChanges", c.pollTimeout)
}

func (c *sessionClient) getResponse(ctx context.Context, path string, timeout time.Duration) (models.ServerResponse, error) {
	base, sessionID, err := c.session()
	if err != nil {
		return models.ServerResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("sessionID", strconv.Itoa(sessionID)).
		SetQueryParam("timestamp", utils.TimestampMillis()).
		Get(base + "/" + path)
	if err != nil {
		return models.ServerResponse{}, fmt.Errorf("%s request: %w", path, mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerResponse{}, err
	}

	var sr models.ServerResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.ServerResponse{}, fmt.Errorf("%w: decode %s: %s", ErrInvalidResponse, path, err)
	}

	return sr, nil
}

// GetImage implements [SessionAPI].
func (c *sessionClient) GetImage(ctx context.Context, compositeID string, width, height int, crop CropEdges) ([]byte, error) {
	base, sessionID, err := c.session()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sessionID": strconv.Itoa(sessionID),
			"id":        compositeID,
			"width":     strconv.Itoa(width),
			"height":    strconv.Itoa(height),
			"top":       strconv.Itoa(crop.Top),
			"bottom":    strconv.Itoa(crop.Bottom),
			"left":      strconv.Itoa(crop.Left),
			"right":     strconv.Itoa(crop.Right),
			"timestamp": utils.TimestampMillis(),
		}).
		Get(base + "/getImage")
	if err != nil {
		return nil, fmt.Errorf("getImage request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeImagePayload(resp.Body())
}

// SetRating implements [SessionAPI].
func (c *sessionClient) SetRating(ctx context.Context, variant models.Variant, rating int) error {
	return c.setProperty(ctx, objectTypeImageAdjustments, variant.CompositeID, propertyIDRating, strconv.Itoa(rating))
}

// SetColorTag implements [SessionAPI].
func (c *sessionClient) SetColorTag(ctx context.Context, variant models.Variant, tag models.ColorTag) error {
	return c.setProperty(ctx, objectTypeImageAdjustments, variant.CompositeID, propertyIDColorTag, strconv.Itoa(int(tag)))
}

func (c *sessionClient) setProperty(ctx context.Context, objectType, objectID, propertyID, value string) error {
	base, sessionID, err := c.session()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sessionID":     strconv.Itoa(sessionID),
			"objectType":    objectType,
			"objectID":      objectID,
			"propertyID":    propertyID,
			"propertyValue": value,
			"timestamp":     utils.TimestampMillis(),
		}).
		Get(base + "/setProperty")
	if err != nil {
		return fmt.Errorf("setProperty request: %w", mapTransportError(err))
	}

	return mapHTTPError(resp)
}

func (c *sessionClient) session() (string, int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.sessionID <= 0 || c.baseURL == "" {
		return "", 0, fmt.Errorf("%w: no live session", ErrConnectionFailed)
	}
	return c.baseURL, c.sessionID, nil
}

// decodeImagePayload unpacks a getImage body. The server normally returns the
// image as base64 text, optionally with a data-URL prefix; raw bytes are the
// fallback. A body that starts with "HTTP/" is a tunnelled error page.
func decodeImagePayload(body []byte) ([]byte, error) {
	if !utf8.Valid(body) {
		return body, nil
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "HTTP/") {
		return nil, fmt.Errorf("%w: error payload in image response", ErrInvalidResponse)
	}

	if strings.HasPrefix(text, "data:") {
		if i := strings.IndexByte(text, ','); i >= 0 {
			text = text[i+1:]
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, text)

	if decoded, err := base64.StdEncoding.DecodeString(cleaned); err == nil {
		return decoded, nil
	}

	return body, nil
}

func mapTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	default:
		return err
	}
}
