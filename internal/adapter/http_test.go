// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

package adapter

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/avolkov/go-tether-sync/internal/config"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/internal/utils"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, r chi.Router) (host string, port int) {
	t.Helper()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err = strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func newTestClient() SessionAPI {
	return NewSessionClient(config.ClientAdapter{}, logger.Nop())
}

func testVariantWithComposite(composite string) models.Variant {
	return models.Variant{CompositeID: composite}
}

// connectedClient establishes a session against the router before returning.
func connectedClient(t *testing.T, r chi.Router) SessionAPI {
	t.Helper()

	r.Post("/connectToService", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("42"))
	})

	host, port := startServer(t, r)
	c := newTestClient()
	_, err := c.Connect(context.Background(), host, port, "")
	require.NoError(t, err)
	return c
}

// ── Connect ──────────────────────────────────────────────────────────────────

func TestSessionClient_Connect_Success(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/connectToService", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "2.4", q.Get("protocolVersion"))
		assert.Equal(t, utils.SHA1Hex("secret"), q.Get("password"), "пароль передаётся как SHA-1 hex")
		assert.NotEmpty(t, q.Get("timestamp"))

		_, _ = w.Write([]byte("42"))
	})

	host, port := startServer(t, r)
	c := newTestClient()

	id, err := c.Connect(context.Background(), host, port, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, 42, c.SessionID())
	assert.True(t, c.IsConnected())
}

func TestSessionClient_Connect_OmitsPasswordParamWhenEmpty(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/connectToService", func(w http.ResponseWriter, req *http.Request) {
		_, present := req.URL.Query()["password"]
		assert.False(t, present, "empty password must not be sent at all")
		_, _ = w.Write([]byte("7"))
	})

	host, port := startServer(t, r)
	c := newTestClient()

	_, err := c.Connect(context.Background(), host, port, "")
	require.NoError(t, err)
}

func TestSessionClient_Connect_Unauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/connectToService", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	host, port := startServer(t, r)
	c := newTestClient()

	_, err := c.Connect(context.Background(), host, port, "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.False(t, c.IsConnected())
}

func TestSessionClient_Connect_ServerError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/connectToService", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	host, port := startServer(t, r)
	c := newTestClient()

	_, err := c.Connect(context.Background(), host, port, "")
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestSessionClient_Connect_BadSessionID(t *testing.T) {
	for _, body := range []string{"abc", "0", "-5", ""} {
		t.Run("body "+strconv.Quote(body), func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/connectToService", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			host, port := startServer(t, r)
			c := newTestClient()

			_, err := c.Connect(context.Background(), host, port, "")
			assert.ErrorIs(t, err, ErrConnectionFailed)
			assert.False(t, c.IsConnected())
		})
	}
}

func TestSessionClient_Connect_UnreachableHost(t *testing.T) {
	c := newTestClient()
	// закрытый порт: соединение отклоняется
	_, err := c.Connect(context.Background(), "127.0.0.1", 1, "")
	assert.Error(t, err)
	assert.False(t, c.IsConnected())
}

// ── session guard ────────────────────────────────────────────────────────────

func TestSessionClient_CallsWithoutSessionFailFast(t *testing.T) {
	c := newTestClient()

	_, err := c.GetServerState(context.Background())
	assert.ErrorIs(t, err, ErrConnectionFailed)

	_, err = c.GetServerChanges(context.Background())
	assert.ErrorIs(t, err, ErrConnectionFailed)

	_, err = c.GetImage(context.Background(), "920/x", 100, 100, CropEdges{})
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestSessionClient_DisconnectDropsSession(t *testing.T) {
	c := connectedClient(t, chi.NewRouter())
	require.True(t, c.IsConnected())

	c.Disconnect()

	assert.False(t, c.IsConnected())
	assert.Zero(t, c.SessionID())

	_, err := c.GetServerState(context.Background())
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

// ── getServerState / getServerChanges ────────────────────────────────────────

func TestSessionClient_GetServerState(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/getServerState", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "42", req.URL.Query().Get("sessionID"))
		_, _ = w.Write([]byte(`{"revision": 12, "variants": []}`))
	})

	c := connectedClient(t, r)

	resp, err := c.GetServerState(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Revision)
	assert.Equal(t, 12, *resp.Revision)
}

func TestSessionClient_GetServerChanges_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthenticationFailed},
		{http.StatusGone, ErrServerDisconnected},
		{http.StatusServiceUnavailable, ErrServerDisconnected},
		{http.StatusRequestTimeout, ErrTimeout},
		{http.StatusGatewayTimeout, ErrTimeout},
		{http.StatusInternalServerError, ErrConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/getServerChanges", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			c := connectedClient(t, r)
			_, err := c.GetServerChanges(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSessionClient_GetServerState_InvalidJSON(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/getServerState", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	c := connectedClient(t, r)
	_, err := c.GetServerState(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSessionClient_GetServerState_Timeout(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/getServerState", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	})
	r.Post("/connectToService", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("42"))
	})

	host, port := startServer(t, r)
	c := NewSessionClient(config.ClientAdapter{
		RequestTimeout: 50 * time.Millisecond,
		PollTimeout:    60 * time.Millisecond,
	}, logger.Nop())

	_, err := c.Connect(context.Background(), host, port, "")
	require.NoError(t, err)

	_, err = c.GetServerState(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

// ── getImage ─────────────────────────────────────────────────────────────────

func TestSessionClient_GetImage_QueryParams(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	r := chi.NewRouter()
	r.Get("/getImage", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "920/11935784-7C0B-426F-ABD6-F92D72E857AE", q.Get("id"))
		assert.Equal(t, "800", q.Get("width"))
		assert.Equal(t, "600", q.Get("height"))
		assert.Equal(t, "10", q.Get("top"))
		assert.Equal(t, "20", q.Get("bottom"))
		assert.Equal(t, "30", q.Get("left"))
		assert.Equal(t, "40", q.Get("right"))
		assert.Equal(t, "42", q.Get("sessionID"))

		_, _ = w.Write([]byte(base64.StdEncoding.EncodeToString(raw)))
	})

	c := connectedClient(t, r)

	crop := CropEdges{Top: 10, Bottom: 20, Left: 30, Right: 40}
	img, err := c.GetImage(context.Background(), "920/11935784-7C0B-426F-ABD6-F92D72E857AE", 800, 600, crop)
	require.NoError(t, err)
	assert.Equal(t, raw, img)
}

func TestSessionClient_GetImage_DataURLPrefix(t *testing.T) {
	raw := []byte("picture")
	r := chi.NewRouter()
	r.Get("/getImage", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)))
	})

	c := connectedClient(t, r)

	img, err := c.GetImage(context.Background(), "920/x", 100, 100, CropEdges{})
	require.NoError(t, err)
	assert.Equal(t, raw, img)
}

func TestSessionClient_GetImage_TunnelledErrorPage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/getImage", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("HTTP/1.1 500 Internal Server Error\r\n\r\n"))
	})

	c := connectedClient(t, r)

	_, err := c.GetImage(context.Background(), "920/x", 100, 100, CropEdges{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSessionClient_GetImage_RawBinaryFallback(t *testing.T) {
	// невалидный UTF-8 — отдаём как есть
	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x80}
	r := chi.NewRouter()
	r.Get("/getImage", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(raw)
	})

	c := connectedClient(t, r)

	img, err := c.GetImage(context.Background(), "920/x", 100, 100, CropEdges{})
	require.NoError(t, err)
	assert.Equal(t, raw, img)
}

// ── setProperty ──────────────────────────────────────────────────────────────

func TestSessionClient_SetRating(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/setProperty", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "kObjectType_ImageAdjustments", q.Get("objectType"))
		assert.Equal(t, "kImageAdjustmentProperty_Rating", q.Get("propertyID"))
		assert.Equal(t, "4", q.Get("propertyValue"))
		assert.Equal(t, "920/abc", q.Get("objectID"))
		w.WriteHeader(http.StatusOK)
	})

	c := connectedClient(t, r)

	err := c.SetRating(context.Background(), testVariantWithComposite("920/abc"), 4)
	assert.NoError(t, err)
}

func TestSessionClient_SetColorTag(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/setProperty", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		assert.Equal(t, "kImageAdjustmentProperty_ColorTag", q.Get("propertyID"))
		assert.Equal(t, "5", q.Get("propertyValue"))
		w.WriteHeader(http.StatusOK)
	})

	c := connectedClient(t, r)

	err := c.SetColorTag(context.Background(), testVariantWithComposite("920/abc"), 5)
	assert.NoError(t, err)
}

func TestSessionClient_SetRating_MapsHTTPError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/setProperty", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	})

	c := connectedClient(t, r)

	err := c.SetRating(context.Background(), testVariantWithComposite("920/abc"), 1)
	assert.ErrorIs(t, err, ErrServerDisconnected)
}

// ── decodeImagePayload ───────────────────────────────────────────────────────

func TestDecodeImagePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		want    []byte
		wantErr bool
	}{
		{
			name: "plain base64",
			body: []byte(base64.StdEncoding.EncodeToString([]byte("img"))),
			want: []byte("img"),
		},
		{
			name: "base64 with whitespace",
			body: []byte("aW1n\n\t "),
			want: []byte("img"),
		},
		{
			name: "data url prefix",
			body: []byte("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("img"))),
			want: []byte("img"),
		},
		{
			name: "invalid utf8 passes through",
			body: []byte{0xff, 0xfe, 0x00},
			want: []byte{0xff, 0xfe, 0x00},
		},
		{
			name: "non-base64 text passes through",
			body: []byte("~~~not base64~~~"),
			want: []byte("~~~not base64~~~"),
		},
		{
			name:    "tunnelled http error",
			body:    []byte("HTTP/1.0 404 Not Found"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeImagePayload(tt.body)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
