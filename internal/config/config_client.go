package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is the client version string.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ProtocolVersion is the protocol tag sent with connectToService.
	ProtocolVersion string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// PollTimeout is the extended timeout for the getServerChanges long poll.
	PollTimeout time.Duration
}

// ClientServer identifies the target Capture server.
type ClientServer struct {
	// Host is the server host name or IP address.
	Host string
	// Port is the server control port.
	Port int
	// Password is the optional session password (plain text; hashed by the
	// adapter before transmission).
	Password string
}

// ClientDiscovery holds static discovery candidates.
type ClientDiscovery struct {
	// Candidates is a list of "host:port" entries.
	Candidates []string
}

// ClientCache bounds the image cache tiers.
type ClientCache struct {
	ThumbnailEntries int
	ThumbnailCost    int64
	PreviewEntries   int
	PreviewCost      int64
	ThumbnailEdge    int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App       ClientApp
	Adapter   ClientAdapter
	Server    ClientServer
	Discovery ClientDiscovery
	Cache     ClientCache
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			ProtocolVersion: cfg.Adapter.ProtocolVersion,
			RequestTimeout:  cfg.Adapter.RequestTimeout,
			PollTimeout:     cfg.Adapter.PollTimeout,
		},
		Server: ClientServer{
			Host:     cfg.Server.Host,
			Port:     cfg.Server.Port,
			Password: cfg.Server.Password,
		},
		Discovery: ClientDiscovery{
			Candidates: cfg.Discovery.Candidates,
		},
		Cache: ClientCache{
			ThumbnailEntries: cfg.Cache.ThumbnailEntries,
			ThumbnailCost:    cfg.Cache.ThumbnailCost,
			PreviewEntries:   cfg.Cache.PreviewEntries,
			PreviewCost:      cfg.Cache.PreviewCost,
			ThumbnailEdge:    cfg.Cache.ThumbnailEdge,
		},
	}, nil
}
