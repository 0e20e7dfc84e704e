package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration with JSON decoding from either a duration
// string ("90s") or a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// StructuredJSONConfig mirrors StructuredConfig with JSON field names.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Password string `json:"password"`
	} `json:"server,omitempty"`

	Adapter struct {
		ProtocolVersion string   `json:"protocol_version"`
		RequestTimeout  Duration `json:"request_timeout"`
		PollTimeout     Duration `json:"poll_timeout"`
	} `json:"adapter,omitempty"`

	Discovery struct {
		Candidates []string `json:"candidates"`
	} `json:"discovery,omitempty"`

	Cache struct {
		ThumbnailEntries int   `json:"thumbnail_entries"`
		ThumbnailCost    int64 `json:"thumbnail_cost"`
		PreviewEntries   int   `json:"preview_entries"`
		PreviewCost      int64 `json:"preview_cost"`
		ThumbnailEdge    int   `json:"thumbnail_edge"`
	} `json:"cache,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Server: Server{
			Host:     jsonCfg.Server.Host,
			Port:     jsonCfg.Server.Port,
			Password: jsonCfg.Server.Password,
		},
		Adapter: Adapter{
			ProtocolVersion: jsonCfg.Adapter.ProtocolVersion,
			RequestTimeout:  time.Duration(jsonCfg.Adapter.RequestTimeout),
			PollTimeout:     time.Duration(jsonCfg.Adapter.PollTimeout),
		},
		Discovery: Discovery{
			Candidates: jsonCfg.Discovery.Candidates,
		},
		Cache: Cache{
			ThumbnailEntries: jsonCfg.Cache.ThumbnailEntries,
			ThumbnailCost:    jsonCfg.Cache.ThumbnailCost,
			PreviewEntries:   jsonCfg.Cache.PreviewEntries,
			PreviewCost:      jsonCfg.Cache.PreviewCost,
			ThumbnailEdge:    jsonCfg.Cache.ThumbnailEdge,
		},
	}, nil
}
