package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort       = errors.New("server port must be in range 1-65535")
	ErrInvalidTimeout    = errors.New("timeouts must be positive")
	ErrInvalidCacheLimit = errors.New("cache limits must be positive")
)

func (c *StructuredConfig) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}

	if c.Adapter.RequestTimeout <= 0 || c.Adapter.PollTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Adapter.PollTimeout < c.Adapter.RequestTimeout {
		return fmt.Errorf("%w: poll timeout shorter than request timeout", ErrInvalidTimeout)
	}

	if c.Cache.ThumbnailEntries <= 0 || c.Cache.ThumbnailCost <= 0 ||
		c.Cache.PreviewEntries <= 0 || c.Cache.PreviewCost <= 0 ||
		c.Cache.ThumbnailEdge <= 0 {
		return ErrInvalidCacheLimit
	}

	return nil
}
