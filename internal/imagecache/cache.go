// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package imagecache is a two-tier bounded cache for rendered images.
//
// The thumbnail tier holds many small renders and is keyed by variant id
// alone (thumbnails are requested at one configured size, which keeps
// per-id invalidation precise). The preview tier holds few large renders
// keyed by id and requested size. Each tier is bounded by entry count and by
// an approximate byte cost of width*height*4 per entry.
package imagecache

import (
	"context"
	"fmt"

	"github.com/avolkov/go-tether-sync/internal/adapter"
	"github.com/avolkov/go-tether-sync/internal/config"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Purpose selects the cache tier for a fetch.
type Purpose string

const (
	PurposeThumbnail Purpose = "thumb"
	PurposePreview   Purpose = "preview"
)

// Size is a requested render size in pixels.
type Size struct {
	Width  int
	Height int
}

// preloadConcurrency caps concurrent warm-up fetches so a fresh collection
// does not storm the server.
const preloadConcurrency = 8

// Cache is the two-tier image cache. Safe for arbitrary concurrent use;
// concurrent misses for the same (id, purpose, size) collapse into a single
// network fetch.
type Cache struct {
	api    adapter.SessionAPI
	logger *logger.Logger

	thumbEdge  int
	thumbnails *tier
	previews   *tier

	group singleflight.Group
}

// New constructs a Cache bounded by cacheCfg.
func New(cacheCfg config.ClientCache, api adapter.SessionAPI, log *logger.Logger) (*Cache, error) {
	thumbs, err := newTier(cacheCfg.ThumbnailEntries, cacheCfg.ThumbnailCost)
	if err != nil {
		return nil, fmt.Errorf("thumbnail tier: %w", err)
	}
	previews, err := newTier(cacheCfg.PreviewEntries, cacheCfg.PreviewCost)
	if err != nil {
		return nil, fmt.Errorf("preview tier: %w", err)
	}

	return &Cache{
		api:        api,
		logger:     log,
		thumbEdge:  cacheCfg.ThumbnailEdge,
		thumbnails: thumbs,
		previews:   previews,
	}, nil
}

// ThumbnailSize returns the configured square thumbnail render size.
func (c *Cache) ThumbnailSize() Size {
	return Size{Width: c.thumbEdge, Height: c.thumbEdge}
}

// Fetch returns the cached image for the variant at the requested size,
// fetching it from the server on a miss.
func (c *Cache) Fetch(ctx context.Context, variant models.Variant, purpose Purpose, size Size) ([]byte, error) {
	t, key := c.locate(variant.ID, purpose, size)

	if data, ok := t.get(key); ok {
		return data, nil
	}

	// The singleflight key carries the size even for thumbnails, so two
	// callers racing on different sizes never share a result.
	sfKey := fmt.Sprintf("%s_%s_%dx%d", purpose, variant.ID, size.Width, size.Height)
	data, err, _ := c.group.Do(sfKey, func() (any, error) {
		if cached, ok := t.get(key); ok {
			return cached, nil
		}

		// The flight is shared with callers that join later, so it must not
		// die with the caller that opened it. The adapter still applies its
		// own per-request deadline.
		fetchCtx := context.WithoutCancel(ctx)
		img, err := c.api.GetImage(fetchCtx, variant.CompositeID, size.Width, size.Height, adapter.CropEdges{})
		if err != nil {
			return nil, fmt.Errorf("fetch %s for %s: %w", purpose, variant.ID, err)
		}

		t.add(key, img, int64(size.Width)*int64(size.Height)*4)
		return img, nil
	})
	if err != nil {
		return nil, err
	}

	return data.([]byte), nil
}

// InvalidateThumbnail drops the thumbnail entry for the variant.
func (c *Cache) InvalidateThumbnail(id uuid.UUID) {
	c.thumbnails.remove(thumbKey(id))
}

// InvalidateAll drops the thumbnail and any preview entries for the variant.
// Previews are keyed by size, so the tier is scanned by key prefix; the tier
// is small enough for that to stay cheap.
func (c *Cache) InvalidateAll(id uuid.UUID) {
	c.thumbnails.remove(thumbKey(id))
	c.previews.removePrefix(string(PurposePreview) + "_" + id.String() + "_")
}

// Clear empties both tiers. Used on full disconnect.
func (c *Cache) Clear() {
	c.thumbnails.purge()
	c.previews.purge()
}

// Preload warms the thumbnail tier for a batch of variants. Errors are
// swallowed; this is best effort.
func (c *Cache) Preload(ctx context.Context, variants []models.Variant, size Size) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)

	for _, v := range variants {
		v := v
		g.Go(func() error {
			if _, err := c.Fetch(ctx, v, PurposeThumbnail, size); err != nil {
				c.logger.Debug().Str("variant", v.ID.String()).Err(err).Msg("thumbnail preload failed")
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (c *Cache) locate(id uuid.UUID, purpose Purpose, size Size) (*tier, string) {
	if purpose == PurposePreview {
		return c.previews, fmt.Sprintf("%s_%s_%dx%d", PurposePreview, id, size.Width, size.Height)
	}
	return c.thumbnails, thumbKey(id)
}

func thumbKey(id uuid.UUID) string {
	return string(PurposeThumbnail) + "_" + id.String()
}
