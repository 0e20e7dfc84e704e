package client

import (
	"context"

	"github.com/avolkov/go-tether-sync/internal/imagecache"
	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/google/uuid"
)

// PrefetchNotifier implements gallery.Notifier by warming the thumbnail tier
// for freshly added variants. Preloading runs in the background so the merge
// path never blocks on the network.
type PrefetchNotifier struct {
	cache  *imagecache.Cache
	logger *logger.Logger
}

// NewPrefetchNotifier creates a notifier backed by cache.
func NewPrefetchNotifier(cache *imagecache.Cache, log *logger.Logger) *PrefetchNotifier {
	return &PrefetchNotifier{cache: cache, logger: log}
}

// VariantsAdded implements gallery.Notifier.
func (n *PrefetchNotifier) VariantsAdded(variants []models.Variant) {
	n.logger.Debug().Int("count", len(variants)).Msg("variants added")

	batch := make([]models.Variant, len(variants))
	copy(batch, variants)
	go n.cache.Preload(context.Background(), batch, n.cache.ThumbnailSize())
}

// VariantsRemoved implements gallery.Notifier.
func (n *PrefetchNotifier) VariantsRemoved(ids []uuid.UUID) {
	n.logger.Debug().Int("count", len(ids)).Msg("variants removed")
}

// VariantsModified implements gallery.Notifier.
func (n *PrefetchNotifier) VariantsModified(ids []uuid.UUID) {
	n.logger.Debug().Int("count", len(ids)).Msg("variants modified")
}
