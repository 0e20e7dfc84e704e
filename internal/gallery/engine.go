// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

// Package gallery owns the local variant collection and merges incremental
// change batches into it.
//
// The engine is single-writer: Apply and ApplySnapshot must be called from
// one goroutine (the dispatch loop in internal/client). Readers observe only
// fully applied batches.
package gallery

import (
	"sync"

	"github.com/avolkov/go-tether-sync/internal/logger"
	"github.com/avolkov/go-tether-sync/models"
	"github.com/google/uuid"
)

// selectsRatingThreshold is the minimum rating for the "selects only" view.
const selectsRatingThreshold = 3

// Notifier receives batched change notifications, at most one call per batch
// kind per applied response. Empty batches are not delivered.
type Notifier interface {
	VariantsAdded(variants []models.Variant)
	VariantsRemoved(ids []uuid.UUID)
	VariantsModified(ids []uuid.UUID)
}

// CacheInvalidator is the hook into the image cache. Modified variants drop
// both tiers; deletions only need the thumbnail gone.
type CacheInvalidator interface {
	InvalidateAll(id uuid.UUID)
	InvalidateThumbnail(id uuid.UUID)
}

// Engine merges server change batches into the local collection.
type Engine struct {
	logger *logger.Logger

	mu          sync.RWMutex
	variants    []models.Variant
	props       models.CollectionProperties
	selectsOnly bool

	notifier Notifier
	cache    CacheInvalidator
}

// New creates an empty engine. notifier and cache may be nil.
func New(log *logger.Logger, notifier Notifier, cache CacheInvalidator) *Engine {
	return &Engine{
		logger:   log,
		props:    models.DefaultCollectionProperties(),
		notifier: notifier,
		cache:    cache,
	}
}

// Apply merges one incremental change batch. Deletions are committed before
// insertions, so a same-batch delete can never erase a same-batch insert.
func (e *Engine) Apply(resp models.ServerResponse) {
	e.merge(resp, false)
}

// ApplySnapshot replaces the whole collection with a full-state response.
// Used after a resync, where intermediate diffs are unrecoverable.
func (e *Engine) ApplySnapshot(resp models.ServerResponse) {
	e.merge(resp, true)
}

// Reset drops all variants and restores default collection properties. Used
// when polling stops or the session ends.
func (e *Engine) Reset() {
	e.mu.Lock()
	removed := variantIDs(e.variants)
	e.variants = nil
	e.props.Reset()
	e.mu.Unlock()

	if e.notifier != nil && len(removed) > 0 {
		e.notifier.VariantsRemoved(removed)
	}
}

func (e *Engine) merge(resp models.ServerResponse, snapshot bool) {
	var (
		added    []models.Variant
		modified []uuid.UUID
		deleted  []uuid.UUID
	)

	e.mu.Lock()

	var removed []uuid.UUID
	if snapshot {
		removed = variantIDs(e.variants)
		e.variants = nil
	}

	e.props.Update(resp.Objects)

	for _, change := range resp.Variants {
		id, err := models.ParseCompositeID(change.VariantID)
		if err != nil {
			e.logger.Warn().Str("variantID", change.VariantID).Err(err).Msg("dropping change record with unparsable id")
			continue
		}

		switch change.ChangeType {
		case models.ChangeTypeNew:
			v, ok := e.buildVariant(id, change)
			if !ok {
				continue
			}
			added = append(added, v)

		case models.ChangeTypeModified:
			// Pixels changed; the fields arrive later in a metadata
			// record. Only the cache entry and the notification here.
			if e.cache != nil {
				e.cache.InvalidateAll(id)
			}
			modified = append(modified, id)

		case models.ChangeTypeMetadata:
			if e.updateMetadata(id, change) {
				modified = append(modified, id)
			}

		case models.ChangeTypeDeleted:
			deleted = append(deleted, id)

		default:
			e.logger.Warn().Str("changeType", change.ChangeType).Str("variantID", change.VariantID).Msg("ignoring unknown change type")
		}
	}

	if len(deleted) > 0 {
		e.removeVariants(deleted)
		removed = append(removed, deleted...)
	}

	if len(added) > 0 {
		e.variants = append(e.variants, added...)
	}

	if len(added) > 0 || len(removed) > 0 {
		e.recountSiblings()
		added = e.refreshAdded(added)
	}

	e.mu.Unlock()

	if e.notifier == nil {
		return
	}
	if len(removed) > 0 {
		e.notifier.VariantsRemoved(removed)
	}
	if len(added) > 0 {
		e.notifier.VariantsAdded(added)
	}
	if len(modified) > 0 {
		e.notifier.VariantsModified(modified)
	}
}

// buildVariant constructs a new variant from a "new" change record. Records
// without a parent image id are dropped.
func (e *Engine) buildVariant(id uuid.UUID, change models.VariantChange) (models.Variant, bool) {
	if change.ImageID == "" {
		e.logger.Warn().Str("variantID", change.VariantID).Msg("dropping new record without image id")
		return models.Variant{}, false
	}

	imageID, err := models.ParseCompositeID(change.ImageID)
	if err != nil {
		e.logger.Warn().Str("imageID", change.ImageID).Err(err).Msg("dropping new record with unparsable image id")
		return models.Variant{}, false
	}

	v := models.Variant{
		ID:               id,
		ImageID:          imageID,
		CompositeID:      change.VariantID,
		ImageCompositeID: change.ImageID,
		SiblingCount:     1,
		ColorTag:         models.ColorTagNone,
	}
	if change.VariantName != nil {
		v.Name = *change.VariantName
	}
	if change.VariantNo != nil {
		v.Number = *change.VariantNo
	}
	if p := change.Properties; p != nil {
		if p.Rating != nil {
			v.Rating = *p.Rating
		}
		if p.ColorTag != nil {
			v.ColorTag = models.ColorTagFromInt(*p.ColorTag)
		}
		if p.Editable != nil {
			v.Editable = *p.Editable
		}
		if p.Aperture != nil {
			v.Aperture = *p.Aperture
		}
		if p.ISO != nil {
			v.ISO = *p.ISO
		}
		if p.ShutterSpeed != nil {
			v.ShutterSpeed = *p.ShutterSpeed
		}
		if p.FocalLength != nil {
			v.FocalLength = *p.FocalLength
		}
		if p.Width != nil {
			v.Width = p.Width.Int()
		}
		if p.Height != nil {
			v.Height = p.Height.Int()
		}
	}

	return v, true
}

// updateMetadata applies the fields present in a metadata record to the
// matching variant. Absent fields keep their current values; records for
// unknown variants are ignored.
func (e *Engine) updateMetadata(id uuid.UUID, change models.VariantChange) bool {
	idx := -1
	for i := range e.variants {
		if e.variants[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	v := &e.variants[idx]
	if change.VariantName != nil {
		v.Name = *change.VariantName
	}
	if change.VariantNo != nil {
		v.Number = *change.VariantNo
	}
	if p := change.Properties; p != nil {
		if p.Rating != nil {
			v.Rating = *p.Rating
		}
		if p.ColorTag != nil {
			v.ColorTag = models.ColorTagFromInt(*p.ColorTag)
		}
		if p.Editable != nil {
			v.Editable = *p.Editable
		}
		if p.Aperture != nil {
			v.Aperture = *p.Aperture
		}
		if p.ISO != nil {
			v.ISO = *p.ISO
		}
		if p.ShutterSpeed != nil {
			v.ShutterSpeed = *p.ShutterSpeed
		}
		if p.FocalLength != nil {
			v.FocalLength = *p.FocalLength
		}
		if p.Width != nil {
			v.Width = p.Width.Int()
		}
		if p.Height != nil {
			v.Height = p.Height.Int()
		}
	}

	return true
}

func (e *Engine) removeVariants(ids []uuid.UUID) {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
		if e.cache != nil {
			e.cache.InvalidateThumbnail(id)
		}
	}

	kept := e.variants[:0]
	for _, v := range e.variants {
		if _, gone := drop[v.ID]; !gone {
			kept = append(kept, v)
		}
	}
	e.variants = kept
}

// recountSiblings recomputes SiblingCount for every variant from the current
// parent-image grouping.
func (e *Engine) recountSiblings() {
	counts := make(map[uuid.UUID]int, len(e.variants))
	for _, v := range e.variants {
		counts[v.ImageID]++
	}
	for i := range e.variants {
		e.variants[i].SiblingCount = counts[e.variants[i].ImageID]
	}
}

// refreshAdded re-reads the stored copies of freshly added variants so the
// notification carries up-to-date sibling counts.
func (e *Engine) refreshAdded(added []models.Variant) []models.Variant {
	byID := make(map[uuid.UUID]int, len(e.variants))
	for i, v := range e.variants {
		byID[v.ID] = i
	}

	out := added[:0]
	for _, v := range added {
		if i, ok := byID[v.ID]; ok {
			out = append(out, e.variants[i])
		}
	}
	return out
}

func variantIDs(variants []models.Variant) []uuid.UUID {
	if len(variants) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
	}
	return ids
}
