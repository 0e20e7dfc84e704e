package gallery

import (
	"github.com/avolkov/go-tether-sync/models"
	"github.com/google/uuid"
)

// Variants returns a copy of the full authoritative variant set in arrival
// order.
func (e *Engine) Variants() []models.Variant {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Variant, len(e.variants))
	copy(out, e.variants)
	return out
}

// DisplayedVariants returns the variants exposed to the presentation layer.
// With the selects-only filter active, only variants rated at or above the
// selects threshold are included. The stored set is never altered.
func (e *Engine) DisplayedVariants() []models.Variant {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.selectsOnly {
		out := make([]models.Variant, len(e.variants))
		copy(out, e.variants)
		return out
	}

	out := make([]models.Variant, 0, len(e.variants))
	for _, v := range e.variants {
		if v.Rating >= selectsRatingThreshold {
			out = append(out, v)
		}
	}
	return out
}

// SelectsCount returns the number of variants rated at or above the selects
// threshold.
func (e *Engine) SelectsCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, v := range e.variants {
		if v.Rating >= selectsRatingThreshold {
			n++
		}
	}
	return n
}

// SetSelectsOnly toggles the read-time rating filter.
func (e *Engine) SetSelectsOnly(on bool) {
	e.mu.Lock()
	e.selectsOnly = on
	e.mu.Unlock()
}

// SelectsOnly reports whether the rating filter is active.
func (e *Engine) SelectsOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectsOnly
}

// Variant returns the stored variant with the given id.
func (e *Engine) Variant(id uuid.UUID) (models.Variant, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, v := range e.variants {
		if v.ID == id {
			return v, true
		}
	}
	return models.Variant{}, false
}

// IsEmpty reports whether the collection holds no variants.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.variants) == 0
}

// Properties returns the current collection properties.
func (e *Engine) Properties() models.CollectionProperties {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.props
}

// CollectionName returns the selected folder name.
func (e *Engine) CollectionName() string {
	return e.Properties().SelectedFolder
}

// CanSetRating reports the server-granted rating permission.
func (e *Engine) CanSetRating() bool {
	return e.Properties().CanSetRating
}

// CanSetColorTag reports the server-granted color-tag permission.
func (e *Engine) CanSetColorTag() bool {
	return e.Properties().CanSetColorTag
}
