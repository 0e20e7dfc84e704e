// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Variant is one renderable unit of the collection. A parent image may have
// several variants (e.g. edited versions); SiblingCount tracks how many
// variants share the same parent image.
//
// CompositeID and ImageCompositeID keep the original server-supplied
// "<parentNumericId>/<uuid>" strings because subsequent API calls address
// variants by the composite form, not by the bare UUID.
type Variant struct {
	ID               uuid.UUID
	ImageID          uuid.UUID
	CompositeID      string
	ImageCompositeID string

	Name         string
	Number       int
	SiblingCount int

	Rating   int
	ColorTag ColorTag
	Editable bool

	Aperture     string
	ISO          string
	ShutterSpeed string
	FocalLength  string

	Width  int
	Height int
}

// ParseCompositeID extracts the UUID part of a composite id such as
// "920/11935784-7C0B-426F-ABD6-F92D72E857AE". The substring after the last
// '/' must parse as a UUID.
func ParseCompositeID(composite string) (uuid.UUID, error) {
	part := composite
	if i := strings.LastIndex(composite, "/"); i >= 0 {
		part = composite[i+1:]
	}

	id, err := uuid.Parse(part)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse composite id %q: %w", composite, err)
	}
	return id, nil
}

// DisplayName returns the variant name, suffixed with the 1-based variant
// number when the parent image has more than one variant.
func (v Variant) DisplayName() string {
	if v.SiblingCount > 1 {
		return fmt.Sprintf("%s (%d)", v.Name, v.Number+1)
	}
	return v.Name
}

// EncodedID returns the composite id percent-encoded for use inside a query
// string. Slashes stay literal, apostrophes become %27.
func (v Variant) EncodedID() string {
	esc := url.QueryEscape(v.CompositeID)
	esc = strings.ReplaceAll(esc, "%2F", "/")
	esc = strings.ReplaceAll(esc, "+", "%20")
	return esc
}

// AspectRatio returns width/height, defaulting to 1 when dimensions are
// unknown.
func (v Variant) AspectRatio() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1.0
	}
	return float64(v.Width) / float64(v.Height)
}

// EXIFSummary joins the non-empty EXIF fields for display,
// e.g. "f/2.8 · 1/250 · ISO 400 · 85mm".
func (v Variant) EXIFSummary() string {
	parts := make([]string, 0, 4)
	if v.Aperture != "" {
		parts = append(parts, v.Aperture)
	}
	if v.ShutterSpeed != "" {
		parts = append(parts, v.ShutterSpeed)
	}
	if v.ISO != "" {
		parts = append(parts, "ISO "+v.ISO)
	}
	if v.FocalLength != "" {
		parts = append(parts, v.FocalLength)
	}
	return strings.Join(parts, " · ")
}
