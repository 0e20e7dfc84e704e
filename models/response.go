// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Volkov

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variant change kinds pushed by the server. "modified" only signals that
// pixels changed (cache must be invalidated); field updates arrive in a
// separate "metadata" record. The two kinds must never be merged.
const (
	ChangeTypeNew      = "new"
	ChangeTypeModified = "modified"
	ChangeTypeMetadata = "metadata"
	ChangeTypeDeleted  = "deleted"
)

// ServerResponse is the top-level payload of both getServerState and
// getServerChanges. A nil Revision marks an empty long-poll tick.
type ServerResponse struct {
	Revision *int            `json:"revision"`
	Objects  []ServerObject  `json:"objects"`
	Variants []VariantChange `json:"variants"`
}

// ServerObject carries session-wide collection properties.
type ServerObject struct {
	ObjectType string           `json:"kObjectKey_ObjectType"`
	ChangeType string           `json:"kObjectKey_ChangeType"`
	Properties []ObjectProperty `json:"kObjectKey_Properties"`
}

// ObjectProperty is a single property entry of a ServerObject.
type ObjectProperty struct {
	PropertyID   string        `json:"kObjectProperty_PropertyID"`
	CurrentValue PropertyValue `json:"kObjectProperty_CurrentValue"`
	Permissions  string        `json:"kObjectProperty_Permissions"`
	ValueType    string        `json:"kObjectProperty_ValueType"`
}

// VariantChange is one incremental change record for a variant. VariantID and
// ImageID are composite ids of the form "<parentNumericId>/<uuid>".
type VariantChange struct {
	VariantID   string             `json:"kVariantKey_VariantID"`
	ChangeType  string             `json:"kVariantKey_ChangeType"`
	ImageID     string             `json:"kVariantKey_ImageID"`
	VariantName *string            `json:"kVariantKey_VariantName"`
	VariantNo   *int               `json:"kVariantKey_VariantNo"`
	Properties  *VariantProperties `json:"kVariantKey_Properties"`
}

// VariantProperties holds the optional per-variant fields of a change record.
// Absent fields stay nil so that metadata records can be applied partially.
type VariantProperties struct {
	Height       *Pixels `json:"kVariantProperty_Height"`
	Width        *Pixels `json:"kVariantProperty_Width"`
	Aperture     *string `json:"kVariantProperty_Aperture"`
	ColorTag     *int    `json:"kVariantProperty_Colortag"`
	Editable     *bool   `json:"kVariantProperty_Editable"`
	FocalLength  *string `json:"kVariantProperty_FocalLength"`
	ISO          *string `json:"kVariantProperty_ISO"`
	Rating       *int    `json:"kVariantProperty_Rating"`
	ShutterSpeed *string `json:"kVariantProperty_ShutterSpeed"`
}

// Pixels is a pixel dimension that the server may send as an integer, a
// floating-point number, or one of the literal strings "Infinity",
// "-Infinity", "NaN". Floating values are rounded to the nearest integer;
// non-finite values decode to zero (unknown dimension).
type Pixels int

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pixels) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode pixel string: %w", err)
		}
		switch s {
		case "Infinity", "-Infinity", "NaN":
			*p = 0
			return nil
		}
		return fmt.Errorf("unexpected pixel value %q", s)
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("decode pixel number: %w", err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		*p = 0
		return nil
	}

	*p = Pixels(int(math.Round(f)))
	return nil
}

// Int returns the dimension as a plain int.
func (p Pixels) Int() int { return int(p) }

// ValueKind discriminates the concrete type held by a PropertyValue.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
)

// PropertyValue is a tagged union over the JSON scalars the server uses for
// loosely-typed object property values.
type PropertyValue struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// UnmarshalJSON implements json.Unmarshaler. It inspects the raw token and
// decodes exactly one of string, integer, float, or bool. Null and anything
// non-scalar decode to an empty string value.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = PropertyValue{Kind: ValueString}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode property string: %w", err)
		}
		*v = PropertyValue{Kind: ValueString, Str: s}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode property bool: %w", err)
		}
		*v = PropertyValue{Kind: ValueBool, Bool: b}
	case 'n', '{', '[':
		*v = PropertyValue{Kind: ValueString}
	default:
		if i, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*v = PropertyValue{Kind: ValueInt, Int: i}
			return nil
		}
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("decode property number: %w", err)
		}
		*v = PropertyValue{Kind: ValueFloat, Float: f}
	}

	return nil
}

// StringValue renders the value as a display string.
func (v PropertyValue) StringValue() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return v.Str
	}
}

// IntValue returns the value as an int when it holds an integer or an
// integer-formatted string.
func (v PropertyValue) IntValue() (int, bool) {
	switch v.Kind {
	case ValueInt:
		return int(v.Int), true
	case ValueString:
		i, err := strconv.Atoi(v.Str)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// BoolValue coerces the value to a bool. String values "true", "1" and
// "enabled" (case-insensitive) count as true, integers are true when
// non-zero.
func (v PropertyValue) BoolValue() bool {
	switch v.Kind {
	case ValueBool:
		return v.Bool
	case ValueInt:
		return v.Int != 0
	case ValueString:
		return strings.EqualFold(v.Str, "true") || v.Str == "1" || strings.EqualFold(v.Str, "enabled")
	}
	return false
}
