package models

import "strings"

// Object and property identifiers used by the collection-properties stream.
const (
	ObjectTypeCPServer     = "kObjectType_CPServer"
	serverPropertyPrefix   = "kServerProperty_"
	propSelectedFolder     = "SelectedFolder"
	propRatingPermission   = "Rating_Permission"
	propColorTagPermission = "ColorTag_Permission"
)

const defaultFolderName = "No Collection"

// CollectionProperties is session-wide metadata pushed by the server:
// the selected folder name and the rating / color-tag permissions.
type CollectionProperties struct {
	SelectedFolder string
	CanSetRating   bool
	CanSetColorTag bool
}

// DefaultCollectionProperties returns the zero state used before the first
// server push and after polling stops.
func DefaultCollectionProperties() CollectionProperties {
	return CollectionProperties{SelectedFolder: defaultFolderName}
}

// Update applies property objects of type kObjectType_CPServer on top of the
// current state. Last write wins per property key; unknown keys are ignored.
// Permission values are the string "enabled", case-insensitive.
func (p *CollectionProperties) Update(objects []ServerObject) {
	for _, obj := range objects {
		if obj.ObjectType != ObjectTypeCPServer {
			continue
		}

		for _, prop := range obj.Properties {
			key := strings.TrimPrefix(prop.PropertyID, serverPropertyPrefix)
			switch key {
			case propSelectedFolder:
				p.SelectedFolder = prop.CurrentValue.StringValue()
			case propRatingPermission:
				p.CanSetRating = strings.EqualFold(prop.CurrentValue.StringValue(), "enabled")
			case propColorTagPermission:
				p.CanSetColorTag = strings.EqualFold(prop.CurrentValue.StringValue(), "enabled")
			}
		}
	}
}

// Reset restores the defaults.
func (p *CollectionProperties) Reset() {
	*p = DefaultCollectionProperties()
}
