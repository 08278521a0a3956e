package model

import "time"

// SynchronizationDirection says which side owns an element shared with an asset manager.
type SynchronizationDirection string

const (
	SyncBothDirections SynchronizationDirection = "BOTH_DIRECTIONS"
	SyncToThirdParty   SynchronizationDirection = "TO_THIRD_PARTY"
	SyncFromThirdParty SynchronizationDirection = "FROM_THIRD_PARTY"
	SyncOther          SynchronizationDirection = "OTHER"
)

// MetadataCorrelationProperties identify an element in a third party asset manager.
type MetadataCorrelationProperties struct {
	AssetManagerGUID           string                   `json:"assetManagerGUID,omitempty" bson:"assetManagerGUID,omitempty"`
	AssetManagerName           string                   `json:"assetManagerName,omitempty" bson:"assetManagerName,omitempty"`
	ExternalIdentifier         string                   `json:"externalIdentifier,omitempty" bson:"externalIdentifier,omitempty"`
	ExternalIdentifierName     string                   `json:"externalIdentifierName,omitempty" bson:"externalIdentifierName,omitempty"`
	ExternalIdentifierUsage    string                   `json:"externalIdentifierUsage,omitempty" bson:"externalIdentifierUsage,omitempty"`
	ExternalIdentifierSource   string                   `json:"externalIdentifierSource,omitempty" bson:"externalIdentifierSource,omitempty"`
	KeyPattern                 string                   `json:"keyPattern,omitempty" bson:"keyPattern,omitempty"`
	MappingProperties          map[string]string        `json:"mappingProperties,omitempty" bson:"mappingProperties,omitempty"`
	SynchronizationDirection   SynchronizationDirection `json:"synchronizationDirection,omitempty" bson:"synchronizationDirection,omitempty"`
	SynchronizationDescription string                   `json:"synchronizationDescription,omitempty" bson:"synchronizationDescription,omitempty"`
}

// AssetManager returns the asset manager identifiers, tolerating a nil receiver.
func (p *MetadataCorrelationProperties) AssetManager() (guid, name string) {
	if p == nil {
		return "", ""
	}
	return p.AssetManagerGUID, p.AssetManagerName
}

// HasExternalIdentifier reports whether p names both an asset manager and an external identifier.
func (p *MetadataCorrelationProperties) HasExternalIdentifier() bool {
	return p != nil && p.AssetManagerGUID != "" && p.ExternalIdentifier != ""
}

// MetadataCorrelationHeader is a recorded correlation between an element and an external identifier.
type MetadataCorrelationHeader struct {
	MetadataCorrelationProperties `bson:",inline"`
	LastSynchronized              time.Time `json:"lastSynchronized" bson:"lastSynchronized"`
}
