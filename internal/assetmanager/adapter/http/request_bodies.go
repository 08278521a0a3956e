package http

import (
	"time"

	"asset-manager/internal/assetmanager/domain/model"
)

// AssetManagerIdentifiersRequestBody names the asset manager making the request.
type AssetManagerIdentifiersRequestBody struct {
	AssetManagerGUID string `json:"assetManagerGUID,omitempty"`
	AssetManagerName string `json:"assetManagerName,omitempty"`
}

// EffectiveTimeQueryRequestBody is the optional body of queries and removals.
type EffectiveTimeQueryRequestBody struct {
	AssetManagerIdentifiersRequestBody
	EffectiveTime *time.Time `json:"effectiveTime,omitempty"`
}

// ReferenceableRequestBody carries the properties of a new or updated element.
type ReferenceableRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	ElementProperties             *model.PolymorphicProperties         `json:"elementProperties,omitempty"`
	ParentGUID                    string                               `json:"parentGUID,omitempty"`
	EffectiveTime                 *time.Time                           `json:"effectiveTime,omitempty"`
}

// TemplateRequestBody carries the overrides for an element copied from a template.
type TemplateRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	ElementProperties             *model.TemplateProperties            `json:"elementProperties,omitempty"`
	ParentGUID                    string                               `json:"parentGUID,omitempty"`
}

// UpdateRequestBody identifies the caller's copy of an element being removed or republished.
type UpdateRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	EffectiveTime                 *time.Time                           `json:"effectiveTime,omitempty"`
}

// RelationshipRequestBody carries the properties of a relationship between two elements.
type RelationshipRequestBody struct {
	AssetManagerGUID string                       `json:"assetManagerGUID,omitempty"`
	AssetManagerName string                       `json:"assetManagerName,omitempty"`
	Properties       *model.PolymorphicProperties `json:"properties,omitempty"`
	EffectiveTime    *time.Time                   `json:"effectiveTime,omitempty"`
}

// ClassificationRequestBody carries the properties of a classification.
type ClassificationRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	Properties                    *model.PolymorphicProperties         `json:"properties,omitempty"`
	EffectiveTime                 *time.Time                           `json:"effectiveTime,omitempty"`
}

type SearchStringRequestBody struct {
	AssetManagerIdentifiersRequestBody
	SearchString              string     `json:"searchString,omitempty"`
	SearchStringParameterName string     `json:"searchStringParameterName,omitempty"`
	EffectiveTime             *time.Time `json:"effectiveTime,omitempty"`
}

type NameRequestBody struct {
	AssetManagerIdentifiersRequestBody
	Name              string     `json:"name,omitempty"`
	NameParameterName string     `json:"nameParameterName,omitempty"`
	EffectiveTime     *time.Time `json:"effectiveTime,omitempty"`
}

type GlossaryTermStatusRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	GlossaryTermStatus            model.GlossaryTermStatus             `json:"glossaryTermStatus,omitempty"`
	EffectiveTime                 *time.Time                           `json:"effectiveTime,omitempty"`
}

type ProcessStatusRequestBody struct {
	MetadataCorrelationProperties *model.MetadataCorrelationProperties `json:"metadataCorrelationProperties,omitempty"`
	ProcessStatus                 model.ProcessStatus                  `json:"processStatus,omitempty"`
	EffectiveTime                 *time.Time                           `json:"effectiveTime,omitempty"`
}

// assetManager returns the identifiers, tolerating a nil body.
func (b *EffectiveTimeQueryRequestBody) assetManager() (string, string) {
	if b == nil {
		return "", ""
	}
	return b.AssetManagerGUID, b.AssetManagerName
}

func (b *EffectiveTimeQueryRequestBody) effectiveTime() *time.Time {
	if b == nil {
		return nil
	}
	return b.EffectiveTime
}

func (b *UpdateRequestBody) correlation() *model.MetadataCorrelationProperties {
	if b == nil {
		return nil
	}
	return b.MetadataCorrelationProperties
}

func (b *UpdateRequestBody) effectiveTime() *time.Time {
	if b == nil {
		return nil
	}
	return b.EffectiveTime
}

func (b *ClassificationRequestBody) correlation() *model.MetadataCorrelationProperties {
	if b == nil {
		return nil
	}
	return b.MetadataCorrelationProperties
}

func (b *ClassificationRequestBody) effectiveTime() *time.Time {
	if b == nil {
		return nil
	}
	return b.EffectiveTime
}
