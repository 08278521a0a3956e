package model

import "time"

// Entity is a stored metadata element.
type Entity struct {
	GUID                 string                      `bson:"guid" json:"guid"`
	TypeName             string                      `bson:"typeName" json:"typeName"`
	Properties           map[string]interface{}      `bson:"properties" json:"properties"`
	Classifications      []Classification            `bson:"classifications,omitempty" json:"classifications,omitempty"`
	Correlations         []MetadataCorrelationHeader `bson:"correlations,omitempty" json:"correlations,omitempty"`
	HomeAssetManagerGUID string                      `bson:"homeAssetManagerGUID,omitempty" json:"homeAssetManagerGUID,omitempty"`
	HomeAssetManagerName string                      `bson:"homeAssetManagerName,omitempty" json:"homeAssetManagerName,omitempty"`
	EffectiveFrom        *time.Time                  `bson:"effectiveFrom,omitempty" json:"effectiveFrom,omitempty"`
	EffectiveTo          *time.Time                  `bson:"effectiveTo,omitempty" json:"effectiveTo,omitempty"`
	CreatedBy            string                      `bson:"createdBy" json:"createdBy"`
	UpdatedBy            string                      `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreateTime           time.Time                   `bson:"createTime" json:"createTime"`
	UpdateTime           time.Time                   `bson:"updateTime" json:"updateTime"`
	Version              int64                       `bson:"version" json:"version"`
}

// Classification returns the named classification, or nil.
func (e *Entity) Classification(name string) *Classification {
	for i := range e.Classifications {
		if e.Classifications[i].Name == name {
			return &e.Classifications[i]
		}
	}
	return nil
}

// RemoveClassification drops the named classification and reports whether it was present.
func (e *Entity) RemoveClassification(name string) bool {
	for i := range e.Classifications {
		if e.Classifications[i].Name == name {
			e.Classifications = append(e.Classifications[:i], e.Classifications[i+1:]...)
			return true
		}
	}
	return false
}

// QualifiedName returns the qualifiedName property, if any.
func (e *Entity) QualifiedName() string {
	if s, ok := e.Properties["qualifiedName"].(string); ok {
		return s
	}
	return ""
}

// Classification is a named property set attached to an entity.
type Classification struct {
	Name          string                 `bson:"name" json:"classificationName"`
	Properties    map[string]interface{} `bson:"properties,omitempty" json:"classificationProperties,omitempty"`
	EffectiveFrom *time.Time             `bson:"effectiveFrom,omitempty" json:"effectiveFrom,omitempty"`
	EffectiveTo   *time.Time             `bson:"effectiveTo,omitempty" json:"effectiveTo,omitempty"`
	CreatedBy     string                 `bson:"createdBy" json:"createdBy"`
	UpdatedBy     string                 `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreateTime    time.Time              `bson:"createTime" json:"createTime"`
	UpdateTime    time.Time              `bson:"updateTime" json:"updateTime"`
}

// Relationship is a stored link between two entities.
type Relationship struct {
	GUID             string                 `bson:"guid" json:"guid"`
	TypeName         string                 `bson:"typeName" json:"typeName"`
	End1GUID         string                 `bson:"end1GUID" json:"end1GUID"`
	End2GUID         string                 `bson:"end2GUID" json:"end2GUID"`
	Properties       map[string]interface{} `bson:"properties,omitempty" json:"properties,omitempty"`
	AssetManagerGUID string                 `bson:"assetManagerGUID,omitempty" json:"assetManagerGUID,omitempty"`
	AssetManagerName string                 `bson:"assetManagerName,omitempty" json:"assetManagerName,omitempty"`
	EffectiveFrom    *time.Time             `bson:"effectiveFrom,omitempty" json:"effectiveFrom,omitempty"`
	EffectiveTo      *time.Time             `bson:"effectiveTo,omitempty" json:"effectiveTo,omitempty"`
	CreatedBy        string                 `bson:"createdBy" json:"createdBy"`
	UpdatedBy        string                 `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreateTime       time.Time              `bson:"createTime" json:"createTime"`
	UpdateTime       time.Time              `bson:"updateTime" json:"updateTime"`
	Version          int64                  `bson:"version" json:"version"`
}

// OtherEnd returns the GUID at the opposite end from guid.
func (r *Relationship) OtherEnd(guid string) string {
	if r.End1GUID == guid {
		return r.End2GUID
	}
	return r.End1GUID
}

// IsEffective reports whether a [from, to) window contains at. A nil at disables the check.
func IsEffective(from, to, at *time.Time) bool {
	if at == nil {
		return true
	}
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && !at.Before(*to) {
		return false
	}
	return true
}

// QueryOptions carries the flags every retrieval and maintenance request passes through.
type QueryOptions struct {
	EffectiveTime          *time.Time
	ForLineage             bool
	ForDuplicateProcessing bool
}

// ElementHeader describes an element without its properties.
type ElementHeader struct {
	GUID            string                  `json:"guid"`
	Type            ElementType             `json:"type"`
	Origin          ElementOrigin           `json:"origin"`
	Versions        ElementVersions         `json:"versions"`
	Classifications []ElementClassification `json:"classifications,omitempty"`
}

type ElementType struct {
	TypeName       string   `json:"typeName"`
	SuperTypeNames []string `json:"superTypeNames,omitempty"`
}

type ElementOrigin struct {
	HomeMetadataCollectionID   string `json:"homeMetadataCollectionId,omitempty"`
	HomeMetadataCollectionName string `json:"homeMetadataCollectionName,omitempty"`
	OriginCategory             string `json:"originCategory"`
}

// Origin categories
const (
	OriginLocalCohort    = "LOCAL_COHORT"
	OriginExternalSource = "EXTERNAL_SOURCE"
)

type ElementVersions struct {
	CreatedBy  string    `json:"createdBy"`
	UpdatedBy  string    `json:"updatedBy,omitempty"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	Version    int64     `json:"version"`
}

type ElementClassification struct {
	ClassificationName       string                 `json:"classificationName"`
	ClassificationProperties map[string]interface{} `json:"classificationProperties,omitempty"`
	EffectiveFrom            *time.Time             `json:"effectiveFrom,omitempty"`
	EffectiveTo              *time.Time             `json:"effectiveTo,omitempty"`
}

// ElementStub identifies one end of a relationship.
type ElementStub struct {
	GUID       string `json:"guid"`
	TypeName   string `json:"typeName"`
	UniqueName string `json:"uniqueName,omitempty"`
}

// MetadataElement is an element header together with its typed properties.
type MetadataElement[P any] struct {
	ElementHeader     ElementHeader               `json:"elementHeader"`
	CorrelationHeader []MetadataCorrelationHeader `json:"correlationHeaders,omitempty"`
	Properties        P                           `json:"properties"`
}

// RelationshipElement is a relationship with its typed properties and both ends.
type RelationshipElement[P any] struct {
	RelationshipHeader ElementHeader `json:"relationshipHeader"`
	Properties         P             `json:"properties"`
	End1               ElementStub   `json:"end1"`
	End2               ElementStub   `json:"end2"`
}

// RelatedElement pairs a relationship's properties with the element at its far end.
type RelatedElement[RP any, EP any] struct {
	RelationshipHeader     ElementHeader       `json:"relationshipHeader"`
	RelationshipProperties RP                  `json:"relationshipProperties"`
	RelatedElement         MetadataElement[EP] `json:"relatedElement"`
}
