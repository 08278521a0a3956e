package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// EncodeProperties flattens a properties struct into the property bag stored on an
// entity, relationship or classification. Effectivity and type names are not part of the bag.
func EncodeProperties(props interface{}) (map[string]interface{}, error) {
	if IsNil(props) {
		return map[string]interface{}{}, nil
	}
	data, err := bson.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	bag := bson.M{}
	if err := bson.Unmarshal(data, &bag); err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return map[string]interface{}(bag), nil
}

// DecodeProperties fills dst from a stored property bag.
func DecodeProperties(bag map[string]interface{}, dst interface{}) error {
	if len(bag) == 0 {
		return nil
	}
	data, err := bson.Marshal(bag)
	if err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	if err := bson.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	return nil
}

// MergeProperties overlays update onto base and returns the result. Neither input is modified.
func MergeProperties(base, update map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(update))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

// HeaderFromEntity builds the element header reported to callers.
func HeaderFromEntity(e *Entity) ElementHeader {
	header := ElementHeader{
		GUID: e.GUID,
		Type: ElementType{
			TypeName:       e.TypeName,
			SuperTypeNames: SuperTypeNames(e.TypeName),
		},
		Origin: ElementOrigin{OriginCategory: OriginLocalCohort},
		Versions: ElementVersions{
			CreatedBy:  e.CreatedBy,
			UpdatedBy:  e.UpdatedBy,
			CreateTime: e.CreateTime,
			UpdateTime: e.UpdateTime,
			Version:    e.Version,
		},
	}
	if e.HomeAssetManagerGUID != "" {
		header.Origin = ElementOrigin{
			HomeMetadataCollectionID:   e.HomeAssetManagerGUID,
			HomeMetadataCollectionName: e.HomeAssetManagerName,
			OriginCategory:             OriginExternalSource,
		}
	}
	for _, c := range e.Classifications {
		header.Classifications = append(header.Classifications, ElementClassification{
			ClassificationName:       c.Name,
			ClassificationProperties: c.Properties,
			EffectiveFrom:            c.EffectiveFrom,
			EffectiveTo:              c.EffectiveTo,
		})
	}
	return header
}

// HeaderFromRelationship builds the relationship header reported to callers.
func HeaderFromRelationship(r *Relationship) ElementHeader {
	header := ElementHeader{
		GUID:   r.GUID,
		Type:   ElementType{TypeName: r.TypeName},
		Origin: ElementOrigin{OriginCategory: OriginLocalCohort},
		Versions: ElementVersions{
			CreatedBy:  r.CreatedBy,
			UpdatedBy:  r.UpdatedBy,
			CreateTime: r.CreateTime,
			UpdateTime: r.UpdateTime,
			Version:    r.Version,
		},
	}
	if r.AssetManagerGUID != "" {
		header.Origin = ElementOrigin{
			HomeMetadataCollectionID:   r.AssetManagerGUID,
			HomeMetadataCollectionName: r.AssetManagerName,
			OriginCategory:             OriginExternalSource,
		}
	}
	return header
}

// StubFromEntity identifies e as a relationship end.
func StubFromEntity(e *Entity) ElementStub {
	return ElementStub{GUID: e.GUID, TypeName: e.TypeName, UniqueName: e.QualifiedName()}
}

// ToElement decodes an entity into a typed element.
func ToElement[T any](e *Entity) (*MetadataElement[*T], error) {
	props := new(T)
	if err := DecodeProperties(e.Properties, props); err != nil {
		return nil, err
	}
	if r, ok := ReferenceableOf(props); ok {
		r.TypeName = e.TypeName
	}
	if eff, ok := EffectivityOf(props); ok {
		eff.EffectiveFrom = e.EffectiveFrom
		eff.EffectiveTo = e.EffectiveTo
	}
	return &MetadataElement[*T]{
		ElementHeader:     HeaderFromEntity(e),
		CorrelationHeader: e.Correlations,
		Properties:        props,
	}, nil
}

// ToElements decodes each entity in turn.
func ToElements[T any](entities []*Entity) ([]*MetadataElement[*T], error) {
	if len(entities) == 0 {
		return nil, nil
	}
	elements := make([]*MetadataElement[*T], 0, len(entities))
	for _, e := range entities {
		element, err := ToElement[T](e)
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", e.GUID, err)
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func relationshipProperties[T any](r *Relationship) (*T, error) {
	props := new(T)
	if err := DecodeProperties(r.Properties, props); err != nil {
		return nil, err
	}
	if eff, ok := EffectivityOf(props); ok {
		eff.EffectiveFrom = r.EffectiveFrom
		eff.EffectiveTo = r.EffectiveTo
	}
	return props, nil
}

// ToRelationshipElement decodes a relationship together with its two ends.
func ToRelationshipElement[T any](r *Relationship, end1, end2 *Entity) (*RelationshipElement[*T], error) {
	props, err := relationshipProperties[T](r)
	if err != nil {
		return nil, err
	}
	element := &RelationshipElement[*T]{
		RelationshipHeader: HeaderFromRelationship(r),
		Properties:         props,
		End1:               ElementStub{GUID: r.End1GUID},
		End2:               ElementStub{GUID: r.End2GUID},
	}
	if end1 != nil {
		element.End1 = StubFromEntity(end1)
	}
	if end2 != nil {
		element.End2 = StubFromEntity(end2)
	}
	return element, nil
}

// ToRelatedElement decodes a relationship and the element at its far end.
func ToRelatedElement[RT any, ET any](r *Relationship, related *Entity) (*RelatedElement[*RT, *ET], error) {
	relProps, err := relationshipProperties[RT](r)
	if err != nil {
		return nil, err
	}
	element, err := ToElement[ET](related)
	if err != nil {
		return nil, err
	}
	return &RelatedElement[*RT, *ET]{
		RelationshipHeader:     HeaderFromRelationship(r),
		RelationshipProperties: relProps,
		RelatedElement:         *element,
	}, nil
}
