package usecase

import (
	"fmt"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/errors"
)

// correlationsFor keeps only the correlations of the calling asset manager. An empty
// assetManagerGUID keeps them all.
func correlationsFor(entity *model.Entity, assetManagerGUID string) *model.Entity {
	if assetManagerGUID == "" || len(entity.Correlations) == 0 {
		return entity
	}
	var kept []model.MetadataCorrelationHeader
	for _, c := range entity.Correlations {
		if c.AssetManagerGUID == assetManagerGUID {
			kept = append(kept, c)
		}
	}
	entity.Correlations = kept
	return entity
}

func conversionError(err error, methodName string) error {
	return errors.NewInfrastructureError(fmt.Sprintf("the %s operation could not convert a stored element", methodName)).WithCause(err)
}

func toElement[T any](entity *model.Entity, assetManagerGUID, methodName string) (*model.MetadataElement[*T], error) {
	if entity == nil {
		return nil, nil
	}
	element, err := model.ToElement[T](correlationsFor(entity, assetManagerGUID))
	if err != nil {
		return nil, conversionError(err, methodName)
	}
	return element, nil
}

func toElements[T any](entities []*model.Entity, assetManagerGUID, methodName string) ([]*model.MetadataElement[*T], error) {
	for _, e := range entities {
		correlationsFor(e, assetManagerGUID)
	}
	elements, err := model.ToElements[T](entities)
	if err != nil {
		return nil, conversionError(err, methodName)
	}
	return elements, nil
}

func toRelatedElements[RT any, ET any](pairs []relatedPair, assetManagerGUID, methodName string) ([]*model.RelatedElement[*RT, *ET], error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	elements := make([]*model.RelatedElement[*RT, *ET], 0, len(pairs))
	for _, p := range pairs {
		element, err := model.ToRelatedElement[RT, ET](p.relationship, correlationsFor(p.entity, assetManagerGUID))
		if err != nil {
			return nil, conversionError(err, methodName)
		}
		elements = append(elements, element)
	}
	return elements, nil
}
