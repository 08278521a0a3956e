package usecase

import (
	"context"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/errors"
)

// ExternalReferenceExchange maintains external references and their links to other elements.
type ExternalReferenceExchange interface {
	CreateExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, properties *model.ExternalReferenceProperties) (string, error)
	UpdateExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, externalReferenceGUID string, isMergeUpdate bool, properties *model.ExternalReferenceProperties, opts model.QueryOptions) error
	RemoveExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, externalReferenceGUID string, opts model.QueryOptions) error

	LinkExternalReferenceToElement(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, attachedToGUID, externalReferenceGUID string, properties *model.ExternalReferenceLinkProperties, opts model.QueryOptions) (string, error)
	UpdateExternalReferenceToElementLink(ctx context.Context, userID, assetManagerGUID, assetManagerName, linkGUID string, isMergeUpdate bool, properties *model.ExternalReferenceLinkProperties, opts model.QueryOptions) error
	UnlinkExternalReferenceFromElement(ctx context.Context, userID, assetManagerGUID, assetManagerName, linkGUID string, opts model.QueryOptions) error

	GetExternalReferences(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error)
	GetExternalReferencesByResourceID(ctx context.Context, userID, assetManagerGUID, assetManagerName, resourceID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error)
	GetExternalReferencesByURL(ctx context.Context, userID, assetManagerGUID, assetManagerName, url string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error)
	GetExternalReferencesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error)
	GetExternalReferencesForElement(ctx context.Context, userID, assetManagerGUID, assetManagerName, attachedToGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceLinkElement, error)
	FindExternalReferences(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error)
	GetExternalReferenceByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, externalReferenceGUID string, opts model.QueryOptions) (*model.ExternalReferenceElement, error)
}

// ExternalReferenceHandler implements ExternalReferenceExchange.
type ExternalReferenceHandler struct {
	h *MetadataHandler
}

var _ ExternalReferenceExchange = (*ExternalReferenceHandler)(nil)

func NewExternalReferenceHandler(h *MetadataHandler) *ExternalReferenceHandler {
	return &ExternalReferenceHandler{h: h}
}

var externalReferenceSearchProperties = []string{"qualifiedName", "displayName", "resourceId", "url", "resourceDescription"}

func (e *ExternalReferenceHandler) CreateExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, properties *model.ExternalReferenceProperties) (string, error) {
	const methodName = "createExternalReference"
	if properties == nil {
		return "", errors.NewNullParameterError("externalReferenceProperties", methodName)
	}
	return e.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypeExternalReference,
		properties:         properties,
		methodName:         methodName,
	})
}

func (e *ExternalReferenceHandler) UpdateExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, externalReferenceGUID string, isMergeUpdate bool, properties *model.ExternalReferenceProperties, opts model.QueryOptions) error {
	return e.h.updateEntity(ctx, userID, correlation, externalReferenceGUID, "externalReferenceGUID", model.TypeExternalReference, isMergeUpdate, properties, opts, "updateExternalReference")
}

func (e *ExternalReferenceHandler) RemoveExternalReference(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, externalReferenceGUID string, opts model.QueryOptions) error {
	return e.h.removeEntity(ctx, userID, correlation, externalReferenceGUID, "externalReferenceGUID", model.TypeExternalReference, opts, "removeExternalReference")
}

func (e *ExternalReferenceHandler) LinkExternalReferenceToElement(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, attachedToGUID, externalReferenceGUID string, properties *model.ExternalReferenceLinkProperties, opts model.QueryOptions) (string, error) {
	return e.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelExternalReferenceLink,
		end1:               end{guid: attachedToGUID, parameterName: "attachedToGUID", family: model.TypeReferenceable},
		end2:               end{guid: externalReferenceGUID, parameterName: "externalReferenceGUID", family: model.TypeExternalReference},
		properties:         properties,
		opts:               opts,
		methodName:         "linkExternalReferenceToElement",
	})
}

func (e *ExternalReferenceHandler) UpdateExternalReferenceToElementLink(ctx context.Context, userID, assetManagerGUID, assetManagerName, linkGUID string, isMergeUpdate bool, properties *model.ExternalReferenceLinkProperties, opts model.QueryOptions) error {
	return e.h.updateRelationship(ctx, userID, linkGUID, "externalReferenceLinkGUID", model.RelExternalReferenceLink, isMergeUpdate, properties, opts, "updateExternalReferenceToElementLink")
}

func (e *ExternalReferenceHandler) UnlinkExternalReferenceFromElement(ctx context.Context, userID, assetManagerGUID, assetManagerName, linkGUID string, opts model.QueryOptions) error {
	return e.h.deleteRelationship(ctx, userID, linkGUID, "externalReferenceLinkGUID", model.RelExternalReferenceLink, opts, "unlinkExternalReferenceFromElement")
}

func (e *ExternalReferenceHandler) GetExternalReferences(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error) {
	const methodName = "getExternalReferences"
	entities, err := e.h.findByFamily(ctx, userID, model.TypeExternalReference, nil, "", startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ExternalReferenceProperties](entities, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) GetExternalReferencesByResourceID(ctx context.Context, userID, assetManagerGUID, assetManagerName, resourceID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error) {
	const methodName = "getExternalReferencesByResourceId"
	entities, err := e.h.namedInFamily(ctx, userID, model.TypeExternalReference, resourceID, "resourceId", []string{"resourceId"}, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ExternalReferenceProperties](entities, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) GetExternalReferencesByURL(ctx context.Context, userID, assetManagerGUID, assetManagerName, url string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error) {
	const methodName = "getExternalReferencesByURL"
	entities, err := e.h.namedInFamily(ctx, userID, model.TypeExternalReference, url, "url", []string{"url"}, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ExternalReferenceProperties](entities, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) GetExternalReferencesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error) {
	const methodName = "getExternalReferencesByName"
	entities, err := e.h.namedInFamily(ctx, userID, model.TypeExternalReference, name, "name", []string{"qualifiedName", "displayName"}, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ExternalReferenceProperties](entities, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) GetExternalReferencesForElement(ctx context.Context, userID, assetManagerGUID, assetManagerName, attachedToGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceLinkElement, error) {
	const methodName = "getExternalReferencesForElement"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	size, err := e.h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	if _, err := e.h.getEntity(ctx, userID, attachedToGUID, "attachedToGUID", model.TypeReferenceable, opts, methodName); err != nil {
		return nil, err
	}
	pairs, err := e.h.related(ctx, userID, attachedToGUID, []string{model.RelExternalReferenceLink}, true, model.TypeExternalReference, startFrom, size, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toRelatedElements[model.ExternalReferenceLinkProperties, model.ExternalReferenceProperties](pairs, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) FindExternalReferences(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ExternalReferenceElement, error) {
	const methodName = "findExternalReferences"
	entities, err := e.h.searchByFamily(ctx, userID, model.TypeExternalReference, searchString, "searchString", externalReferenceSearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ExternalReferenceProperties](entities, assetManagerGUID, methodName)
}

func (e *ExternalReferenceHandler) GetExternalReferenceByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, externalReferenceGUID string, opts model.QueryOptions) (*model.ExternalReferenceElement, error) {
	const methodName = "getExternalReferenceByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := e.h.getEntity(ctx, userID, externalReferenceGUID, "externalReferenceGUID", model.TypeExternalReference, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.ExternalReferenceProperties](entity, assetManagerGUID, methodName)
}
