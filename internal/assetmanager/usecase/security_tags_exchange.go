package usecase

import (
	"context"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"
)

// SecurityTagsExchange maintains the SecurityTags classification, which also feeds the
// server's visibility policy.
type SecurityTagsExchange interface {
	AddSecurityTags(ctx context.Context, userID, assetManagerGUID, assetManagerName, elementGUID string, properties *model.SecurityTagsProperties, opts model.QueryOptions) error
	ClearSecurityTags(ctx context.Context, userID, assetManagerGUID, assetManagerName, elementGUID string, opts model.QueryOptions) error
	GetSecurityTaggedElements(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ElementHeader, error)
}

// SecurityTagsHandler implements SecurityTagsExchange.
type SecurityTagsHandler struct {
	h *MetadataHandler
}

var _ SecurityTagsExchange = (*SecurityTagsHandler)(nil)

func NewSecurityTagsHandler(h *MetadataHandler) *SecurityTagsHandler {
	return &SecurityTagsHandler{h: h}
}

// AddSecurityTags sets or replaces the element's security tags.
func (s *SecurityTagsHandler) AddSecurityTags(ctx context.Context, userID, assetManagerGUID, assetManagerName, elementGUID string, properties *model.SecurityTagsProperties, opts model.QueryOptions) error {
	const methodName = "addSecurityTags"
	if properties == nil {
		return errors.NewNullParameterError("securityTagsProperties", methodName)
	}
	return s.h.classifyEntity(ctx, userID, nil, elementGUID, "elementGUID", model.TypeReferenceable, model.ClassSecurityTags, properties, opts, methodName)
}

func (s *SecurityTagsHandler) ClearSecurityTags(ctx context.Context, userID, assetManagerGUID, assetManagerName, elementGUID string, opts model.QueryOptions) error {
	return s.h.declassifyEntity(ctx, userID, nil, elementGUID, "elementGUID", model.TypeReferenceable, model.ClassSecurityTags, opts, "clearSecurityTags")
}

// GetSecurityTaggedElements lists the headers of every visible element carrying security tags.
func (s *SecurityTagsHandler) GetSecurityTaggedElements(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ElementHeader, error) {
	const methodName = "getSecurityTaggedElements"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	size, err := s.h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	entities, err := s.h.findEntities(ctx, userID, repository.EntityQuery{
		Classification: model.ClassSecurityTags,
		StartFrom:      startFrom,
		PageSize:       size,
	}, opts, methodName)
	if err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		return nil, nil
	}
	headers := make([]*model.ElementHeader, 0, len(entities))
	for _, e := range entities {
		header := model.HeaderFromEntity(e)
		headers = append(headers, &header)
	}
	return headers, nil
}
