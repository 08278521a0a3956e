package http

import (
	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// GlossaryExchangeRESTServices exposes the glossary, category and term exchange.
type GlossaryExchangeRESTServices struct {
	restBase
}

func NewGlossaryExchangeRESTServices(instances InstanceHandler, log logger.Logger) *GlossaryExchangeRESTServices {
	return &GlossaryExchangeRESTServices{restBase{instances: instances, calls: NewRESTCallLogger(log)}}
}

func (s *GlossaryExchangeRESTServices) handler(call *restCall) (usecase.GlossaryExchange, error) {
	return s.instances.GlossaryHandler(call.userID, call.serverName, call.methodName)
}

// ---- glossaries

func (s *GlossaryExchangeRESTServices) CreateGlossary(c *fiber.Ctx) error {
	return s.guid(c, "createGlossary", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.GlossaryProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossary(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(), properties)
	})
}

func (s *GlossaryExchangeRESTServices) CreateGlossaryFromTemplate(c *fiber.Ctx) error {
	return s.guid(c, "createGlossaryFromTemplate", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[TemplateRequestBody](call)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossaryFromTemplate(call.ctx, call.userID, body.MetadataCorrelationProperties,
			call.assetManagerIsHome(), call.param("templateGUID"), body.ElementProperties)
	})
}

func (s *GlossaryExchangeRESTServices) UpdateGlossary(c *fiber.Ctx) error {
	return s.void(c, "updateGlossary", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateGlossary(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryGUID"),
			call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) RemoveGlossary(c *fiber.Ctx) error {
	return s.void(c, "removeGlossary", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemoveGlossary(call.ctx, call.userID, body.correlation(), call.param("glossaryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) SetGlossaryAsTaxonomy(c *fiber.Ctx) error {
	return s.void(c, "setGlossaryAsTaxonomy", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ClassificationRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.TaxonomyProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.SetGlossaryAsTaxonomy(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryGUID"),
			properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) ClearGlossaryAsTaxonomy(c *fiber.Ctx) error {
	return s.void(c, "clearGlossaryAsTaxonomy", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.ClearGlossaryAsTaxonomy(call.ctx, call.userID, body.correlation(), call.param("glossaryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) SetGlossaryAsCanonical(c *fiber.Ctx) error {
	return s.void(c, "setGlossaryAsCanonical", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ClassificationRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.CanonicalVocabularyProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.SetGlossaryAsCanonical(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryGUID"),
			properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) ClearGlossaryAsCanonical(c *fiber.Ctx) error {
	return s.void(c, "clearGlossaryAsCanonical", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.ClearGlossaryAsCanonical(call.ctx, call.userID, body.correlation(), call.param("glossaryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) FindGlossaries(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findGlossaries", func(call *restCall) ([]*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindGlossaries(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.SearchString,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossariesByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getGlossariesByName", func(call *restCall) ([]*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetGlossariesByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.Name,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossariesForAssetManager(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getGlossariesForAssetManager", func(call *restCall) ([]*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossariesForAssetManager(call.ctx, call.userID, guid, name,
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryByGUID", func(call *restCall) (*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryByGUID(call.ctx, call.userID, guid, name, call.param("glossaryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryForCategory(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryForCategory", func(call *restCall) (*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryForCategory(call.ctx, call.userID, guid, name, call.param("glossaryCategoryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryForTerm(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryForTerm", func(call *restCall) (*model.GlossaryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryForTerm(call.ctx, call.userID, guid, name, call.param("glossaryTermGUID"), call.options(body.effectiveTime()))
	})
}

// ---- categories

func (s *GlossaryExchangeRESTServices) CreateGlossaryCategory(c *fiber.Ctx) error {
	return s.guid(c, "createGlossaryCategory", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.GlossaryCategoryProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossaryCategory(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("glossaryGUID"), call.queryBool("isRootCategory"), properties)
	})
}

func (s *GlossaryExchangeRESTServices) CreateGlossaryCategoryFromTemplate(c *fiber.Ctx) error {
	return s.guid(c, "createGlossaryCategoryFromTemplate", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[TemplateRequestBody](call)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossaryCategoryFromTemplate(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("glossaryGUID"), call.param("templateGUID"), body.ElementProperties)
	})
}

func (s *GlossaryExchangeRESTServices) UpdateGlossaryCategory(c *fiber.Ctx) error {
	return s.void(c, "updateGlossaryCategory", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryCategoryProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateGlossaryCategory(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryCategoryGUID"),
			call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) SetupCategoryParent(c *fiber.Ctx) error {
	return s.void(c, "setupCategoryParent", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		return handler.SetupCategoryParent(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("glossaryParentCategoryGUID"), call.param("glossaryChildCategoryGUID"), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) ClearCategoryParent(c *fiber.Ctx) error {
	return s.void(c, "clearCategoryParent", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearCategoryParent(call.ctx, call.userID, guid, name,
			call.param("glossaryParentCategoryGUID"), call.param("glossaryChildCategoryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) RemoveGlossaryCategory(c *fiber.Ctx) error {
	return s.void(c, "removeGlossaryCategory", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemoveGlossaryCategory(call.ctx, call.userID, body.correlation(), call.param("glossaryCategoryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) FindGlossaryCategories(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findGlossaryCategories", func(call *restCall) ([]*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindGlossaryCategories(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.SearchString,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetCategoriesForGlossary(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getCategoriesForGlossary", func(call *restCall) ([]*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetCategoriesForGlossary(call.ctx, call.userID, guid, name, call.param("glossaryGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryCategoriesByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getGlossaryCategoriesByName", func(call *restCall) ([]*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetGlossaryCategoriesByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.Name,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryCategoryByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryCategoryByGUID", func(call *restCall) (*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryCategoryByGUID(call.ctx, call.userID, guid, name, call.param("glossaryCategoryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryCategoryParent(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryCategoryParent", func(call *restCall) (*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryCategoryParent(call.ctx, call.userID, guid, name, call.param("glossaryCategoryGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossarySubCategories(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getGlossarySubCategories", func(call *restCall) ([]*model.GlossaryCategoryElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossarySubCategories(call.ctx, call.userID, guid, name, call.param("glossaryCategoryGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

// ---- terms

func (s *GlossaryExchangeRESTServices) CreateGlossaryTerm(c *fiber.Ctx) error {
	return s.guid(c, "createGlossaryTerm", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.GlossaryTermProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossaryTerm(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("glossaryGUID"), properties)
	})
}

func (s *GlossaryExchangeRESTServices) CreateControlledGlossaryTerm(c *fiber.Ctx) error {
	return s.guid(c, "createControlledGlossaryTerm", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.GlossaryTermProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateControlledGlossaryTerm(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("glossaryGUID"), model.GlossaryTermStatus(call.c.Query("initialStatus")), properties)
	})
}

func (s *GlossaryExchangeRESTServices) CreateGlossaryTermFromTemplate(c *fiber.Ctx) error {
	return s.guid(c, "createGlossaryTermFromTemplate", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[TemplateRequestBody](call)
		if err != nil {
			return "", err
		}
		return handler.CreateGlossaryTermFromTemplate(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("glossaryGUID"), call.param("templateGUID"), body.ElementProperties)
	})
}

func (s *GlossaryExchangeRESTServices) UpdateGlossaryTerm(c *fiber.Ctx) error {
	return s.void(c, "updateGlossaryTerm", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryTermProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateGlossaryTerm(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryTermGUID"),
			call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) UpdateGlossaryTermStatus(c *fiber.Ctx) error {
	return s.void(c, "updateGlossaryTermStatus", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[GlossaryTermStatusRequestBody](call)
		if err != nil {
			return err
		}
		return handler.UpdateGlossaryTermStatus(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("glossaryTermGUID"),
			body.GlossaryTermStatus, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) SetupTermCategory(c *fiber.Ctx) error {
	return s.void(c, "setupTermCategory", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryTermCategorization](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.SetupTermCategory(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("glossaryCategoryGUID"), call.param("glossaryTermGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) ClearTermCategory(c *fiber.Ctx) error {
	return s.void(c, "clearTermCategory", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearTermCategory(call.ctx, call.userID, guid, name,
			call.param("glossaryCategoryGUID"), call.param("glossaryTermGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) SetupTermRelationship(c *fiber.Ctx) error {
	return s.void(c, "setupTermRelationship", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryTermRelationship](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.SetupTermRelationship(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("relationshipTypeName"), call.param("glossaryTermOneGUID"), call.param("glossaryTermTwoGUID"),
			properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) UpdateTermRelationship(c *fiber.Ctx) error {
	return s.void(c, "updateTermRelationship", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.GlossaryTermRelationship](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateTermRelationship(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("relationshipTypeName"), call.param("glossaryTermOneGUID"), call.param("glossaryTermTwoGUID"),
			properties, call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) ClearTermRelationship(c *fiber.Ctx) error {
	return s.void(c, "clearTermRelationship", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearTermRelationship(call.ctx, call.userID, guid, name,
			call.param("relationshipTypeName"), call.param("glossaryTermOneGUID"), call.param("glossaryTermTwoGUID"),
			call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) RemoveGlossaryTerm(c *fiber.Ctx) error {
	return s.void(c, "removeGlossaryTerm", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemoveGlossaryTerm(call.ctx, call.userID, body.correlation(), call.param("glossaryTermGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) FindGlossaryTerms(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findGlossaryTerms", func(call *restCall) ([]*model.GlossaryTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindGlossaryTerms(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.SearchString,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetTermsForGlossary(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getTermsForGlossary", func(call *restCall) ([]*model.GlossaryTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetTermsForGlossary(call.ctx, call.userID, guid, name, call.param("glossaryGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetTermsForGlossaryCategory(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getTermsForGlossaryCategory", func(call *restCall) ([]*model.GlossaryTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetTermsForGlossaryCategory(call.ctx, call.userID, guid, name, call.param("glossaryCategoryGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryTermsByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getGlossaryTermsByName", func(call *restCall) ([]*model.GlossaryTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetGlossaryTermsByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.Name,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *GlossaryExchangeRESTServices) GetGlossaryTermByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getGlossaryTermByGUID", func(call *restCall) (*model.GlossaryTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetGlossaryTermByGUID(call.ctx, call.userID, guid, name, call.param("glossaryTermGUID"), call.options(body.effectiveTime()))
	})
}

func (s *GlossaryExchangeRESTServices) GetRelatedTerms(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getRelatedTerms", func(call *restCall) ([]*model.RelatedTermElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetRelatedTerms(call.ctx, call.userID, guid, name, call.param("glossaryTermGUID"),
			call.c.Query("relationshipTypeName"), call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}
