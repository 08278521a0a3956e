package http

import (
	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// ExternalReferenceRESTServices exposes the external reference exchange.
type ExternalReferenceRESTServices struct {
	restBase
}

func NewExternalReferenceRESTServices(instances InstanceHandler, log logger.Logger) *ExternalReferenceRESTServices {
	return &ExternalReferenceRESTServices{restBase{instances: instances, calls: NewRESTCallLogger(log)}}
}

func (s *ExternalReferenceRESTServices) handler(call *restCall) (usecase.ExternalReferenceExchange, error) {
	return s.instances.ExternalReferenceHandler(call.userID, call.serverName, call.methodName)
}

func (s *ExternalReferenceRESTServices) CreateExternalReference(c *fiber.Ctx) error {
	return s.guid(c, "createExternalReference", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.ExternalReferenceProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateExternalReference(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(), properties)
	})
}

func (s *ExternalReferenceRESTServices) UpdateExternalReference(c *fiber.Ctx) error {
	return s.void(c, "updateExternalReference", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ExternalReferenceProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateExternalReference(call.ctx, call.userID, body.MetadataCorrelationProperties,
			call.param("externalReferenceGUID"), call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) RemoveExternalReference(c *fiber.Ctx) error {
	return s.void(c, "removeExternalReference", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemoveExternalReference(call.ctx, call.userID, body.correlation(),
			call.param("externalReferenceGUID"), call.options(body.effectiveTime()))
	})
}

func (s *ExternalReferenceRESTServices) LinkExternalReferenceToElement(c *fiber.Ctx) error {
	return s.guid(c, "linkExternalReferenceToElement", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.ExternalReferenceLinkProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.LinkExternalReferenceToElement(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.assetManagerIsHome(), call.param("attachedToGUID"), call.param("externalReferenceGUID"),
			properties, call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) UpdateExternalReferenceToElementLink(c *fiber.Ctx) error {
	return s.void(c, "updateExternalReferenceToElementLink", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ExternalReferenceLinkProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateExternalReferenceToElementLink(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("linkGUID"), call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) UnlinkExternalReferenceFromElement(c *fiber.Ctx) error {
	return s.void(c, "unlinkExternalReferenceFromElement", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.UnlinkExternalReferenceFromElement(call.ctx, call.userID, guid, name,
			call.param("linkGUID"), call.options(body.effectiveTime()))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferences(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getExternalReferences", func(call *restCall) ([]*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetExternalReferences(call.ctx, call.userID, guid, name,
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferencesByResourceID(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getExternalReferencesByResourceId", func(call *restCall) ([]*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetExternalReferencesByResourceID(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			body.Name, call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferencesByURL(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getExternalReferencesByURL", func(call *restCall) ([]*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetExternalReferencesByURL(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			body.Name, call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferencesByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getExternalReferencesByName", func(call *restCall) ([]*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetExternalReferencesByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			body.Name, call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferencesForElement(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getExternalReferencesForElement", func(call *restCall) ([]*model.ExternalReferenceLinkElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetExternalReferencesForElement(call.ctx, call.userID, guid, name, call.param("attachedToGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *ExternalReferenceRESTServices) FindExternalReferences(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findExternalReferences", func(call *restCall) ([]*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindExternalReferences(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			body.SearchString, call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *ExternalReferenceRESTServices) GetExternalReferenceByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getExternalReferenceByGUID", func(call *restCall) (*model.ExternalReferenceElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetExternalReferenceByGUID(call.ctx, call.userID, guid, name,
			call.param("externalReferenceGUID"), call.options(body.effectiveTime()))
	})
}
