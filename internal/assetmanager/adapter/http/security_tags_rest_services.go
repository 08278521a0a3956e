package http

import (
	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SecurityTagsRESTServices exposes the security tags classification.
type SecurityTagsRESTServices struct {
	restBase
}

func NewSecurityTagsRESTServices(instances InstanceHandler, log logger.Logger) *SecurityTagsRESTServices {
	return &SecurityTagsRESTServices{restBase{instances: instances, calls: NewRESTCallLogger(log)}}
}

func (s *SecurityTagsRESTServices) handler(call *restCall) (usecase.SecurityTagsExchange, error) {
	return s.instances.SecurityTagsHandler(call.userID, call.serverName, call.methodName)
}

func (s *SecurityTagsRESTServices) AddSecurityTags(c *fiber.Ctx) error {
	return s.void(c, "addSecurityTags", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ClassificationRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.SecurityTagsProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		guid, name := body.MetadataCorrelationProperties.AssetManager()
		return handler.AddSecurityTags(call.ctx, call.userID, guid, name, call.param("elementGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *SecurityTagsRESTServices) ClearSecurityTags(c *fiber.Ctx) error {
	return s.void(c, "clearSecurityTags", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[ClassificationRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.correlation().AssetManager()
		return handler.ClearSecurityTags(call.ctx, call.userID, guid, name, call.param("elementGUID"), call.options(body.effectiveTime()))
	})
}

func (s *SecurityTagsRESTServices) GetSecurityTaggedElements(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getSecurityTaggedElements", func(call *restCall) ([]*model.ElementHeader, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetSecurityTaggedElements(call.ctx, call.userID, guid, name,
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}
