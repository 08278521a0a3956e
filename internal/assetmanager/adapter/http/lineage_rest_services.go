package http

import (
	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// LineageExchangeRESTServices exposes processes, ports and the lineage relationships
// between them.
type LineageExchangeRESTServices struct {
	restBase
}

func NewLineageExchangeRESTServices(instances InstanceHandler, log logger.Logger) *LineageExchangeRESTServices {
	return &LineageExchangeRESTServices{restBase{instances: instances, calls: NewRESTCallLogger(log)}}
}

func (s *LineageExchangeRESTServices) handler(call *restCall) (usecase.LineageExchange, error) {
	return s.instances.LineageHandler(call.userID, call.serverName, call.methodName)
}

// ---- processes

func (s *LineageExchangeRESTServices) CreateProcess(c *fiber.Ctx) error {
	return s.guid(c, "createProcess", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.ProcessProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreateProcess(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			model.ProcessStatus(call.c.Query("initialStatus")), properties)
	})
}

func (s *LineageExchangeRESTServices) CreateProcessFromTemplate(c *fiber.Ctx) error {
	return s.guid(c, "createProcessFromTemplate", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[TemplateRequestBody](call)
		if err != nil {
			return "", err
		}
		return handler.CreateProcessFromTemplate(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("templateGUID"), body.ElementProperties)
	})
}

func (s *LineageExchangeRESTServices) UpdateProcess(c *fiber.Ctx) error {
	return s.void(c, "updateProcess", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ProcessProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateProcess(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("processGUID"),
			call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) UpdateProcessStatus(c *fiber.Ctx) error {
	return s.void(c, "updateProcessStatus", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ProcessStatusRequestBody](call)
		if err != nil {
			return err
		}
		return handler.UpdateProcessStatus(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("processGUID"),
			body.ProcessStatus, call.options(body.EffectiveTime))
	})
}

// SetupProcessParent takes the containment type from the query string, or from
// ProcessHierarchyProperties in the body when the query names none.
func (s *LineageExchangeRESTServices) SetupProcessParent(c *fiber.Ctx) error {
	return s.void(c, "setupProcessParent", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ProcessHierarchyProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		containmentType := model.ProcessContainmentType(call.c.Query("containmentType"))
		if containmentType == "" && properties != nil {
			containmentType = properties.ContainmentType
		}
		return handler.SetupProcessParent(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("parentProcessGUID"), call.param("childProcessGUID"), containmentType, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearProcessParent(c *fiber.Ctx) error {
	return s.void(c, "clearProcessParent", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearProcessParent(call.ctx, call.userID, guid, name,
			call.param("parentProcessGUID"), call.param("childProcessGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) PublishProcess(c *fiber.Ctx) error {
	return s.void(c, "publishProcess", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.PublishProcess(call.ctx, call.userID, body.correlation(), call.param("processGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) WithdrawProcess(c *fiber.Ctx) error {
	return s.void(c, "withdrawProcess", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.WithdrawProcess(call.ctx, call.userID, body.correlation(), call.param("processGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) RemoveProcess(c *fiber.Ctx) error {
	return s.void(c, "removeProcess", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemoveProcess(call.ctx, call.userID, body.correlation(), call.param("processGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) FindProcesses(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findProcesses", func(call *restCall) ([]*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindProcesses(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.SearchString,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetProcessesByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getProcessesByName", func(call *restCall) ([]*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetProcessesByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.Name,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetProcessesForAssetManager(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getProcessesForAssetManager", func(call *restCall) ([]*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessesForAssetManager(call.ctx, call.userID, guid, name,
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetProcessByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getProcessByGUID", func(call *restCall) (*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessByGUID(call.ctx, call.userID, guid, name, call.param("processGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetProcessParent(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getProcessParent", func(call *restCall) (*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessParent(call.ctx, call.userID, guid, name, call.param("processGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetSubProcesses(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getSubProcesses", func(call *restCall) ([]*model.ProcessElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetSubProcesses(call.ctx, call.userID, guid, name, call.param("processGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

// ---- ports

func (s *LineageExchangeRESTServices) CreatePort(c *fiber.Ctx) error {
	return s.guid(c, "createPort", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.PortProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.CreatePort(call.ctx, call.userID, body.MetadataCorrelationProperties, call.assetManagerIsHome(),
			call.param("processGUID"), properties)
	})
}

func (s *LineageExchangeRESTServices) UpdatePort(c *fiber.Ctx) error {
	return s.void(c, "updatePort", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[ReferenceableRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.PortProperties](body.ElementProperties, "elementProperties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdatePort(call.ctx, call.userID, body.MetadataCorrelationProperties, call.param("portGUID"),
			call.isMergeUpdate(), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) SetupProcessPort(c *fiber.Ctx) error {
	return s.void(c, "setupProcessPort", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		return handler.SetupProcessPort(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("processGUID"), call.param("portGUID"), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearProcessPort(c *fiber.Ctx) error {
	return s.void(c, "clearProcessPort", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearProcessPort(call.ctx, call.userID, guid, name,
			call.param("processGUID"), call.param("portGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) SetupPortDelegation(c *fiber.Ctx) error {
	return s.void(c, "setupPortDelegation", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		return handler.SetupPortDelegation(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("portOneGUID"), call.param("portTwoGUID"), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearPortDelegation(c *fiber.Ctx) error {
	return s.void(c, "clearPortDelegation", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearPortDelegation(call.ctx, call.userID, guid, name,
			call.param("portOneGUID"), call.param("portTwoGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) RemovePort(c *fiber.Ctx) error {
	return s.void(c, "removePort", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[UpdateRequestBody](call)
		if err != nil {
			return err
		}
		return handler.RemovePort(call.ctx, call.userID, body.correlation(), call.param("portGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) FindPorts(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "findPorts", func(call *restCall) ([]*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[SearchStringRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.FindPorts(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.SearchString,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetPortsForProcess(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getPortsForProcess", func(call *restCall) ([]*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetPortsForProcess(call.ctx, call.userID, guid, name, call.param("processGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetPortUse(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getPortUse", func(call *restCall) ([]*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetPortUse(call.ctx, call.userID, guid, name, call.param("portGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetPortDelegations(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getPortDelegations", func(call *restCall) ([]*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetPortDelegations(call.ctx, call.userID, guid, name, call.param("portGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetPortsByName(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getPortsByName", func(call *restCall) ([]*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := requiredBody[NameRequestBody](call)
		if err != nil {
			return nil, err
		}
		return handler.GetPortsByName(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, body.Name,
			call.startFrom(), call.pageSize(), call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetPortByGUID(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getPortByGUID", func(call *restCall) (*model.PortElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetPortByGUID(call.ctx, call.userID, guid, name, call.param("portGUID"), call.options(body.effectiveTime()))
	})
}

// ---- data flow

func (s *LineageExchangeRESTServices) SetupDataFlow(c *fiber.Ctx) error {
	return s.guid(c, "setupDataFlow", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.DataFlowProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.SetupDataFlow(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("dataSupplierGUID"), call.param("dataConsumerGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetDataFlow(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getDataFlow", func(call *restCall) (*model.DataFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetDataFlow(call.ctx, call.userID, guid, name, call.param("dataSupplierGUID"), call.param("dataConsumerGUID"),
			call.c.Query("qualifiedName"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) UpdateDataFlow(c *fiber.Ctx) error {
	return s.void(c, "updateDataFlow", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.DataFlowProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateDataFlow(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("dataFlowGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearDataFlow(c *fiber.Ctx) error {
	return s.void(c, "clearDataFlow", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearDataFlow(call.ctx, call.userID, guid, name, call.param("dataFlowGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetDataFlowConsumers(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getDataFlowConsumers", func(call *restCall) ([]*model.DataFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetDataFlowConsumers(call.ctx, call.userID, guid, name, call.param("dataSupplierGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetDataFlowSuppliers(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getDataFlowSuppliers", func(call *restCall) ([]*model.DataFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetDataFlowSuppliers(call.ctx, call.userID, guid, name, call.param("dataConsumerGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

// ---- control flow

func (s *LineageExchangeRESTServices) SetupControlFlow(c *fiber.Ctx) error {
	return s.guid(c, "setupControlFlow", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.ControlFlowProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.SetupControlFlow(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("currentStepGUID"), call.param("nextStepGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetControlFlow(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getControlFlow", func(call *restCall) (*model.ControlFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetControlFlow(call.ctx, call.userID, guid, name, call.param("currentStepGUID"), call.param("nextStepGUID"),
			call.c.Query("qualifiedName"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) UpdateControlFlow(c *fiber.Ctx) error {
	return s.void(c, "updateControlFlow", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ControlFlowProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateControlFlow(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("controlFlowGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearControlFlow(c *fiber.Ctx) error {
	return s.void(c, "clearControlFlow", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearControlFlow(call.ctx, call.userID, guid, name, call.param("controlFlowGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetControlFlowNextSteps(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getControlFlowNextSteps", func(call *restCall) ([]*model.ControlFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetControlFlowNextSteps(call.ctx, call.userID, guid, name, call.param("currentStepGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetControlFlowPreviousSteps(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getControlFlowPreviousSteps", func(call *restCall) ([]*model.ControlFlowElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetControlFlowPreviousSteps(call.ctx, call.userID, guid, name, call.param("currentStepGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

// ---- process call

func (s *LineageExchangeRESTServices) SetupProcessCall(c *fiber.Ctx) error {
	return s.guid(c, "setupProcessCall", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.ProcessCallProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.SetupProcessCall(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName, call.assetManagerIsHome(),
			call.param("callerGUID"), call.param("calledGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) GetProcessCall(c *fiber.Ctx) error {
	return element(&s.restBase, c, "getProcessCall", func(call *restCall) (*model.ProcessCallElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessCall(call.ctx, call.userID, guid, name, call.param("callerGUID"), call.param("calledGUID"),
			call.c.Query("qualifiedName"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) UpdateProcessCall(c *fiber.Ctx) error {
	return s.void(c, "updateProcessCall", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return err
		}
		properties, err := propertiesAs[*model.ProcessCallProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return err
		}
		return handler.UpdateProcessCall(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("processCallGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearProcessCall(c *fiber.Ctx) error {
	return s.void(c, "clearProcessCall", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearProcessCall(call.ctx, call.userID, guid, name, call.param("processCallGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetProcessCalled(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getProcessCalled", func(call *restCall) ([]*model.ProcessCallElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessCalled(call.ctx, call.userID, guid, name, call.param("callerGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetProcessCallers(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getProcessCallers", func(call *restCall) ([]*model.ProcessCallElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetProcessCallers(call.ctx, call.userID, guid, name, call.param("calledGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

// ---- lineage mapping

func (s *LineageExchangeRESTServices) SetupLineageMapping(c *fiber.Ctx) error {
	return s.guid(c, "setupLineageMapping", func(call *restCall) (string, error) {
		handler, err := s.handler(call)
		if err != nil {
			return "", err
		}
		body, err := requiredBody[RelationshipRequestBody](call)
		if err != nil {
			return "", err
		}
		properties, err := propertiesAs[*model.LineageMappingProperties](body.Properties, "properties", call.methodName)
		if err != nil {
			return "", err
		}
		return handler.SetupLineageMapping(call.ctx, call.userID, body.AssetManagerGUID, body.AssetManagerName,
			call.param("sourceElementGUID"), call.param("destinationElementGUID"), properties, call.options(body.EffectiveTime))
	})
}

func (s *LineageExchangeRESTServices) ClearLineageMapping(c *fiber.Ctx) error {
	return s.void(c, "clearLineageMapping", func(call *restCall) error {
		handler, err := s.handler(call)
		if err != nil {
			return err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return err
		}
		guid, name := body.assetManager()
		return handler.ClearLineageMapping(call.ctx, call.userID, guid, name,
			call.param("sourceElementGUID"), call.param("destinationElementGUID"), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetDestinationLineageMappings(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getDestinationLineageMappings", func(call *restCall) ([]*model.LineageMappingElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetDestinationLineageMappings(call.ctx, call.userID, guid, name, call.param("sourceElementGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}

func (s *LineageExchangeRESTServices) GetSourceLineageMappings(c *fiber.Ctx) error {
	return elements(&s.restBase, c, "getSourceLineageMappings", func(call *restCall) ([]*model.LineageMappingElement, error) {
		handler, err := s.handler(call)
		if err != nil {
			return nil, err
		}
		body, err := optionalBody[EffectiveTimeQueryRequestBody](call)
		if err != nil {
			return nil, err
		}
		guid, name := body.assetManager()
		return handler.GetSourceLineageMappings(call.ctx, call.userID, guid, name, call.param("destinationElementGUID"),
			call.startFrom(), call.pageSize(), call.options(body.effectiveTime()))
	})
}
