package usecase

import (
	"context"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"
)

// LineageExchange maintains processes, their ports and the lineage relationships
// between them.
type LineageExchange interface {
	CreateProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, initialStatus model.ProcessStatus, properties *model.ProcessProperties) (string, error)
	CreateProcessFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, templateGUID string, template *model.TemplateProperties) (string, error)
	UpdateProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, isMergeUpdate bool, properties *model.ProcessProperties, opts model.QueryOptions) error
	UpdateProcessStatus(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, status model.ProcessStatus, opts model.QueryOptions) error
	SetupProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, parentProcessGUID, childProcessGUID string, containmentType model.ProcessContainmentType, opts model.QueryOptions) error
	ClearProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, parentProcessGUID, childProcessGUID string, opts model.QueryOptions) error
	PublishProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error
	WithdrawProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error
	RemoveProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error
	FindProcesses(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error)
	GetProcessesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error)
	GetProcessesForAssetManager(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error)
	GetProcessByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, opts model.QueryOptions) (*model.ProcessElement, error)
	GetProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, opts model.QueryOptions) (*model.ProcessElement, error)
	GetSubProcesses(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error)

	CreatePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, processGUID string, properties *model.PortProperties) (string, error)
	UpdatePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, portGUID string, isMergeUpdate bool, properties *model.PortProperties, opts model.QueryOptions) error
	SetupProcessPort(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, processGUID, portGUID string, opts model.QueryOptions) error
	ClearProcessPort(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID, portGUID string, opts model.QueryOptions) error
	SetupPortDelegation(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, portOneGUID, portTwoGUID string, opts model.QueryOptions) error
	ClearPortDelegation(ctx context.Context, userID, assetManagerGUID, assetManagerName, portOneGUID, portTwoGUID string, opts model.QueryOptions) error
	RemovePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, portGUID string, opts model.QueryOptions) error
	FindPorts(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error)
	GetPortsForProcess(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error)
	GetPortUse(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error)
	GetPortDelegations(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error)
	GetPortsByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error)
	GetPortByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, opts model.QueryOptions) (*model.PortElement, error)

	SetupDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, dataSupplierGUID, dataConsumerGUID string, properties *model.DataFlowProperties, opts model.QueryOptions) (string, error)
	GetDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataSupplierGUID, dataConsumerGUID, qualifiedName string, opts model.QueryOptions) (*model.DataFlowElement, error)
	UpdateDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataFlowGUID string, properties *model.DataFlowProperties, opts model.QueryOptions) error
	ClearDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataFlowGUID string, opts model.QueryOptions) error
	GetDataFlowConsumers(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataSupplierGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.DataFlowElement, error)
	GetDataFlowSuppliers(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataConsumerGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.DataFlowElement, error)

	SetupControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, currentStepGUID, nextStepGUID string, properties *model.ControlFlowProperties, opts model.QueryOptions) (string, error)
	GetControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID, nextStepGUID, qualifiedName string, opts model.QueryOptions) (*model.ControlFlowElement, error)
	UpdateControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, controlFlowGUID string, properties *model.ControlFlowProperties, opts model.QueryOptions) error
	ClearControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, controlFlowGUID string, opts model.QueryOptions) error
	GetControlFlowNextSteps(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ControlFlowElement, error)
	GetControlFlowPreviousSteps(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ControlFlowElement, error)

	SetupProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, callerGUID, calledGUID string, properties *model.ProcessCallProperties, opts model.QueryOptions) (string, error)
	GetProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, callerGUID, calledGUID, qualifiedName string, opts model.QueryOptions) (*model.ProcessCallElement, error)
	UpdateProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, processCallGUID string, properties *model.ProcessCallProperties, opts model.QueryOptions) error
	ClearProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, processCallGUID string, opts model.QueryOptions) error
	GetProcessCalled(ctx context.Context, userID, assetManagerGUID, assetManagerName, callerGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessCallElement, error)
	GetProcessCallers(ctx context.Context, userID, assetManagerGUID, assetManagerName, calledGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessCallElement, error)

	SetupLineageMapping(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID string, properties *model.LineageMappingProperties, opts model.QueryOptions) (string, error)
	ClearLineageMapping(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID string, opts model.QueryOptions) error
	GetDestinationLineageMappings(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.LineageMappingElement, error)
	GetSourceLineageMappings(ctx context.Context, userID, assetManagerGUID, assetManagerName, destinationElementGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.LineageMappingElement, error)
}

// LineageHandler implements LineageExchange.
type LineageHandler struct {
	h *MetadataHandler
}

var _ LineageExchange = (*LineageHandler)(nil)

func NewLineageHandler(h *MetadataHandler) *LineageHandler {
	return &LineageHandler{h: h}
}

var (
	processSearchProperties = []string{"qualifiedName", "name", "displayName", "description", "formula"}
	processNameProperties   = []string{"qualifiedName", "name", "displayName"}
	portSearchProperties    = []string{"qualifiedName", "displayName"}
)

// ---- processes

func (l *LineageHandler) zoneMembership(zones []string) []model.Classification {
	if len(zones) == 0 {
		return nil
	}
	bag, _ := model.EncodeProperties(&model.AssetZoneMembershipProperties{ZoneMembership: zones})
	return []model.Classification{{Name: model.ClassAssetZoneMembership, Properties: bag}}
}

// CreateProcess creates a process in the server's default zones. An empty
// initialStatus starts the process ACTIVE.
func (l *LineageHandler) CreateProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, initialStatus model.ProcessStatus, properties *model.ProcessProperties) (string, error) {
	const methodName = "createProcess"
	if properties == nil {
		return "", errors.NewNullParameterError("processProperties", methodName)
	}
	if initialStatus == "" {
		initialStatus = model.ProcessStatusActive
	}
	if !initialStatus.Valid() {
		return "", invalidValueError("initialStatus", string(initialStatus), methodName)
	}
	process := *properties
	process.Status = initialStatus
	return l.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypeProcess,
		properties:         &process,
		classifications:    l.zoneMembership(l.h.defaultZones),
		methodName:         methodName,
	})
}

func (l *LineageHandler) CreateProcessFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, templateGUID string, template *model.TemplateProperties) (string, error) {
	return l.h.createFromTemplate(ctx, templateRequest{
		entityRequest: entityRequest{
			userID:             userID,
			correlation:        correlation,
			assetManagerIsHome: assetManagerIsHome,
			family:             model.TypeProcess,
			classifications:    l.zoneMembership(l.h.defaultZones),
			methodName:         "createProcessFromTemplate",
		},
		templateGUID:        templateGUID,
		template:            template,
		displayNameProperty: "displayName",
	})
}

func (l *LineageHandler) UpdateProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, isMergeUpdate bool, properties *model.ProcessProperties, opts model.QueryOptions) error {
	if properties != nil && properties.Status != "" {
		process := *properties
		process.Status = ""
		properties = &process
	}
	return l.h.updateEntity(ctx, userID, correlation, processGUID, "processGUID", model.TypeProcess, isMergeUpdate, properties, opts, "updateProcess")
}

func (l *LineageHandler) UpdateProcessStatus(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, status model.ProcessStatus, opts model.QueryOptions) error {
	const methodName = "updateProcessStatus"
	if !status.Valid() {
		return invalidValueError("processStatus", string(status), methodName)
	}
	return l.h.setEntityProperty(ctx, userID, correlation, processGUID, "processGUID", model.TypeProcess, "processStatus", string(status), opts, methodName)
}

// SetupProcessParent links a child process to its parent. An empty containmentType means OWNED.
func (l *LineageHandler) SetupProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, parentProcessGUID, childProcessGUID string, containmentType model.ProcessContainmentType, opts model.QueryOptions) error {
	const methodName = "setupProcessParent"
	if containmentType == "" {
		containmentType = model.ContainmentOwned
	}
	if !containmentType.Valid() {
		return invalidValueError("containmentType", string(containmentType), methodName)
	}
	_, err := l.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelProcessHierarchy,
		end1:               end{guid: parentProcessGUID, parameterName: "parentProcessGUID", family: model.TypeProcess},
		end2:               end{guid: childProcessGUID, parameterName: "childProcessGUID", family: model.TypeProcess},
		properties:         &model.ProcessHierarchyProperties{ContainmentType: containmentType},
		opts:               opts,
		methodName:         methodName,
	})
	return err
}

func (l *LineageHandler) ClearProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, parentProcessGUID, childProcessGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationshipBetween(ctx, userID, model.RelProcessHierarchy,
		end{guid: parentProcessGUID, parameterName: "parentProcessGUID", family: model.TypeProcess},
		end{guid: childProcessGUID, parameterName: "childProcessGUID", family: model.TypeProcess},
		opts, "clearProcessParent")
}

// PublishProcess moves the process into the publish zones.
func (l *LineageHandler) PublishProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error {
	return l.h.classifyEntity(ctx, userID, correlation, processGUID, "processGUID", model.TypeProcess, model.ClassAssetZoneMembership,
		&model.AssetZoneMembershipProperties{ZoneMembership: l.h.publishZones}, opts, "publishProcess")
}

// WithdrawProcess moves the process back into the default zones.
func (l *LineageHandler) WithdrawProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error {
	const methodName = "withdrawProcess"
	if len(l.h.defaultZones) == 0 {
		return l.h.declassifyEntity(ctx, userID, correlation, processGUID, "processGUID", model.TypeProcess, model.ClassAssetZoneMembership, opts, methodName)
	}
	return l.h.classifyEntity(ctx, userID, correlation, processGUID, "processGUID", model.TypeProcess, model.ClassAssetZoneMembership,
		&model.AssetZoneMembershipProperties{ZoneMembership: l.h.defaultZones}, opts, methodName)
}

// RemoveProcess removes the process and the ports it owns.
func (l *LineageHandler) RemoveProcess(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, processGUID string, opts model.QueryOptions) error {
	const methodName = "removeProcess"
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	process, err := l.h.getEntity(ctx, userID, processGUID, "processGUID", model.TypeProcess, opts, methodName)
	if err != nil {
		return err
	}
	if err := l.h.verifyCorrelation(process, correlation, "processGUID", methodName); err != nil {
		return err
	}
	if err := l.h.removeAnchored(ctx, userID, processGUID, []string{model.RelProcessPort}, methodName); err != nil {
		return err
	}
	return l.h.deleteOrMemento(ctx, userID, process, methodName)
}

func (l *LineageHandler) FindProcesses(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error) {
	const methodName = "findProcesses"
	entities, err := l.h.searchByFamily(ctx, userID, model.TypeProcess, searchString, "searchString", processSearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ProcessProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetProcessesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error) {
	const methodName = "getProcessesByName"
	entities, err := l.h.namedInFamily(ctx, userID, model.TypeProcess, name, "name", processNameProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ProcessProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetProcessesForAssetManager(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error) {
	const methodName = "getProcessesForAssetManager"
	entities, err := l.h.forAssetManager(ctx, userID, model.TypeProcess, assetManagerGUID, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ProcessProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetProcessByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, opts model.QueryOptions) (*model.ProcessElement, error) {
	const methodName = "getProcessByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := l.h.getEntity(ctx, userID, processGUID, "processGUID", model.TypeProcess, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.ProcessProperties](entity, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, opts model.QueryOptions) (*model.ProcessElement, error) {
	const methodName = "getProcessParent"
	entity, err := l.h.relatedEntity(ctx, userID, processGUID, "processGUID", model.TypeProcess, model.RelProcessHierarchy, false, model.TypeProcess, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.ProcessProperties](entity, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetSubProcesses(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error) {
	const methodName = "getSubProcesses"
	entities, err := l.h.relatedEntities(ctx, userID, processGUID, "processGUID", model.TypeProcess, model.RelProcessHierarchy, true, model.TypeProcess, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.ProcessProperties](entities, assetManagerGUID, methodName)
}

// ---- ports

// CreatePort creates a port owned by the process.
func (l *LineageHandler) CreatePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, processGUID string, properties *model.PortProperties) (string, error) {
	const methodName = "createPort"
	if err := validateGUID(processGUID, "processGUID", methodName); err != nil {
		return "", err
	}
	if properties == nil {
		return "", errors.NewNullParameterError("portProperties", methodName)
	}
	if !properties.PortType.Valid() {
		return "", invalidValueError("portType", string(properties.PortType), methodName)
	}
	return l.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypePort,
		properties:         properties,
		anchor: &anchor{
			guid:             processGUID,
			parameterName:    "processGUID",
			family:           model.TypeProcess,
			relationshipType: model.RelProcessPort,
		},
		methodName: methodName,
	})
}

func (l *LineageHandler) UpdatePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, portGUID string, isMergeUpdate bool, properties *model.PortProperties, opts model.QueryOptions) error {
	const methodName = "updatePort"
	if properties != nil && !properties.PortType.Valid() {
		return invalidValueError("portType", string(properties.PortType), methodName)
	}
	return l.h.updateEntity(ctx, userID, correlation, portGUID, "portGUID", model.TypePort, isMergeUpdate, properties, opts, methodName)
}

func (l *LineageHandler) SetupProcessPort(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, processGUID, portGUID string, opts model.QueryOptions) error {
	_, err := l.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelProcessPort,
		end1:               end{guid: processGUID, parameterName: "processGUID", family: model.TypeProcess},
		end2:               end{guid: portGUID, parameterName: "portGUID", family: model.TypePort},
		opts:               opts,
		methodName:         "setupProcessPort",
	})
	return err
}

func (l *LineageHandler) ClearProcessPort(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID, portGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationshipBetween(ctx, userID, model.RelProcessPort,
		end{guid: processGUID, parameterName: "processGUID", family: model.TypeProcess},
		end{guid: portGUID, parameterName: "portGUID", family: model.TypePort},
		opts, "clearProcessPort")
}

// SetupPortDelegation records that portOne delegates to portTwo.
func (l *LineageHandler) SetupPortDelegation(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, portOneGUID, portTwoGUID string, opts model.QueryOptions) error {
	_, err := l.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelPortDelegation,
		end1:               end{guid: portOneGUID, parameterName: "portOneGUID", family: model.TypePort},
		end2:               end{guid: portTwoGUID, parameterName: "portTwoGUID", family: model.TypePort},
		opts:               opts,
		methodName:         "setupPortDelegation",
	})
	return err
}

func (l *LineageHandler) ClearPortDelegation(ctx context.Context, userID, assetManagerGUID, assetManagerName, portOneGUID, portTwoGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationshipBetween(ctx, userID, model.RelPortDelegation,
		end{guid: portOneGUID, parameterName: "portOneGUID", family: model.TypePort},
		end{guid: portTwoGUID, parameterName: "portTwoGUID", family: model.TypePort},
		opts, "clearPortDelegation")
}

func (l *LineageHandler) RemovePort(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, portGUID string, opts model.QueryOptions) error {
	return l.h.removeEntity(ctx, userID, correlation, portGUID, "portGUID", model.TypePort, opts, "removePort")
}

func (l *LineageHandler) FindPorts(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error) {
	const methodName = "findPorts"
	entities, err := l.h.searchByFamily(ctx, userID, model.TypePort, searchString, "searchString", portSearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.PortProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetPortsForProcess(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error) {
	const methodName = "getPortsForProcess"
	entities, err := l.h.relatedEntities(ctx, userID, processGUID, "processGUID", model.TypeProcess, model.RelProcessPort, true, model.TypePort, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.PortProperties](entities, assetManagerGUID, methodName)
}

// GetPortUse lists the ports that delegate to portGUID.
func (l *LineageHandler) GetPortUse(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error) {
	const methodName = "getPortUse"
	entities, err := l.h.relatedEntities(ctx, userID, portGUID, "portGUID", model.TypePort, model.RelPortDelegation, false, model.TypePort, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.PortProperties](entities, assetManagerGUID, methodName)
}

// GetPortDelegations lists the ports portGUID delegates to.
func (l *LineageHandler) GetPortDelegations(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error) {
	const methodName = "getPortDelegations"
	entities, err := l.h.relatedEntities(ctx, userID, portGUID, "portGUID", model.TypePort, model.RelPortDelegation, true, model.TypePort, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.PortProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetPortsByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.PortElement, error) {
	const methodName = "getPortsByName"
	entities, err := l.h.namedInFamily(ctx, userID, model.TypePort, name, "name", nameProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.PortProperties](entities, assetManagerGUID, methodName)
}

func (l *LineageHandler) GetPortByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, portGUID string, opts model.QueryOptions) (*model.PortElement, error) {
	const methodName = "getPortByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := l.h.getEntity(ctx, userID, portGUID, "portGUID", model.TypePort, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.PortProperties](entity, assetManagerGUID, methodName)
}

// ---- lineage relationships

func lineageEnd(guid, parameterName string) end {
	return end{guid: guid, parameterName: parameterName, family: model.TypeReferenceable}
}

// lineageBetween returns the relationship of typeName from end1 to end2, optionally
// matching qualifiedName, or nil when there is none.
func lineageBetween[T any](ctx context.Context, h *MetadataHandler, userID, typeName string, end1, end2 end, qualifiedName string, opts model.QueryOptions, methodName string) (*model.RelationshipElement[*T], error) {
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	one, err := h.getEntity(ctx, userID, end1.guid, end1.parameterName, end1.family, opts, methodName)
	if err != nil {
		return nil, err
	}
	two, err := h.getEntity(ctx, userID, end2.guid, end2.parameterName, end2.family, opts, methodName)
	if err != nil {
		return nil, err
	}

	found, err := h.store.FindRelationships(ctx, repository.RelationshipQuery{
		TypeNames:     []string{typeName},
		End1GUID:      end1.guid,
		End2GUID:      end2.guid,
		EffectiveTime: opts.EffectiveTime,
	})
	if err != nil {
		return nil, storeError(err, methodName)
	}
	for _, r := range found {
		if qualifiedName != "" {
			if qn, _ := r.Properties["qualifiedName"].(string); qn != qualifiedName {
				continue
			}
		}
		element, err := model.ToRelationshipElement[T](r, one, two)
		if err != nil {
			return nil, conversionError(err, methodName)
		}
		return element, nil
	}
	return nil, nil
}

// lineageFrom lists the relationships of typeName that start (fromEnd1) or end at guid.
func lineageFrom[T any](ctx context.Context, h *MetadataHandler, userID, guid, parameterName, typeName string, fromEnd1 bool, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.RelationshipElement[*T], error) {
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	size, err := h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	start, err := h.getEntity(ctx, userID, guid, parameterName, model.TypeReferenceable, opts, methodName)
	if err != nil {
		return nil, err
	}
	pairs, err := h.related(ctx, userID, guid, []string{typeName}, fromEnd1, "", startFrom, size, opts, methodName)
	if err != nil || len(pairs) == 0 {
		return nil, err
	}

	elements := make([]*model.RelationshipElement[*T], 0, len(pairs))
	for _, p := range pairs {
		one, two := start, p.entity
		if !fromEnd1 {
			one, two = p.entity, start
		}
		element, err := model.ToRelationshipElement[T](p.relationship, one, two)
		if err != nil {
			return nil, conversionError(err, methodName)
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func (l *LineageHandler) setupLineage(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, typeName string, end1, end2 end, properties interface{}, opts model.QueryOptions, methodName string) (string, error) {
	return l.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           typeName,
		end1:               end1,
		end2:               end2,
		properties:         properties,
		opts:               opts,
		methodName:         methodName,
	})
}

func (l *LineageHandler) SetupDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, dataSupplierGUID, dataConsumerGUID string, properties *model.DataFlowProperties, opts model.QueryOptions) (string, error) {
	return l.setupLineage(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, model.RelDataFlow,
		lineageEnd(dataSupplierGUID, "dataSupplierGUID"), lineageEnd(dataConsumerGUID, "dataConsumerGUID"), properties, opts, "setupDataFlow")
}

func (l *LineageHandler) GetDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataSupplierGUID, dataConsumerGUID, qualifiedName string, opts model.QueryOptions) (*model.DataFlowElement, error) {
	return lineageBetween[model.DataFlowProperties](ctx, l.h, userID, model.RelDataFlow,
		lineageEnd(dataSupplierGUID, "dataSupplierGUID"), lineageEnd(dataConsumerGUID, "dataConsumerGUID"), qualifiedName, opts, "getDataFlow")
}

func (l *LineageHandler) UpdateDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataFlowGUID string, properties *model.DataFlowProperties, opts model.QueryOptions) error {
	return l.h.updateRelationship(ctx, userID, dataFlowGUID, "dataFlowGUID", model.RelDataFlow, false, properties, opts, "updateDataFlow")
}

func (l *LineageHandler) ClearDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataFlowGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationship(ctx, userID, dataFlowGUID, "dataFlowGUID", model.RelDataFlow, opts, "clearDataFlow")
}

func (l *LineageHandler) GetDataFlowConsumers(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataSupplierGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.DataFlowElement, error) {
	return lineageFrom[model.DataFlowProperties](ctx, l.h, userID, dataSupplierGUID, "dataSupplierGUID", model.RelDataFlow, true, startFrom, pageSize, opts, "getDataFlowConsumers")
}

func (l *LineageHandler) GetDataFlowSuppliers(ctx context.Context, userID, assetManagerGUID, assetManagerName, dataConsumerGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.DataFlowElement, error) {
	return lineageFrom[model.DataFlowProperties](ctx, l.h, userID, dataConsumerGUID, "dataConsumerGUID", model.RelDataFlow, false, startFrom, pageSize, opts, "getDataFlowSuppliers")
}

func (l *LineageHandler) SetupControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, currentStepGUID, nextStepGUID string, properties *model.ControlFlowProperties, opts model.QueryOptions) (string, error) {
	return l.setupLineage(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, model.RelControlFlow,
		lineageEnd(currentStepGUID, "currentStepGUID"), lineageEnd(nextStepGUID, "nextStepGUID"), properties, opts, "setupControlFlow")
}

func (l *LineageHandler) GetControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID, nextStepGUID, qualifiedName string, opts model.QueryOptions) (*model.ControlFlowElement, error) {
	return lineageBetween[model.ControlFlowProperties](ctx, l.h, userID, model.RelControlFlow,
		lineageEnd(currentStepGUID, "currentStepGUID"), lineageEnd(nextStepGUID, "nextStepGUID"), qualifiedName, opts, "getControlFlow")
}

func (l *LineageHandler) UpdateControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, controlFlowGUID string, properties *model.ControlFlowProperties, opts model.QueryOptions) error {
	return l.h.updateRelationship(ctx, userID, controlFlowGUID, "controlFlowGUID", model.RelControlFlow, false, properties, opts, "updateControlFlow")
}

func (l *LineageHandler) ClearControlFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName, controlFlowGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationship(ctx, userID, controlFlowGUID, "controlFlowGUID", model.RelControlFlow, opts, "clearControlFlow")
}

func (l *LineageHandler) GetControlFlowNextSteps(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ControlFlowElement, error) {
	return lineageFrom[model.ControlFlowProperties](ctx, l.h, userID, currentStepGUID, "currentStepGUID", model.RelControlFlow, true, startFrom, pageSize, opts, "getControlFlowNextSteps")
}

func (l *LineageHandler) GetControlFlowPreviousSteps(ctx context.Context, userID, assetManagerGUID, assetManagerName, currentStepGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ControlFlowElement, error) {
	return lineageFrom[model.ControlFlowProperties](ctx, l.h, userID, currentStepGUID, "currentStepGUID", model.RelControlFlow, false, startFrom, pageSize, opts, "getControlFlowPreviousSteps")
}

func (l *LineageHandler) SetupProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, callerGUID, calledGUID string, properties *model.ProcessCallProperties, opts model.QueryOptions) (string, error) {
	return l.setupLineage(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, model.RelProcessCall,
		lineageEnd(callerGUID, "callerGUID"), lineageEnd(calledGUID, "calledGUID"), properties, opts, "setupProcessCall")
}

func (l *LineageHandler) GetProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, callerGUID, calledGUID, qualifiedName string, opts model.QueryOptions) (*model.ProcessCallElement, error) {
	return lineageBetween[model.ProcessCallProperties](ctx, l.h, userID, model.RelProcessCall,
		lineageEnd(callerGUID, "callerGUID"), lineageEnd(calledGUID, "calledGUID"), qualifiedName, opts, "getProcessCall")
}

func (l *LineageHandler) UpdateProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, processCallGUID string, properties *model.ProcessCallProperties, opts model.QueryOptions) error {
	return l.h.updateRelationship(ctx, userID, processCallGUID, "processCallGUID", model.RelProcessCall, false, properties, opts, "updateProcessCall")
}

func (l *LineageHandler) ClearProcessCall(ctx context.Context, userID, assetManagerGUID, assetManagerName, processCallGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationship(ctx, userID, processCallGUID, "processCallGUID", model.RelProcessCall, opts, "clearProcessCall")
}

func (l *LineageHandler) GetProcessCalled(ctx context.Context, userID, assetManagerGUID, assetManagerName, callerGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessCallElement, error) {
	return lineageFrom[model.ProcessCallProperties](ctx, l.h, userID, callerGUID, "callerGUID", model.RelProcessCall, true, startFrom, pageSize, opts, "getProcessCalled")
}

func (l *LineageHandler) GetProcessCallers(ctx context.Context, userID, assetManagerGUID, assetManagerName, calledGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessCallElement, error) {
	return lineageFrom[model.ProcessCallProperties](ctx, l.h, userID, calledGUID, "calledGUID", model.RelProcessCall, false, startFrom, pageSize, opts, "getProcessCallers")
}

func (l *LineageHandler) SetupLineageMapping(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID string, properties *model.LineageMappingProperties, opts model.QueryOptions) (string, error) {
	return l.setupLineage(ctx, userID, assetManagerGUID, assetManagerName, false, model.RelLineageMapping,
		lineageEnd(sourceElementGUID, "sourceElementGUID"), lineageEnd(destinationElementGUID, "destinationElementGUID"), properties, opts, "setupLineageMapping")
}

func (l *LineageHandler) ClearLineageMapping(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID string, opts model.QueryOptions) error {
	return l.h.deleteRelationshipBetween(ctx, userID, model.RelLineageMapping,
		lineageEnd(sourceElementGUID, "sourceElementGUID"), lineageEnd(destinationElementGUID, "destinationElementGUID"), opts, "clearLineageMapping")
}

func (l *LineageHandler) GetDestinationLineageMappings(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.LineageMappingElement, error) {
	return lineageFrom[model.LineageMappingProperties](ctx, l.h, userID, sourceElementGUID, "sourceElementGUID", model.RelLineageMapping, true, startFrom, pageSize, opts, "getDestinationLineageMappings")
}

func (l *LineageHandler) GetSourceLineageMappings(ctx context.Context, userID, assetManagerGUID, assetManagerName, destinationElementGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.LineageMappingElement, error) {
	return lineageFrom[model.LineageMappingProperties](ctx, l.h, userID, destinationElementGUID, "destinationElementGUID", model.RelLineageMapping, false, startFrom, pageSize, opts, "getSourceLineageMappings")
}
