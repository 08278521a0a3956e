package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"
	"asset-manager/internal/shared/eventbus"
	"asset-manager/internal/shared/logger"

	"github.com/google/uuid"
)

// HandlerConfig holds the per-server settings of a MetadataHandler.
type HandlerConfig struct {
	ServerName   string
	MaxPageSize  int
	DefaultZones []string
	PublishZones []string
	Policy       *VisibilityPolicy
}

// MetadataHandler implements the element and relationship maintenance shared by every
// asset manager exchange: validation, effectivity, correlation, lineage mementos,
// visibility and change events.
type MetadataHandler struct {
	serverName   string
	store        repository.MetadataStore
	bus          eventbus.EventBusInterface
	policy       *VisibilityPolicy
	maxPageSize  int
	defaultZones []string
	publishZones []string
	logger       logger.Logger
	now          func() time.Time
}

// NewMetadataHandler creates a handler for one server instance. bus may be nil.
func NewMetadataHandler(cfg HandlerConfig, store repository.MetadataStore, bus eventbus.EventBusInterface, log logger.Logger) *MetadataHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &MetadataHandler{
		serverName:   cfg.ServerName,
		store:        store,
		bus:          bus,
		policy:       cfg.Policy,
		maxPageSize:  cfg.MaxPageSize,
		defaultZones: cfg.DefaultZones,
		publishZones: cfg.PublishZones,
		logger:       log.WithComponent("metadata-handler").WithFields(map[string]interface{}{"server_name": cfg.ServerName}),
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ServerName returns the server this handler serves.
func (h *MetadataHandler) ServerName() string { return h.serverName }

// Ping checks the backing store.
func (h *MetadataHandler) Ping(ctx context.Context) error { return h.store.Ping(ctx) }

// ---- validation

func validateUserID(userID, methodName string) error {
	if userID == "" {
		return errors.NewNullParameterError("userId", methodName)
	}
	return nil
}

func validateGUID(guid, parameterName, methodName string) error {
	if guid == "" {
		return errors.NewNullParameterError(parameterName, methodName)
	}
	return nil
}

func validateName(name, parameterName, methodName string) error {
	if name == "" {
		return errors.NewNullParameterError(parameterName, methodName)
	}
	return nil
}

// validateSearchString checks the pattern with Go's RE2 syntax. The MongoDB store runs
// it as a PCRE $regex, so RE2 is the portable subset accepted here.
func validateSearchString(searchString, parameterName, methodName string) error {
	if searchString == "" {
		return errors.NewNullParameterError(parameterName, methodName)
	}
	if _, err := regexp.Compile(searchString); err != nil {
		return errors.NewValidationError(fmt.Sprintf("the %s %q passed on the %s operation is not a valid regular expression", parameterName, searchString, methodName)).
			WithCode("OMAG-COMMON-400-007").
			WithDetail("parameterName", parameterName).
			WithCause(err)
	}
	return nil
}

// validatePaging checks the paging parameters and returns the page size to use.
// A zero page size means the server maximum.
func (h *MetadataHandler) validatePaging(startFrom, pageSize int, methodName string) (int, error) {
	if startFrom < 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("the startFrom %d passed on the %s operation is negative", startFrom, methodName)).
			WithCode("OMAG-COMMON-400-008").
			WithDetail("parameterName", "startFrom")
	}
	if pageSize < 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("the pageSize %d passed on the %s operation is negative", pageSize, methodName)).
			WithCode("OMAG-COMMON-400-009").
			WithDetail("parameterName", "pageSize")
	}
	if pageSize == 0 {
		return h.maxPageSize, nil
	}
	if h.maxPageSize > 0 && pageSize > h.maxPageSize {
		return 0, errors.NewValidationError(fmt.Sprintf("the pageSize %d passed on the %s operation exceeds the server maximum of %d", pageSize, methodName, h.maxPageSize)).
			WithCode("OMAG-COMMON-400-010").
			WithDetail("parameterName", "pageSize")
	}
	return pageSize, nil
}

func wrongTypeError(guid, typeName, expected, parameterName, methodName string) error {
	return errors.NewValidationError(fmt.Sprintf("the %s %s passed on the %s operation is a %s, not a %s", parameterName, guid, methodName, typeName, expected)).
		WithCode("OMAG-COMMON-400-005").
		WithDetail("parameterName", parameterName).
		WithCause(errors.ErrWrongElementType)
}

func invalidValueError(parameterName, value, methodName string) error {
	return errors.NewValidationError(fmt.Sprintf("the %s %q passed on the %s operation is not a valid value", parameterName, value, methodName)).
		WithCode("OMAG-COMMON-400-012").
		WithDetail("parameterName", parameterName)
}

func storeError(err error, methodName string) error {
	return errors.WrapError(err, fmt.Sprintf("the %s operation failed in the metadata store", methodName))
}

// ---- retrieval

// getEntity retrieves a visible entity of the expected family.
func (h *MetadataHandler) getEntity(ctx context.Context, userID, guid, parameterName, family string, opts model.QueryOptions, methodName string) (*model.Entity, error) {
	if err := validateGUID(guid, parameterName, methodName); err != nil {
		return nil, err
	}

	entity, err := h.store.GetEntity(ctx, guid)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnknownGUIDError(guid, parameterName, methodName)
		}
		return nil, storeError(err, methodName)
	}

	if family != "" && !model.IsTypeOf(entity.TypeName, family) {
		return nil, wrongTypeError(guid, entity.TypeName, family, parameterName, methodName)
	}
	if entity.Classification(model.ClassMemento) != nil && !opts.ForLineage {
		return nil, errors.NewUnknownGUIDError(guid, parameterName, methodName)
	}
	if !model.IsEffective(entity.EffectiveFrom, entity.EffectiveTo, opts.EffectiveTime) {
		return nil, errors.NewUnknownGUIDError(guid, parameterName, methodName)
	}
	if !h.visible(userID, entity) {
		return nil, errors.NewAuthorizationError(fmt.Sprintf("user %s is not permitted to see the element %s passed on the %s operation", userID, guid, methodName)).
			WithCode("OMAG-COMMON-403-001").
			WithCause(errors.ErrVisibilityDenied)
	}
	return entity, nil
}

func (h *MetadataHandler) visible(userID string, entity *model.Entity) bool {
	allowed, err := h.policy.Allows(userID, entity)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"guid":    entity.GUID,
			"error":   err.Error(),
		}).Warn("Visibility policy evaluation failed, element hidden")
		return false
	}
	return allowed
}

func (h *MetadataHandler) filterVisible(userID string, entities []*model.Entity) []*model.Entity {
	if h.policy == nil {
		return entities
	}
	visible := entities[:0]
	for _, e := range entities {
		if h.visible(userID, e) {
			visible = append(visible, e)
		}
	}
	return visible
}

// findEntities runs query with the effectivity and memento settings of opts.
func (h *MetadataHandler) findEntities(ctx context.Context, userID string, query repository.EntityQuery, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	query.EffectiveTime = opts.EffectiveTime
	query.IncludeMementos = opts.ForLineage

	entities, err := h.store.FindEntities(ctx, query)
	if err != nil {
		return nil, storeError(err, methodName)
	}
	return h.filterVisible(userID, entities), nil
}

// findByFamily lists the entities of a family, optionally matching properties.
func (h *MetadataHandler) findByFamily(ctx context.Context, userID, family string, matches []repository.PropertyMatch, homeAssetManagerGUID string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	size, err := h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	return h.findEntities(ctx, userID, repository.EntityQuery{
		TypeNames:            model.SubTypeNames(family),
		Matches:              matches,
		HomeAssetManagerGUID: homeAssetManagerGUID,
		StartFrom:            startFrom,
		PageSize:             size,
	}, opts, methodName)
}

func (h *MetadataHandler) searchByFamily(ctx context.Context, userID, family, searchString, parameterName string, propertyNames []string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	if err := validateSearchString(searchString, parameterName, methodName); err != nil {
		return nil, err
	}
	return h.findByFamily(ctx, userID, family, []repository.PropertyMatch{{Names: propertyNames, Value: searchString, Regex: true}}, "", startFrom, pageSize, opts, methodName)
}

func (h *MetadataHandler) namedInFamily(ctx context.Context, userID, family, name, parameterName string, propertyNames []string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	if err := validateName(name, parameterName, methodName); err != nil {
		return nil, err
	}
	return h.findByFamily(ctx, userID, family, []repository.PropertyMatch{{Names: propertyNames, Value: name}}, "", startFrom, pageSize, opts, methodName)
}

func (h *MetadataHandler) forAssetManager(ctx context.Context, userID, family, assetManagerGUID string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	if err := validateGUID(assetManagerGUID, "assetManagerGUID", methodName); err != nil {
		return nil, err
	}
	return h.findByFamily(ctx, userID, family, nil, assetManagerGUID, startFrom, pageSize, opts, methodName)
}

// relatedPair is a relationship together with the entity at the navigated-to end.
type relatedPair struct {
	relationship *model.Relationship
	entity       *model.Entity
}

// related navigates relationships of relType from guid. With fromEnd1 the starting
// element is end 1 and the returned entities are at end 2, otherwise the reverse.
// Entities outside family, mementos (unless for lineage), ineffective or invisible
// entities are skipped.
func (h *MetadataHandler) related(ctx context.Context, userID, guid string, relTypes []string, fromEnd1 bool, family string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]relatedPair, error) {
	query := repository.RelationshipQuery{
		TypeNames:     relTypes,
		EffectiveTime: opts.EffectiveTime,
		StartFrom:     startFrom,
		PageSize:      pageSize,
	}
	if fromEnd1 {
		query.End1GUID = guid
	} else {
		query.End2GUID = guid
	}
	return h.navigate(ctx, userID, guid, query, family, opts, methodName)
}

// relatedEitherEnd is related for relationships that may have guid at either end.
func (h *MetadataHandler) relatedEitherEnd(ctx context.Context, userID, guid string, relTypes []string, family string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]relatedPair, error) {
	return h.navigate(ctx, userID, guid, repository.RelationshipQuery{
		TypeNames:     relTypes,
		EitherEndGUID: guid,
		EffectiveTime: opts.EffectiveTime,
		StartFrom:     startFrom,
		PageSize:      pageSize,
	}, family, opts, methodName)
}

func (h *MetadataHandler) navigate(ctx context.Context, userID, guid string, query repository.RelationshipQuery, family string, opts model.QueryOptions, methodName string) ([]relatedPair, error) {
	relationships, err := h.store.FindRelationships(ctx, query)
	if err != nil {
		return nil, storeError(err, methodName)
	}

	pairs := make([]relatedPair, 0, len(relationships))
	for _, r := range relationships {
		other, err := h.store.GetEntity(ctx, r.OtherEnd(guid))
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, storeError(err, methodName)
		}
		if family != "" && !model.IsTypeOf(other.TypeName, family) {
			continue
		}
		if other.Classification(model.ClassMemento) != nil && !opts.ForLineage {
			continue
		}
		if !model.IsEffective(other.EffectiveFrom, other.EffectiveTo, opts.EffectiveTime) || !h.visible(userID, other) {
			continue
		}
		pairs = append(pairs, relatedPair{relationship: r, entity: other})
	}
	return pairs, nil
}

// relatedEntities is related for callers that only need the entities, with the
// usual start point and paging validation.
func (h *MetadataHandler) relatedEntities(ctx context.Context, userID, guid, parameterName, startFamily, relType string, fromEnd1 bool, family string, startFrom, pageSize int, opts model.QueryOptions, methodName string) ([]*model.Entity, error) {
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	size, err := h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	if _, err := h.getEntity(ctx, userID, guid, parameterName, startFamily, opts, methodName); err != nil {
		return nil, err
	}

	pairs, err := h.related(ctx, userID, guid, []string{relType}, fromEnd1, family, startFrom, size, opts, methodName)
	if err != nil {
		return nil, err
	}
	entities := make([]*model.Entity, 0, len(pairs))
	for _, p := range pairs {
		entities = append(entities, p.entity)
	}
	return entities, nil
}

// relatedEntity returns the single entity related to guid, or nil when there is none.
func (h *MetadataHandler) relatedEntity(ctx context.Context, userID, guid, parameterName, startFamily, relType string, fromEnd1 bool, family string, opts model.QueryOptions, methodName string) (*model.Entity, error) {
	entities, err := h.relatedEntities(ctx, userID, guid, parameterName, startFamily, relType, fromEnd1, family, 0, 0, opts, methodName)
	if err != nil || len(entities) == 0 {
		return nil, err
	}
	if len(entities) > 1 {
		h.logger.WithFields(map[string]interface{}{
			"guid":              guid,
			"relationship_type": relType,
			"count":             len(entities),
		}).Warn("Element has more than one related element where one is expected")
	}
	return entities[0], nil
}

// ---- element maintenance

// anchor names the element a new element is attached to on creation.
type anchor struct {
	guid             string
	parameterName    string
	family           string
	relationshipType string
	properties       map[string]interface{}
}

type entityRequest struct {
	userID             string
	correlation        *model.MetadataCorrelationProperties
	assetManagerIsHome bool
	family             string
	properties         interface{}
	classifications    []model.Classification
	anchor             *anchor
	methodName         string
}

// createEntity stores a new element and returns its GUID.
func (h *MetadataHandler) createEntity(ctx context.Context, req entityRequest) (string, error) {
	if err := validateUserID(req.userID, req.methodName); err != nil {
		return "", err
	}
	ref, ok := model.ReferenceableOf(req.properties)
	if !ok || ref == nil {
		return "", errors.NewNullParameterError("elementProperties", req.methodName)
	}
	if ref.QualifiedName == "" {
		return "", errors.NewNullParameterError("qualifiedName", req.methodName)
	}

	typeName := req.family
	if ref.TypeName != "" {
		if !model.IsTypeOf(ref.TypeName, req.family) {
			return "", errors.NewValidationError(fmt.Sprintf("the typeName %s passed on the %s operation is not a subtype of %s", ref.TypeName, req.methodName, req.family)).
				WithCode("OMAG-COMMON-400-011").
				WithDetail("parameterName", "typeName")
		}
		typeName = ref.TypeName
	}

	bag, err := model.EncodeProperties(req.properties)
	if err != nil {
		return "", errors.NewValidationError(err.Error()).WithDetail("parameterName", "elementProperties")
	}

	entity := &model.Entity{
		GUID:            uuid.NewString(),
		TypeName:        typeName,
		Properties:      bag,
		Classifications: req.classifications,
	}
	if eff, ok := model.EffectivityOf(req.properties); ok {
		entity.EffectiveFrom = eff.EffectiveFrom
		entity.EffectiveTo = eff.EffectiveTo
	}
	return h.storeNewEntity(ctx, req, entity)
}

// storeNewEntity completes and stores a prepared entity, creating its anchor relationship.
func (h *MetadataHandler) storeNewEntity(ctx context.Context, req entityRequest, entity *model.Entity) (string, error) {
	if err := h.checkUniqueQualifiedName(ctx, req.family, entity.QualifiedName(), "", req.methodName); err != nil {
		return "", err
	}
	if req.anchor != nil {
		if _, err := h.getEntity(ctx, req.userID, req.anchor.guid, req.anchor.parameterName, req.anchor.family, model.QueryOptions{}, req.methodName); err != nil {
			return "", err
		}
	}

	now := h.now()
	entity.CreatedBy = req.userID
	entity.CreateTime = now
	entity.UpdateTime = now
	entity.Version = 1
	for i := range entity.Classifications {
		entity.Classifications[i].CreatedBy = req.userID
		entity.Classifications[i].CreateTime = now
		entity.Classifications[i].UpdateTime = now
	}
	if req.correlation.HasExternalIdentifier() {
		entity.Correlations = []model.MetadataCorrelationHeader{{
			MetadataCorrelationProperties: *req.correlation,
			LastSynchronized:              now,
		}}
	}
	if req.assetManagerIsHome && req.correlation != nil && req.correlation.AssetManagerGUID != "" {
		entity.HomeAssetManagerGUID, entity.HomeAssetManagerName = req.correlation.AssetManager()
	}

	if err := h.store.CreateEntity(ctx, entity); err != nil {
		return "", storeError(err, req.methodName)
	}
	h.publishEntity(ctx, eventbus.EventTypeNewElement, req.userID, entity, "")

	if req.anchor != nil {
		anchorRel := &model.Relationship{
			GUID:       uuid.NewString(),
			TypeName:   req.anchor.relationshipType,
			End1GUID:   req.anchor.guid,
			End2GUID:   entity.GUID,
			Properties: req.anchor.properties,
			CreatedBy:  req.userID,
			CreateTime: now,
			UpdateTime: now,
			Version:    1,
		}
		if err := h.store.CreateRelationship(ctx, anchorRel); err != nil {
			return "", storeError(err, req.methodName)
		}
		h.publishRelationship(ctx, eventbus.EventTypeNewRelationship, req.userID, anchorRel)
	}

	h.logger.WithFields(map[string]interface{}{
		"guid":      entity.GUID,
		"type_name": entity.TypeName,
		"user_id":   req.userID,
	}).Debug("Element created")
	return entity.GUID, nil
}

// checkUniqueQualifiedName rejects a qualified name already used in family by an element other than selfGUID.
// Mementos do not count, so the name of a removed element can be reused.
func (h *MetadataHandler) checkUniqueQualifiedName(ctx context.Context, family, qualifiedName, selfGUID, methodName string) error {
	existing, err := h.store.FindEntities(ctx, repository.EntityQuery{
		TypeNames: model.SubTypeNames(family),
		Matches:   []repository.PropertyMatch{{Names: []string{"qualifiedName"}, Value: qualifiedName}},
		PageSize:  2,
	})
	if err != nil {
		return storeError(err, methodName)
	}
	for _, e := range existing {
		if e.GUID != selfGUID {
			return errors.NewConflictError(fmt.Sprintf("the qualifiedName %q passed on the %s operation is already used by %s %s", qualifiedName, methodName, e.TypeName, e.GUID)).
				WithCode("OMAG-COMMON-409-001").
				WithDetail("parameterName", "qualifiedName").
				WithCause(errors.ErrDuplicateElement)
		}
	}
	return nil
}

type templateRequest struct {
	entityRequest
	templateGUID        string
	template            *model.TemplateProperties
	displayNameProperty string
}

// createFromTemplate copies the properties and classifications of a template element.
func (h *MetadataHandler) createFromTemplate(ctx context.Context, req templateRequest) (string, error) {
	if err := validateUserID(req.userID, req.methodName); err != nil {
		return "", err
	}
	if req.template == nil {
		return "", errors.NewNullParameterError("templateProperties", req.methodName)
	}
	if req.template.QualifiedName == "" {
		return "", errors.NewNullParameterError("qualifiedName", req.methodName)
	}

	source, err := h.getEntity(ctx, req.userID, req.templateGUID, "templateGUID", req.family, model.QueryOptions{}, req.methodName)
	if err != nil {
		return "", err
	}

	bag := model.MergeProperties(source.Properties, map[string]interface{}{"qualifiedName": req.template.QualifiedName})
	if req.template.DisplayName != "" {
		bag[req.displayNameProperty] = req.template.DisplayName
	}
	if req.template.Description != "" {
		bag["description"] = req.template.Description
	}

	entity := &model.Entity{
		GUID:          uuid.NewString(),
		TypeName:      source.TypeName,
		Properties:    bag,
		EffectiveFrom: source.EffectiveFrom,
		EffectiveTo:   source.EffectiveTo,
	}
	overridden := map[string]bool{model.ClassMemento: true}
	for _, c := range req.classifications {
		overridden[c.Name] = true
	}
	for _, c := range source.Classifications {
		if !overridden[c.Name] {
			entity.Classifications = append(entity.Classifications, model.Classification{Name: c.Name, Properties: c.Properties})
		}
	}
	entity.Classifications = append(entity.Classifications, req.classifications...)
	return h.storeNewEntity(ctx, req.entityRequest, entity)
}

// verifyCorrelation checks the caller's external identifier against the element's
// correlations. A first identifier from an asset manager is recorded.
func (h *MetadataHandler) verifyCorrelation(entity *model.Entity, correlation *model.MetadataCorrelationProperties, parameterName, methodName string) error {
	if !correlation.HasExternalIdentifier() {
		return nil
	}
	now := h.now()
	for i := range entity.Correlations {
		existing := &entity.Correlations[i]
		if existing.AssetManagerGUID != correlation.AssetManagerGUID {
			continue
		}
		if existing.ExternalIdentifier != correlation.ExternalIdentifier {
			return errors.NewValidationError(fmt.Sprintf("the external identifier %s from asset manager %s does not match the element %s passed on the %s operation",
				correlation.ExternalIdentifier, correlation.AssetManagerGUID, entity.GUID, methodName)).
				WithCode("OMAG-COMMON-400-006").
				WithDetail("parameterName", parameterName)
		}
		existing.LastSynchronized = now
		return nil
	}
	entity.Correlations = append(entity.Correlations, model.MetadataCorrelationHeader{
		MetadataCorrelationProperties: *correlation,
		LastSynchronized:              now,
	})
	return nil
}

// statusProperties survive a replace update; they are maintained by the status operations.
var statusProperties = []string{"status", "processStatus"}

// updateEntity applies a merge or replace update to an element's properties.
func (h *MetadataHandler) updateEntity(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, guid, parameterName, family string, isMergeUpdate bool, properties interface{}, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	if model.IsNil(properties) {
		return errors.NewNullParameterError("elementProperties", methodName)
	}

	entity, err := h.getEntity(ctx, userID, guid, parameterName, family, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.verifyCorrelation(entity, correlation, parameterName, methodName); err != nil {
		return err
	}

	bag, err := model.EncodeProperties(properties)
	if err != nil {
		return errors.NewValidationError(err.Error()).WithDetail("parameterName", "elementProperties")
	}

	if isMergeUpdate {
		entity.Properties = model.MergeProperties(entity.Properties, bag)
	} else {
		if _, ok := model.ReferenceableOf(properties); ok && bag["qualifiedName"] == nil {
			return errors.NewNullParameterError("qualifiedName", methodName)
		}
		for _, key := range statusProperties {
			if v, ok := entity.Properties[key]; ok && bag[key] == nil {
				bag[key] = v
			}
		}
		entity.Properties = bag
	}

	if qn := entity.QualifiedName(); qn != "" {
		if err := h.checkUniqueQualifiedName(ctx, family, qn, entity.GUID, methodName); err != nil {
			return err
		}
	}

	if eff, ok := model.EffectivityOf(properties); ok {
		if !isMergeUpdate || eff.EffectiveFrom != nil {
			entity.EffectiveFrom = eff.EffectiveFrom
		}
		if !isMergeUpdate || eff.EffectiveTo != nil {
			entity.EffectiveTo = eff.EffectiveTo
		}
	}

	return h.saveEntity(ctx, userID, entity, eventbus.EventTypeUpdatedElement, "", methodName)
}

// setEntityProperty updates a single property, as the status operations do.
func (h *MetadataHandler) setEntityProperty(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, guid, parameterName, family, property string, value interface{}, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	entity, err := h.getEntity(ctx, userID, guid, parameterName, family, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.verifyCorrelation(entity, correlation, parameterName, methodName); err != nil {
		return err
	}
	if entity.Properties == nil {
		entity.Properties = map[string]interface{}{}
	}
	entity.Properties[property] = value
	return h.saveEntity(ctx, userID, entity, eventbus.EventTypeUpdatedElement, "", methodName)
}

func (h *MetadataHandler) saveEntity(ctx context.Context, userID string, entity *model.Entity, eventType, classificationName, methodName string) error {
	entity.UpdatedBy = userID
	entity.UpdateTime = h.now()
	entity.Version++
	if err := h.store.UpdateEntity(ctx, entity); err != nil {
		return storeError(err, methodName)
	}
	h.publishEntity(ctx, eventType, userID, entity, classificationName)
	return nil
}

// removeEntity deletes an element, or marks it as a memento when lineage still refers to it.
func (h *MetadataHandler) removeEntity(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, guid, parameterName, family string, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	entity, err := h.getEntity(ctx, userID, guid, parameterName, family, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.verifyCorrelation(entity, correlation, parameterName, methodName); err != nil {
		return err
	}
	return h.deleteOrMemento(ctx, userID, entity, methodName)
}

// removeAnchored removes the elements anchored to guid through relTypes before guid itself goes.
func (h *MetadataHandler) removeAnchored(ctx context.Context, userID, guid string, relTypes []string, methodName string) error {
	relationships, err := h.store.FindRelationships(ctx, repository.RelationshipQuery{TypeNames: relTypes, End1GUID: guid})
	if err != nil {
		return storeError(err, methodName)
	}
	for _, r := range relationships {
		anchored, err := h.store.GetEntity(ctx, r.End2GUID)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return storeError(err, methodName)
		}
		if anchored.Classification(model.ClassMemento) != nil {
			continue
		}
		if err := h.deleteOrMemento(ctx, userID, anchored, methodName); err != nil {
			return err
		}
	}
	return nil
}

func (h *MetadataHandler) deleteOrMemento(ctx context.Context, userID string, entity *model.Entity, methodName string) error {
	if entity.Classification(model.ClassMemento) != nil {
		return nil
	}
	lineage, err := h.store.FindRelationships(ctx, repository.RelationshipQuery{
		TypeNames:     model.LineageRelationshipTypes(),
		EitherEndGUID: entity.GUID,
		PageSize:      1,
	})
	if err != nil {
		return storeError(err, methodName)
	}

	if len(lineage) > 0 {
		now := h.now()
		entity.Classifications = append(entity.Classifications, model.Classification{
			Name:       model.ClassMemento,
			Properties: map[string]interface{}{"archiveUser": userID, "archiveDate": now},
			CreatedBy:  userID,
			CreateTime: now,
			UpdateTime: now,
		})
		h.logger.WithFields(map[string]interface{}{
			"guid":    entity.GUID,
			"user_id": userID,
		}).Info("Element is part of lineage, classified as memento instead of deleted")
		return h.saveEntity(ctx, userID, entity, eventbus.EventTypeClassifiedElement, model.ClassMemento, methodName)
	}

	relationships, err := h.store.FindRelationships(ctx, repository.RelationshipQuery{EitherEndGUID: entity.GUID})
	if err != nil {
		return storeError(err, methodName)
	}
	for _, r := range relationships {
		if err := h.store.DeleteRelationship(ctx, r.GUID); err != nil && !errors.IsNotFound(err) {
			return storeError(err, methodName)
		}
		h.publishRelationship(ctx, eventbus.EventTypeDeletedRelationship, userID, r)
	}

	if err := h.store.DeleteEntity(ctx, entity.GUID); err != nil {
		return storeError(err, methodName)
	}
	h.publishEntity(ctx, eventbus.EventTypeDeletedElement, userID, entity, "")
	return nil
}

// ---- classifications

func (h *MetadataHandler) classifyEntity(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, guid, parameterName, family, classificationName string, properties interface{}, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	entity, err := h.getEntity(ctx, userID, guid, parameterName, family, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.verifyCorrelation(entity, correlation, parameterName, methodName); err != nil {
		return err
	}

	var bag map[string]interface{}
	if !model.IsNil(properties) {
		if bag, err = model.EncodeProperties(properties); err != nil {
			return errors.NewValidationError(err.Error()).WithDetail("parameterName", "properties")
		}
	}
	now := h.now()

	eventType := eventbus.EventTypeClassifiedElement
	classification := entity.Classification(classificationName)
	if classification != nil {
		eventType = eventbus.EventTypeReclassifiedElement
		classification.Properties = bag
		classification.UpdatedBy = userID
		classification.UpdateTime = now
	} else {
		entity.Classifications = append(entity.Classifications, model.Classification{
			Name:       classificationName,
			Properties: bag,
			CreatedBy:  userID,
			CreateTime: now,
			UpdateTime: now,
		})
		classification = &entity.Classifications[len(entity.Classifications)-1]
	}
	if eff, ok := model.EffectivityOf(properties); ok {
		classification.EffectiveFrom = eff.EffectiveFrom
		classification.EffectiveTo = eff.EffectiveTo
	}

	return h.saveEntity(ctx, userID, entity, eventType, classificationName, methodName)
}

func (h *MetadataHandler) declassifyEntity(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, guid, parameterName, family, classificationName string, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	entity, err := h.getEntity(ctx, userID, guid, parameterName, family, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.verifyCorrelation(entity, correlation, parameterName, methodName); err != nil {
		return err
	}
	if !entity.RemoveClassification(classificationName) {
		return nil
	}
	return h.saveEntity(ctx, userID, entity, eventbus.EventTypeDeclassifiedElement, classificationName, methodName)
}

// ---- relationships

type end struct {
	guid          string
	parameterName string
	family        string
}

type relationshipRequest struct {
	userID             string
	assetManagerGUID   string
	assetManagerName   string
	assetManagerIsHome bool
	typeName           string
	end1               end
	end2               end
	properties         interface{}
	opts               model.QueryOptions
	methodName         string
}

// createRelationship links two elements. An effective relationship of the same type
// between the same ends is reused with its properties refreshed.
func (h *MetadataHandler) createRelationship(ctx context.Context, req relationshipRequest) (string, error) {
	if err := validateUserID(req.userID, req.methodName); err != nil {
		return "", err
	}
	if _, err := h.getEntity(ctx, req.userID, req.end1.guid, req.end1.parameterName, req.end1.family, req.opts, req.methodName); err != nil {
		return "", err
	}
	if _, err := h.getEntity(ctx, req.userID, req.end2.guid, req.end2.parameterName, req.end2.family, req.opts, req.methodName); err != nil {
		return "", err
	}

	bag, err := model.EncodeProperties(req.properties)
	if err != nil {
		return "", errors.NewValidationError(err.Error()).WithDetail("parameterName", "properties")
	}
	var from, to *time.Time
	if eff, ok := model.EffectivityOf(req.properties); ok {
		from, to = eff.EffectiveFrom, eff.EffectiveTo
	}

	existing, err := h.relationshipBetween(ctx, req.typeName, req.end1.guid, req.end2.guid, req.opts, req.methodName)
	if err != nil {
		return "", err
	}
	if existing != nil {
		existing.Properties = bag
		existing.EffectiveFrom, existing.EffectiveTo = from, to
		if err := h.saveRelationship(ctx, req.userID, existing, req.methodName); err != nil {
			return "", err
		}
		return existing.GUID, nil
	}

	now := h.now()
	relationship := &model.Relationship{
		GUID:          uuid.NewString(),
		TypeName:      req.typeName,
		End1GUID:      req.end1.guid,
		End2GUID:      req.end2.guid,
		Properties:    bag,
		EffectiveFrom: from,
		EffectiveTo:   to,
		CreatedBy:     req.userID,
		CreateTime:    now,
		UpdateTime:    now,
		Version:       1,
	}
	if req.assetManagerIsHome && req.assetManagerGUID != "" {
		relationship.AssetManagerGUID = req.assetManagerGUID
		relationship.AssetManagerName = req.assetManagerName
	}
	if err := h.store.CreateRelationship(ctx, relationship); err != nil {
		return "", storeError(err, req.methodName)
	}
	h.publishRelationship(ctx, eventbus.EventTypeNewRelationship, req.userID, relationship)
	return relationship.GUID, nil
}

func (h *MetadataHandler) relationshipBetween(ctx context.Context, typeName, end1GUID, end2GUID string, opts model.QueryOptions, methodName string) (*model.Relationship, error) {
	found, err := h.store.FindRelationships(ctx, repository.RelationshipQuery{
		TypeNames:     []string{typeName},
		End1GUID:      end1GUID,
		End2GUID:      end2GUID,
		EffectiveTime: opts.EffectiveTime,
		PageSize:      1,
	})
	if err != nil {
		return nil, storeError(err, methodName)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// getRelationship retrieves an effective relationship of typeName.
func (h *MetadataHandler) getRelationship(ctx context.Context, guid, parameterName, typeName string, opts model.QueryOptions, methodName string) (*model.Relationship, error) {
	if err := validateGUID(guid, parameterName, methodName); err != nil {
		return nil, err
	}
	relationship, err := h.store.GetRelationship(ctx, guid)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnknownGUIDError(guid, parameterName, methodName)
		}
		return nil, storeError(err, methodName)
	}
	if typeName != "" && relationship.TypeName != typeName {
		return nil, wrongTypeError(guid, relationship.TypeName, typeName, parameterName, methodName)
	}
	if !model.IsEffective(relationship.EffectiveFrom, relationship.EffectiveTo, opts.EffectiveTime) {
		return nil, errors.NewUnknownGUIDError(guid, parameterName, methodName)
	}
	return relationship, nil
}

func (h *MetadataHandler) updateRelationship(ctx context.Context, userID, guid, parameterName, typeName string, isMergeUpdate bool, properties interface{}, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	relationship, err := h.getRelationship(ctx, guid, parameterName, typeName, opts, methodName)
	if err != nil {
		return err
	}
	bag, err := model.EncodeProperties(properties)
	if err != nil {
		return errors.NewValidationError(err.Error()).WithDetail("parameterName", "properties")
	}
	if isMergeUpdate {
		relationship.Properties = model.MergeProperties(relationship.Properties, bag)
	} else {
		relationship.Properties = bag
	}
	if eff, ok := model.EffectivityOf(properties); ok {
		if !isMergeUpdate || eff.EffectiveFrom != nil {
			relationship.EffectiveFrom = eff.EffectiveFrom
		}
		if !isMergeUpdate || eff.EffectiveTo != nil {
			relationship.EffectiveTo = eff.EffectiveTo
		}
	}
	return h.saveRelationship(ctx, userID, relationship, methodName)
}

func (h *MetadataHandler) saveRelationship(ctx context.Context, userID string, relationship *model.Relationship, methodName string) error {
	relationship.UpdatedBy = userID
	relationship.UpdateTime = h.now()
	relationship.Version++
	if err := h.store.UpdateRelationship(ctx, relationship); err != nil {
		return storeError(err, methodName)
	}
	h.publishRelationship(ctx, eventbus.EventTypeUpdatedRelationship, userID, relationship)
	return nil
}

// updateRelationshipBetween updates the relationship linking two elements.
func (h *MetadataHandler) updateRelationshipBetween(ctx context.Context, userID, typeName string, end1, end2 end, isMergeUpdate bool, properties interface{}, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	if err := validateGUID(end1.guid, end1.parameterName, methodName); err != nil {
		return err
	}
	if err := validateGUID(end2.guid, end2.parameterName, methodName); err != nil {
		return err
	}
	relationship, err := h.relationshipBetween(ctx, typeName, end1.guid, end2.guid, opts, methodName)
	if err != nil {
		return err
	}
	if relationship == nil {
		return errors.NewNotFoundError(fmt.Sprintf("%s relationship between %s and %s", typeName, end1.guid, end2.guid)).
			WithCode("OMAG-COMMON-404-002").
			WithCause(errors.ErrRelationshipNotFound)
	}
	return h.updateRelationship(ctx, userID, relationship.GUID, "relationshipGUID", typeName, isMergeUpdate, properties, opts, methodName)
}

func (h *MetadataHandler) deleteRelationship(ctx context.Context, userID, guid, parameterName, typeName string, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	relationship, err := h.getRelationship(ctx, guid, parameterName, typeName, opts, methodName)
	if err != nil {
		return err
	}
	if err := h.store.DeleteRelationship(ctx, relationship.GUID); err != nil {
		return storeError(err, methodName)
	}
	h.publishRelationship(ctx, eventbus.EventTypeDeletedRelationship, userID, relationship)
	return nil
}

// deleteRelationshipBetween unlinks two elements. Unlinking elements that are not linked is not an error.
func (h *MetadataHandler) deleteRelationshipBetween(ctx context.Context, userID, typeName string, end1, end2 end, opts model.QueryOptions, methodName string) error {
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	if _, err := h.getEntity(ctx, userID, end1.guid, end1.parameterName, end1.family, opts, methodName); err != nil {
		return err
	}
	if _, err := h.getEntity(ctx, userID, end2.guid, end2.parameterName, end2.family, opts, methodName); err != nil {
		return err
	}
	relationship, err := h.relationshipBetween(ctx, typeName, end1.guid, end2.guid, opts, methodName)
	if err != nil || relationship == nil {
		return err
	}
	if err := h.store.DeleteRelationship(ctx, relationship.GUID); err != nil {
		return storeError(err, methodName)
	}
	h.publishRelationship(ctx, eventbus.EventTypeDeletedRelationship, userID, relationship)
	return nil
}

// ---- events

func (h *MetadataHandler) publishEntity(ctx context.Context, eventType, userID string, entity *model.Entity, classificationName string) {
	h.publish(ctx, &model.ChangeEvent{
		EventType:          eventType,
		UserID:             userID,
		ElementGUID:        entity.GUID,
		TypeName:           entity.TypeName,
		ClassificationName: classificationName,
		Properties:         entity.Properties,
	})
}

func (h *MetadataHandler) publishRelationship(ctx context.Context, eventType, userID string, relationship *model.Relationship) {
	h.publish(ctx, &model.ChangeEvent{
		EventType:   eventType,
		UserID:      userID,
		ElementGUID: relationship.GUID,
		TypeName:    relationship.TypeName,
		End1GUID:    relationship.End1GUID,
		End2GUID:    relationship.End2GUID,
		Properties:  relationship.Properties,
	})
}

// publish sends a change event on the bus. The change is already stored, so a
// failing listener is logged rather than failing the operation.
func (h *MetadataHandler) publish(ctx context.Context, event *model.ChangeEvent) {
	if h.bus == nil {
		return
	}
	event.ServerName = h.serverName
	event.EventTime = h.now()
	if err := h.bus.Publish(ctx, eventbus.NewBasicEventWithSource(event.EventType, event, h.serverName)); err != nil {
		h.logger.WithFields(map[string]interface{}{
			"event_type": event.EventType,
			"guid":       event.ElementGUID,
			"error":      err.Error(),
		}).Warn("Failed to publish change event")
	}
}
