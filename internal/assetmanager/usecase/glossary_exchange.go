package usecase

import (
	"context"
	"fmt"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"
)

// GlossaryExchange maintains glossaries together with their categories and terms.
type GlossaryExchange interface {
	CreateGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, properties *model.GlossaryProperties) (string, error)
	CreateGlossaryFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, templateGUID string, template *model.TemplateProperties) (string, error)
	UpdateGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, isMergeUpdate bool, properties *model.GlossaryProperties, opts model.QueryOptions) error
	RemoveGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error
	SetGlossaryAsTaxonomy(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, properties *model.TaxonomyProperties, opts model.QueryOptions) error
	ClearGlossaryAsTaxonomy(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error
	SetGlossaryAsCanonical(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, properties *model.CanonicalVocabularyProperties, opts model.QueryOptions) error
	ClearGlossaryAsCanonical(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error
	FindGlossaries(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error)
	GetGlossariesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error)
	GetGlossariesForAssetManager(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error)
	GetGlossaryByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, opts model.QueryOptions) (*model.GlossaryElement, error)
	GetGlossaryForCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryElement, error)
	GetGlossaryForTerm(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID string, opts model.QueryOptions) (*model.GlossaryElement, error)

	CreateGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, isRootCategory bool, properties *model.GlossaryCategoryProperties) (string, error)
	CreateGlossaryCategoryFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID, templateGUID string, template *model.TemplateProperties) (string, error)
	UpdateGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryCategoryGUID string, isMergeUpdate bool, properties *model.GlossaryCategoryProperties, opts model.QueryOptions) error
	SetupCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, glossaryParentCategoryGUID, glossaryChildCategoryGUID string, opts model.QueryOptions) error
	ClearCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryParentCategoryGUID, glossaryChildCategoryGUID string, opts model.QueryOptions) error
	RemoveGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryCategoryGUID string, opts model.QueryOptions) error
	FindGlossaryCategories(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error)
	GetCategoriesForGlossary(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error)
	GetGlossaryCategoriesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error)
	GetGlossaryCategoryByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryCategoryElement, error)
	GetGlossaryCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryCategoryElement, error)
	GetGlossarySubCategories(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error)

	CreateGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, properties *model.GlossaryTermProperties) (string, error)
	CreateControlledGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, initialStatus model.GlossaryTermStatus, properties *model.GlossaryTermProperties) (string, error)
	CreateGlossaryTermFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID, templateGUID string, template *model.TemplateProperties) (string, error)
	UpdateGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, isMergeUpdate bool, properties *model.GlossaryTermProperties, opts model.QueryOptions) error
	UpdateGlossaryTermStatus(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, status model.GlossaryTermStatus, opts model.QueryOptions) error
	SetupTermCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, glossaryCategoryGUID, glossaryTermGUID string, properties *model.GlossaryTermCategorization, opts model.QueryOptions) error
	ClearTermCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID, glossaryTermGUID string, opts model.QueryOptions) error
	SetupTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, properties *model.GlossaryTermRelationship, opts model.QueryOptions) error
	UpdateTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, properties *model.GlossaryTermRelationship, opts model.QueryOptions) error
	ClearTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, opts model.QueryOptions) error
	RemoveGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, opts model.QueryOptions) error
	FindGlossaryTerms(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error)
	GetTermsForGlossary(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error)
	GetTermsForGlossaryCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error)
	GetGlossaryTermsByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error)
	GetGlossaryTermByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID string, opts model.QueryOptions) (*model.GlossaryTermElement, error)
	GetRelatedTerms(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID, relationshipTypeName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.RelatedTermElement, error)
}

// GlossaryHandler implements GlossaryExchange.
type GlossaryHandler struct {
	h *MetadataHandler
}

var _ GlossaryExchange = (*GlossaryHandler)(nil)

func NewGlossaryHandler(h *MetadataHandler) *GlossaryHandler {
	return &GlossaryHandler{h: h}
}

var (
	glossarySearchProperties = []string{"qualifiedName", "displayName", "description", "usage"}
	categorySearchProperties = []string{"qualifiedName", "displayName", "description"}
	termSearchProperties     = []string{"qualifiedName", "displayName", "summary", "description", "abbreviation", "examples", "usage"}
	nameProperties           = []string{"qualifiedName", "displayName"}
)

// ---- glossaries

func (g *GlossaryHandler) CreateGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, properties *model.GlossaryProperties) (string, error) {
	const methodName = "createGlossary"
	if properties == nil {
		return "", errors.NewNullParameterError("glossaryProperties", methodName)
	}
	return g.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypeGlossary,
		properties:         properties,
		methodName:         methodName,
	})
}

func (g *GlossaryHandler) CreateGlossaryFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, templateGUID string, template *model.TemplateProperties) (string, error) {
	return g.h.createFromTemplate(ctx, templateRequest{
		entityRequest: entityRequest{
			userID:             userID,
			correlation:        correlation,
			assetManagerIsHome: assetManagerIsHome,
			family:             model.TypeGlossary,
			methodName:         "createGlossaryFromTemplate",
		},
		templateGUID:        templateGUID,
		template:            template,
		displayNameProperty: "displayName",
	})
}

func (g *GlossaryHandler) UpdateGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, isMergeUpdate bool, properties *model.GlossaryProperties, opts model.QueryOptions) error {
	return g.h.updateEntity(ctx, userID, correlation, glossaryGUID, "glossaryGUID", model.TypeGlossary, isMergeUpdate, properties, opts, "updateGlossary")
}

// RemoveGlossary removes the glossary along with the categories and terms anchored to it.
func (g *GlossaryHandler) RemoveGlossary(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error {
	const methodName = "removeGlossary"
	if err := validateUserID(userID, methodName); err != nil {
		return err
	}
	glossary, err := g.h.getEntity(ctx, userID, glossaryGUID, "glossaryGUID", model.TypeGlossary, opts, methodName)
	if err != nil {
		return err
	}
	if err := g.h.verifyCorrelation(glossary, correlation, "glossaryGUID", methodName); err != nil {
		return err
	}
	if err := g.h.removeAnchored(ctx, userID, glossaryGUID, []string{model.RelCategoryAnchor, model.RelTermAnchor}, methodName); err != nil {
		return err
	}
	return g.h.deleteOrMemento(ctx, userID, glossary, methodName)
}

func (g *GlossaryHandler) SetGlossaryAsTaxonomy(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, properties *model.TaxonomyProperties, opts model.QueryOptions) error {
	return g.h.classifyEntity(ctx, userID, correlation, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.ClassTaxonomy, properties, opts, "setGlossaryAsTaxonomy")
}

func (g *GlossaryHandler) ClearGlossaryAsTaxonomy(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error {
	return g.h.declassifyEntity(ctx, userID, correlation, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.ClassTaxonomy, opts, "clearGlossaryAsTaxonomy")
}

func (g *GlossaryHandler) SetGlossaryAsCanonical(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, properties *model.CanonicalVocabularyProperties, opts model.QueryOptions) error {
	return g.h.classifyEntity(ctx, userID, correlation, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.ClassCanonicalVocabulary, properties, opts, "setGlossaryAsCanonical")
}

func (g *GlossaryHandler) ClearGlossaryAsCanonical(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryGUID string, opts model.QueryOptions) error {
	return g.h.declassifyEntity(ctx, userID, correlation, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.ClassCanonicalVocabulary, opts, "clearGlossaryAsCanonical")
}

func (g *GlossaryHandler) FindGlossaries(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error) {
	const methodName = "findGlossaries"
	entities, err := g.h.searchByFamily(ctx, userID, model.TypeGlossary, searchString, "searchString", glossarySearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossariesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error) {
	const methodName = "getGlossariesByName"
	entities, err := g.h.namedInFamily(ctx, userID, model.TypeGlossary, name, "name", nameProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossariesForAssetManager(ctx context.Context, userID, assetManagerGUID, assetManagerName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryElement, error) {
	const methodName = "getGlossariesForAssetManager"
	entities, err := g.h.forAssetManager(ctx, userID, model.TypeGlossary, assetManagerGUID, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, opts model.QueryOptions) (*model.GlossaryElement, error) {
	const methodName = "getGlossaryByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := g.h.getEntity(ctx, userID, glossaryGUID, "glossaryGUID", model.TypeGlossary, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryProperties](entity, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryForCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryElement, error) {
	const methodName = "getGlossaryForCategory"
	entity, err := g.h.relatedEntity(ctx, userID, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, model.RelCategoryAnchor, false, model.TypeGlossary, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryProperties](entity, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryForTerm(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID string, opts model.QueryOptions) (*model.GlossaryElement, error) {
	const methodName = "getGlossaryForTerm"
	entity, err := g.h.relatedEntity(ctx, userID, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, model.RelTermAnchor, false, model.TypeGlossary, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryProperties](entity, assetManagerGUID, methodName)
}

// ---- categories

func glossaryAnchor(glossaryGUID, relationshipType string) *anchor {
	return &anchor{
		guid:             glossaryGUID,
		parameterName:    "glossaryGUID",
		family:           model.TypeGlossary,
		relationshipType: relationshipType,
	}
}

func (g *GlossaryHandler) CreateGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, isRootCategory bool, properties *model.GlossaryCategoryProperties) (string, error) {
	const methodName = "createGlossaryCategory"
	if err := validateGUID(glossaryGUID, "glossaryGUID", methodName); err != nil {
		return "", err
	}
	if properties == nil {
		return "", errors.NewNullParameterError("glossaryCategoryProperties", methodName)
	}
	var classifications []model.Classification
	if isRootCategory {
		classifications = append(classifications, model.Classification{Name: model.ClassRootCategory})
	}
	return g.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypeGlossaryCategory,
		properties:         properties,
		classifications:    classifications,
		anchor:             glossaryAnchor(glossaryGUID, model.RelCategoryAnchor),
		methodName:         methodName,
	})
}

func (g *GlossaryHandler) CreateGlossaryCategoryFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID, templateGUID string, template *model.TemplateProperties) (string, error) {
	const methodName = "createGlossaryCategoryFromTemplate"
	if err := validateGUID(glossaryGUID, "glossaryGUID", methodName); err != nil {
		return "", err
	}
	return g.h.createFromTemplate(ctx, templateRequest{
		entityRequest: entityRequest{
			userID:             userID,
			correlation:        correlation,
			assetManagerIsHome: assetManagerIsHome,
			family:             model.TypeGlossaryCategory,
			anchor:             glossaryAnchor(glossaryGUID, model.RelCategoryAnchor),
			methodName:         methodName,
		},
		templateGUID:        templateGUID,
		template:            template,
		displayNameProperty: "displayName",
	})
}

func (g *GlossaryHandler) UpdateGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryCategoryGUID string, isMergeUpdate bool, properties *model.GlossaryCategoryProperties, opts model.QueryOptions) error {
	return g.h.updateEntity(ctx, userID, correlation, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, isMergeUpdate, properties, opts, "updateGlossaryCategory")
}

// SetupCategoryParent links a category to its parent. A category has at most one parent.
func (g *GlossaryHandler) SetupCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, glossaryParentCategoryGUID, glossaryChildCategoryGUID string, opts model.QueryOptions) error {
	const methodName = "setupCategoryParent"
	if err := validateGUID(glossaryChildCategoryGUID, "glossaryChildCategoryGUID", methodName); err != nil {
		return err
	}
	existing, err := g.h.store.FindRelationships(ctx, repository.RelationshipQuery{
		TypeNames:     []string{model.RelCategoryHierarchyLink},
		End2GUID:      glossaryChildCategoryGUID,
		EffectiveTime: opts.EffectiveTime,
	})
	if err != nil {
		return storeError(err, methodName)
	}
	for _, r := range existing {
		if r.End1GUID != glossaryParentCategoryGUID {
			return errors.NewConflictError(fmt.Sprintf("the category %s passed on the %s operation already has the parent category %s", glossaryChildCategoryGUID, methodName, r.End1GUID)).
				WithCode("OMAG-COMMON-409-002").
				WithDetail("parameterName", "glossaryChildCategoryGUID")
		}
	}

	_, err = g.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelCategoryHierarchyLink,
		end1:               end{guid: glossaryParentCategoryGUID, parameterName: "glossaryParentCategoryGUID", family: model.TypeGlossaryCategory},
		end2:               end{guid: glossaryChildCategoryGUID, parameterName: "glossaryChildCategoryGUID", family: model.TypeGlossaryCategory},
		opts:               opts,
		methodName:         methodName,
	})
	return err
}

func (g *GlossaryHandler) ClearCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryParentCategoryGUID, glossaryChildCategoryGUID string, opts model.QueryOptions) error {
	return g.h.deleteRelationshipBetween(ctx, userID, model.RelCategoryHierarchyLink,
		end{guid: glossaryParentCategoryGUID, parameterName: "glossaryParentCategoryGUID", family: model.TypeGlossaryCategory},
		end{guid: glossaryChildCategoryGUID, parameterName: "glossaryChildCategoryGUID", family: model.TypeGlossaryCategory},
		opts, "clearCategoryParent")
}

func (g *GlossaryHandler) RemoveGlossaryCategory(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryCategoryGUID string, opts model.QueryOptions) error {
	return g.h.removeEntity(ctx, userID, correlation, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, opts, "removeGlossaryCategory")
}

func (g *GlossaryHandler) FindGlossaryCategories(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error) {
	const methodName = "findGlossaryCategories"
	entities, err := g.h.searchByFamily(ctx, userID, model.TypeGlossaryCategory, searchString, "searchString", categorySearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryCategoryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetCategoriesForGlossary(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error) {
	const methodName = "getCategoriesForGlossary"
	entities, err := g.h.relatedEntities(ctx, userID, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.RelCategoryAnchor, true, model.TypeGlossaryCategory, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryCategoryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryCategoriesByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error) {
	const methodName = "getGlossaryCategoriesByName"
	entities, err := g.h.namedInFamily(ctx, userID, model.TypeGlossaryCategory, name, "name", nameProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryCategoryProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryCategoryByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryCategoryElement, error) {
	const methodName = "getGlossaryCategoryByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := g.h.getEntity(ctx, userID, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryCategoryProperties](entity, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryCategoryParent(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, opts model.QueryOptions) (*model.GlossaryCategoryElement, error) {
	const methodName = "getGlossaryCategoryParent"
	entity, err := g.h.relatedEntity(ctx, userID, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, model.RelCategoryHierarchyLink, false, model.TypeGlossaryCategory, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryCategoryProperties](entity, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossarySubCategories(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryCategoryElement, error) {
	const methodName = "getGlossarySubCategories"
	entities, err := g.h.relatedEntities(ctx, userID, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, model.RelCategoryHierarchyLink, true, model.TypeGlossaryCategory, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryCategoryProperties](entities, assetManagerGUID, methodName)
}

// ---- terms

func (g *GlossaryHandler) createTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, properties *model.GlossaryTermProperties, methodName string) (string, error) {
	if err := validateGUID(glossaryGUID, "glossaryGUID", methodName); err != nil {
		return "", err
	}
	return g.h.createEntity(ctx, entityRequest{
		userID:             userID,
		correlation:        correlation,
		assetManagerIsHome: assetManagerIsHome,
		family:             model.TypeGlossaryTerm,
		properties:         properties,
		anchor:             glossaryAnchor(glossaryGUID, model.RelTermAnchor),
		methodName:         methodName,
	})
}

// CreateGlossaryTerm creates an active term anchored to the glossary.
func (g *GlossaryHandler) CreateGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, properties *model.GlossaryTermProperties) (string, error) {
	const methodName = "createGlossaryTerm"
	if properties == nil {
		return "", errors.NewNullParameterError("glossaryTermProperties", methodName)
	}
	term := *properties
	term.Status = model.TermStatusActive
	return g.createTerm(ctx, userID, correlation, assetManagerIsHome, glossaryGUID, &term, methodName)
}

// CreateGlossaryTermFromTemplate copies a template term into the glossary.
func (g *GlossaryHandler) CreateGlossaryTermFromTemplate(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID, templateGUID string, template *model.TemplateProperties) (string, error) {
	const methodName = "createGlossaryTermFromTemplate"
	if err := validateGUID(glossaryGUID, "glossaryGUID", methodName); err != nil {
		return "", err
	}
	return g.h.createFromTemplate(ctx, templateRequest{
		entityRequest: entityRequest{
			userID:             userID,
			correlation:        correlation,
			assetManagerIsHome: assetManagerIsHome,
			family:             model.TypeGlossaryTerm,
			anchor:             glossaryAnchor(glossaryGUID, model.RelTermAnchor),
			methodName:         methodName,
		},
		templateGUID:        templateGUID,
		template:            template,
		displayNameProperty: "displayName",
	})
}

// CreateControlledGlossaryTerm creates a term whose status follows a review workflow.
// An empty initialStatus starts the term as DRAFT.
func (g *GlossaryHandler) CreateControlledGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, assetManagerIsHome bool, glossaryGUID string, initialStatus model.GlossaryTermStatus, properties *model.GlossaryTermProperties) (string, error) {
	const methodName = "createControlledGlossaryTerm"
	if properties == nil {
		return "", errors.NewNullParameterError("glossaryTermProperties", methodName)
	}
	if initialStatus == "" {
		initialStatus = model.TermStatusDraft
	}
	if !initialStatus.Valid() {
		return "", invalidValueError("initialStatus", string(initialStatus), methodName)
	}
	term := *properties
	term.Status = initialStatus
	if term.TypeName == "" {
		term.TypeName = model.TypeControlledGlossaryTerm
	}
	return g.createTerm(ctx, userID, correlation, assetManagerIsHome, glossaryGUID, &term, methodName)
}

func (g *GlossaryHandler) UpdateGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, isMergeUpdate bool, properties *model.GlossaryTermProperties, opts model.QueryOptions) error {
	if properties != nil && properties.Status != "" {
		term := *properties
		term.Status = ""
		properties = &term
	}
	return g.h.updateEntity(ctx, userID, correlation, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, isMergeUpdate, properties, opts, "updateGlossaryTerm")
}

func (g *GlossaryHandler) UpdateGlossaryTermStatus(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, status model.GlossaryTermStatus, opts model.QueryOptions) error {
	const methodName = "updateGlossaryTermStatus"
	if !status.Valid() {
		return invalidValueError("glossaryTermStatus", string(status), methodName)
	}
	return g.h.setEntityProperty(ctx, userID, correlation, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, "status", string(status), opts, methodName)
}

func (g *GlossaryHandler) SetupTermCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, glossaryCategoryGUID, glossaryTermGUID string, properties *model.GlossaryTermCategorization, opts model.QueryOptions) error {
	_, err := g.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           model.RelTermCategorization,
		end1:               end{guid: glossaryCategoryGUID, parameterName: "glossaryCategoryGUID", family: model.TypeGlossaryCategory},
		end2:               end{guid: glossaryTermGUID, parameterName: "glossaryTermGUID", family: model.TypeGlossaryTerm},
		properties:         properties,
		opts:               opts,
		methodName:         "setupTermCategory",
	})
	return err
}

func (g *GlossaryHandler) ClearTermCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID, glossaryTermGUID string, opts model.QueryOptions) error {
	return g.h.deleteRelationshipBetween(ctx, userID, model.RelTermCategorization,
		end{guid: glossaryCategoryGUID, parameterName: "glossaryCategoryGUID", family: model.TypeGlossaryCategory},
		end{guid: glossaryTermGUID, parameterName: "glossaryTermGUID", family: model.TypeGlossaryTerm},
		opts, "clearTermCategory")
}

func validateTermRelationshipType(relationshipTypeName, methodName string) error {
	if relationshipTypeName == "" {
		return errors.NewNullParameterError("relationshipTypeName", methodName)
	}
	if !model.IsTermRelationshipType(relationshipTypeName) {
		return errors.NewValidationError(fmt.Sprintf("the relationshipTypeName %q passed on the %s operation is not a glossary term relationship", relationshipTypeName, methodName)).
			WithCode("OMAG-COMMON-400-013").
			WithDetail("parameterName", "relationshipTypeName")
	}
	return nil
}

func termEnds(glossaryTermOneGUID, glossaryTermTwoGUID string) (end, end) {
	return end{guid: glossaryTermOneGUID, parameterName: "glossaryTermOneGUID", family: model.TypeGlossaryTerm},
		end{guid: glossaryTermTwoGUID, parameterName: "glossaryTermTwoGUID", family: model.TypeGlossaryTerm}
}

func (g *GlossaryHandler) SetupTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, properties *model.GlossaryTermRelationship, opts model.QueryOptions) error {
	const methodName = "setupTermRelationship"
	if err := validateTermRelationshipType(relationshipTypeName, methodName); err != nil {
		return err
	}
	end1, end2 := termEnds(glossaryTermOneGUID, glossaryTermTwoGUID)
	_, err := g.h.createRelationship(ctx, relationshipRequest{
		userID:             userID,
		assetManagerGUID:   assetManagerGUID,
		assetManagerName:   assetManagerName,
		assetManagerIsHome: assetManagerIsHome,
		typeName:           relationshipTypeName,
		end1:               end1,
		end2:               end2,
		properties:         properties,
		opts:               opts,
		methodName:         methodName,
	})
	return err
}

func (g *GlossaryHandler) UpdateTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, properties *model.GlossaryTermRelationship, opts model.QueryOptions) error {
	const methodName = "updateTermRelationship"
	if err := validateTermRelationshipType(relationshipTypeName, methodName); err != nil {
		return err
	}
	end1, end2 := termEnds(glossaryTermOneGUID, glossaryTermTwoGUID)
	return g.h.updateRelationshipBetween(ctx, userID, relationshipTypeName, end1, end2, false, properties, opts, methodName)
}

func (g *GlossaryHandler) ClearTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, opts model.QueryOptions) error {
	const methodName = "clearTermRelationship"
	if err := validateTermRelationshipType(relationshipTypeName, methodName); err != nil {
		return err
	}
	end1, end2 := termEnds(glossaryTermOneGUID, glossaryTermTwoGUID)
	return g.h.deleteRelationshipBetween(ctx, userID, relationshipTypeName, end1, end2, opts, methodName)
}

func (g *GlossaryHandler) RemoveGlossaryTerm(ctx context.Context, userID string, correlation *model.MetadataCorrelationProperties, glossaryTermGUID string, opts model.QueryOptions) error {
	return g.h.removeEntity(ctx, userID, correlation, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, opts, "removeGlossaryTerm")
}

func (g *GlossaryHandler) FindGlossaryTerms(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error) {
	const methodName = "findGlossaryTerms"
	entities, err := g.h.searchByFamily(ctx, userID, model.TypeGlossaryTerm, searchString, "searchString", termSearchProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryTermProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetTermsForGlossary(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error) {
	const methodName = "getTermsForGlossary"
	entities, err := g.h.relatedEntities(ctx, userID, glossaryGUID, "glossaryGUID", model.TypeGlossary, model.RelTermAnchor, true, model.TypeGlossaryTerm, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryTermProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetTermsForGlossaryCategory(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryCategoryGUID string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error) {
	const methodName = "getTermsForGlossaryCategory"
	entities, err := g.h.relatedEntities(ctx, userID, glossaryCategoryGUID, "glossaryCategoryGUID", model.TypeGlossaryCategory, model.RelTermCategorization, true, model.TypeGlossaryTerm, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryTermProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryTermsByName(ctx context.Context, userID, assetManagerGUID, assetManagerName, name string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.GlossaryTermElement, error) {
	const methodName = "getGlossaryTermsByName"
	entities, err := g.h.namedInFamily(ctx, userID, model.TypeGlossaryTerm, name, "name", nameProperties, startFrom, pageSize, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElements[model.GlossaryTermProperties](entities, assetManagerGUID, methodName)
}

func (g *GlossaryHandler) GetGlossaryTermByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID string, opts model.QueryOptions) (*model.GlossaryTermElement, error) {
	const methodName = "getGlossaryTermByGUID"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	entity, err := g.h.getEntity(ctx, userID, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toElement[model.GlossaryTermProperties](entity, assetManagerGUID, methodName)
}

// GetRelatedTerms lists the terms linked to a term through relationshipTypeName, in
// either direction. An empty relationshipTypeName means every term relationship.
func (g *GlossaryHandler) GetRelatedTerms(ctx context.Context, userID, assetManagerGUID, assetManagerName, glossaryTermGUID, relationshipTypeName string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.RelatedTermElement, error) {
	const methodName = "getRelatedTerms"
	if err := validateUserID(userID, methodName); err != nil {
		return nil, err
	}
	relTypes := model.TermRelationshipTypes()
	if relationshipTypeName != "" {
		if err := validateTermRelationshipType(relationshipTypeName, methodName); err != nil {
			return nil, err
		}
		relTypes = []string{relationshipTypeName}
	}
	size, err := g.h.validatePaging(startFrom, pageSize, methodName)
	if err != nil {
		return nil, err
	}
	if _, err := g.h.getEntity(ctx, userID, glossaryTermGUID, "glossaryTermGUID", model.TypeGlossaryTerm, opts, methodName); err != nil {
		return nil, err
	}
	pairs, err := g.h.relatedEitherEnd(ctx, userID, glossaryTermGUID, relTypes, model.TypeGlossaryTerm, startFrom, size, opts, methodName)
	if err != nil {
		return nil, err
	}
	return toRelatedElements[model.GlossaryTermRelationship, model.GlossaryTermProperties](pairs, assetManagerGUID, methodName)
}
