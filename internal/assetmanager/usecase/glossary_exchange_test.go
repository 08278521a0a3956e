package usecase

import (
	"context"
	"testing"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glossaryProps(qualifiedName string) *model.GlossaryProperties {
	return &model.GlossaryProperties{
		ReferenceableProperties: model.ReferenceableProperties{QualifiedName: qualifiedName},
		DisplayName:             qualifiedName,
	}
}

func categoryProps(qualifiedName string) *model.GlossaryCategoryProperties {
	return &model.GlossaryCategoryProperties{
		ReferenceableProperties: model.ReferenceableProperties{QualifiedName: qualifiedName},
		DisplayName:             qualifiedName,
	}
}

func termProps(qualifiedName string) *model.GlossaryTermProperties {
	return &model.GlossaryTermProperties{
		ReferenceableProperties: model.ReferenceableProperties{QualifiedName: qualifiedName},
		DisplayName:             qualifiedName,
		Summary:                 "summary of " + qualifiedName,
	}
}

func classificationNames(header model.ElementHeader) []string {
	var names []string
	for _, c := range header.Classifications {
		names = append(names, c.ClassificationName)
	}
	return names
}

func TestGlossaryClassifications(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	guid, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)

	require.NoError(t, glossaries.SetGlossaryAsTaxonomy(ctx, testUser, nil, guid,
		&model.TaxonomyProperties{OrganizingPrinciple: "by region"}, model.QueryOptions{}))
	require.NoError(t, glossaries.SetGlossaryAsCanonical(ctx, testUser, nil, guid,
		&model.CanonicalVocabularyProperties{Scope: "enterprise"}, model.QueryOptions{}))

	element, err := glossaries.GetGlossaryByGUID(ctx, testUser, "", "", guid, model.QueryOptions{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.ClassTaxonomy, model.ClassCanonicalVocabulary}, classificationNames(element.ElementHeader))

	// Setting it again reclassifies.
	require.NoError(t, glossaries.SetGlossaryAsTaxonomy(ctx, testUser, nil, guid,
		&model.TaxonomyProperties{OrganizingPrinciple: "by product"}, model.QueryOptions{}))
	element, err = glossaries.GetGlossaryByGUID(ctx, testUser, "", "", guid, model.QueryOptions{})
	require.NoError(t, err)
	for _, c := range element.ElementHeader.Classifications {
		if c.ClassificationName == model.ClassTaxonomy {
			assert.Equal(t, "by product", c.ClassificationProperties["organizingPrinciple"])
		}
	}

	require.NoError(t, glossaries.ClearGlossaryAsTaxonomy(ctx, testUser, nil, guid, model.QueryOptions{}))
	require.NoError(t, glossaries.ClearGlossaryAsCanonical(ctx, testUser, nil, guid, model.QueryOptions{}))
	// Clearing a classification that is not there is not an error.
	require.NoError(t, glossaries.ClearGlossaryAsCanonical(ctx, testUser, nil, guid, model.QueryOptions{}))

	element, err = glossaries.GetGlossaryByGUID(ctx, testUser, "", "", guid, model.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, element.ElementHeader.Classifications)
}

func TestGlossaryQueries(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	_, err := glossaries.CreateGlossary(ctx, testUser, correlation("g-1"), true, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)
	_, err = glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Finance"))
	require.NoError(t, err)

	byName, err := glossaries.GetGlossariesByName(ctx, testUser, "", "", "Glossary:Finance", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	owned, err := glossaries.GetGlossariesForAssetManager(ctx, testUser, testAM, testAMName, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Glossary:Sales", owned[0].Properties.QualifiedName)

	_, err = glossaries.GetGlossariesForAssetManager(ctx, testUser, "", "", 0, 0, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))

	found, err := glossaries.FindGlossaries(ctx, testUser, "", "", "Glossary:", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestGlossaryCategories(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	glossaryGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)

	root, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, glossaryGUID, true, categoryProps("Category:Root"))
	require.NoError(t, err)
	child, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, glossaryGUID, false, categoryProps("Category:Child"))
	require.NoError(t, err)
	other, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, glossaryGUID, false, categoryProps("Category:Other"))
	require.NoError(t, err)

	rootElement, err := glossaries.GetGlossaryCategoryByGUID(ctx, testUser, "", "", root, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{model.ClassRootCategory}, classificationNames(rootElement.ElementHeader))

	categories, err := glossaries.GetCategoriesForGlossary(ctx, testUser, "", "", glossaryGUID, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	glossary, err := glossaries.GetGlossaryForCategory(ctx, testUser, "", "", child, model.QueryOptions{})
	require.NoError(t, err)
	require.NotNil(t, glossary)
	assert.Equal(t, glossaryGUID, glossary.ElementHeader.GUID)

	require.NoError(t, glossaries.SetupCategoryParent(ctx, testUser, "", "", false, root, child, model.QueryOptions{}))
	// Repeating the same link is accepted.
	require.NoError(t, glossaries.SetupCategoryParent(ctx, testUser, "", "", false, root, child, model.QueryOptions{}))

	err = glossaries.SetupCategoryParent(ctx, testUser, "", "", false, other, child, model.QueryOptions{})
	assert.True(t, errors.IsConflict(err))
	assert.Equal(t, "OMAG-COMMON-409-002", errorCode(t, err))

	parent, err := glossaries.GetGlossaryCategoryParent(ctx, testUser, "", "", child, model.QueryOptions{})
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, root, parent.ElementHeader.GUID)

	subs, err := glossaries.GetGlossarySubCategories(ctx, testUser, "", "", root, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, child, subs[0].ElementHeader.GUID)

	require.NoError(t, glossaries.ClearCategoryParent(ctx, testUser, "", "", root, child, model.QueryOptions{}))
	// Clearing twice is a no-op.
	require.NoError(t, glossaries.ClearCategoryParent(ctx, testUser, "", "", root, child, model.QueryOptions{}))

	parent, err = glossaries.GetGlossaryCategoryParent(ctx, testUser, "", "", child, model.QueryOptions{})
	require.NoError(t, err)
	assert.Nil(t, parent)

	require.NoError(t, glossaries.SetupCategoryParent(ctx, testUser, "", "", false, other, child, model.QueryOptions{}))

	byName, err := glossaries.GetGlossaryCategoriesByName(ctx, testUser, "", "", "Category:Other", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	found, err := glossaries.FindGlossaryCategories(ctx, testUser, "", "", "Child", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, glossaries.UpdateGlossaryCategory(ctx, testUser, nil, child, true,
		&model.GlossaryCategoryProperties{Description: "child category"}, model.QueryOptions{}))
	require.NoError(t, glossaries.RemoveGlossaryCategory(ctx, testUser, nil, other, model.QueryOptions{}))

	parent, err = glossaries.GetGlossaryCategoryParent(ctx, testUser, "", "", child, model.QueryOptions{})
	require.NoError(t, err)
	assert.Nil(t, parent)
}

func TestCreateGlossaryCategory_UnknownGlossary(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	_, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, "missing", false, categoryProps("Category:Lost"))
	assert.True(t, errors.IsNotFound(err))

	_, err = glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, "", false, categoryProps("Category:Lost"))
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))

	// Nothing is left behind by the failed attempts.
	found, err := glossaries.FindGlossaryCategories(ctx, testUser, "", "", ".*", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGlossaryTerms(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	glossaryGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)
	categoryGUID, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, glossaryGUID, false, categoryProps("Category:Orders"))
	require.NoError(t, err)

	props := termProps("Term:Customer")
	props.Status = model.TermStatusDeprecated
	termGUID, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, props)
	require.NoError(t, err)

	term, err := glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", termGUID, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusActive, term.Properties.Status)
	assert.Equal(t, model.TypeGlossaryTerm, term.Properties.TypeName)

	// Updates do not change the status.
	replace := termProps("Term:Customer")
	replace.Status = model.TermStatusRejected
	require.NoError(t, glossaries.UpdateGlossaryTerm(ctx, testUser, nil, termGUID, false, replace, model.QueryOptions{}))
	term, err = glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", termGUID, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusActive, term.Properties.Status)

	require.NoError(t, glossaries.UpdateGlossaryTermStatus(ctx, testUser, nil, termGUID, model.TermStatusDeprecated, model.QueryOptions{}))
	term, err = glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", termGUID, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusDeprecated, term.Properties.Status)

	err = glossaries.UpdateGlossaryTermStatus(ctx, testUser, nil, termGUID, "RETIRED", model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-012", errorCode(t, err))

	require.NoError(t, glossaries.SetupTermCategory(ctx, testUser, "", "", false, categoryGUID, termGUID,
		&model.GlossaryTermCategorization{Description: "primary"}, model.QueryOptions{}))
	inCategory, err := glossaries.GetTermsForGlossaryCategory(ctx, testUser, "", "", categoryGUID, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, termGUID, inCategory[0].ElementHeader.GUID)

	require.NoError(t, glossaries.ClearTermCategory(ctx, testUser, "", "", categoryGUID, termGUID, model.QueryOptions{}))
	inCategory, err = glossaries.GetTermsForGlossaryCategory(ctx, testUser, "", "", categoryGUID, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, inCategory)

	glossary, err := glossaries.GetGlossaryForTerm(ctx, testUser, "", "", termGUID, model.QueryOptions{})
	require.NoError(t, err)
	require.NotNil(t, glossary)
	assert.Equal(t, glossaryGUID, glossary.ElementHeader.GUID)

	copyGUID, err := glossaries.CreateGlossaryTermFromTemplate(ctx, testUser, nil, false, glossaryGUID, termGUID,
		&model.TemplateProperties{QualifiedName: "Term:Client", DisplayName: "Client"})
	require.NoError(t, err)
	copied, err := glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", copyGUID, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Term:Client", copied.Properties.QualifiedName)
	assert.Equal(t, "Client", copied.Properties.DisplayName)
	assert.Equal(t, "summary of Term:Customer", copied.Properties.Summary)

	terms, err := glossaries.GetTermsForGlossary(ctx, testUser, "", "", glossaryGUID, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, terms, 2)

	byName, err := glossaries.GetGlossaryTermsByName(ctx, testUser, "", "", "Client", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	found, err := glossaries.FindGlossaryTerms(ctx, testUser, "", "", "summary of", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, glossaries.RemoveGlossaryTerm(ctx, testUser, nil, copyGUID, model.QueryOptions{}))
	_, err = glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", copyGUID, model.QueryOptions{})
	assert.True(t, errors.IsNotFound(err))
}

func TestCreateControlledGlossaryTerm(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	glossaryGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)

	draft, err := glossaries.CreateControlledGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, "", termProps("Term:Draft"))
	require.NoError(t, err)
	term, err := glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", draft, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusDraft, term.Properties.Status)
	assert.Equal(t, model.TypeControlledGlossaryTerm, term.ElementHeader.Type.TypeName)

	proposed, err := glossaries.CreateControlledGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, model.TermStatusProposed, termProps("Term:Proposed"))
	require.NoError(t, err)
	term, err = glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", proposed, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.TermStatusProposed, term.Properties.Status)

	_, err = glossaries.CreateControlledGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, "SHELVED", termProps("Term:Bad"))
	assert.Equal(t, "OMAG-COMMON-400-012", errorCode(t, err))

	_, err = glossaries.CreateControlledGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, "", nil)
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))
}

func TestTermRelationships(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	glossaryGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)
	customer, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, termProps("Term:Customer"))
	require.NoError(t, err)
	client, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, termProps("Term:Client"))
	require.NoError(t, err)
	supplier, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, termProps("Term:Supplier"))
	require.NoError(t, err)

	require.NoError(t, glossaries.SetupTermRelationship(ctx, testUser, "", "", false, model.RelSynonym, customer, client,
		&model.GlossaryTermRelationship{Description: "same thing", Confidence: 80}, model.QueryOptions{}))
	require.NoError(t, glossaries.SetupTermRelationship(ctx, testUser, "", "", false, model.RelAntonym, supplier, customer,
		nil, model.QueryOptions{}))

	err = glossaries.SetupTermRelationship(ctx, testUser, "", "", false, model.RelDataFlow, customer, client, nil, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-013", errorCode(t, err))
	err = glossaries.SetupTermRelationship(ctx, testUser, "", "", false, "", customer, client, nil, model.QueryOptions{})
	assert.Equal(t, "OMAG-COMMON-400-001", errorCode(t, err))

	// Both directions are reported.
	related, err := glossaries.GetRelatedTerms(ctx, testUser, "", "", customer, "", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, client, related[0].RelatedElement.ElementHeader.GUID)
	assert.Equal(t, model.RelSynonym, related[0].RelationshipHeader.Type.TypeName)
	assert.Equal(t, 80, related[0].RelationshipProperties.Confidence)
	assert.Equal(t, supplier, related[1].RelatedElement.ElementHeader.GUID)

	synonyms, err := glossaries.GetRelatedTerms(ctx, testUser, "", "", client, model.RelSynonym, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, synonyms, 1)
	assert.Equal(t, customer, synonyms[0].RelatedElement.ElementHeader.GUID)

	require.NoError(t, glossaries.UpdateTermRelationship(ctx, testUser, "", "", model.RelSynonym, customer, client,
		&model.GlossaryTermRelationship{Steward: "erinoverview"}, model.QueryOptions{}))
	synonyms, err = glossaries.GetRelatedTerms(ctx, testUser, "", "", customer, model.RelSynonym, 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, synonyms, 1)
	assert.Equal(t, "erinoverview", synonyms[0].RelationshipProperties.Steward)
	assert.Empty(t, synonyms[0].RelationshipProperties.Description)

	err = glossaries.UpdateTermRelationship(ctx, testUser, "", "", model.RelSynonym, customer, supplier,
		&model.GlossaryTermRelationship{}, model.QueryOptions{})
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "OMAG-COMMON-404-002", errorCode(t, err))

	require.NoError(t, glossaries.ClearTermRelationship(ctx, testUser, "", "", model.RelSynonym, customer, client, model.QueryOptions{}))
	related, err = glossaries.GetRelatedTerms(ctx, testUser, "", "", customer, "", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, supplier, related[0].RelatedElement.ElementHeader.GUID)
}

func TestRemoveGlossary_RemovesAnchoredElements(t *testing.T) {
	env := newTestEnv(t, HandlerConfig{})
	ctx := context.Background()
	glossaries := NewGlossaryHandler(env.h)

	glossaryGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Sales"))
	require.NoError(t, err)
	otherGUID, err := glossaries.CreateGlossary(ctx, testUser, nil, false, glossaryProps("Glossary:Finance"))
	require.NoError(t, err)
	categoryGUID, err := glossaries.CreateGlossaryCategory(ctx, testUser, nil, false, glossaryGUID, false, categoryProps("Category:Orders"))
	require.NoError(t, err)
	termGUID, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, glossaryGUID, termProps("Term:Customer"))
	require.NoError(t, err)
	keptGUID, err := glossaries.CreateGlossaryTerm(ctx, testUser, nil, false, otherGUID, termProps("Term:Ledger"))
	require.NoError(t, err)
	require.NoError(t, glossaries.SetupTermRelationship(ctx, testUser, "", "", false, model.RelRelatedTerm, termGUID, keptGUID, nil, model.QueryOptions{}))

	require.NoError(t, glossaries.RemoveGlossary(ctx, testUser, nil, glossaryGUID, model.QueryOptions{}))

	_, err = glossaries.GetGlossaryByGUID(ctx, testUser, "", "", glossaryGUID, model.QueryOptions{})
	assert.True(t, errors.IsNotFound(err))
	_, err = glossaries.GetGlossaryCategoryByGUID(ctx, testUser, "", "", categoryGUID, model.QueryOptions{})
	assert.True(t, errors.IsNotFound(err))
	_, err = glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", termGUID, model.QueryOptions{})
	assert.True(t, errors.IsNotFound(err))

	kept, err := glossaries.GetGlossaryTermByGUID(ctx, testUser, "", "", keptGUID, model.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Term:Ledger", kept.Properties.QualifiedName)

	related, err := glossaries.GetRelatedTerms(ctx, testUser, "", "", keptGUID, "", 0, 0, model.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, related)
}
