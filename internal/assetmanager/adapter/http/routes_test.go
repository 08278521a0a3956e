package http

import (
	"testing"

	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// Server resolution fails before any body is read, so every route answers an
// unknown server with the name of the operation it is bound to.
func TestRoutes_ReachNamedOperation(t *testing.T) {
	app := fiber.New()
	NewServices(usecase.NewServerInstances(), logger.NewNopLogger()).RegisterRoutes(app)

	const root = "/servers/unknownServer/open-metadata/access-services/asset-manager/users/" + testUser

	routes := []struct {
		path   string
		opName string
	}{
		{"/external-references", "createExternalReference"},
		{"/external-references/retrieve", "getExternalReferences"},
		{"/external-references/by-resource-id", "getExternalReferencesByResourceId"},
		{"/external-references/by-url", "getExternalReferencesByURL"},
		{"/external-references/by-name", "getExternalReferencesByName"},
		{"/external-references/by-search-string", "findExternalReferences"},
		{"/external-references/links/guid-1", "updateExternalReferenceToElementLink"},
		{"/external-references/links/guid-1/remove", "unlinkExternalReferenceFromElement"},
		{"/external-references/guid-2", "updateExternalReference"},
		{"/external-references/guid-2/remove", "removeExternalReference"},
		{"/external-references/guid-2/retrieve", "getExternalReferenceByGUID"},
		{"/elements/guid-3/external-references/retrieve", "getExternalReferencesForElement"},
		{"/elements/guid-3/external-references/guid-2/link", "linkExternalReferenceToElement"},
		{"/glossaries", "createGlossary"},
		{"/glossaries/from-template/guid-4", "createGlossaryFromTemplate"},
		{"/glossaries/by-search-string", "findGlossaries"},
		{"/glossaries/by-name", "getGlossariesByName"},
		{"/glossaries/for-asset-manager", "getGlossariesForAssetManager"},
		{"/glossaries/for-category/guid-5/retrieve", "getGlossaryForCategory"},
		{"/glossaries/for-term/guid-6/retrieve", "getGlossaryForTerm"},
		{"/glossaries/categories/by-search-string", "findGlossaryCategories"},
		{"/glossaries/categories/by-name", "getGlossaryCategoriesByName"},
		{"/glossaries/terms/by-search-string", "findGlossaryTerms"},
		{"/glossaries/terms/by-name", "getGlossaryTermsByName"},
		{"/glossaries/guid-7", "updateGlossary"},
		{"/glossaries/guid-7/remove", "removeGlossary"},
		{"/glossaries/guid-7/retrieve", "getGlossaryByGUID"},
		{"/glossaries/guid-7/is-taxonomy", "setGlossaryAsTaxonomy"},
		{"/glossaries/guid-7/is-taxonomy/remove", "clearGlossaryAsTaxonomy"},
		{"/glossaries/guid-7/is-canonical-vocabulary", "setGlossaryAsCanonical"},
		{"/glossaries/guid-7/is-canonical-vocabulary/remove", "clearGlossaryAsCanonical"},
		{"/glossaries/guid-7/categories", "createGlossaryCategory"},
		{"/glossaries/guid-7/categories/retrieve", "getCategoriesForGlossary"},
		{"/glossaries/guid-7/categories/from-template/guid-4", "createGlossaryCategoryFromTemplate"},
		{"/glossaries/categories/guid-5", "updateGlossaryCategory"},
		{"/glossaries/categories/guid-5/remove", "removeGlossaryCategory"},
		{"/glossaries/categories/guid-5/retrieve", "getGlossaryCategoryByGUID"},
		{"/glossaries/categories/guid-5/parent/retrieve", "getGlossaryCategoryParent"},
		{"/glossaries/categories/guid-5/subcategories/retrieve", "getGlossarySubCategories"},
		{"/glossaries/categories/guid-8/subcategories/guid-9", "setupCategoryParent"},
		{"/glossaries/categories/guid-8/subcategories/guid-9/remove", "clearCategoryParent"},
		{"/glossaries/guid-7/terms", "createGlossaryTerm"},
		{"/glossaries/guid-7/terms/controlled", "createControlledGlossaryTerm"},
		{"/glossaries/guid-7/terms/retrieve", "getTermsForGlossary"},
		{"/glossaries/guid-7/terms/from-template/guid-4", "createGlossaryTermFromTemplate"},
		{"/glossaries/terms/guid-6", "updateGlossaryTerm"},
		{"/glossaries/terms/guid-6/status", "updateGlossaryTermStatus"},
		{"/glossaries/terms/guid-6/remove", "removeGlossaryTerm"},
		{"/glossaries/terms/guid-6/retrieve", "getGlossaryTermByGUID"},
		{"/glossaries/terms/guid-6/related-terms", "getRelatedTerms"},
		{"/glossaries/categories/guid-5/terms/retrieve", "getTermsForGlossaryCategory"},
		{"/glossaries/categories/guid-5/terms/guid-6", "setupTermCategory"},
		{"/glossaries/categories/guid-5/terms/guid-6/remove", "clearTermCategory"},
		{"/glossaries/terms/guid-10/relationships/Synonym/terms/guid-11", "setupTermRelationship"},
		{"/glossaries/terms/guid-10/relationships/Synonym/terms/guid-11/update", "updateTermRelationship"},
		{"/glossaries/terms/guid-10/relationships/Synonym/terms/guid-11/remove", "clearTermRelationship"},
		{"/processes", "createProcess"},
		{"/processes/from-template/guid-4", "createProcessFromTemplate"},
		{"/processes/by-search-string", "findProcesses"},
		{"/processes/by-name", "getProcessesByName"},
		{"/processes/for-asset-manager", "getProcessesForAssetManager"},
		{"/processes/parent/guid-12/child/guid-13", "setupProcessParent"},
		{"/processes/parent/guid-12/child/guid-13/remove", "clearProcessParent"},
		{"/processes/guid-14", "updateProcess"},
		{"/processes/guid-14/status", "updateProcessStatus"},
		{"/processes/guid-14/is-public", "publishProcess"},
		{"/processes/guid-14/is-public/remove", "withdrawProcess"},
		{"/processes/guid-14/remove", "removeProcess"},
		{"/processes/guid-14/retrieve", "getProcessByGUID"},
		{"/processes/guid-14/parent/retrieve", "getProcessParent"},
		{"/processes/guid-14/children/retrieve", "getSubProcesses"},
		{"/processes/guid-14/ports", "createPort"},
		{"/processes/guid-14/ports/retrieve", "getPortsForProcess"},
		{"/processes/guid-14/ports/guid-15", "setupProcessPort"},
		{"/processes/guid-14/ports/guid-15/remove", "clearProcessPort"},
		{"/ports/by-search-string", "findPorts"},
		{"/ports/by-name", "getPortsByName"},
		{"/ports/guid-15", "updatePort"},
		{"/ports/guid-15/remove", "removePort"},
		{"/ports/guid-15/retrieve", "getPortByGUID"},
		{"/ports/guid-15/port-uses/retrieve", "getPortUse"},
		{"/ports/guid-15/port-delegations/retrieve", "getPortDelegations"},
		{"/ports/guid-16/port-delegations/guid-17", "setupPortDelegation"},
		{"/ports/guid-16/port-delegations/guid-17/remove", "clearPortDelegation"},
		{"/data-flows/suppliers/guid-18/consumers/retrieve", "getDataFlowConsumers"},
		{"/data-flows/consumers/guid-19/suppliers/retrieve", "getDataFlowSuppliers"},
		{"/data-flows/suppliers/guid-18/consumers/guid-19", "setupDataFlow"},
		{"/data-flows/suppliers/guid-18/consumers/guid-19/retrieve", "getDataFlow"},
		{"/data-flows/guid-20/update", "updateDataFlow"},
		{"/data-flows/guid-20/remove", "clearDataFlow"},
		{"/control-flows/current-steps/guid-21/next-steps/retrieve", "getControlFlowNextSteps"},
		{"/control-flows/current-steps/guid-21/previous-steps/retrieve", "getControlFlowPreviousSteps"},
		{"/control-flows/current-steps/guid-21/next-steps/guid-22", "setupControlFlow"},
		{"/control-flows/current-steps/guid-21/next-steps/guid-22/retrieve", "getControlFlow"},
		{"/control-flows/guid-23/update", "updateControlFlow"},
		{"/control-flows/guid-23/remove", "clearControlFlow"},
		{"/process-calls/callers/guid-24/called/retrieve", "getProcessCalled"},
		{"/process-calls/called/guid-25/callers/retrieve", "getProcessCallers"},
		{"/process-calls/callers/guid-24/called/guid-25", "setupProcessCall"},
		{"/process-calls/callers/guid-24/called/guid-25/retrieve", "getProcessCall"},
		{"/process-calls/guid-26/update", "updateProcessCall"},
		{"/process-calls/guid-26/remove", "clearProcessCall"},
		{"/lineage-mappings/sources/guid-27/destinations/retrieve", "getDestinationLineageMappings"},
		{"/lineage-mappings/destinations/guid-28/sources/retrieve", "getSourceLineageMappings"},
		{"/lineage-mappings/sources/guid-27/destinations/guid-28", "setupLineageMapping"},
		{"/lineage-mappings/sources/guid-27/destinations/guid-28/remove", "clearLineageMapping"},
		{"/elements/security-tagged/retrieve", "getSecurityTaggedElements"},
		{"/elements/guid-29/security-tags", "addSecurityTags"},
		{"/elements/guid-29/security-tags/remove", "clearSecurityTags"},
	}

	seen := make(map[string]bool, len(routes))
	for _, tt := range routes {
		t.Run(tt.opName, func(t *testing.T) {
			assert.False(t, seen[tt.opName], "operation bound twice")
			seen[tt.opName] = true

			var resp VoidResponse
			call(t, app, root+tt.path, nil, &resp)

			assert.True(t, resp.Failed())
			assert.Equal(t, tt.opName, resp.ActionDescription)
			assert.Equal(t, "OMAG-COMMON-400-014", resp.ExceptionErrorMessageID)
		})
	}
	assert.Len(t, seen, 109)
}
