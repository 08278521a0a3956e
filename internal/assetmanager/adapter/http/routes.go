package http

import (
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	// ServerPath is the root of every path served for a named server.
	ServerPath = "/servers/:serverName/open-metadata/access-services/asset-manager"
	// UserPath is the root of the REST operations, which act for the user in the path.
	UserPath = ServerPath + "/users/:userId"
	// OutTopicPath is where listeners attach to receive change events.
	OutTopicPath = ServerPath + "/topics/out-topic-events"
)

// Services groups the REST services registered under UserPath.
type Services struct {
	ExternalReferences *ExternalReferenceRESTServices
	Glossaries         *GlossaryExchangeRESTServices
	Lineage            *LineageExchangeRESTServices
	SecurityTags       *SecurityTagsRESTServices
}

// NewServices builds every REST services type on one instance handler.
func NewServices(instances InstanceHandler, log logger.Logger) *Services {
	return &Services{
		ExternalReferences: NewExternalReferenceRESTServices(instances, log),
		Glossaries:         NewGlossaryExchangeRESTServices(instances, log),
		Lineage:            NewLineageExchangeRESTServices(instances, log),
		SecurityTags:       NewSecurityTagsRESTServices(instances, log),
	}
}

// RegisterRoutes registers every REST operation under UserPath. guards run in
// front of each operation, after its path parameters are resolved.
//
// Routes are matched in registration order, so within a family the fixed
// segments (by-name, retrieve, ...) are registered before the GUID parameters
// they would otherwise be taken for.
func (s *Services) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	users := router.Group(UserPath)
	post := func(path string, handler fiber.Handler) {
		handlers := make([]fiber.Handler, 0, len(guards)+1)
		handlers = append(handlers, guards...)
		users.Post(path, append(handlers, handler)...)
	}

	s.registerExternalReferences(post)
	s.registerGlossaries(post)
	s.registerCategories(post)
	s.registerTerms(post)
	s.registerProcesses(post)
	s.registerPorts(post)
	s.registerLineage(post)
	s.registerSecurityTags(post)
}

type routeFunc func(path string, handler fiber.Handler)

func (s *Services) registerExternalReferences(post routeFunc) {
	r := s.ExternalReferences
	post("/external-references", r.CreateExternalReference)
	post("/external-references/retrieve", r.GetExternalReferences)
	post("/external-references/by-resource-id", r.GetExternalReferencesByResourceID)
	post("/external-references/by-url", r.GetExternalReferencesByURL)
	post("/external-references/by-name", r.GetExternalReferencesByName)
	post("/external-references/by-search-string", r.FindExternalReferences)
	post("/external-references/links/:linkGUID", r.UpdateExternalReferenceToElementLink)
	post("/external-references/links/:linkGUID/remove", r.UnlinkExternalReferenceFromElement)
	post("/external-references/:externalReferenceGUID", r.UpdateExternalReference)
	post("/external-references/:externalReferenceGUID/remove", r.RemoveExternalReference)
	post("/external-references/:externalReferenceGUID/retrieve", r.GetExternalReferenceByGUID)
	post("/elements/:attachedToGUID/external-references/retrieve", r.GetExternalReferencesForElement)
	post("/elements/:attachedToGUID/external-references/:externalReferenceGUID/link", r.LinkExternalReferenceToElement)
}

func (s *Services) registerGlossaries(post routeFunc) {
	g := s.Glossaries
	post("/glossaries", g.CreateGlossary)
	post("/glossaries/from-template/:templateGUID", g.CreateGlossaryFromTemplate)
	post("/glossaries/by-search-string", g.FindGlossaries)
	post("/glossaries/by-name", g.GetGlossariesByName)
	post("/glossaries/for-asset-manager", g.GetGlossariesForAssetManager)
	post("/glossaries/for-category/:glossaryCategoryGUID/retrieve", g.GetGlossaryForCategory)
	post("/glossaries/for-term/:glossaryTermGUID/retrieve", g.GetGlossaryForTerm)
}

// registerCategories also registers the remaining /glossaries/:glossaryGUID
// routes, which must follow the static category and term paths.
func (s *Services) registerCategories(post routeFunc) {
	g := s.Glossaries
	post("/glossaries/categories/by-search-string", g.FindGlossaryCategories)
	post("/glossaries/categories/by-name", g.GetGlossaryCategoriesByName)
	post("/glossaries/terms/by-search-string", g.FindGlossaryTerms)
	post("/glossaries/terms/by-name", g.GetGlossaryTermsByName)

	post("/glossaries/:glossaryGUID", g.UpdateGlossary)
	post("/glossaries/:glossaryGUID/remove", g.RemoveGlossary)
	post("/glossaries/:glossaryGUID/retrieve", g.GetGlossaryByGUID)
	post("/glossaries/:glossaryGUID/is-taxonomy", g.SetGlossaryAsTaxonomy)
	post("/glossaries/:glossaryGUID/is-taxonomy/remove", g.ClearGlossaryAsTaxonomy)
	post("/glossaries/:glossaryGUID/is-canonical-vocabulary", g.SetGlossaryAsCanonical)
	post("/glossaries/:glossaryGUID/is-canonical-vocabulary/remove", g.ClearGlossaryAsCanonical)

	post("/glossaries/:glossaryGUID/categories", g.CreateGlossaryCategory)
	post("/glossaries/:glossaryGUID/categories/retrieve", g.GetCategoriesForGlossary)
	post("/glossaries/:glossaryGUID/categories/from-template/:templateGUID", g.CreateGlossaryCategoryFromTemplate)
	post("/glossaries/categories/:glossaryCategoryGUID", g.UpdateGlossaryCategory)
	post("/glossaries/categories/:glossaryCategoryGUID/remove", g.RemoveGlossaryCategory)
	post("/glossaries/categories/:glossaryCategoryGUID/retrieve", g.GetGlossaryCategoryByGUID)
	post("/glossaries/categories/:glossaryCategoryGUID/parent/retrieve", g.GetGlossaryCategoryParent)
	post("/glossaries/categories/:glossaryCategoryGUID/subcategories/retrieve", g.GetGlossarySubCategories)
	post("/glossaries/categories/:glossaryParentCategoryGUID/subcategories/:glossaryChildCategoryGUID", g.SetupCategoryParent)
	post("/glossaries/categories/:glossaryParentCategoryGUID/subcategories/:glossaryChildCategoryGUID/remove", g.ClearCategoryParent)
}

func (s *Services) registerTerms(post routeFunc) {
	g := s.Glossaries
	post("/glossaries/:glossaryGUID/terms", g.CreateGlossaryTerm)
	post("/glossaries/:glossaryGUID/terms/controlled", g.CreateControlledGlossaryTerm)
	post("/glossaries/:glossaryGUID/terms/retrieve", g.GetTermsForGlossary)
	post("/glossaries/:glossaryGUID/terms/from-template/:templateGUID", g.CreateGlossaryTermFromTemplate)
	post("/glossaries/terms/:glossaryTermGUID", g.UpdateGlossaryTerm)
	post("/glossaries/terms/:glossaryTermGUID/status", g.UpdateGlossaryTermStatus)
	post("/glossaries/terms/:glossaryTermGUID/remove", g.RemoveGlossaryTerm)
	post("/glossaries/terms/:glossaryTermGUID/retrieve", g.GetGlossaryTermByGUID)
	post("/glossaries/terms/:glossaryTermGUID/related-terms", g.GetRelatedTerms)
	post("/glossaries/categories/:glossaryCategoryGUID/terms/retrieve", g.GetTermsForGlossaryCategory)
	post("/glossaries/categories/:glossaryCategoryGUID/terms/:glossaryTermGUID", g.SetupTermCategory)
	post("/glossaries/categories/:glossaryCategoryGUID/terms/:glossaryTermGUID/remove", g.ClearTermCategory)

	const termRelationship = "/glossaries/terms/:glossaryTermOneGUID/relationships/:relationshipTypeName/terms/:glossaryTermTwoGUID"
	post(termRelationship, g.SetupTermRelationship)
	post(termRelationship+"/update", g.UpdateTermRelationship)
	post(termRelationship+"/remove", g.ClearTermRelationship)
}

func (s *Services) registerProcesses(post routeFunc) {
	l := s.Lineage
	post("/processes", l.CreateProcess)
	post("/processes/from-template/:templateGUID", l.CreateProcessFromTemplate)
	post("/processes/by-search-string", l.FindProcesses)
	post("/processes/by-name", l.GetProcessesByName)
	post("/processes/for-asset-manager", l.GetProcessesForAssetManager)
	post("/processes/parent/:parentProcessGUID/child/:childProcessGUID", l.SetupProcessParent)
	post("/processes/parent/:parentProcessGUID/child/:childProcessGUID/remove", l.ClearProcessParent)
	post("/processes/:processGUID", l.UpdateProcess)
	post("/processes/:processGUID/status", l.UpdateProcessStatus)
	post("/processes/:processGUID/is-public", l.PublishProcess)
	post("/processes/:processGUID/is-public/remove", l.WithdrawProcess)
	post("/processes/:processGUID/remove", l.RemoveProcess)
	post("/processes/:processGUID/retrieve", l.GetProcessByGUID)
	post("/processes/:processGUID/parent/retrieve", l.GetProcessParent)
	post("/processes/:processGUID/children/retrieve", l.GetSubProcesses)
}

func (s *Services) registerPorts(post routeFunc) {
	l := s.Lineage
	post("/processes/:processGUID/ports", l.CreatePort)
	post("/processes/:processGUID/ports/retrieve", l.GetPortsForProcess)
	post("/processes/:processGUID/ports/:portGUID", l.SetupProcessPort)
	post("/processes/:processGUID/ports/:portGUID/remove", l.ClearProcessPort)
	post("/ports/by-search-string", l.FindPorts)
	post("/ports/by-name", l.GetPortsByName)
	post("/ports/:portGUID", l.UpdatePort)
	post("/ports/:portGUID/remove", l.RemovePort)
	post("/ports/:portGUID/retrieve", l.GetPortByGUID)
	post("/ports/:portGUID/port-uses/retrieve", l.GetPortUse)
	post("/ports/:portGUID/port-delegations/retrieve", l.GetPortDelegations)
	post("/ports/:portOneGUID/port-delegations/:portTwoGUID", l.SetupPortDelegation)
	post("/ports/:portOneGUID/port-delegations/:portTwoGUID/remove", l.ClearPortDelegation)
}

func (s *Services) registerLineage(post routeFunc) {
	l := s.Lineage
	post("/data-flows/suppliers/:dataSupplierGUID/consumers/retrieve", l.GetDataFlowConsumers)
	post("/data-flows/consumers/:dataConsumerGUID/suppliers/retrieve", l.GetDataFlowSuppliers)
	post("/data-flows/suppliers/:dataSupplierGUID/consumers/:dataConsumerGUID", l.SetupDataFlow)
	post("/data-flows/suppliers/:dataSupplierGUID/consumers/:dataConsumerGUID/retrieve", l.GetDataFlow)
	post("/data-flows/:dataFlowGUID/update", l.UpdateDataFlow)
	post("/data-flows/:dataFlowGUID/remove", l.ClearDataFlow)

	post("/control-flows/current-steps/:currentStepGUID/next-steps/retrieve", l.GetControlFlowNextSteps)
	post("/control-flows/current-steps/:currentStepGUID/previous-steps/retrieve", l.GetControlFlowPreviousSteps)
	post("/control-flows/current-steps/:currentStepGUID/next-steps/:nextStepGUID", l.SetupControlFlow)
	post("/control-flows/current-steps/:currentStepGUID/next-steps/:nextStepGUID/retrieve", l.GetControlFlow)
	post("/control-flows/:controlFlowGUID/update", l.UpdateControlFlow)
	post("/control-flows/:controlFlowGUID/remove", l.ClearControlFlow)

	post("/process-calls/callers/:callerGUID/called/retrieve", l.GetProcessCalled)
	post("/process-calls/called/:calledGUID/callers/retrieve", l.GetProcessCallers)
	post("/process-calls/callers/:callerGUID/called/:calledGUID", l.SetupProcessCall)
	post("/process-calls/callers/:callerGUID/called/:calledGUID/retrieve", l.GetProcessCall)
	post("/process-calls/:processCallGUID/update", l.UpdateProcessCall)
	post("/process-calls/:processCallGUID/remove", l.ClearProcessCall)

	post("/lineage-mappings/sources/:sourceElementGUID/destinations/retrieve", l.GetDestinationLineageMappings)
	post("/lineage-mappings/destinations/:destinationElementGUID/sources/retrieve", l.GetSourceLineageMappings)
	post("/lineage-mappings/sources/:sourceElementGUID/destinations/:destinationElementGUID", l.SetupLineageMapping)
	post("/lineage-mappings/sources/:sourceElementGUID/destinations/:destinationElementGUID/remove", l.ClearLineageMapping)
}

func (s *Services) registerSecurityTags(post routeFunc) {
	t := s.SecurityTags
	post("/elements/security-tagged/retrieve", t.GetSecurityTaggedElements)
	post("/elements/:elementGUID/security-tags", t.AddSecurityTags)
	post("/elements/:elementGUID/security-tags/remove", t.ClearSecurityTags)
}

// RegisterRoutes registers the out topic listener endpoint. The upgrade
// check runs first so plain requests are refused before any guard.
func (h *OutTopicHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	handlers := make([]fiber.Handler, 0, len(guards)+2)
	handlers = append(handlers, h.Upgrade)
	handlers = append(handlers, guards...)
	router.Get(OutTopicPath, append(handlers, h.Listen())...)
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
}
