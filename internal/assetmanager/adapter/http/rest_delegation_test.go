package http

import (
	"context"
	"fmt"
	"testing"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/usecase"
	"asset-manager/internal/shared/errors"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockInstanceHandler struct {
	mock.Mock
}

func (m *mockInstanceHandler) ExternalReferenceHandler(userID, serverName, methodName string) (usecase.ExternalReferenceExchange, error) {
	args := m.Called(userID, serverName, methodName)
	h, _ := args.Get(0).(usecase.ExternalReferenceExchange)
	return h, args.Error(1)
}

func (m *mockInstanceHandler) GlossaryHandler(userID, serverName, methodName string) (usecase.GlossaryExchange, error) {
	args := m.Called(userID, serverName, methodName)
	h, _ := args.Get(0).(usecase.GlossaryExchange)
	return h, args.Error(1)
}

func (m *mockInstanceHandler) LineageHandler(userID, serverName, methodName string) (usecase.LineageExchange, error) {
	args := m.Called(userID, serverName, methodName)
	h, _ := args.Get(0).(usecase.LineageExchange)
	return h, args.Error(1)
}

func (m *mockInstanceHandler) SecurityTagsHandler(userID, serverName, methodName string) (usecase.SecurityTagsExchange, error) {
	args := m.Called(userID, serverName, methodName)
	h, _ := args.Get(0).(usecase.SecurityTagsExchange)
	return h, args.Error(1)
}

// mockLineageExchange implements the operations exercised below. Any other
// operation panics on the nil embedded interface.
type mockLineageExchange struct {
	mock.Mock
	usecase.LineageExchange
}

func (m *mockLineageExchange) SetupProcessParent(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, parentProcessGUID, childProcessGUID string, containmentType model.ProcessContainmentType, opts model.QueryOptions) error {
	return m.Called(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, parentProcessGUID, childProcessGUID, containmentType, opts).Error(0)
}

func (m *mockLineageExchange) GetProcessByGUID(ctx context.Context, userID, assetManagerGUID, assetManagerName, processGUID string, opts model.QueryOptions) (*model.ProcessElement, error) {
	args := m.Called(ctx, userID, assetManagerGUID, assetManagerName, processGUID, opts)
	element, _ := args.Get(0).(*model.ProcessElement)
	return element, args.Error(1)
}

func (m *mockLineageExchange) FindProcesses(ctx context.Context, userID, assetManagerGUID, assetManagerName, searchString string, startFrom, pageSize int, opts model.QueryOptions) ([]*model.ProcessElement, error) {
	args := m.Called(ctx, userID, assetManagerGUID, assetManagerName, searchString, startFrom, pageSize, opts)
	elements, _ := args.Get(0).([]*model.ProcessElement)
	return elements, args.Error(1)
}

func (m *mockLineageExchange) SetupDataFlow(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, dataSupplierGUID, dataConsumerGUID string, properties *model.DataFlowProperties, opts model.QueryOptions) (string, error) {
	args := m.Called(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, dataSupplierGUID, dataConsumerGUID, properties, opts)
	return args.String(0), args.Error(1)
}

func (m *mockLineageExchange) SetupLineageMapping(ctx context.Context, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID string, properties *model.LineageMappingProperties, opts model.QueryOptions) (string, error) {
	args := m.Called(ctx, userID, assetManagerGUID, assetManagerName, sourceElementGUID, destinationElementGUID, properties, opts)
	return args.String(0), args.Error(1)
}

type mockExternalReferenceExchange struct {
	mock.Mock
	usecase.ExternalReferenceExchange
}

func (m *mockExternalReferenceExchange) LinkExternalReferenceToElement(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, attachedToGUID, externalReferenceGUID string, properties *model.ExternalReferenceLinkProperties, opts model.QueryOptions) (string, error) {
	args := m.Called(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, attachedToGUID, externalReferenceGUID, properties, opts)
	return args.String(0), args.Error(1)
}

type mockGlossaryExchange struct {
	mock.Mock
	usecase.GlossaryExchange
}

func (m *mockGlossaryExchange) SetupTermRelationship(ctx context.Context, userID, assetManagerGUID, assetManagerName string, assetManagerIsHome bool, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID string, properties *model.GlossaryTermRelationship, opts model.QueryOptions) error {
	return m.Called(ctx, userID, assetManagerGUID, assetManagerName, assetManagerIsHome, relationshipTypeName, glossaryTermOneGUID, glossaryTermTwoGUID, properties, opts).Error(0)
}

type mockSecurityTagsExchange struct {
	mock.Mock
	usecase.SecurityTagsExchange
}

func (m *mockSecurityTagsExchange) AddSecurityTags(ctx context.Context, userID, assetManagerGUID, assetManagerName, elementGUID string, properties *model.SecurityTagsProperties, opts model.QueryOptions) error {
	return m.Called(ctx, userID, assetManagerGUID, assetManagerName, elementGUID, properties, opts).Error(0)
}

type RESTDelegationTestSuite struct {
	suite.Suite
	app       *fiber.App
	instances *mockInstanceHandler
	lineage   *mockLineageExchange
}

func (suite *RESTDelegationTestSuite) SetupTest() {
	suite.instances = &mockInstanceHandler{}
	suite.lineage = &mockLineageExchange{}
	suite.app = fiber.New()
	NewServices(suite.instances, logger.NewNopLogger()).RegisterRoutes(suite.app)
}

func (suite *RESTDelegationTestSuite) resolves(methodName string) {
	suite.instances.On("LineageHandler", testUser, testServer, methodName).Return(suite.lineage, nil).Once()
}

func (suite *RESTDelegationTestSuite) TestSetupProcessParent_ForwardsArguments() {
	suite.resolves("setupProcessParent")
	effectiveTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.lineage.On("SetupProcessParent", mock.Anything, testUser, "am-guid", "am-name", true, "parent-guid", "child-guid",
		model.ContainmentUsed, model.QueryOptions{EffectiveTime: &effectiveTime, ForLineage: true}).Return(nil).Once()

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/processes/parent/parent-guid/child/child-guid?assetManagerIsHome=true&forLineage=true",
		&RelationshipRequestBody{
			AssetManagerGUID: "am-guid",
			AssetManagerName: "am-name",
			Properties:       model.Wrap(&model.ProcessHierarchyProperties{ContainmentType: model.ContainmentUsed}),
			EffectiveTime:    &effectiveTime,
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.instances.AssertExpectations(suite.T())
	suite.lineage.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestSetupProcessParent_QueryContainmentTypeWins() {
	suite.resolves("setupProcessParent")
	suite.lineage.On("SetupProcessParent", mock.Anything, testUser, "", "", false, "p", "c",
		model.ContainmentOther, model.QueryOptions{}).Return(nil).Once()

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/processes/parent/p/child/c?containmentType=OTHER",
		&RelationshipRequestBody{
			Properties: model.Wrap(&model.ProcessHierarchyProperties{ContainmentType: model.ContainmentOwned}),
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.lineage.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestLinkExternalReferenceToElement_ForwardsArguments() {
	refs := &mockExternalReferenceExchange{}
	suite.instances.On("ExternalReferenceHandler", testUser, testServer, "linkExternalReferenceToElement").Return(refs, nil).Once()
	effectiveTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	properties := &model.ExternalReferenceLinkProperties{LinkID: "wiki", Pages: "3-5"}
	refs.On("LinkExternalReferenceToElement", mock.Anything, testUser, "am-guid", "am-name", true, "element-guid", "ref-guid",
		properties, model.QueryOptions{EffectiveTime: &effectiveTime}).Return("link-guid", nil).Once()

	var resp GUIDResponse
	call(suite.T(), suite.app, userRoot+"/elements/element-guid/external-references/ref-guid/link?assetManagerIsHome=true",
		&RelationshipRequestBody{
			AssetManagerGUID: "am-guid",
			AssetManagerName: "am-name",
			Properties:       model.Wrap(properties),
			EffectiveTime:    &effectiveTime,
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.Equal("link-guid", resp.GUID)
	suite.instances.AssertExpectations(suite.T())
	refs.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestSetupTermRelationship_ForwardsArguments() {
	glossary := &mockGlossaryExchange{}
	suite.instances.On("GlossaryHandler", testUser, testServer, "setupTermRelationship").Return(glossary, nil).Once()
	properties := &model.GlossaryTermRelationship{Description: "same meaning", Confidence: 90}
	glossary.On("SetupTermRelationship", mock.Anything, testUser, "am-guid", "", false, "Synonym", "term-one", "term-two",
		properties, model.QueryOptions{ForDuplicateProcessing: true}).Return(nil).Once()

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/glossaries/terms/term-one/relationships/Synonym/terms/term-two?forDuplicateProcessing=true",
		&RelationshipRequestBody{
			AssetManagerGUID: "am-guid",
			Properties:       model.Wrap(properties),
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.instances.AssertExpectations(suite.T())
	glossary.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestSetupDataFlow_ForwardsArguments() {
	suite.resolves("setupDataFlow")
	properties := &model.DataFlowProperties{QualifiedName: "DataFlow:Extract:Load", Formula: "copy"}
	suite.lineage.On("SetupDataFlow", mock.Anything, testUser, "am-guid", "am-name", false, "supplier-guid", "consumer-guid",
		properties, model.QueryOptions{ForLineage: true}).Return("flow-guid", nil).Once()

	var resp GUIDResponse
	call(suite.T(), suite.app, userRoot+"/data-flows/suppliers/supplier-guid/consumers/consumer-guid?forLineage=true",
		&RelationshipRequestBody{
			AssetManagerGUID: "am-guid",
			AssetManagerName: "am-name",
			Properties:       model.Wrap(properties),
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.Equal("flow-guid", resp.GUID)
	suite.lineage.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestSetupLineageMapping_ForwardsArguments() {
	suite.resolves("setupLineageMapping")
	effectiveTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	properties := &model.LineageMappingProperties{Description: "column to column"}
	suite.lineage.On("SetupLineageMapping", mock.Anything, testUser, "am-guid", "am-name", "source-guid", "destination-guid",
		properties, model.QueryOptions{EffectiveTime: &effectiveTime}).Return("mapping-guid", nil).Once()

	var resp GUIDResponse
	call(suite.T(), suite.app, userRoot+"/lineage-mappings/sources/source-guid/destinations/destination-guid",
		&RelationshipRequestBody{
			AssetManagerGUID: "am-guid",
			AssetManagerName: "am-name",
			Properties:       model.Wrap(properties),
			EffectiveTime:    &effectiveTime,
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.Equal("mapping-guid", resp.GUID)
	suite.lineage.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestAddSecurityTags_ForwardsArguments() {
	tags := &mockSecurityTagsExchange{}
	suite.instances.On("SecurityTagsHandler", testUser, testServer, "addSecurityTags").Return(tags, nil).Once()
	properties := &model.SecurityTagsProperties{
		SecurityLabels: []string{"confidential"},
		AccessGroups:   map[string][]string{"read": {"finance"}},
	}
	tags.On("AddSecurityTags", mock.Anything, testUser, "am-guid", "am-name", "element-guid",
		properties, model.QueryOptions{ForLineage: true}).Return(nil).Once()

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/elements/element-guid/security-tags?forLineage=true",
		&ClassificationRequestBody{
			MetadataCorrelationProperties: &model.MetadataCorrelationProperties{AssetManagerGUID: "am-guid", AssetManagerName: "am-name"},
			Properties:                    model.Wrap(properties),
		}, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.instances.AssertExpectations(suite.T())
	tags.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestGetProcessByGUID_ForwardsEffectiveTime() {
	suite.resolves("getProcessByGUID")
	effectiveTime := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.lineage.On("GetProcessByGUID", mock.Anything, testUser, "am-guid", "", "proc-1", model.QueryOptions{EffectiveTime: &effectiveTime}).
		Return(nil, errors.NewUnknownGUIDError("proc-1", "processGUID", "getProcessByGUID")).Once()

	var resp ElementResponse[*model.ProcessElement]
	call(suite.T(), suite.app, userRoot+"/processes/proc-1/retrieve", &EffectiveTimeQueryRequestBody{
		AssetManagerIdentifiersRequestBody: AssetManagerIdentifiersRequestBody{AssetManagerGUID: "am-guid"},
		EffectiveTime:                      &effectiveTime,
	}, &resp)

	suite.Equal(404, resp.RelatedHTTPCode)
	suite.Nil(resp.Element)
	suite.lineage.AssertExpectations(suite.T())
}

func (suite *RESTDelegationTestSuite) TestMissingBody_HandlerNotCalled() {
	suite.resolves("setupProcessParent")

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/processes/parent/p/child/c", nil, &resp)

	suite.Equal("OMAG-COMMON-400-002", resp.ExceptionErrorMessageID)
	suite.lineage.AssertNotCalled(suite.T(), "SetupProcessParent")
}

func (suite *RESTDelegationTestSuite) TestResolutionFailureComesBeforeBodyChecks() {
	suite.instances.On("LineageHandler", testUser, testServer, "setupProcessParent").
		Return(nil, errors.NewAuthorizationError("erinoverview may not use cocoMDS1").WithCode("OMAG-COMMON-403-001")).Once()

	var resp VoidResponse
	call(suite.T(), suite.app, userRoot+"/processes/parent/p/child/c", nil, &resp)

	suite.Equal(403, resp.RelatedHTTPCode)
	suite.Equal("UserNotAuthorizedException", resp.ExceptionClassName)
	suite.Equal("OMAG-COMMON-403-001", resp.ExceptionErrorMessageID)
}

func (suite *RESTDelegationTestSuite) TestGetProcessByGUID() {
	suite.resolves("getProcessByGUID")
	element := &model.ProcessElement{
		ElementHeader: model.ElementHeader{GUID: "proc-1", Type: model.ElementType{TypeName: model.TypeProcess}},
		Properties: &model.ProcessProperties{
			ReferenceableProperties: model.ReferenceableProperties{QualifiedName: "Process:Load"},
		},
	}
	suite.lineage.On("GetProcessByGUID", mock.Anything, testUser, "", "", "proc-1", model.QueryOptions{ForDuplicateProcessing: true}).
		Return(element, nil).Once()

	var resp ElementResponse[*model.ProcessElement]
	call(suite.T(), suite.app, userRoot+"/processes/proc-1/retrieve?forDuplicateProcessing=true", nil, &resp)

	suite.False(resp.Failed(), resp.ExceptionErrorMessage)
	suite.Equal("proc-1", resp.Element.ElementHeader.GUID)
	suite.Equal("Process:Load", resp.Element.Properties.QualifiedName)
}

func (suite *RESTDelegationTestSuite) TestFindProcesses_PagingAndStoreFailure() {
	suite.resolves("findProcesses")
	suite.lineage.On("FindProcesses", mock.Anything, testUser, "am-guid", "", "Process:.*", 20, 10, model.QueryOptions{}).
		Return(nil, fmt.Errorf("connection reset by peer")).Once()

	var resp ElementsResponse[*model.ProcessElement]
	call(suite.T(), suite.app, userRoot+"/processes/by-search-string?startFrom=20&pageSize=10",
		&SearchStringRequestBody{
			AssetManagerIdentifiersRequestBody: AssetManagerIdentifiersRequestBody{AssetManagerGUID: "am-guid"},
			SearchString:                       "Process:.*",
		}, &resp)

	suite.Equal(500, resp.RelatedHTTPCode)
	suite.Equal("PropertyServerException", resp.ExceptionClassName)
	suite.Contains(resp.ExceptionErrorMessage, "connection reset by peer")
	suite.Equal("findProcesses", resp.ActionDescription)
	suite.Nil(resp.ElementList)
	suite.lineage.AssertExpectations(suite.T())
}

func TestRESTDelegationTestSuite(t *testing.T) {
	suite.Run(t, new(RESTDelegationTestSuite))
}

func TestCaptureError_Classes(t *testing.T) {
	tests := []struct {
		err       error
		className string
		httpCode  int
	}{
		{errors.NewNullParameterError("glossaryGUID", "getGlossaryByGUID"), "InvalidParameterException", 400},
		{errors.NewUnknownGUIDError("g1", "glossaryGUID", "getGlossaryByGUID"), "InvalidParameterException", 404},
		{errors.NewConflictError("duplicate qualifiedName"), "InvalidParameterException", 409},
		{errors.NewAuthenticationError("no token"), "UserNotAuthorizedException", 401},
		{errors.NewInternalError("mongo unavailable"), "PropertyServerException", 500},
		{fmt.Errorf("plain failure"), "PropertyServerException", 500},
	}

	for _, tt := range tests {
		t.Run(tt.className+"/"+tt.err.Error(), func(t *testing.T) {
			resp := &VoidResponse{FFDCResponseBase: newFFDCResponseBase()}
			captureError(resp, tt.err, "testOperation")

			assert.True(t, resp.Failed())
			assert.Equal(t, tt.className, resp.ExceptionClassName)
			assert.Equal(t, tt.httpCode, resp.RelatedHTTPCode)
			assert.Equal(t, "testOperation", resp.ActionDescription)
			assert.NotEmpty(t, resp.ExceptionSystemAction)
		})
	}
}
