package mongodb

import (
	"context"
	"testing"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) InsertOne(ctx context.Context, doc interface{}) (interface{}, error) {
	args := m.Called(ctx, doc)
	return args.Get(0), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) SingleResultInterface {
	args := m.Called(ctx, filter)
	return args.Get(0).(SingleResultInterface)
}

func (m *MockCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (UpdateResultInterface, error) {
	args := m.Called(ctx, filter, replacement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(UpdateResultInterface), args.Error(1)
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}) (DeleteResultInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(DeleteResultInterface), args.Error(1)
}

func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CursorInterface), args.Error(1)
}

func (m *MockCollection) CreateIndexes(ctx context.Context, models []mongo.IndexModel) error {
	return m.Called(ctx, models).Error(0)
}

// docResult decodes a fixed document, or returns err.
type docResult struct {
	doc interface{}
	err error
}

func (r *docResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	data, err := bson.Marshal(r.doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, v)
}

// sliceCursor iterates over a fixed set of documents.
type sliceCursor struct {
	docs []interface{}
	pos  int
}

func (c *sliceCursor) Next(ctx context.Context) bool {
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Decode(val interface{}) error {
	return (&docResult{doc: c.docs[c.pos-1]}).Decode(val)
}

func (c *sliceCursor) Close(ctx context.Context) error { return nil }
func (c *sliceCursor) Err() error                      { return nil }

func newTestStore() (*MetadataStore, *MockCollection, *MockCollection) {
	entities := new(MockCollection)
	relationships := new(MockCollection)
	return NewMetadataStoreWithCollections(entities, relationships, nil), entities, relationships
}

func TestMetadataStore_GetEntity(t *testing.T) {
	store, entities, _ := newTestStore()
	ctx := context.Background()

	stored := &model.Entity{GUID: "g1", TypeName: model.TypeGlossary, Properties: map[string]interface{}{"qualifiedName": "glossary::a"}}
	entities.On("FindOne", ctx, bson.M{"guid": "g1"}).Return(&docResult{doc: stored})
	entities.On("FindOne", ctx, bson.M{"guid": "missing"}).Return(&docResult{err: mongo.ErrNoDocuments})

	entity, err := store.GetEntity(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "glossary::a", entity.QualifiedName())

	_, err = store.GetEntity(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrElementNotFound)
	assert.True(t, errors.IsNotFound(err))
}

func TestMetadataStore_CreateEntity_Duplicate(t *testing.T) {
	store, entities, _ := newTestStore()
	ctx := context.Background()
	entity := &model.Entity{GUID: "g1"}

	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key"}}}
	entities.On("InsertOne", ctx, entity).Return(nil, dupErr)

	err := store.CreateEntity(ctx, entity)
	assert.ErrorIs(t, err, errors.ErrDuplicateElement)
}

func TestMetadataStore_UpdateAndDelete_NotFound(t *testing.T) {
	store, entities, relationships := newTestStore()
	ctx := context.Background()

	entities.On("ReplaceOne", ctx, bson.M{"guid": "g1"}, mock.Anything).Return(&MongoUpdateResultAdapter{matched: 0}, nil)
	entities.On("DeleteOne", ctx, bson.M{"guid": "g1"}).Return(&MongoDeleteResultAdapter{deleted: 0}, nil)
	relationships.On("DeleteOne", ctx, bson.M{"guid": "r1"}).Return(&MongoDeleteResultAdapter{deleted: 1}, nil)

	assert.ErrorIs(t, store.UpdateEntity(ctx, &model.Entity{GUID: "g1"}), errors.ErrElementNotFound)
	assert.ErrorIs(t, store.DeleteEntity(ctx, "g1"), errors.ErrElementNotFound)
	assert.NoError(t, store.DeleteRelationship(ctx, "r1"))
}

func TestMetadataStore_FindRelationships(t *testing.T) {
	store, _, relationships := newTestStore()
	ctx := context.Background()

	query := repository.RelationshipQuery{TypeNames: []string{model.RelDataFlow}, End1GUID: "p1"}
	relationships.On("Find", ctx, RelationshipFilter(query)).Return(&sliceCursor{docs: []interface{}{
		&model.Relationship{GUID: "r1", TypeName: model.RelDataFlow, End1GUID: "p1", End2GUID: "p2"},
		&model.Relationship{GUID: "r2", TypeName: model.RelDataFlow, End1GUID: "p1", End2GUID: "p3"},
	}}, nil)

	found, err := store.FindRelationships(ctx, query)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "p3", found[1].End2GUID)
}

func TestEntityFilter(t *testing.T) {
	assert.Equal(t, bson.M{"classifications.name": bson.M{"$ne": model.ClassMemento}}, EntityFilter(repository.EntityQuery{}))
	assert.Equal(t, bson.M{}, EntityFilter(repository.EntityQuery{IncludeMementos: true}))

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	filter := EntityFilter(repository.EntityQuery{
		TypeNames:       []string{model.TypeProcess},
		Classification:  model.ClassSecurityTags,
		IncludeMementos: true,
		EffectiveTime:   &at,
		Matches: []repository.PropertyMatch{
			{Names: []string{"qualifiedName", "name"}, Value: "load.*", Regex: true},
		},
	})

	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 5)
	assert.Equal(t, bson.M{"typeName": bson.M{"$in": []string{model.TypeProcess}}}, clauses[0])
	assert.Equal(t, bson.M{"classifications.name": model.ClassSecurityTags}, clauses[1])
	assert.Equal(t, bson.M{"$or": []bson.M{{"effectiveFrom": nil}, {"effectiveFrom": bson.M{"$lte": at}}}}, clauses[2])
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"properties.qualifiedName": bson.M{"$regex": "load.*"}},
		{"properties.name": bson.M{"$regex": "load.*"}},
	}}, clauses[4])
}

func TestRelationshipFilter(t *testing.T) {
	filter := RelationshipFilter(repository.RelationshipQuery{EitherEndGUID: "x"})
	assert.Equal(t, bson.M{"$or": []bson.M{{"end1GUID": "x"}, {"end2GUID": "x"}}}, filter)
}
