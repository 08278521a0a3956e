package mongodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"
	"asset-manager/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names inside each server database
const (
	EntitiesCollection      = "entities"
	RelationshipsCollection = "relationships"
)

// MetadataStore keeps the entities and relationships of one server in a MongoDB database.
type MetadataStore struct {
	db            *mongo.Database
	entities      CollectionInterface
	relationships CollectionInterface
	logger        logger.Logger
}

var _ repository.MetadataStore = (*MetadataStore)(nil)

// NewMetadataStore creates a store over the collections of db.
func NewMetadataStore(db *mongo.Database, log logger.Logger) *MetadataStore {
	store := NewMetadataStoreWithCollections(
		NewMongoCollectionAdapter(db.Collection(EntitiesCollection)),
		NewMongoCollectionAdapter(db.Collection(RelationshipsCollection)),
		log,
	)
	store.db = db
	return store
}

// NewMetadataStoreWithCollections creates a store over arbitrary collection implementations.
func NewMetadataStoreWithCollections(entities, relationships CollectionInterface, log logger.Logger) *MetadataStore {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &MetadataStore{
		entities:      entities,
		relationships: relationships,
		logger:        log.WithComponent("mongo-metadata-store"),
	}
}

// EnsureIndexes creates the indexes the store's queries rely on. It is the
// database.InitFunc used when a server database is first opened.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	entities := NewMongoCollectionAdapter(db.Collection(EntitiesCollection))
	if err := entities.CreateIndexes(ctx, entityIndexes()); err != nil {
		return fmt.Errorf("failed to create entity indexes: %w", err)
	}
	relationships := NewMongoCollectionAdapter(db.Collection(RelationshipsCollection))
	if err := relationships.CreateIndexes(ctx, relationshipIndexes()); err != nil {
		return fmt.Errorf("failed to create relationship indexes: %w", err)
	}
	return nil
}

func entityIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "guid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "typeName", Value: 1}, {Key: "properties.qualifiedName", Value: 1}}},
		{Keys: bson.D{{Key: "homeAssetManagerGUID", Value: 1}}},
		{Keys: bson.D{{Key: "classifications.name", Value: 1}}},
	}
}

func relationshipIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "guid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "end1GUID", Value: 1}, {Key: "typeName", Value: 1}}},
		{Keys: bson.D{{Key: "end2GUID", Value: 1}, {Key: "typeName", Value: 1}}},
	}
}

func (s *MetadataStore) CreateEntity(ctx context.Context, entity *model.Entity) error {
	if _, err := s.entities.InsertOne(ctx, entity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("entity %s: %w", entity.GUID, errors.ErrDuplicateElement)
		}
		return fmt.Errorf("failed to insert entity %s: %w", entity.GUID, err)
	}
	s.logger.WithFields(map[string]interface{}{
		"guid":     entity.GUID,
		"typeName": entity.TypeName,
	}).Debug("Entity created")
	return nil
}

func (s *MetadataStore) GetEntity(ctx context.Context, guid string) (*model.Entity, error) {
	var entity model.Entity
	if err := s.entities.FindOne(ctx, bson.M{"guid": guid}).Decode(&entity); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("entity %s: %w", guid, errors.ErrElementNotFound)
		}
		return nil, fmt.Errorf("failed to get entity %s: %w", guid, err)
	}
	return &entity, nil
}

func (s *MetadataStore) UpdateEntity(ctx context.Context, entity *model.Entity) error {
	res, err := s.entities.ReplaceOne(ctx, bson.M{"guid": entity.GUID}, entity)
	if err != nil {
		return fmt.Errorf("failed to update entity %s: %w", entity.GUID, err)
	}
	if res.Matched() == 0 {
		return fmt.Errorf("entity %s: %w", entity.GUID, errors.ErrElementNotFound)
	}
	return nil
}

func (s *MetadataStore) DeleteEntity(ctx context.Context, guid string) error {
	res, err := s.entities.DeleteOne(ctx, bson.M{"guid": guid})
	if err != nil {
		return fmt.Errorf("failed to delete entity %s: %w", guid, err)
	}
	if res.Deleted() == 0 {
		return fmt.Errorf("entity %s: %w", guid, errors.ErrElementNotFound)
	}
	return nil
}

func (s *MetadataStore) FindEntities(ctx context.Context, query repository.EntityQuery) ([]*model.Entity, error) {
	cursor, err := s.entities.Find(ctx, EntityFilter(query), findOptions(query.StartFrom, query.PageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to find entities: %w", err)
	}
	defer cursor.Close(ctx)

	var entities []*model.Entity
	for cursor.Next(ctx) {
		var entity model.Entity
		if err := cursor.Decode(&entity); err != nil {
			return nil, fmt.Errorf("failed to decode entity: %w", err)
		}
		entities = append(entities, &entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("entity cursor failed: %w", err)
	}
	return entities, nil
}

func (s *MetadataStore) CreateRelationship(ctx context.Context, relationship *model.Relationship) error {
	if _, err := s.relationships.InsertOne(ctx, relationship); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("relationship %s: %w", relationship.GUID, errors.ErrDuplicateElement)
		}
		return fmt.Errorf("failed to insert relationship %s: %w", relationship.GUID, err)
	}
	s.logger.WithFields(map[string]interface{}{
		"guid":     relationship.GUID,
		"typeName": relationship.TypeName,
		"end1GUID": relationship.End1GUID,
		"end2GUID": relationship.End2GUID,
	}).Debug("Relationship created")
	return nil
}

func (s *MetadataStore) GetRelationship(ctx context.Context, guid string) (*model.Relationship, error) {
	var relationship model.Relationship
	if err := s.relationships.FindOne(ctx, bson.M{"guid": guid}).Decode(&relationship); err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("relationship %s: %w", guid, errors.ErrRelationshipNotFound)
		}
		return nil, fmt.Errorf("failed to get relationship %s: %w", guid, err)
	}
	return &relationship, nil
}

func (s *MetadataStore) UpdateRelationship(ctx context.Context, relationship *model.Relationship) error {
	res, err := s.relationships.ReplaceOne(ctx, bson.M{"guid": relationship.GUID}, relationship)
	if err != nil {
		return fmt.Errorf("failed to update relationship %s: %w", relationship.GUID, err)
	}
	if res.Matched() == 0 {
		return fmt.Errorf("relationship %s: %w", relationship.GUID, errors.ErrRelationshipNotFound)
	}
	return nil
}

func (s *MetadataStore) DeleteRelationship(ctx context.Context, guid string) error {
	res, err := s.relationships.DeleteOne(ctx, bson.M{"guid": guid})
	if err != nil {
		return fmt.Errorf("failed to delete relationship %s: %w", guid, err)
	}
	if res.Deleted() == 0 {
		return fmt.Errorf("relationship %s: %w", guid, errors.ErrRelationshipNotFound)
	}
	return nil
}

func (s *MetadataStore) FindRelationships(ctx context.Context, query repository.RelationshipQuery) ([]*model.Relationship, error) {
	cursor, err := s.relationships.Find(ctx, RelationshipFilter(query), findOptions(query.StartFrom, query.PageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to find relationships: %w", err)
	}
	defer cursor.Close(ctx)

	var relationships []*model.Relationship
	for cursor.Next(ctx) {
		var relationship model.Relationship
		if err := cursor.Decode(&relationship); err != nil {
			return nil, fmt.Errorf("failed to decode relationship: %w", err)
		}
		relationships = append(relationships, &relationship)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("relationship cursor failed: %w", err)
	}
	return relationships, nil
}

func (s *MetadataStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Client().Ping(ctx, nil)
}

// EntityFilter translates an entity query into a MongoDB filter.
func EntityFilter(query repository.EntityQuery) bson.M {
	var clauses []bson.M

	if len(query.TypeNames) > 0 {
		clauses = append(clauses, bson.M{"typeName": bson.M{"$in": query.TypeNames}})
	}
	if len(query.GUIDs) > 0 {
		clauses = append(clauses, bson.M{"guid": bson.M{"$in": query.GUIDs}})
	}
	if query.HomeAssetManagerGUID != "" {
		clauses = append(clauses, bson.M{"homeAssetManagerGUID": query.HomeAssetManagerGUID})
	}
	if query.Classification != "" {
		clauses = append(clauses, bson.M{"classifications.name": query.Classification})
	}
	if !query.IncludeMementos {
		clauses = append(clauses, bson.M{"classifications.name": bson.M{"$ne": model.ClassMemento}})
	}
	clauses = append(clauses, effectivityClauses(query.EffectiveTime)...)

	for _, match := range query.Matches {
		alternatives := make([]bson.M, 0, len(match.Names))
		for _, name := range match.Names {
			field := "properties." + name
			if match.Regex {
				// Patterns are validated as RE2 and evaluated here as PCRE.
				alternatives = append(alternatives, bson.M{field: bson.M{"$regex": match.Value}})
			} else {
				alternatives = append(alternatives, bson.M{field: match.Value})
			}
		}
		clauses = append(clauses, bson.M{"$or": alternatives})
	}

	return and(clauses)
}

// RelationshipFilter translates a relationship query into a MongoDB filter.
func RelationshipFilter(query repository.RelationshipQuery) bson.M {
	var clauses []bson.M

	if len(query.TypeNames) > 0 {
		clauses = append(clauses, bson.M{"typeName": bson.M{"$in": query.TypeNames}})
	}
	if query.End1GUID != "" {
		clauses = append(clauses, bson.M{"end1GUID": query.End1GUID})
	}
	if query.End2GUID != "" {
		clauses = append(clauses, bson.M{"end2GUID": query.End2GUID})
	}
	if query.EitherEndGUID != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"end1GUID": query.EitherEndGUID},
			{"end2GUID": query.EitherEndGUID},
		}})
	}
	clauses = append(clauses, effectivityClauses(query.EffectiveTime)...)

	return and(clauses)
}

// effectivityClauses keep documents whose [effectiveFrom, effectiveTo) window contains at.
func effectivityClauses(at *time.Time) []bson.M {
	if at == nil {
		return nil
	}
	return []bson.M{
		{"$or": []bson.M{{"effectiveFrom": nil}, {"effectiveFrom": bson.M{"$lte": *at}}}},
		{"$or": []bson.M{{"effectiveTo": nil}, {"effectiveTo": bson.M{"$gt": *at}}}},
	}
}

func and(clauses []bson.M) bson.M {
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func findOptions(startFrom, pageSize int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createTime", Value: 1}, {Key: "guid", Value: 1}})
	if startFrom > 0 {
		opts.SetSkip(int64(startFrom))
	}
	if pageSize > 0 {
		opts.SetLimit(int64(pageSize))
	}
	return opts
}
