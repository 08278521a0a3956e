package memory

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/assetmanager/domain/repository"
	"asset-manager/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
)

// MetadataStore keeps entities and relationships in process memory. It backs
// STORE_TYPE=memory servers and the handler tests.
type MetadataStore struct {
	mu            sync.RWMutex
	entities      map[string]*model.Entity
	relationships map[string]*model.Relationship
}

var _ repository.MetadataStore = (*MetadataStore)(nil)

func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		entities:      make(map[string]*model.Entity),
		relationships: make(map[string]*model.Relationship),
	}
}

func (s *MetadataStore) CreateEntity(ctx context.Context, entity *model.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entities[entity.GUID]; exists {
		return fmt.Errorf("entity %s: %w", entity.GUID, errors.ErrDuplicateElement)
	}
	stored, err := clone(entity)
	if err != nil {
		return err
	}
	s.entities[entity.GUID] = stored
	return nil
}

func (s *MetadataStore) GetEntity(ctx context.Context, guid string) (*model.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[guid]
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", guid, errors.ErrElementNotFound)
	}
	return clone(entity)
}

func (s *MetadataStore) UpdateEntity(ctx context.Context, entity *model.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[entity.GUID]; !ok {
		return fmt.Errorf("entity %s: %w", entity.GUID, errors.ErrElementNotFound)
	}
	stored, err := clone(entity)
	if err != nil {
		return err
	}
	s.entities[entity.GUID] = stored
	return nil
}

func (s *MetadataStore) DeleteEntity(ctx context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[guid]; !ok {
		return fmt.Errorf("entity %s: %w", guid, errors.ErrElementNotFound)
	}
	delete(s.entities, guid)
	return nil
}

func (s *MetadataStore) FindEntities(ctx context.Context, query repository.EntityQuery) ([]*model.Entity, error) {
	matchers, err := compileMatches(query.Matches)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	var found []*model.Entity
	for _, entity := range s.entities {
		if entityMatches(entity, query, matchers) {
			found = append(found, entity)
		}
	}
	s.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].CreateTime.Equal(found[j].CreateTime) {
			return found[i].GUID < found[j].GUID
		}
		return found[i].CreateTime.Before(found[j].CreateTime)
	})

	page := paginate(found, query.StartFrom, query.PageSize)
	result := make([]*model.Entity, 0, len(page))
	for _, entity := range page {
		copied, err := clone(entity)
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}
	return result, nil
}

func (s *MetadataStore) CreateRelationship(ctx context.Context, relationship *model.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.relationships[relationship.GUID]; exists {
		return fmt.Errorf("relationship %s: %w", relationship.GUID, errors.ErrDuplicateElement)
	}
	stored, err := clone(relationship)
	if err != nil {
		return err
	}
	s.relationships[relationship.GUID] = stored
	return nil
}

func (s *MetadataStore) GetRelationship(ctx context.Context, guid string) (*model.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	relationship, ok := s.relationships[guid]
	if !ok {
		return nil, fmt.Errorf("relationship %s: %w", guid, errors.ErrRelationshipNotFound)
	}
	return clone(relationship)
}

func (s *MetadataStore) UpdateRelationship(ctx context.Context, relationship *model.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[relationship.GUID]; !ok {
		return fmt.Errorf("relationship %s: %w", relationship.GUID, errors.ErrRelationshipNotFound)
	}
	stored, err := clone(relationship)
	if err != nil {
		return err
	}
	s.relationships[relationship.GUID] = stored
	return nil
}

func (s *MetadataStore) DeleteRelationship(ctx context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[guid]; !ok {
		return fmt.Errorf("relationship %s: %w", guid, errors.ErrRelationshipNotFound)
	}
	delete(s.relationships, guid)
	return nil
}

func (s *MetadataStore) FindRelationships(ctx context.Context, query repository.RelationshipQuery) ([]*model.Relationship, error) {
	s.mu.RLock()
	var found []*model.Relationship
	for _, relationship := range s.relationships {
		if relationshipMatches(relationship, query) {
			found = append(found, relationship)
		}
	}
	s.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].CreateTime.Equal(found[j].CreateTime) {
			return found[i].GUID < found[j].GUID
		}
		return found[i].CreateTime.Before(found[j].CreateTime)
	})

	page := paginate(found, query.StartFrom, query.PageSize)
	result := make([]*model.Relationship, 0, len(page))
	for _, relationship := range page {
		copied, err := clone(relationship)
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}
	return result, nil
}

func (s *MetadataStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

type compiledMatch struct {
	match repository.PropertyMatch
	re    *regexp.Regexp
}

func compileMatches(matches []repository.PropertyMatch) ([]compiledMatch, error) {
	compiled := make([]compiledMatch, 0, len(matches))
	for _, m := range matches {
		cm := compiledMatch{match: m}
		if m.Regex {
			re, err := regexp.Compile(m.Value)
			if err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("invalid search string %q", m.Value)).WithCause(err)
			}
			cm.re = re
		}
		compiled = append(compiled, cm)
	}
	return compiled, nil
}

func entityMatches(entity *model.Entity, query repository.EntityQuery, matchers []compiledMatch) bool {
	if len(query.TypeNames) > 0 && !contains(query.TypeNames, entity.TypeName) {
		return false
	}
	if len(query.GUIDs) > 0 && !contains(query.GUIDs, entity.GUID) {
		return false
	}
	if query.HomeAssetManagerGUID != "" && entity.HomeAssetManagerGUID != query.HomeAssetManagerGUID {
		return false
	}
	if query.Classification != "" && entity.Classification(query.Classification) == nil {
		return false
	}
	if !query.IncludeMementos && entity.Classification(model.ClassMemento) != nil {
		return false
	}
	if !model.IsEffective(entity.EffectiveFrom, entity.EffectiveTo, query.EffectiveTime) {
		return false
	}
	for _, m := range matchers {
		if !propertyMatches(entity.Properties, m) {
			return false
		}
	}
	return true
}

func propertyMatches(properties map[string]interface{}, m compiledMatch) bool {
	for _, name := range m.match.Names {
		value, ok := properties[name].(string)
		if !ok {
			continue
		}
		if m.re != nil && m.re.MatchString(value) {
			return true
		}
		if m.re == nil && value == m.match.Value {
			return true
		}
	}
	return false
}

func relationshipMatches(r *model.Relationship, query repository.RelationshipQuery) bool {
	if len(query.TypeNames) > 0 && !contains(query.TypeNames, r.TypeName) {
		return false
	}
	if query.End1GUID != "" && r.End1GUID != query.End1GUID {
		return false
	}
	if query.End2GUID != "" && r.End2GUID != query.End2GUID {
		return false
	}
	if query.EitherEndGUID != "" && r.End1GUID != query.EitherEndGUID && r.End2GUID != query.EitherEndGUID {
		return false
	}
	return model.IsEffective(r.EffectiveFrom, r.EffectiveTo, query.EffectiveTime)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, startFrom, pageSize int) []T {
	if startFrom >= len(items) {
		return nil
	}
	items = items[startFrom:]
	if pageSize > 0 && pageSize < len(items) {
		items = items[:pageSize]
	}
	return items
}

// clone copies through BSON so stored values share nothing with the caller,
// and so both stores hand back the same decoded shapes.
func clone[T any](v *T) (*T, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %T: %w", v, err)
	}
	copied := new(T)
	if err := bson.Unmarshal(data, copied); err != nil {
		return nil, fmt.Errorf("failed to copy %T: %w", v, err)
	}
	return copied, nil
}
