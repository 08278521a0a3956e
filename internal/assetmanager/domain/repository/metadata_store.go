package repository

import (
	"context"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
)

// MetadataStore defines the persistence contract for entities and the relationships between them.
// Get, Update and Delete return errors wrapping errors.ErrElementNotFound or
// errors.ErrRelationshipNotFound when the GUID is unknown.
type MetadataStore interface {
	// Entity methods
	CreateEntity(ctx context.Context, entity *model.Entity) error
	GetEntity(ctx context.Context, guid string) (*model.Entity, error)
	UpdateEntity(ctx context.Context, entity *model.Entity) error
	DeleteEntity(ctx context.Context, guid string) error
	FindEntities(ctx context.Context, query EntityQuery) ([]*model.Entity, error)

	// Relationship methods
	CreateRelationship(ctx context.Context, relationship *model.Relationship) error
	GetRelationship(ctx context.Context, guid string) (*model.Relationship, error)
	UpdateRelationship(ctx context.Context, relationship *model.Relationship) error
	DeleteRelationship(ctx context.Context, guid string) error
	FindRelationships(ctx context.Context, query RelationshipQuery) ([]*model.Relationship, error)

	Ping(ctx context.Context) error
}

// PropertyMatch matches when any of the named properties matches Value.
// Regex matches are unanchored; exact matches compare the whole string.
type PropertyMatch struct {
	Names []string
	Value string
	Regex bool
}

// EntityQuery selects entities. Zero-valued fields do not constrain the result.
type EntityQuery struct {
	TypeNames            []string
	GUIDs                []string
	Matches              []PropertyMatch
	HomeAssetManagerGUID string
	Classification       string
	EffectiveTime        *time.Time
	IncludeMementos      bool
	StartFrom            int
	PageSize             int
}

// RelationshipQuery selects relationships. EitherEndGUID matches either end.
type RelationshipQuery struct {
	TypeNames     []string
	End1GUID      string
	End2GUID      string
	EitherEndGUID string
	EffectiveTime *time.Time
	StartFrom     int
	PageSize      int
}

// EventStore persists out topic events so listeners can resume from a token.
type EventStore interface {
	StoreEvent(ctx context.Context, event *model.ChangeEvent) (string, error)
	GetEventsSince(ctx context.Context, serverName, resumeToken string) ([]*model.ChangeEvent, error)
	CleanupOldEvents(ctx context.Context, serverName string, retention time.Duration) error
	Ping(ctx context.Context) error
}
