package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"asset-manager/internal/shared/errors"
)

// ServerInstance is the set of exchange handlers serving one named server.
type ServerInstance struct {
	Name               string
	Handler            *MetadataHandler
	ExternalReferences ExternalReferenceExchange
	Glossaries         GlossaryExchange
	Lineage            LineageExchange
	SecurityTags       SecurityTagsExchange
}

// NewServerInstance builds the exchange handlers on top of h.
func NewServerInstance(h *MetadataHandler) *ServerInstance {
	return &ServerInstance{
		Name:               h.ServerName(),
		Handler:            h,
		ExternalReferences: NewExternalReferenceHandler(h),
		Glossaries:         NewGlossaryHandler(h),
		Lineage:            NewLineageHandler(h),
		SecurityTags:       NewSecurityTagsHandler(h),
	}
}

// ServerInstances resolves the handlers for the server named on a request.
type ServerInstances struct {
	mu        sync.RWMutex
	instances map[string]*ServerInstance
}

func NewServerInstances() *ServerInstances {
	return &ServerInstances{instances: make(map[string]*ServerInstance)}
}

// Register adds or replaces a server instance.
func (s *ServerInstances) Register(instance *ServerInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[instance.Name] = instance
}

// Instance returns the named server instance.
func (s *ServerInstances) Instance(userID, serverName, methodName string) (*ServerInstance, error) {
	if serverName == "" {
		return nil, errors.NewNullParameterError("serverName", methodName)
	}
	if userID == "" {
		return nil, errors.NewNullParameterError("userId", methodName)
	}

	s.mu.RLock()
	instance, ok := s.instances[serverName]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("the server %s called by the %s operation is not running", serverName, methodName)).
			WithCode("OMAG-COMMON-400-014").
			WithDetail("parameterName", "serverName").
			WithCause(errors.ErrUnknownServer)
	}
	return instance, nil
}

// Names lists the registered servers in name order.
func (s *ServerInstances) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether serverName is registered.
func (s *ServerInstances) Has(serverName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.instances[serverName]
	return ok
}

// Ping checks the metadata store of every registered server.
func (s *ServerInstances) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, instance := range s.instances {
		if err := instance.Handler.Ping(ctx); err != nil {
			return fmt.Errorf("server %s: %w", name, err)
		}
	}
	return nil
}

func (s *ServerInstances) ExternalReferenceHandler(userID, serverName, methodName string) (ExternalReferenceExchange, error) {
	instance, err := s.Instance(userID, serverName, methodName)
	if err != nil {
		return nil, err
	}
	return instance.ExternalReferences, nil
}

func (s *ServerInstances) GlossaryHandler(userID, serverName, methodName string) (GlossaryExchange, error) {
	instance, err := s.Instance(userID, serverName, methodName)
	if err != nil {
		return nil, err
	}
	return instance.Glossaries, nil
}

func (s *ServerInstances) LineageHandler(userID, serverName, methodName string) (LineageExchange, error) {
	instance, err := s.Instance(userID, serverName, methodName)
	if err != nil {
		return nil, err
	}
	return instance.Lineage, nil
}

func (s *ServerInstances) SecurityTagsHandler(userID, serverName, methodName string) (SecurityTagsExchange, error) {
	instance, err := s.Instance(userID, serverName, methodName)
	if err != nil {
		return nil, err
	}
	return instance.SecurityTags, nil
}
