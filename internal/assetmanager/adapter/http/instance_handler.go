package http

import "asset-manager/internal/assetmanager/usecase"

// InstanceHandler resolves the exchange handler for the server and user named on a
// request. usecase.ServerInstances is the production implementation.
type InstanceHandler interface {
	ExternalReferenceHandler(userID, serverName, methodName string) (usecase.ExternalReferenceExchange, error)
	GlossaryHandler(userID, serverName, methodName string) (usecase.GlossaryExchange, error)
	LineageHandler(userID, serverName, methodName string) (usecase.LineageExchange, error)
	SecurityTagsHandler(userID, serverName, methodName string) (usecase.SecurityTagsExchange, error)
}

var _ InstanceHandler = (*usecase.ServerInstances)(nil)
