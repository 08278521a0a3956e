package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateServerName(t *testing.T) {
	assert.NoError(t, ValidateServerName("cocoMDS1"))
	assert.NoError(t, ValidateServerName("asset-manager.dev_1"))
	assert.Error(t, ValidateServerName(""))
	assert.Error(t, ValidateServerName("has space"))
	assert.Error(t, ValidateServerName("slash/name"))

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateServerName(string(long)))
}

func TestServerDatabaseManager_DatabaseName(t *testing.T) {
	m := NewServerDatabaseManager(nil, nil, nil, nil)
	assert.Equal(t, "asset_manager_cocomds1", m.DatabaseName("cocoMDS1"))
	assert.Equal(t, "asset_manager_my_server_1", m.DatabaseName("my-server.1"))

	custom := NewServerDatabaseManager(nil, &ServerDatabaseConfig{DatabasePrefix: "am_"}, nil, nil)
	assert.Equal(t, "am_x", custom.DatabaseName("X"))
	assert.Equal(t, 0, custom.OpenCount())
}
