package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConfiguration tests the configuration package basic functionality
func TestConfiguration(t *testing.T) {
	t.Run("configuration_struct_exists", func(t *testing.T) {
		require.NotNil(t, &C, "Configuration should not be nil")
		require.NotNil(t, &C.App, "App configuration should exist")
		require.NotNil(t, &C.Database, "Database configuration should exist")
	})

	t.Run("configuration_defaults", func(t *testing.T) {
		// init() has run; empty config files must still yield workable values.
		require.NotZero(t, C.App.Port, "Port should default when unset")
		require.NotEmpty(t, C.Database.Mongo.Host, "Mongo host should default when unset")
		require.NotEmpty(t, C.Database.Mongo.Name, "Mongo database name should default when unset")
		require.NotEmpty(t, C.OpenAI.BaseURL, "OpenAI base URL should default when unset")
		require.Equal(t, "dall-e-3", C.OpenAI.ImageModel)
		require.Equal(t, "gpt-4", C.OpenAI.ChatModel)
	})
}
