package openai_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ember-scriptorium/infrastructure/clients/openai"
)

func TestGenerateImageDownloadsAsset(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/generations":
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "dall-e-3", body["model"])
			assert.Equal(t, "1024x1024", body["size"])
			fmt.Fprintf(w, `{"data":[{"url":"%s/asset.png"}]}`, server.URL)
		case "/asset.png":
			_, _ = w.Write([]byte("png-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := openai.NewFactory(server.URL, "dall-e-3", "gpt-4").Client("test-key")
	data, err := client.GenerateImage(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestGenerateImageProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"billing hard limit reached"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := openai.NewFactory(server.URL, "dall-e-3", "gpt-4").Client("test-key")
	_, err := client.GenerateImage(context.Background(), "a prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "billing hard limit")
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4", body["model"])
		messages := body["messages"].([]interface{})
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"A caption.\n\n#dark"}}]}`))
	}))
	defer server.Close()

	client := openai.NewFactory(server.URL, "dall-e-3", "gpt-4").Client("test-key")
	text, err := client.GenerateText(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "A caption.\n\n#dark", text)
}

func TestGenerateTextEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := openai.NewFactory(server.URL, "dall-e-3", "gpt-4").Client("test-key")
	_, err := client.GenerateText(context.Background(), "system", "user")
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := openai.NewFactory(server.URL, "dall-e-3", "gpt-4").Client("test-key")
	for i := 0; i < 5; i++ {
		_, err := client.GenerateText(context.Background(), "system", "user")
		require.Error(t, err)
	}
	// Breaker is open now; the request must fail without reaching the server.
	_, err := client.GenerateText(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}
