package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ember-scriptorium/domain/repository"

	"github.com/sony/gobreaker"
)

// Factory builds per-key clients that share one HTTP transport and one
// circuit breaker, so a flapping provider trips fast across requests instead
// of being probed by every pipeline run.
type Factory struct {
	baseURL    string
	imageModel string
	chatModel  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewFactory(baseURL, imageModel, chatModel string) *Factory {
	return &Factory{
		baseURL:    baseURL,
		imageModel: imageModel,
		chatModel:  chatModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "openai",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Client calls the provider with the given API key. Keys are stored
// encrypted and decrypted just before use, hence a client per run.
func (f *Factory) Client(apiKey string) repository.IGenerator {
	return &Client{factory: f, apiKey: apiKey}
}

type Client struct {
	factory *Factory
	apiKey  string
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateImage requests a square image and downloads the returned asset.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	result, err := c.factory.breaker.Execute(func() (interface{}, error) {
		var res imageResponse
		req := imageRequest{
			Model:   c.factory.imageModel,
			Prompt:  prompt,
			N:       1,
			Size:    "1024x1024",
			Quality: "standard",
		}
		if err := c.postJSON(ctx, "/images/generations", req, &res); err != nil {
			return nil, err
		}
		if len(res.Data) == 0 || res.Data[0].URL == "" {
			return nil, errors.New("image response contained no asset url")
		}
		return c.download(ctx, res.Data[0].URL)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// GenerateText runs one chat completion and returns the raw assistant text.
func (c *Client) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := c.factory.breaker.Execute(func() (interface{}, error) {
		var res chatResponse
		req := chatRequest{
			Model: c.factory.chatModel,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrompt},
			},
			MaxTokens:   300,
			Temperature: 0.8,
		}
		if err := c.postJSON(ctx, "/chat/completions", req, &res); err != nil {
			return nil, err
		}
		if len(res.Choices) == 0 {
			return nil, errors.New("chat response contained no choices")
		}
		return res.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.factory.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.factory.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("provider returned status %d: %s", res.StatusCode, snippet)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.factory.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download generated asset: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset download returned status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
