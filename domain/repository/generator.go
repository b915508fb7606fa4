package repository

import "context"

// IGenerator is the remote generation provider: an image model plus a chat
// model behind one credential. Failures surface as provider errors; the
// caller decides what aborts.
type IGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFactory builds a provider client for the given API key. Keys live
// encrypted in settings and are only decrypted immediately before use, so
// clients are constructed per pipeline run.
type GeneratorFactory func(apiKey string) IGenerator
