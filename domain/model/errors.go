package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuotesAvailable means the quote bank is empty.
	ErrNoQuotesAvailable = errors.New("no quotes available")
	// ErrPostNotFound covers both an absent post id and a post in the wrong
	// status for the requested operation.
	ErrPostNotFound = errors.New("post not found")
	// ErrCredentialsMissing means no generation API key has been configured.
	ErrCredentialsMissing = errors.New("generation credentials not configured")
	// ErrImageDecodeFailed means the provider returned bytes that are not a
	// decodable image.
	ErrImageDecodeFailed = errors.New("image decode failed")
)

// Generation stages, used to tell an image-provider failure from a
// caption-provider failure.
const (
	StageImage   = "image"
	StageCaption = "caption"
)

// GenerationError wraps an upstream provider failure with the pipeline stage
// it occurred in.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
