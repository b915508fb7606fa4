package repository

import (
	"context"

	"ember-scriptorium/domain/model"
)

// ISettings stores the singleton credential record. Values arrive already
// encrypted; Get returns nil when no record has been written yet.
type ISettings interface {
	Get(ctx context.Context) (*model.Settings, error)
	Upsert(ctx context.Context, fields map[string]string) error
}
