package persistence

import (
	"context"
	"fmt"

	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const settingsCollection = "settings"

// SettingsRepository persists the single credential record. The empty filter
// keeps it a singleton: every upsert targets the same document.
type SettingsRepository struct {
	db *mongo.Database
}

func NewSettingsRepository(client *mongo.Client, dbName string) repository.ISettings {
	return &SettingsRepository{db: client.Database(dbName)}
}

func (r *SettingsRepository) collection() *mongo.Collection {
	return r.db.Collection(settingsCollection)
}

func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := r.collection().FindOne(ctx, bson.D{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for key, value := range fields {
		set[key] = value
	}
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := r.collection().UpdateOne(ctx, bson.D{}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
