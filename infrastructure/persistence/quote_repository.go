package persistence

import (
	"context"
	"fmt"
	"time"

	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const quoteCollection = "quotes"

type QuoteRepository struct {
	db *mongo.Database
}

func NewQuoteRepository(client *mongo.Client, dbName string) repository.IQuote {
	return &QuoteRepository{db: client.Database(dbName)}
}

func (r *QuoteRepository) collection() *mongo.Collection {
	return r.db.Collection(quoteCollection)
}

func (r *QuoteRepository) ReplaceAll(ctx context.Context, quotes []model.Quote) error {
	if _, err := r.collection().DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear quote bank: %w", err)
	}
	if len(quotes) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(quotes))
	for i := range quotes {
		docs = append(docs, quotes[i])
	}
	if _, err := r.collection().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert quote bank: %w", err)
	}
	return nil
}

func (r *QuoteRepository) List(ctx context.Context, skip, limit int64) ([]model.Quote, int64, error) {
	total, err := r.collection().CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	cursor, err := r.collection().Find(ctx, bson.D{}, options.Find().SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	quotes, err := decodeQuotes(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

func (r *QuoteRepository) FindAvailable(ctx context.Context, cutoff time.Time) ([]model.Quote, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"last_used": bson.M{"$lt": cutoff}},
		bson.M{"last_used": nil},
	}}
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find available quotes: %w", err)
	}
	return decodeQuotes(ctx, cursor)
}

func (r *QuoteRepository) FindLeastRecentlyUsed(ctx context.Context, limit int64) ([]model.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_used", Value: 1}}).SetLimit(limit)
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find least recently used quotes: %w", err)
	}
	return decodeQuotes(ctx, cursor)
}

func (r *QuoteRepository) StampUsage(ctx context.Context, id string, usedAt time.Time) (*model.Quote, error) {
	update := bson.M{
		"$set": bson.M{"last_used": usedAt},
		"$inc": bson.M{"times_used": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var quote model.Quote
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&quote)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNoQuotesAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("stamp quote usage: %w", err)
	}
	return &quote, nil
}

func decodeQuotes(ctx context.Context, cursor *mongo.Cursor) ([]model.Quote, error) {
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var quotes []model.Quote
	for cursor.Next(ctx) {
		var quote model.Quote
		if err := cursor.Decode(&quote); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding quote")
			continue
		}
		quotes = append(quotes, quote)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}
