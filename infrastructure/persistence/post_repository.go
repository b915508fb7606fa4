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

const postCollection = "generated_posts"

type PostRepository struct {
	db *mongo.Database
}

func NewPostRepository(client *mongo.Client, dbName string) repository.IPost {
	return &PostRepository{db: client.Database(dbName)}
}

func (r *PostRepository) collection() *mongo.Collection {
	return r.db.Collection(postCollection)
}

func (r *PostRepository) Insert(ctx context.Context, post *model.Post) error {
	if _, err := r.collection().InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *PostRepository) FindApprovedByID(ctx context.Context, id string) (*model.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id, "status": model.StatusApproved})
}

func (r *PostRepository) findOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	var post model.Post
	err := r.collection().FindOne(ctx, filter).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) FindByStatus(ctx context.Context, status, orderBy string) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: orderBy, Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts by status: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	var posts []model.Post
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding post")
			continue
		}
		posts = append(posts, post)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ApprovePending(ctx context.Context, id string, approvedAt time.Time) (int64, error) {
	filter := bson.M{"_id": id, "status": model.StatusPending}
	update := bson.M{"$set": bson.M{
		"status":      model.StatusApproved,
		"approved_at": approvedAt,
	}}
	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("approve post: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id string, content *model.PostContent, createdAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"image_data":   content.ImageData,
		"caption":      content.Caption,
		"hashtags":     content.Hashtags,
		"full_caption": content.FullCaption,
		"created_at":   createdAt,
	}}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update post content: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrPostNotFound
	}
	return nil
}
