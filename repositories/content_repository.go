package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reelframe/reelframe_backend/models"
)

var (
	// ErrNotFound is returned when a category addressed by id does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrSettingsMissing means the singleton settings document is absent,
	// which is a deployment misconfiguration rather than an empty site.
	ErrSettingsMissing = errors.New("site settings document missing")
)

// ContentRepository handles all reads and writes against categories,
// their embedded videos and the site settings singleton.
type ContentRepository struct {
	categories *mongo.Collection
	settings   *mongo.Collection
	settingsID primitive.ObjectID
}

// NewContentRepository creates a new content repository bound to the
// configured settings document id.
func NewContentRepository(db *mongo.Database, settingsID primitive.ObjectID) *ContentRepository {
	return &ContentRepository{
		categories: db.Collection("categories"),
		settings:   db.Collection("settings"),
		settingsID: settingsID,
	}
}

// ListCategoriesOrdered returns all categories sorted ascending by
// orderNumber, the manual display order of the public gallery.
func (r *ContentRepository) ListCategoriesOrdered(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderNumber", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a single category by id. Admin forms pre-fill
// from it before edit and delete confirmations.
func (r *ContentRepository) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

// CreateCategory inserts a new category with up to three embedded
// videos. Pairs with an empty title or url are dropped, not rejected.
func (r *ContentRepository) CreateCategory(ctx context.Context, name, description, previewURL string, orderNumber int, videos []models.VideoInput) (primitive.ObjectID, error) {
	now := time.Now()
	category := models.Category{
		Name:        name,
		Description: description,
		PreviewURL:  previewURL,
		OrderNumber: orderNumber,
		Videos:      embedVideos(videos),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.categories.InsertOne(ctx, category)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert category: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// AppendVideos pushes the well-formed pairs onto the category's video
// list as one atomic update, preserving submission order. Appending an
// empty batch is a no-op.
func (r *ContentRepository) AppendVideos(ctx context.Context, categoryID primitive.ObjectID, videos []models.VideoInput) error {
	embedded := embedVideos(videos)
	if len(embedded) == 0 {
		return nil
	}

	result, err := r.categories.UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{
			"$push": bson.M{"videos": bson.M{"$each": embedded}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("append videos: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCategoryMeta replaces the four scalar fields and leaves the
// video list untouched.
func (r *ContentRepository) UpdateCategoryMeta(ctx context.Context, id primitive.ObjectID, name, description, previewURL string, orderNumber int) error {
	result, err := r.categories.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        name,
			"description": description,
			"previewURL":  previewURL,
			"orderNumber": orderNumber,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category document; the embedded videos go
// with it in the same store operation.
func (r *ContentRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveVideo pulls the embedded video matching the given id from the
// category's list. A video id that matches nothing is a no-op, not an
// error; a missing category is.
func (r *ContentRepository) RemoveVideo(ctx context.Context, categoryID, videoID primitive.ObjectID) error {
	result, err := r.categories.UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{
			"$pull": bson.M{"videos": bson.M{"_id": videoID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("remove video: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSettings returns the settings singleton by its configured id.
func (r *ContentRepository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.settings.FindOne(ctx, bson.M{"_id": r.settingsID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSettingsMissing
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return &settings, nil
}

// ReplaceSettings overwrites the singleton with the full submitted
// field set. The document id always stays the configured one.
func (r *ContentRepository) ReplaceSettings(ctx context.Context, settings *models.SiteSettings) error {
	settings.ID = r.settingsID
	result, err := r.settings.ReplaceOne(ctx, bson.M{"_id": r.settingsID}, settings)
	if err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSettingsMissing
	}
	return nil
}

// embedVideos keeps the well-formed pairs, in order, and assigns each
// its embedded document id.
func embedVideos(inputs []models.VideoInput) []models.Video {
	videos := make([]models.Video, 0, len(inputs))
	for _, in := range inputs {
		if !in.WellFormed() {
			continue
		}
		videos = append(videos, models.Video{
			ID:    primitive.NewObjectID(),
			Title: in.Title,
			URL:   in.URL,
		})
	}
	return videos
}
