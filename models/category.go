// models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is embedded in its owning category and has no identity outside
// of it. The id is assigned when the video is embedded.
type Video struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title string             `json:"title" bson:"title"`
	URL   string             `json:"url" bson:"url"`
}

// Category groups videos on the public gallery. orderNumber is the
// manual display sort key across categories; within a category the
// video list order is the display order.
type Category struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	PreviewURL  string             `json:"previewURL" bson:"previewURL"`
	OrderNumber int                `json:"orderNumber" bson:"orderNumber"`
	Videos      []Video            `json:"videos" bson:"videos"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VideoInput is a (title, url) pair from the admin forms. Only pairs
// with both fields non-empty become embedded videos.
type VideoInput struct {
	Title string
	URL   string
}

// WellFormed reports whether the pair should be embedded at all.
func (v VideoInput) WellFormed() bool {
	return v.Title != "" && v.URL != ""
}
