// models/settings.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SiteSettings is the singleton document holding all editable site
// copy and image references. It is seeded out-of-band and addressed by
// the configured settings id; the admin panel replaces it wholesale.
type SiteSettings struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" form:"-"`
	WebName       string             `json:"webName" bson:"webName" form:"webName"`
	Footer        string             `json:"footer" bson:"footer" form:"footer"`
	BgImage       string             `json:"bgImage" bson:"bgImage" form:"bgImage"`
	InfoText      string             `json:"infoText" bson:"infoText" form:"infoText"`
	PreviewsTitle string             `json:"previewsTitle" bson:"previewsTitle" form:"previewsTitle"`
	PreviewsMenu  string             `json:"previewsMenu" bson:"previewsMenu" form:"previewsMenu"`
	ContactTitle  string             `json:"contactTitle" bson:"contactTitle" form:"contactTitle"`
	ContactText   string             `json:"contactText" bson:"contactText" form:"contactText"`
	AboutText     string             `json:"aboutText" bson:"aboutText" form:"aboutText"`
	AboutImage    string             `json:"aboutImage" bson:"aboutImage" form:"aboutImage"`
	Gear1Title    string             `json:"gear1Title" bson:"gear1Title" form:"gear1Title"`
	Gear1Text     string             `json:"gear1Text" bson:"gear1Text" form:"gear1Text"`
	Gear1Image    string             `json:"gear1Image" bson:"gear1Image" form:"gear1Image"`
	Gear2Title    string             `json:"gear2Title" bson:"gear2Title" form:"gear2Title"`
	Gear2Text     string             `json:"gear2Text" bson:"gear2Text" form:"gear2Text"`
	Gear2Image    string             `json:"gear2Image" bson:"gear2Image" form:"gear2Image"`
	Gear3Title    string             `json:"gear3Title" bson:"gear3Title" form:"gear3Title"`
	Gear3Text     string             `json:"gear3Text" bson:"gear3Text" form:"gear3Text"`
	Gear3Image    string             `json:"gear3Image" bson:"gear3Image" form:"gear3Image"`
	SocialsTitle  string             `json:"socialsTitle" bson:"socialsTitle" form:"socialsTitle"`
	SocialsText   string             `json:"socialsText" bson:"socialsText" form:"socialsText"`
	SocialsFB     string             `json:"socialsFB" bson:"socialsFB" form:"socialsFB"`
	SocialsYT     string             `json:"socialsYT" bson:"socialsYT" form:"socialsYT"`
	SocialsIG     string             `json:"socialsIG" bson:"socialsIG" form:"socialsIG"`
}
