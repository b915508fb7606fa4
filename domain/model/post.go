package model

import "time"

// Post statuses. A post starts pending and only moves forward; rejected is
// modeled as a dead end but no endpoint writes it yet.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Post is a generated candidate post awaiting moderation. Quote fields are a
// snapshot taken at generation time; later edits to the quote bank never
// touch historical posts.
type Post struct {
	ID             string     `json:"id" bson:"_id"`
	QuoteID        string     `json:"quote_id" bson:"quote_id"`
	QuoteText      string     `json:"quote_text" bson:"quote_text"`
	Theme          string     `json:"theme" bson:"theme"`
	Tone           string     `json:"tone" bson:"tone"`
	VisualKeywords string     `json:"visual_keywords" bson:"visual_keywords"`
	ImageData      string     `json:"image_data" bson:"image_data"`
	Caption        string     `json:"caption" bson:"caption"`
	Hashtags       []string   `json:"hashtags" bson:"hashtags"`
	FullCaption    string     `json:"full_caption" bson:"full_caption"`
	Status         string     `json:"status" bson:"status"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	ApprovedAt     *time.Time `json:"approved_at" bson:"approved_at"`
}

// PostContent holds the replaceable content fields produced by one synthesis
// run. Regeneration swaps these in place without touching status.
type PostContent struct {
	ImageData   string   `bson:"image_data"`
	Caption     string   `bson:"caption"`
	Hashtags    []string `bson:"hashtags"`
	FullCaption string   `bson:"full_caption"`
}
