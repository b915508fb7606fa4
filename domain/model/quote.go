package model

import "time"

// Quote is one entry of the uploaded quote bank. The bank is replaced
// wholesale on upload; only the selector mutates usage fields.
type Quote struct {
	ID             string     `json:"id" bson:"_id"`
	Quote          string     `json:"quote" bson:"quote"`
	Theme          string     `json:"theme" bson:"theme"`
	Tone           string     `json:"tone" bson:"tone"`
	Length         string     `json:"length" bson:"length"`
	VisualKeywords string     `json:"visual_keywords" bson:"visual_keywords"`
	LastUsed       *time.Time `json:"last_used" bson:"last_used"`
	TimesUsed      int        `json:"times_used" bson:"times_used"`
}
