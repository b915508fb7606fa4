package dto

import "ember-scriptorium/domain/model"

// QuoteUploadRequest replaces the whole quote bank in one shot. The frontend
// parses CSV/JSON client-side and ships plain rows.
type QuoteUploadRequest struct {
	Quotes []QuoteRow `json:"quotes" binding:"required"`
}

type QuoteRow struct {
	Quote          string `json:"quote"`
	Theme          string `json:"theme"`
	Tone           string `json:"tone"`
	Length         string `json:"length"`
	VisualKeywords string `json:"visual_keywords"`
}

type QuoteListResponse struct {
	Quotes []model.Quote `json:"quotes"`
	Total  int64         `json:"total"`
	Skip   int64         `json:"skip"`
	Limit  int64         `json:"limit"`
}
