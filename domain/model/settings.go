package model

// Settings is the single process-wide credential record. Every value is
// stored encrypted; read paths only ever report presence flags.
type Settings struct {
	OpenAIAPIKey         string `bson:"openai_api_key,omitempty"`
	InstagramAppID       string `bson:"instagram_app_id,omitempty"`
	InstagramAppSecret   string `bson:"instagram_app_secret,omitempty"`
	InstagramAccessToken string `bson:"instagram_access_token,omitempty"`
	TikTokAccessToken    string `bson:"tiktok_access_token,omitempty"`
}

// HasInstagramCredentials reports whether the full Instagram bundle is stored.
func (s *Settings) HasInstagramCredentials() bool {
	return s.InstagramAppID != "" && s.InstagramAppSecret != "" && s.InstagramAccessToken != ""
}
