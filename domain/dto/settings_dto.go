package dto

// SettingsUpdateRequest carries plaintext credentials; they are encrypted
// before they ever reach storage. Empty fields are left untouched.
type SettingsUpdateRequest struct {
	OpenAIAPIKey         string `json:"openai_api_key"`
	InstagramAppID       string `json:"instagram_app_id"`
	InstagramAppSecret   string `json:"instagram_app_secret"`
	InstagramAccessToken string `json:"instagram_access_token"`
	TikTokAccessToken    string `json:"tiktok_access_token"`
}

// SettingsStatusResponse exposes presence flags only, never key material.
type SettingsStatusResponse struct {
	Configured              bool `json:"configured"`
	HasOpenAIKey            bool `json:"has_openai_key"`
	HasInstagramCredentials bool `json:"has_instagram_credentials"`
	HasTikTokCredentials    bool `json:"has_tiktok_credentials"`
}
