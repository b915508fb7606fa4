package usecase

import (
	"context"
	"errors"

	"ember-scriptorium/domain/dto"
	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/secrets"
)

// ErrEncryptionUnavailable means no encryption passphrase was configured, so
// credentials cannot be stored or read back.
var ErrEncryptionUnavailable = errors.New("settings encryption not configured")

// ISettingsUsecase manages the singleton credential record. Plaintext only
// exists in memory: on the way in (before encryption) and immediately before
// a generation run (after decryption).
type ISettingsUsecase interface {
	Update(ctx context.Context, req *dto.SettingsUpdateRequest) error
	Status(ctx context.Context) (*dto.SettingsStatusResponse, error)
	OpenAIKey(ctx context.Context) (string, error)
}

type settingsUsecase struct {
	settingsRepo repository.ISettings
	cipher       *secrets.Cipher
}

func NewSettingsUsecase(settingsRepo repository.ISettings, cipher *secrets.Cipher) ISettingsUsecase {
	return &settingsUsecase{settingsRepo: settingsRepo, cipher: cipher}
}

func (u *settingsUsecase) Update(ctx context.Context, req *dto.SettingsUpdateRequest) error {
	if u.cipher == nil {
		return ErrEncryptionUnavailable
	}
	fields := map[string]string{}
	for name, value := range map[string]string{
		"openai_api_key":         req.OpenAIAPIKey,
		"instagram_app_id":       req.InstagramAppID,
		"instagram_app_secret":   req.InstagramAppSecret,
		"instagram_access_token": req.InstagramAccessToken,
		"tiktok_access_token":    req.TikTokAccessToken,
	} {
		if value == "" {
			continue
		}
		encrypted, err := u.cipher.Encrypt(value)
		if err != nil {
			return err
		}
		fields[name] = encrypted
	}
	return u.settingsRepo.Upsert(ctx, fields)
}

func (u *settingsUsecase) Status(ctx context.Context) (*dto.SettingsStatusResponse, error) {
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &dto.SettingsStatusResponse{}, nil
	}
	return &dto.SettingsStatusResponse{
		Configured:              true,
		HasOpenAIKey:            settings.OpenAIAPIKey != "",
		HasInstagramCredentials: settings.HasInstagramCredentials(),
		HasTikTokCredentials:    settings.TikTokAccessToken != "",
	}, nil
}

func (u *settingsUsecase) OpenAIKey(ctx context.Context) (string, error) {
	if u.cipher == nil {
		return "", model.ErrCredentialsMissing
	}
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings == nil || settings.OpenAIAPIKey == "" {
		return "", model.ErrCredentialsMissing
	}
	return u.cipher.Decrypt(settings.OpenAIAPIKey)
}
