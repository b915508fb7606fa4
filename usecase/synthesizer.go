package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"

	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/imaging"
)

const captionSystemPrompt = "You are a literary social media manager creating content for the gothic novel 'We Burned, Quietly'. Write in a poetic, dark academia style with sophisticated language and atmospheric imagery."

const imagePromptTemplate = "Oil painting, dark academia aesthetic — %s — moody cinematic lighting, poetic atmosphere, muted earth tones, candlelight gold, deep shadows — inspired by the quote: '%s'. Classical painting style, romantic period, atmospheric depth."

// callToActions are the two closing lines captions rotate between.
var callToActions = []string{
	"Follow for more fragments of the Order",
	"Join the newsletter for deeper pages of the Pocket Guide",
}

// Snapshot is the quote material a synthesis run works from. Regeneration
// passes a post's stored snapshot, never the live quote.
type Snapshot struct {
	QuoteText      string
	Theme          string
	Tone           string
	VisualKeywords string
}

// ISynthesizer turns a quote snapshot into a complete candidate post
// content: composited image, caption body, hashtags and the raw provider
// text. Any step failing aborts the whole run; callers never see partial
// content.
type ISynthesizer interface {
	Synthesize(ctx context.Context, snap Snapshot) (*model.PostContent, error)
}

type synthesizer struct {
	settings ISettingsUsecase
	factory  repository.GeneratorFactory
}

func NewSynthesizer(settings ISettingsUsecase, factory repository.GeneratorFactory) ISynthesizer {
	return &synthesizer{settings: settings, factory: factory}
}

func (s *synthesizer) Synthesize(ctx context.Context, snap Snapshot) (*model.PostContent, error) {
	apiKey, err := s.settings.OpenAIKey(ctx)
	if err != nil {
		return nil, err
	}
	generator := s.factory(apiKey)

	rawImage, err := generator.GenerateImage(ctx, BuildImagePrompt(snap.QuoteText, snap.VisualKeywords))
	if err != nil {
		return nil, &model.GenerationError{Stage: model.StageImage, Err: err}
	}

	// Only the composited artifact is kept; the raw provider image is
	// discarded.
	composited, err := imaging.ApplyOverlay(rawImage, snap.QuoteText)
	if err != nil {
		return nil, err
	}

	cta := callToActions[rand.Intn(len(callToActions))]
	rawText, err := generator.GenerateText(ctx, captionSystemPrompt, BuildCaptionPrompt(snap.QuoteText, snap.Theme, snap.Tone, cta))
	if err != nil {
		return nil, &model.GenerationError{Stage: model.StageCaption, Err: err}
	}

	caption, hashtags := ParseCaption(rawText)
	return &model.PostContent{
		ImageData:   base64.StdEncoding.EncodeToString(composited),
		Caption:     caption,
		Hashtags:    hashtags,
		FullCaption: strings.TrimSpace(rawText),
	}, nil
}

// BuildImagePrompt renders the fixed house-style image prompt. Pure function
// of the quote text and its visual keywords.
func BuildImagePrompt(quoteText, visualKeywords string) string {
	return fmt.Sprintf(imagePromptTemplate, visualKeywords, quoteText)
}

// BuildCaptionPrompt renders the caption request for the chat model.
func BuildCaptionPrompt(quoteText, theme, tone, cta string) string {
	return fmt.Sprintf(`Write a poetic social media caption in the style of 'We Burned, Quietly', inspired by the quote: '%s'.

Tone: %s
Theme: %s
Length: 2-4 sentences
Requirements:
- End with a reflective question
- Include call-to-action: '%s'
- Add 5-7 hashtags relevant to dark academia & gothic literature
- Maintain the poetic, cinematic, restrained tone of the novel
- Use sophisticated vocabulary and imagery

Format:
[Caption text with reflective question]

%s

[hashtags]`, quoteText, tone, theme, cta, cta)
}

// ParseCaption splits the raw chat response into a caption body and the
// hashtags it carries. A line whose trimmed form starts with '#' contributes
// its '#'-prefixed tokens in order of appearance (duplicates kept) and is
// dropped from the body.
func ParseCaption(raw string) (string, []string) {
	var hashtags []string
	var body []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			for _, token := range strings.Fields(trimmed) {
				if strings.HasPrefix(token, "#") {
					hashtags = append(hashtags, token)
				}
			}
			continue
		}
		body = append(body, line)
	}
	return strings.TrimSpace(strings.Join(body, "\n")), hashtags
}
