package engine

import "context"

// Persona steers the voice of generated content.
type Persona struct {
	Profession string
	Industry   string
	Tone       string
	Bio        string
}

type GenerationRequest struct {
	Persona      Persona
	TopicName    string
	TopicDetails string
	Instructions string
	MinChars     int
	MaxChars     int
}

type GenerationResult struct {
	Content string
}

// ContentGenerator produces post text from a topic and persona. Gemini and
// OpenAI adapters implement it.
type ContentGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

type PublishRequest struct {
	AccessToken string
	MemberID    string // resolved via userinfo when empty
	Text        string
	ImageData   []byte // optional binary image
}

type PublishResult struct {
	PlatformPostID string
}

// Publisher delivers a finished post to the external platform.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) (PublishResult, error)
}

// ImageGenerator renders an illustration for a post, returned as raw bytes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
