package usecase

import (
	"context"
	"encoding/base64"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func personaFromOwner(own domainOwner.Owner) domainEngine.Persona {
	return domainEngine.Persona{
		Profession: own.Profession,
		Industry:   own.Industry,
		Tone:       own.Tone,
		Bio:        own.Bio,
	}
}

// generateContent runs one bounded generation call for a topic in the
// owner's voice. Nothing is persisted here.
func generateContent(ctx context.Context, generator domainEngine.ContentGenerator, own domainOwner.Owner, tp domainTopic.Topic, instructions string, timeout time.Duration) (string, error) {
	minChars, maxChars := domainTopic.LengthBounds(tp.PostLength)

	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := generator.Generate(genCtx, domainEngine.GenerationRequest{
		Persona:      personaFromOwner(own),
		TopicName:    tp.Name,
		TopicDetails: tp.Description,
		Instructions: instructions,
		MinChars:     minChars,
		MaxChars:     maxChars,
	})
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// maybeGenerateImage renders an illustration for the topic when the topic
// asks for one and a worker is wired. Image failures never block the post;
// the text goes out alone.
func maybeGenerateImage(ctx context.Context, imageGen domainEngine.ImageGenerator, tp domainTopic.Topic, timeout time.Duration) string {
	if !tp.IncludeImage || imageGen == nil {
		return ""
	}

	imgCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := imageGen.Generate(imgCtx, "Professional illustration for a social media post about: "+tp.Name)
	if err != nil {
		logrus.WithError(err).Warnf("[ENGINE] Image generation failed for topic %s", tp.ID)
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

func newPendingPost(own domainOwner.Owner, tp domainTopic.Topic, scheduleID string, scheduledFor time.Time, content, imageB64 string) domainPost.ScheduledPost {
	now := time.Now().UTC()
	return domainPost.ScheduledPost{
		ID:           uuid.NewString(),
		OwnerID:      own.ID,
		ScheduleID:   scheduleID,
		TopicID:      tp.ID,
		Content:      content,
		ImagePayload: imageB64,
		ScheduledFor: scheduledFor,
		Status:       domainPost.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
