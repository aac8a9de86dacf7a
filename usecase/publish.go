package usecase

import (
	"context"
	"encoding/base64"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	pkgError "github.com/AzielCF/az-post/pkg/error"
)

// publishToPlatform pushes one post out through the publisher gateway and
// returns the platform's post id.
func publishToPlatform(ctx context.Context, publisher domainEngine.Publisher, own domainOwner.Owner, p domainPost.ScheduledPost, timeout time.Duration) (string, error) {
	if !own.HasCredential(time.Now()) {
		return "", pkgError.CredentialError("owner " + own.ID + " has no usable platform credential")
	}

	var imageData []byte
	if p.ImagePayload != "" {
		decoded, err := base64.StdEncoding.DecodeString(p.ImagePayload)
		if err == nil {
			imageData = decoded
		}
	}

	pubCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := publisher.Publish(pubCtx, domainEngine.PublishRequest{
		AccessToken: own.LinkedInToken,
		MemberID:    own.LinkedInMemberID,
		Text:        p.Content,
		ImageData:   imageData,
	})
	if err != nil {
		return "", err
	}
	return result.PlatformPostID, nil
}
