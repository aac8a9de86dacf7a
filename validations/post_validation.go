package validations

import (
	"context"

	domainPost "github.com/AzielCF/az-post/domains/post"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LinkedIn rejects posts above 3000 characters.
const maxPostChars = 3000

func ValidateGeneratePost(ctx context.Context, request domainPost.GeneratePostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.OwnerID, validation.Required),
		validation.Field(&request.TopicID, validation.Required),
		validation.Field(&request.Instructions, validation.Length(0, 2000)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdatePost(ctx context.Context, request domainPost.UpdatePostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Content, validation.Required, validation.Length(1, maxPostChars)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
