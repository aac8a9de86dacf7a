package validations

import (
	"context"

	domainTopic "github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateCreateTopic(ctx context.Context, request domainTopic.CreateTopicRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.OwnerID, validation.Required),
		validation.Field(&request.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&request.Description, validation.Length(0, 2000)),
		validation.Field(&request.PostLength, validation.In(
			domainTopic.PostLengthShort,
			domainTopic.PostLengthMedium,
			domainTopic.PostLengthLong,
		)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateTopic(ctx context.Context, request domainTopic.UpdateTopicRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Length(1, 200)),
		validation.Field(&request.Description, validation.Length(0, 2000)),
		validation.Field(&request.PostLength, validation.In(
			domainTopic.PostLengthShort,
			domainTopic.PostLengthMedium,
			domainTopic.PostLengthLong,
		)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
