package validations

import (
	"context"

	domainOwner "github.com/AzielCF/az-post/domains/owner"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func ValidateCreateOwner(ctx context.Context, request domainOwner.CreateOwnerRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&request.Email, validation.Required, is.Email),
		validation.Field(&request.Bio, validation.Length(0, 2000)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateOwner(ctx context.Context, request domainOwner.UpdateOwnerRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Length(1, 200)),
		validation.Field(&request.Bio, validation.Length(0, 2000)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
