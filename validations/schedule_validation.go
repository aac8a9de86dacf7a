package validations

import (
	"context"
	"regexp"

	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func ValidateCreateSchedule(ctx context.Context, request domainSchedule.CreateScheduleRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.OwnerID, validation.Required),
		validation.Field(&request.TopicID, validation.Required),
		validation.Field(&request.Frequency, validation.Required, validation.In(
			domainSchedule.FrequencyDaily,
			domainSchedule.FrequencyWeekly,
			domainSchedule.FrequencyMonthly,
		)),
		validation.Field(&request.TimeOfDay, validation.Required, validation.Match(clockPattern).Error("must be HH:MM")),
		validation.Field(&request.DayOfWeek,
			validation.When(request.Frequency == domainSchedule.FrequencyWeekly, validation.Min(0), validation.Max(6))),
		validation.Field(&request.AnchorDay,
			validation.When(request.Frequency == domainSchedule.FrequencyMonthly,
				validation.Required.Error("monthly schedules need a day of month"),
				validation.Min(1), validation.Max(31))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateSchedule(ctx context.Context, request domainSchedule.UpdateScheduleRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Frequency, validation.In(
			domainSchedule.FrequencyDaily,
			domainSchedule.FrequencyWeekly,
			domainSchedule.FrequencyMonthly,
		)),
		validation.Field(&request.TimeOfDay, validation.Match(clockPattern).Error("must be HH:MM")),
		validation.Field(&request.DayOfWeek, validation.Min(0), validation.Max(6)),
		validation.Field(&request.AnchorDay, validation.Min(0), validation.Max(31)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
