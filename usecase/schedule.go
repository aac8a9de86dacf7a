package usecase

import (
	"context"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/AzielCF/az-post/pkg/timeutils"
	"github.com/AzielCF/az-post/validations"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type scheduleService struct {
	scheduleRepo domainSchedule.IScheduleRepository
	topicRepo    domainTopic.ITopicRepository
	ownerRepo    domainOwner.IOwnerRepository
	postRepo     domainPost.IPostRepository

	generator         domainEngine.ContentGenerator
	imageGen          domainEngine.ImageGenerator
	generationTimeout time.Duration
}

func NewScheduleService(
	scheduleRepo domainSchedule.IScheduleRepository,
	topicRepo domainTopic.ITopicRepository,
	ownerRepo domainOwner.IOwnerRepository,
	postRepo domainPost.IPostRepository,
	generator domainEngine.ContentGenerator,
	imageGen domainEngine.ImageGenerator,
	generationTimeout time.Duration,
) domainSchedule.IScheduleUsecase {
	if generationTimeout <= 0 {
		generationTimeout = 60 * time.Second
	}
	return &scheduleService{
		scheduleRepo:      scheduleRepo,
		topicRepo:         topicRepo,
		ownerRepo:         ownerRepo,
		postRepo:          postRepo,
		generator:         generator,
		imageGen:          imageGen,
		generationTimeout: generationTimeout,
	}
}

// Create stores a new schedule and seeds its first pending post so the
// owner immediately has a draft to review. Seeding is best effort: a
// generation failure leaves the schedule in place.
func (service *scheduleService) Create(ctx context.Context, req domainSchedule.CreateScheduleRequest) (domainSchedule.Schedule, error) {
	if err := validations.ValidateCreateSchedule(ctx, req); err != nil {
		return domainSchedule.Schedule{}, err
	}

	own, err := service.ownerRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return domainSchedule.Schedule{}, err
	}
	tp, err := service.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		return domainSchedule.Schedule{}, err
	}
	if tp.OwnerID != own.ID {
		return domainSchedule.Schedule{}, pkgError.NotAllowedError("topic does not belong to this owner")
	}

	now := time.Now().UTC()
	s := domainSchedule.Schedule{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		TopicID:   req.TopicID,
		Frequency: req.Frequency,
		TimeOfDay: req.TimeOfDay,
		DayOfWeek: req.DayOfWeek,
		AnchorDay: req.AnchorDay,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.scheduleRepo.Create(ctx, &s); err != nil {
		return domainSchedule.Schedule{}, err
	}

	service.seedFirstPost(ctx, s, own, tp)

	return s, nil
}

// seedFirstPost generates a pending draft aimed at the schedule's next
// occurrence.
func (service *scheduleService) seedFirstPost(ctx context.Context, s domainSchedule.Schedule, own domainOwner.Owner, tp domainTopic.Topic) {
	content, err := generateContent(ctx, service.generator, own, tp, "", service.generationTimeout)
	if err != nil {
		logrus.WithError(err).Warnf("[SCHEDULER] Could not seed first post for schedule %s", s.ID)
		return
	}

	scheduledFor, err := timeutils.NextOccurrence(string(s.Frequency), s.TimeOfDay, s.DayOfWeek, s.AnchorDay, time.Now().UTC())
	if err != nil {
		scheduledFor = time.Now().UTC()
	}

	imageB64 := maybeGenerateImage(ctx, service.imageGen, tp, service.generationTimeout)

	p := newPendingPost(own, tp, s.ID, scheduledFor, content, imageB64)
	if err := service.postRepo.Create(ctx, &p); err != nil {
		logrus.WithError(err).Warnf("[SCHEDULER] Could not store seed post for schedule %s", s.ID)
		return
	}
	logrus.Infof("[SCHEDULER] Seeded post %s for new schedule %s", p.ID, s.ID)
}

func (service *scheduleService) GetByID(ctx context.Context, id string) (domainSchedule.Schedule, error) {
	return service.scheduleRepo.GetByID(ctx, id)
}

func (service *scheduleService) ListByOwner(ctx context.Context, ownerID string) ([]domainSchedule.Schedule, error) {
	return service.scheduleRepo.ListByOwner(ctx, ownerID)
}

func (service *scheduleService) Update(ctx context.Context, id string, req domainSchedule.UpdateScheduleRequest) (domainSchedule.Schedule, error) {
	if err := validations.ValidateUpdateSchedule(ctx, req); err != nil {
		return domainSchedule.Schedule{}, err
	}

	s, err := service.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return domainSchedule.Schedule{}, err
	}

	if req.TopicID != "" && req.TopicID != s.TopicID {
		tp, err := service.topicRepo.GetByID(ctx, req.TopicID)
		if err != nil {
			return domainSchedule.Schedule{}, err
		}
		if tp.OwnerID != s.OwnerID {
			return domainSchedule.Schedule{}, pkgError.NotAllowedError("topic does not belong to this owner")
		}
		s.TopicID = req.TopicID
	}
	if req.Frequency != "" {
		s.Frequency = req.Frequency
	}
	if req.TimeOfDay != "" {
		s.TimeOfDay = req.TimeOfDay
	}
	if req.Frequency == domainSchedule.FrequencyWeekly {
		s.DayOfWeek = req.DayOfWeek
	}
	if req.AnchorDay > 0 {
		s.AnchorDay = req.AnchorDay
	}
	if req.Active != nil {
		s.Active = *req.Active
	}

	// Frequency fields hold iff the frequency needs them. A monthly schedule
	// without an anchor day would never fire, so the switch must carry one.
	if s.Frequency != domainSchedule.FrequencyWeekly {
		s.DayOfWeek = 0
	}
	if s.Frequency != domainSchedule.FrequencyMonthly {
		s.AnchorDay = 0
	} else if s.AnchorDay == 0 {
		return domainSchedule.Schedule{}, pkgError.ValidationError("monthly schedules need a day of month")
	}

	s.UpdatedAt = time.Now().UTC()

	if err := service.scheduleRepo.Update(ctx, &s); err != nil {
		return domainSchedule.Schedule{}, err
	}
	return s, nil
}

func (service *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := service.scheduleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return service.scheduleRepo.Delete(ctx, id)
}
