package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/AzielCF/az-post/pkg/pubworker"
	"github.com/sirupsen/logrus"
)

// EngineDeps wires the orchestrator. Pool and ImageGen may be nil; a nil
// pool runs firings inline, which the trigger endpoint relies on for a
// synchronous summary in tests.
type EngineDeps struct {
	ScheduleRepo domainSchedule.IScheduleRepository
	PostRepo     domainPost.IPostRepository
	OwnerRepo    domainOwner.IOwnerRepository
	TopicRepo    domainTopic.ITopicRepository

	Generator domainEngine.ContentGenerator
	Publisher domainEngine.Publisher
	ImageGen  domainEngine.ImageGenerator

	Pool        *pubworker.PublishWorkerPool
	AcquireLock func(key string, ttl time.Duration) bool

	Window            time.Duration
	GenerationTimeout time.Duration
	PublishTimeout    time.Duration
}

type engineService struct {
	EngineDeps
}

func NewEngineService(deps EngineDeps) domainEngine.IEngineUsecase {
	if deps.Window <= 0 {
		deps.Window = 5 * time.Minute
	}
	if deps.GenerationTimeout <= 0 {
		deps.GenerationTimeout = 60 * time.Second
	}
	if deps.PublishTimeout <= 0 {
		deps.PublishTimeout = 30 * time.Second
	}
	return &engineService{EngineDeps: deps}
}

// RunPass evaluates every active schedule against 'now', fires the due
// ones and waits for all firings to settle before reporting the summary.
// One schedule's failure never touches the others.
func (service *engineService) RunPass(ctx context.Context, now time.Time) (domainEngine.PassSummary, error) {
	schedules, err := service.ScheduleRepo.ListActive(ctx)
	if err != nil {
		return domainEngine.PassSummary{}, err
	}

	var (
		wg        sync.WaitGroup
		triggered int64
		published int64
		failed    int64
		skipped   int64
	)

	// Credential status is part of due-ness: a schedule whose owner is not
	// connected simply does not fire, the same way an inactive one does not.
	owners := make(map[string]domainOwner.Owner)

	for _, s := range schedules {
		occurrence, due := DueOccurrence(s, now, service.Window)
		if !due {
			continue
		}

		own, ok := owners[s.OwnerID]
		if !ok {
			own, err = service.OwnerRepo.GetByID(ctx, s.OwnerID)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				logrus.WithError(err).Errorf("[ENGINE] Could not load owner %s for schedule %s", s.OwnerID, s.ID)
				continue
			}
			owners[s.OwnerID] = own
		}
		if !own.HasCredential(now) {
			logrus.Debugf("[ENGINE] Schedule %s not due: owner %s is not connected", s.ID, s.OwnerID)
			continue
		}

		atomic.AddInt64(&triggered, 1)
		s := s

		handler := func(jobCtx context.Context) error {
			defer wg.Done()

			err := service.processOccurrence(jobCtx, s, occurrence)
			switch {
			case err == nil:
				atomic.AddInt64(&published, 1)
			case isConflict(err):
				atomic.AddInt64(&skipped, 1)
				logrus.Debugf("[ENGINE] Schedule %s skipped: %v", s.ID, err)
			default:
				atomic.AddInt64(&failed, 1)
				logrus.WithError(err).Errorf("[ENGINE] Schedule %s failed", s.ID)
			}
			return nil
		}

		wg.Add(1)
		if service.Pool != nil {
			if !service.Pool.TryDispatch(pubworker.FireJob{ScheduleID: s.ID, OwnerID: s.OwnerID, Handler: handler}) {
				wg.Done()
				atomic.AddInt64(&skipped, 1)
				logrus.Warnf("[ENGINE] Pool rejected schedule %s, deferring to next pass", s.ID)
			}
		} else {
			_ = handler(ctx)
		}
	}

	wg.Wait()

	summary := domainEngine.PassSummary{
		TriggeredCount: int(atomic.LoadInt64(&triggered)),
		PublishedCount: int(atomic.LoadInt64(&published)),
		FailedCount:    int(atomic.LoadInt64(&failed)),
		SkippedCount:   int(atomic.LoadInt64(&skipped)),
	}

	if summary.TriggeredCount > 0 {
		logrus.Infof("[ENGINE] Pass done: %d triggered, %d published, %d failed, %d skipped",
			summary.TriggeredCount, summary.PublishedCount, summary.FailedCount, summary.SkippedCount)
	}
	return summary, nil
}

// processOccurrence runs one firing end to end. The ordering is the
// contract: content is generated before the occurrence is claimed, so a
// generation failure leaves no trace and the occurrence fires again on a
// later pass. Once AdvanceLastFired succeeds the occurrence is spent, and
// a publish failure strands a failed post instead of re-firing.
func (service *engineService) processOccurrence(ctx context.Context, s domainSchedule.Schedule, occurrence time.Time) error {
	if service.AcquireLock != nil && !service.AcquireLock("engine:"+s.ID, 2*service.Window) {
		return pkgError.ConflictError("schedule " + s.ID + " is locked by another pass")
	}

	own, err := service.OwnerRepo.GetByID(ctx, s.OwnerID)
	if err != nil {
		return err
	}
	tp, err := service.TopicRepo.GetByID(ctx, s.TopicID)
	if err != nil {
		return err
	}

	if !own.HasCredential(time.Now()) {
		return pkgError.CredentialError("owner " + own.ID + " has no usable platform credential")
	}

	content, err := generateContent(ctx, service.Generator, own, tp, "", service.GenerationTimeout)
	if err != nil {
		return err
	}

	if err := service.ScheduleRepo.AdvanceLastFired(ctx, s.ID, occurrence); err != nil {
		return err
	}

	imageB64 := maybeGenerateImage(ctx, service.ImageGen, tp, service.GenerationTimeout)

	p := newPendingPost(own, tp, s.ID, occurrence, content, imageB64)
	if err := service.PostRepo.Create(ctx, &p); err != nil {
		return err
	}

	platformID, err := publishToPlatform(ctx, service.Publisher, own, p, service.PublishTimeout)
	if err != nil {
		if markErr := service.PostRepo.MarkFailed(ctx, p.ID, err.Error()); markErr != nil {
			logrus.WithError(markErr).Errorf("[ENGINE] Could not mark post %s failed", p.ID)
		}
		return err
	}

	if err := service.PostRepo.MarkPublished(ctx, p.ID, platformID, time.Now().UTC()); err != nil {
		return err
	}

	logrus.Infof("[ENGINE] Schedule %s published post %s (%s)", s.ID, p.ID, platformID)
	return nil
}

func isConflict(err error) bool {
	_, ok := err.(pkgError.ConflictError)
	return ok
}
