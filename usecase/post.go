package usecase

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/AzielCF/az-post/validations"
	"github.com/sirupsen/logrus"
)

type postService struct {
	postRepo  domainPost.IPostRepository
	ownerRepo domainOwner.IOwnerRepository
	topicRepo domainTopic.ITopicRepository

	generator domainEngine.ContentGenerator
	publisher domainEngine.Publisher
	imageGen  domainEngine.ImageGenerator

	generationTimeout time.Duration
	publishTimeout    time.Duration
}

func NewPostService(
	postRepo domainPost.IPostRepository,
	ownerRepo domainOwner.IOwnerRepository,
	topicRepo domainTopic.ITopicRepository,
	generator domainEngine.ContentGenerator,
	publisher domainEngine.Publisher,
	imageGen domainEngine.ImageGenerator,
	generationTimeout, publishTimeout time.Duration,
) domainPost.IPostUsecase {
	if generationTimeout <= 0 {
		generationTimeout = 60 * time.Second
	}
	if publishTimeout <= 0 {
		publishTimeout = 30 * time.Second
	}
	return &postService{
		postRepo:          postRepo,
		ownerRepo:         ownerRepo,
		topicRepo:         topicRepo,
		generator:         generator,
		publisher:         publisher,
		imageGen:          imageGen,
		generationTimeout: generationTimeout,
		publishTimeout:    publishTimeout,
	}
}

// Generate creates an on-demand pending post for a topic. The post is not
// published; it waits for PublishNow or manual editing first.
func (service *postService) Generate(ctx context.Context, req domainPost.GeneratePostRequest) (domainPost.ScheduledPost, error) {
	if err := validations.ValidateGeneratePost(ctx, req); err != nil {
		return domainPost.ScheduledPost{}, err
	}

	own, err := service.ownerRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}
	tp, err := service.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}
	if tp.OwnerID != own.ID {
		return domainPost.ScheduledPost{}, pkgError.NotAllowedError("topic does not belong to this owner")
	}

	content, err := generateContent(ctx, service.generator, own, tp, req.Instructions, service.generationTimeout)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}

	imageB64 := maybeGenerateImage(ctx, service.imageGen, tp, service.generationTimeout)

	p := newPendingPost(own, tp, "", time.Now().UTC(), content, imageB64)
	if err := service.postRepo.Create(ctx, &p); err != nil {
		return domainPost.ScheduledPost{}, err
	}

	logrus.Infof("[POST] Generated on-demand post %s for owner %s", p.ID, own.ID)
	return p, nil
}

func (service *postService) GetByID(ctx context.Context, id string) (domainPost.ScheduledPost, error) {
	return service.postRepo.GetByID(ctx, id)
}

func (service *postService) List(ctx context.Context, filter domainPost.ListPostsFilter) ([]domainPost.ScheduledPost, error) {
	return service.postRepo.List(ctx, filter)
}

// UpdateContent edits the text of a post that has not gone out yet.
// Published posts are immutable.
func (service *postService) UpdateContent(ctx context.Context, id string, req domainPost.UpdatePostRequest) (domainPost.ScheduledPost, error) {
	if err := validations.ValidateUpdatePost(ctx, req); err != nil {
		return domainPost.ScheduledPost{}, err
	}

	p, err := service.postRepo.GetByID(ctx, id)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}
	if p.Status == domainPost.StatusPublished {
		return domainPost.ScheduledPost{}, pkgError.NotAllowedError("published posts cannot be edited")
	}

	tp, err := service.topicRepo.GetByID(ctx, p.TopicID)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}
	if _, maxChars := domainTopic.LengthBounds(tp.PostLength); utf8.RuneCountInString(req.Content) > maxChars {
		return domainPost.ScheduledPost{}, pkgError.ValidationError(
			"content exceeds the topic's " + string(tp.PostLength) + " length limit of " + strconv.Itoa(maxChars) + " characters")
	}

	p.Content = req.Content
	p.UpdatedAt = time.Now().UTC()
	if err := service.postRepo.Update(ctx, &p); err != nil {
		return domainPost.ScheduledPost{}, err
	}
	return p, nil
}

func (service *postService) Delete(ctx context.Context, id string) error {
	if _, err := service.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return service.postRepo.Delete(ctx, id)
}

// PublishNow pushes a pending or failed post to the platform immediately.
func (service *postService) PublishNow(ctx context.Context, id string) (domainPost.ScheduledPost, error) {
	p, err := service.postRepo.GetByID(ctx, id)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}
	if p.Status == domainPost.StatusPublished {
		return domainPost.ScheduledPost{}, pkgError.NotAllowedError("post is already published")
	}

	own, err := service.ownerRepo.GetByID(ctx, p.OwnerID)
	if err != nil {
		return domainPost.ScheduledPost{}, err
	}

	platformID, err := publishToPlatform(ctx, service.publisher, own, p, service.publishTimeout)
	if err != nil {
		if markErr := service.postRepo.MarkFailed(ctx, p.ID, err.Error()); markErr != nil {
			logrus.WithError(markErr).Errorf("[POST] Could not mark post %s failed", p.ID)
		}
		return domainPost.ScheduledPost{}, err
	}

	if err := service.postRepo.MarkPublished(ctx, p.ID, platformID, time.Now().UTC()); err != nil {
		return domainPost.ScheduledPost{}, err
	}

	logrus.Infof("[POST] Published post %s on demand (%s)", p.ID, platformID)
	return service.postRepo.GetByID(ctx, p.ID)
}
