package usecase

import (
	"context"
	"time"

	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	"github.com/AzielCF/az-post/validations"
	"github.com/google/uuid"
)

type topicService struct {
	topicRepo domainTopic.ITopicRepository
	ownerRepo domainOwner.IOwnerRepository
}

func NewTopicService(topicRepo domainTopic.ITopicRepository, ownerRepo domainOwner.IOwnerRepository) domainTopic.ITopicUsecase {
	return &topicService{topicRepo: topicRepo, ownerRepo: ownerRepo}
}

func (service *topicService) Create(ctx context.Context, req domainTopic.CreateTopicRequest) (domainTopic.Topic, error) {
	if err := validations.ValidateCreateTopic(ctx, req); err != nil {
		return domainTopic.Topic{}, err
	}

	if _, err := service.ownerRepo.GetByID(ctx, req.OwnerID); err != nil {
		return domainTopic.Topic{}, err
	}

	length := req.PostLength
	if length == "" {
		length = domainTopic.PostLengthMedium
	}

	now := time.Now().UTC()
	t := domainTopic.Topic{
		ID:           uuid.NewString(),
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Description:  req.Description,
		PostLength:   length,
		IncludeImage: req.IncludeImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.topicRepo.Create(ctx, &t); err != nil {
		return domainTopic.Topic{}, err
	}
	return t, nil
}

func (service *topicService) GetByID(ctx context.Context, id string) (domainTopic.Topic, error) {
	return service.topicRepo.GetByID(ctx, id)
}

func (service *topicService) ListByOwner(ctx context.Context, ownerID string) ([]domainTopic.Topic, error) {
	return service.topicRepo.ListByOwner(ctx, ownerID)
}

func (service *topicService) Update(ctx context.Context, id string, req domainTopic.UpdateTopicRequest) (domainTopic.Topic, error) {
	if err := validations.ValidateUpdateTopic(ctx, req); err != nil {
		return domainTopic.Topic{}, err
	}

	t, err := service.topicRepo.GetByID(ctx, id)
	if err != nil {
		return domainTopic.Topic{}, err
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Description != "" {
		t.Description = req.Description
	}
	if req.PostLength != "" {
		t.PostLength = req.PostLength
	}
	t.IncludeImage = req.IncludeImage
	t.UpdatedAt = time.Now().UTC()

	if err := service.topicRepo.Update(ctx, &t); err != nil {
		return domainTopic.Topic{}, err
	}
	return t, nil
}

func (service *topicService) Delete(ctx context.Context, id string) error {
	if _, err := service.topicRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return service.topicRepo.Delete(ctx, id)
}
