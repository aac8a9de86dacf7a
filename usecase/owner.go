package usecase

import (
	"context"
	"time"

	domainOwner "github.com/AzielCF/az-post/domains/owner"
	"github.com/AzielCF/az-post/validations"
	"github.com/google/uuid"
)

type ownerService struct {
	ownerRepo domainOwner.IOwnerRepository
}

func NewOwnerService(ownerRepo domainOwner.IOwnerRepository) domainOwner.IOwnerUsecase {
	return &ownerService{ownerRepo: ownerRepo}
}

func (service *ownerService) Create(ctx context.Context, req domainOwner.CreateOwnerRequest) (domainOwner.Owner, error) {
	if err := validations.ValidateCreateOwner(ctx, req); err != nil {
		return domainOwner.Owner{}, err
	}

	now := time.Now().UTC()
	o := domainOwner.Owner{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Profession: req.Profession,
		Industry:   req.Industry,
		Tone:       req.Tone,
		Bio:        req.Bio,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := service.ownerRepo.Create(ctx, &o); err != nil {
		return domainOwner.Owner{}, err
	}
	return o, nil
}

func (service *ownerService) GetByID(ctx context.Context, id string) (domainOwner.Owner, error) {
	return service.ownerRepo.GetByID(ctx, id)
}

func (service *ownerService) List(ctx context.Context) ([]domainOwner.Owner, error) {
	return service.ownerRepo.List(ctx)
}

func (service *ownerService) Update(ctx context.Context, id string, req domainOwner.UpdateOwnerRequest) (domainOwner.Owner, error) {
	if err := validations.ValidateUpdateOwner(ctx, req); err != nil {
		return domainOwner.Owner{}, err
	}

	o, err := service.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return domainOwner.Owner{}, err
	}

	if req.Name != "" {
		o.Name = req.Name
	}
	if req.Profession != "" {
		o.Profession = req.Profession
	}
	if req.Industry != "" {
		o.Industry = req.Industry
	}
	if req.Tone != "" {
		o.Tone = req.Tone
	}
	if req.Bio != "" {
		o.Bio = req.Bio
	}
	if req.LinkedInMemberID != "" {
		o.LinkedInMemberID = req.LinkedInMemberID
	}
	if req.LinkedInToken != "" {
		o.LinkedInToken = req.LinkedInToken
	}
	o.UpdatedAt = time.Now().UTC()

	if err := service.ownerRepo.Update(ctx, &o); err != nil {
		return domainOwner.Owner{}, err
	}
	return o, nil
}

func (service *ownerService) Delete(ctx context.Context, id string) error {
	if _, err := service.ownerRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return service.ownerRepo.Delete(ctx, id)
}
