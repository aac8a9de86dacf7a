package usecase

import (
	"context"
	"sync"
	"time"

	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
)

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]domainSchedule.Schedule

	// forceConflict makes every AdvanceLastFired fail, simulating a
	// concurrent pass that claimed the occurrence first.
	forceConflict bool
}

func newFakeScheduleRepo(schedules ...domainSchedule.Schedule) *fakeScheduleRepo {
	r := &fakeScheduleRepo{schedules: make(map[string]domainSchedule.Schedule)}
	for _, s := range schedules {
		r.schedules[s.ID] = s
	}
	return r
}

func (r *fakeScheduleRepo) Create(ctx context.Context, s *domainSchedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[s.ID] = *s
	return nil
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id string) (domainSchedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok {
		return domainSchedule.Schedule{}, pkgError.NotFoundError("schedule not found: " + id)
	}
	return s, nil
}

func (r *fakeScheduleRepo) ListByOwner(ctx context.Context, ownerID string) ([]domainSchedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainSchedule.Schedule
	for _, s := range r.schedules {
		if s.OwnerID == ownerID {
			res = append(res, s)
		}
	}
	return res, nil
}

func (r *fakeScheduleRepo) ListActive(ctx context.Context) ([]domainSchedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainSchedule.Schedule
	for _, s := range r.schedules {
		if s.Active {
			res = append(res, s)
		}
	}
	return res, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, s *domainSchedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules[s.ID] = *s
	return nil
}

func (r *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) AdvanceLastFired(ctx context.Context, id string, occurrence time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceConflict {
		return pkgError.ConflictError("occurrence already claimed for schedule " + id)
	}
	s, ok := r.schedules[id]
	if !ok {
		return pkgError.NotFoundError("schedule not found: " + id)
	}
	if s.LastFiredAt != nil && !s.LastFiredAt.Before(occurrence) {
		return pkgError.ConflictError("occurrence already claimed for schedule " + id)
	}
	fired := occurrence
	s.LastFiredAt = &fired
	r.schedules[id] = s
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]domainPost.ScheduledPost
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]domainPost.ScheduledPost)}
}

func (r *fakePostRepo) Create(ctx context.Context, p *domainPost.ScheduledPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = *p
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (domainPost.ScheduledPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domainPost.ScheduledPost{}, pkgError.NotFoundError("post not found: " + id)
	}
	return p, nil
}

func (r *fakePostRepo) List(ctx context.Context, filter domainPost.ListPostsFilter) ([]domainPost.ScheduledPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainPost.ScheduledPost
	for _, p := range r.posts {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

func (r *fakePostRepo) Update(ctx context.Context, p *domainPost.ScheduledPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = *p
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) MarkPublished(ctx context.Context, id, platformPostID string, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return pkgError.NotFoundError("post not found: " + id)
	}
	p.Status = domainPost.StatusPublished
	p.PlatformPostID = platformPostID
	p.PublishedAt = &publishedAt
	p.Error = ""
	r.posts[id] = p
	return nil
}

func (r *fakePostRepo) MarkFailed(ctx context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return pkgError.NotFoundError("post not found: " + id)
	}
	p.Status = domainPost.StatusFailed
	p.Error = reason
	r.posts[id] = p
	return nil
}

func (r *fakePostRepo) all() []domainPost.ScheduledPost {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainPost.ScheduledPost
	for _, p := range r.posts {
		res = append(res, p)
	}
	return res
}

type fakeOwnerRepo struct {
	mu     sync.Mutex
	owners map[string]domainOwner.Owner
}

func newFakeOwnerRepo(owners ...domainOwner.Owner) *fakeOwnerRepo {
	r := &fakeOwnerRepo{owners: make(map[string]domainOwner.Owner)}
	for _, o := range owners {
		r.owners[o.ID] = o
	}
	return r
}

func (r *fakeOwnerRepo) Create(ctx context.Context, o *domainOwner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[o.ID] = *o
	return nil
}

func (r *fakeOwnerRepo) GetByID(ctx context.Context, id string) (domainOwner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[id]
	if !ok {
		return domainOwner.Owner{}, pkgError.NotFoundError("owner not found: " + id)
	}
	return o, nil
}

func (r *fakeOwnerRepo) List(ctx context.Context) ([]domainOwner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainOwner.Owner
	for _, o := range r.owners {
		res = append(res, o)
	}
	return res, nil
}

func (r *fakeOwnerRepo) Update(ctx context.Context, o *domainOwner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[o.ID] = *o
	return nil
}

func (r *fakeOwnerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.owners, id)
	return nil
}

type fakeTopicRepo struct {
	mu     sync.Mutex
	topics map[string]domainTopic.Topic
}

func newFakeTopicRepo(topics ...domainTopic.Topic) *fakeTopicRepo {
	r := &fakeTopicRepo{topics: make(map[string]domainTopic.Topic)}
	for _, t := range topics {
		r.topics[t.ID] = t
	}
	return r
}

func (r *fakeTopicRepo) Create(ctx context.Context, t *domainTopic.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[t.ID] = *t
	return nil
}

func (r *fakeTopicRepo) GetByID(ctx context.Context, id string) (domainTopic.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.topics[id]
	if !ok {
		return domainTopic.Topic{}, pkgError.NotFoundError("topic not found: " + id)
	}
	return t, nil
}

func (r *fakeTopicRepo) ListByOwner(ctx context.Context, ownerID string) ([]domainTopic.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domainTopic.Topic
	for _, t := range r.topics {
		if t.OwnerID == ownerID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (r *fakeTopicRepo) Update(ctx context.Context, t *domainTopic.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[t.ID] = *t
	return nil
}

func (r *fakeTopicRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.topics, id)
	return nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	content string
	err     error
	calls   int
}

func (g *fakeGenerator) Generate(ctx context.Context, req domainEngine.GenerationRequest) (domainEngine.GenerationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return domainEngine.GenerationResult{}, g.err
	}
	return domainEngine.GenerationResult{Content: g.content}, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakePublisher struct {
	mu     sync.Mutex
	postID string
	// errFor fails publishes for specific access tokens.
	errFor map[string]error
	calls  int
}

func (p *fakePublisher) Publish(ctx context.Context, req domainEngine.PublishRequest) (domainEngine.PublishResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.errFor != nil {
		if err, ok := p.errFor[req.AccessToken]; ok {
			return domainEngine.PublishResult{}, err
		}
	}
	return domainEngine.PublishResult{PlatformPostID: p.postID}, nil
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testOwner(id string) domainOwner.Owner {
	return domainOwner.Owner{
		ID:            id,
		Name:          "Test Owner",
		Email:         id + "@example.com",
		Profession:    "Engineer",
		LinkedInToken: "token-" + id,
	}
}

func testTopic(id, ownerID string) domainTopic.Topic {
	return domainTopic.Topic{
		ID:         id,
		OwnerID:    ownerID,
		Name:       "Distributed systems",
		PostLength: domainTopic.PostLengthMedium,
	}
}
