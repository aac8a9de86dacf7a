package usecase

import (
	"context"
	"testing"
	"time"

	domainPost "github.com/AzielCF/az-post/domains/post"
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngineDeps(scheduleRepo *fakeScheduleRepo, postRepo *fakePostRepo, gen *fakeGenerator, pub *fakePublisher) EngineDeps {
	own := testOwner("owner-1")
	tp := testTopic("topic-1", "owner-1")
	return EngineDeps{
		ScheduleRepo:      scheduleRepo,
		PostRepo:          postRepo,
		OwnerRepo:         newFakeOwnerRepo(own),
		TopicRepo:         newFakeTopicRepo(tp),
		Generator:         gen,
		Publisher:         pub,
		Window:            5 * time.Minute,
		GenerationTimeout: time.Second,
		PublishTimeout:    time.Second,
	}
}

func activeDaily(id string) domainSchedule.Schedule {
	return domainSchedule.Schedule{
		ID:        id,
		OwnerID:   "owner-1",
		TopicID:   "topic-1",
		Frequency: domainSchedule.FrequencyDaily,
		TimeOfDay: "09:00",
		Active:    true,
	}
}

func TestRunPassPublishesDueSchedule(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "generated body"}
	pub := &fakePublisher{postID: "urn:li:share:1"}

	engine := NewEngineService(testEngineDeps(scheduleRepo, postRepo, gen, pub))
	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)

	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TriggeredCount)
	assert.Equal(t, 1, summary.PublishedCount)
	assert.Equal(t, 0, summary.FailedCount)
	assert.Equal(t, 0, summary.SkippedCount)

	posts := postRepo.all()
	require.Len(t, posts, 1)
	assert.Equal(t, domainPost.StatusPublished, posts[0].Status)
	assert.Equal(t, "urn:li:share:1", posts[0].PlatformPostID)
	assert.Equal(t, "generated body", posts[0].Content)
	assert.Equal(t, "sched-1", posts[0].ScheduleID)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), posts[0].ScheduledFor)

	s, err := scheduleRepo.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)
	require.NotNil(t, s.LastFiredAt)
	assert.True(t, s.LastFiredAt.Equal(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))
}

func TestRunPassIsIdempotentWithinWindow(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{postID: "p1"}

	engine := NewEngineService(testEngineDeps(scheduleRepo, postRepo, gen, pub))
	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)

	first, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.PublishedCount)

	// The same pass again, still inside the window: nothing fires.
	second, err := engine.RunPass(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, second.TriggeredCount)
	assert.Len(t, postRepo.all(), 1, "the occurrence must publish exactly once")
	assert.Equal(t, 1, pub.callCount())
}

func TestRunPassIsolatesFailures(t *testing.T) {
	schedA := activeDaily("sched-a")
	schedB := activeDaily("sched-b")
	schedB.OwnerID = "owner-2"

	scheduleRepo := newFakeScheduleRepo(schedA, schedB)
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{
		postID: "ok",
		errFor: map[string]error{"token-owner-2": pkgError.PublishError("platform down")},
	}

	deps := testEngineDeps(scheduleRepo, postRepo, gen, pub)
	deps.OwnerRepo = newFakeOwnerRepo(testOwner("owner-1"), testOwner("owner-2"))
	deps.TopicRepo = newFakeTopicRepo(testTopic("topic-1", "owner-1"))
	engine := NewEngineService(deps)

	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)
	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TriggeredCount)
	assert.Equal(t, 1, summary.PublishedCount)
	assert.Equal(t, 1, summary.FailedCount)

	var failed, published int
	for _, p := range postRepo.all() {
		switch p.Status {
		case domainPost.StatusFailed:
			failed++
			assert.Contains(t, p.Error, "platform down")
		case domainPost.StatusPublished:
			published++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, published)
}

func TestRunPassPublishFailureDoesNotRefire(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{errFor: map[string]error{"token-owner-1": pkgError.PublishError("boom")}}

	engine := NewEngineService(testEngineDeps(scheduleRepo, postRepo, gen, pub))
	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)

	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCount)

	// The occurrence is spent: a later pass inside the window must not
	// regenerate or republish. The failed post waits for manual retry.
	second, err := engine.RunPass(context.Background(), now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, second.TriggeredCount)
	assert.Len(t, postRepo.all(), 1)
	assert.Equal(t, domainPost.StatusFailed, postRepo.all()[0].Status)
}

func TestRunPassGenerationFailureLeavesNoTrace(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{err: pkgError.GenerationError("model unavailable")}
	pub := &fakePublisher{postID: "p"}

	engine := NewEngineService(testEngineDeps(scheduleRepo, postRepo, gen, pub))
	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)

	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCount)
	assert.Empty(t, postRepo.all(), "no post must be persisted on generation failure")
	assert.Equal(t, 0, pub.callCount())

	s, _ := scheduleRepo.GetByID(context.Background(), "sched-1")
	assert.Nil(t, s.LastFiredAt, "the occurrence stays unclaimed and fires again")

	// The next pass retries the same occurrence.
	second, err := engine.RunPass(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, second.TriggeredCount)
}

func TestRunPassCountsConflictAsSkipped(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	scheduleRepo.forceConflict = true
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{postID: "p"}

	engine := NewEngineService(testEngineDeps(scheduleRepo, postRepo, gen, pub))
	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)

	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TriggeredCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 0, summary.FailedCount)
	assert.Empty(t, postRepo.all())
	assert.Equal(t, 0, pub.callCount())
}

func TestRunPassExcludesDisconnectedOwner(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{postID: "p"}

	deps := testEngineDeps(scheduleRepo, postRepo, gen, pub)
	own := testOwner("owner-1")
	own.LinkedInToken = ""
	deps.OwnerRepo = newFakeOwnerRepo(own)
	engine := NewEngineService(deps)

	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)
	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TriggeredCount, "a disconnected owner's schedule is not due")
	assert.Equal(t, 0, summary.FailedCount)
	assert.Equal(t, 0, gen.callCount(), "generation is pointless without a credential")
	assert.Empty(t, postRepo.all())

	s, err := scheduleRepo.GetByID(context.Background(), "sched-1")
	require.NoError(t, err)
	assert.Nil(t, s.LastFiredAt, "the occurrence stays claimable for when the owner reconnects")

	// Reconnecting inside the window makes the same occurrence fire.
	reconnected := testOwner("owner-1")
	require.NoError(t, deps.OwnerRepo.Update(context.Background(), &reconnected))
	summary, err = engine.RunPass(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TriggeredCount)
	assert.Equal(t, 1, summary.PublishedCount)
}

func TestRunPassRespectsLock(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(activeDaily("sched-1"))
	postRepo := newFakePostRepo()
	gen := &fakeGenerator{content: "body"}
	pub := &fakePublisher{postID: "p"}

	deps := testEngineDeps(scheduleRepo, postRepo, gen, pub)
	deps.AcquireLock = func(key string, ttl time.Duration) bool { return false }
	engine := NewEngineService(deps)

	now := time.Date(2026, 3, 10, 9, 1, 0, 0, time.UTC)
	summary, err := engine.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Empty(t, postRepo.all())
}

func TestLocalLockerHoldsUntilExpiry(t *testing.T) {
	lock := NewLocalLocker()

	assert.True(t, lock("k", 50*time.Millisecond))
	assert.False(t, lock("k", 50*time.Millisecond))
	assert.True(t, lock("other", 50*time.Millisecond))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, lock("k", 50*time.Millisecond))
}
