package application

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testThreadID = "26822505924062792"

func newTestWatcher(api *mocks.MockThreadAPI, admin domain.Handle) *Watcher {
	w := NewWatcher(api, WatchConfig{
		ThreadID:     testThreadID,
		AdminHandle:  admin,
		Interval:     time.Millisecond,
		MentionPause: 0,
	}, zerolog.Nop())
	w.pick = func(int) int { return 0 }
	return w
}

func members(pairs ...string) []domain.Member {
	out := make([]domain.Member, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Member{ID: domain.MemberID(pairs[i]), Handle: domain.Handle(pairs[i+1])})
	}
	return out
}

func TestWatcherWelcomeSendsOneMessagePerNewMember(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "")

	previous := domain.NewSnapshot(members("1", "a", "2", "b"))
	current := domain.NewSnapshot(members("1", "a", "2", "b", "3", "c"))

	api.EXPECT().SendText(mockAnyContext(), testThreadID, "Welcome @c to SimpCity! 🚀🔥", []domain.MemberID(nil)).Return(nil).Once()

	assert.Equal(t, 1, w.Welcome(context.Background(), previous, current))
}

func TestWatcherWelcomeSkipsDeparturesAndContinuesAfterSendFailure(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "")

	previous := domain.NewSnapshot(members("1", "a", "2", "b"))
	current := domain.NewSnapshot(members("2", "b", "3", "c", "4", "d"))

	api.EXPECT().SendText(mockAnyContext(), testThreadID, "Welcome @c to SimpCity! 🚀🔥", []domain.MemberID(nil)).Return(errors.New("feedback_required")).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "Welcome @d to SimpCity! 🚀🔥", []domain.MemberID(nil)).Return(nil).Once()

	assert.Equal(t, 1, w.Welcome(context.Background(), previous, current))
}

func TestWatcherTickKeepsBaselineWhenFetchFails(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "")

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a", "2", "b"), nil).Once()
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return(nil, nil)
	w.Seed(context.Background())
	require.True(t, w.State().Seeded)

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(nil, errors.New("connection reset")).Once()
	assert.False(t, w.Tick(context.Background()))
	assert.Equal(t, 2, w.State().Baseline.Len())

	// Recovery must not re-welcome existing members.
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a", "2", "b"), nil).Once()
	assert.True(t, w.Tick(context.Background()))
	api.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWatcherTickUsesFirstSuccessfulFetchAsBaselineWhenSeedFailed(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "")

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(nil, errors.New("timeout")).Once()
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return(nil, errors.New("timeout")).Once()
	w.Seed(context.Background())
	require.False(t, w.State().Seeded)

	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return(nil, nil)
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a"), nil).Once()
	assert.True(t, w.Tick(context.Background()))
	assert.True(t, w.State().Seeded)
	api.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a", "3", "c"), nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "Welcome @c to SimpCity! 🚀🔥", []domain.MemberID(nil)).Return(nil).Once()
	assert.True(t, w.Tick(context.Background()))
}

func TestWatcherIgnoresStaleTriggerWhenMessageSeedFailed(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "boss")

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "boss", "2", "b"), nil)
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return(nil, errors.New("timeout")).Once()
	w.Seed(context.Background())
	require.True(t, w.State().Seeded)
	require.False(t, w.State().MessagesSeeded)

	// The trigger predates the restart, so it only becomes the message baseline.
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return([]domain.Message{{ID: "m-1", SenderID: "1", Text: "mention all"}}, nil).Once()
	assert.True(t, w.Tick(context.Background()))
	assert.True(t, w.State().MessagesSeeded)
	assert.Equal(t, "m-1", w.State().LastMessageID)
	api.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return([]domain.Message{{ID: "m-2", SenderID: "1", Text: "mention all"}}, nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@boss @b", []domain.MemberID{"1", "2"}).Return(nil).Once()
	assert.True(t, w.Tick(context.Background()))
	assert.Equal(t, "m-2", w.State().LastMessageID)
}

func TestWatcherRewelcomesMemberWhoLeftAndRejoined(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "")

	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return(nil, nil)
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a", "2", "b"), nil).Once()
	w.Seed(context.Background())

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a"), nil).Once()
	w.Tick(context.Background())

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "a", "2", "b"), nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "Welcome @b to SimpCity! 🚀🔥", []domain.MemberID(nil)).Return(nil).Once()
	w.Tick(context.Background())
}

func TestWatcherMentionAllFromAdminSendsBatches(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "boss")

	roster := members(
		"1", "boss", "2", "b", "3", "c", "4", "d", "5", "e",
		"6", "f", "7", "g", "8", "h", "9", "i", "10", "j",
		"11", "k", "12", "l",
	)
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(roster, nil)
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return([]domain.Message{{ID: "m-1", SenderID: "2", Text: "hi"}}, nil).Once()
	w.Seed(context.Background())

	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return([]domain.Message{{ID: "m-2", SenderID: "1", Text: "  Mention All "}}, nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@boss @b @c @d @e", []domain.MemberID{"1", "2", "3", "4", "5"}).Return(nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@f @g @h @i @j", []domain.MemberID{"6", "7", "8", "9", "10"}).Return(nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@k @l", []domain.MemberID{"11", "12"}).Return(nil).Once()

	assert.True(t, w.Tick(context.Background()))
	assert.Equal(t, "m-2", w.State().LastMessageID)

	// The same trigger message is not handled twice.
	api.EXPECT().RecentMessages(mockAnyContext(), testThreadID, 1).Return([]domain.Message{{ID: "m-2", SenderID: "1", Text: "mention all"}}, nil).Once()
	assert.True(t, w.Tick(context.Background()))
}

func TestWatcherMentionAllRejectsNonAdmin(t *testing.T) {
	tests := []struct {
		name   string
		sender domain.Handle
	}{
		{name: "different user", sender: "b"},
		{name: "case differs from admin", sender: "Boss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewMockThreadAPI(t)
			w := newTestWatcher(api, "boss")
			w.state.Baseline = domain.NewSnapshot([]domain.Member{{ID: "2", Handle: tt.sender}})

			api.EXPECT().SendText(mockAnyContext(), testThreadID, mock.MatchedBy(func(text string) bool {
				return text == "Sorry @"+string(tt.sender)+", only the admin can use \"mention all\"."
			}), []domain.MemberID{"2"}).Return(nil).Once()

			sent := w.MentionAll(context.Background(), domain.Message{ID: "m-9", SenderID: "2", Text: "mention all"})
			assert.Zero(t, sent)
			api.AssertNotCalled(t, "Members", mock.Anything, mock.Anything)
		})
	}
}

func TestWatcherMentionAllResolvesUnknownSenderThroughProfile(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "boss")

	api.EXPECT().UserProfile(mockAnyContext(), domain.MemberID("77")).Return(domain.Member{ID: "77", Handle: "boss"}, nil).Once()
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("2", "b"), nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@b", []domain.MemberID{"2"}).Return(nil).Once()

	assert.Equal(t, 1, w.MentionAll(context.Background(), domain.Message{ID: "m-3", SenderID: "77", Text: "mention all"}))
}

func TestWatcherMentionAllStopsAfterFailedBatch(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := newTestWatcher(api, "boss")
	w.state.Baseline = domain.NewSnapshot(members("1", "boss"))

	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "boss", "2", "b", "3", "c", "4", "d", "5", "e", "6", "f"), nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, "@boss @b @c @d @e", mock.Anything).Return(errors.New("rate limited")).Once()

	assert.Zero(t, w.MentionAll(context.Background(), domain.Message{ID: "m-4", SenderID: "1", Text: "mention all"}))
}

func TestWatcherMentionAllPausesBetweenBatches(t *testing.T) {
	api := mocks.NewMockThreadAPI(t)
	w := NewWatcher(api, WatchConfig{ThreadID: testThreadID, AdminHandle: "boss", MentionPause: 30 * time.Millisecond}, zerolog.Nop())
	w.state.Baseline = domain.NewSnapshot(members("1", "boss"))

	var sentAt []time.Time
	api.EXPECT().Members(mockAnyContext(), testThreadID).Return(members("1", "boss", "2", "b", "3", "c", "4", "d", "5", "e", "6", "f", "7", "g", "8", "h", "9", "i", "10", "j", "11", "k"), nil).Once()
	api.EXPECT().SendText(mockAnyContext(), testThreadID, mock.Anything, mock.Anything).
		Run(func(context.Context, string, string, []domain.MemberID) { sentAt = append(sentAt, time.Now()) }).
		Return(nil).Times(3)

	require.Equal(t, 3, w.MentionAll(context.Background(), domain.Message{ID: "m-5", SenderID: "1", Text: "mention all"}))
	require.Len(t, sentAt, 3)
	assert.GreaterOrEqual(t, sentAt[1].Sub(sentAt[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, sentAt[2].Sub(sentAt[1]), 20*time.Millisecond)
}

func TestWatcherWelcomeTemplateSelectionIsUniform(t *testing.T) {
	fake := &recordingThread{}
	w := NewWatcher(fake, WatchConfig{ThreadID: testThreadID}, zerolog.Nop())
	w.pick = rand.New(rand.NewPCG(1, 2)).IntN

	const trials = 8000
	joined := make([]domain.Member, 0, trials)
	for i := range trials {
		joined = append(joined, domain.Member{ID: domain.MemberID(strconv.Itoa(i)), Handle: "x"})
	}

	sent := w.Welcome(context.Background(), domain.Snapshot{}, domain.NewSnapshot(joined))
	require.Equal(t, trials, sent)

	counts := map[string]int{}
	for _, text := range fake.texts() {
		counts[text]++
	}

	require.Len(t, counts, len(domain.WelcomeTemplates))
	expected := 1.0 / float64(len(domain.WelcomeTemplates))
	for _, template := range domain.WelcomeTemplates {
		freq := float64(counts[domain.RenderWelcome(template, "x")]) / float64(sent)
		assert.InDelta(t, expected, freq, 0.03, template)
	}
}

func TestWatcherRunStopsWhenContextCancelled(t *testing.T) {
	fake := &recordingThread{roster: members("1", "a")}
	w := NewWatcher(fake, WatchConfig{ThreadID: testThreadID, Interval: time.Millisecond}, zerolog.Nop())
	w.pick = func(int) int { return 0 }

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	w.sleep = func(ctx context.Context, d time.Duration) error {
		ticks++
		if ticks == 3 {
			fake.setRoster(members("1", "a", "2", "b"))
		}
		if ticks == 5 {
			cancel()
		}
		return sleepContext(ctx, d)
	}

	err := w.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"Welcome @b to SimpCity! 🚀🔥"}, fake.texts())
}

func TestWatcherNextDelayBacksOffWhenEnabled(t *testing.T) {
	w := NewWatcher(&recordingThread{}, WatchConfig{Interval: 10 * time.Second, MaxBackoff: time.Minute}, zerolog.Nop())

	delays := make([]time.Duration, 0, 5)
	for failures := range 5 {
		w.state.Failures = failures
		delays = append(delays, w.nextDelay())
	}
	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second, 40 * time.Second, time.Minute, time.Minute}, delays)

	fixed := NewWatcher(&recordingThread{}, WatchConfig{Interval: 10 * time.Second}, zerolog.Nop())
	fixed.state.Failures = 4
	assert.Equal(t, 10*time.Second, fixed.nextDelay())
}

type recordingThread struct {
	mu     sync.Mutex
	roster []domain.Member
	sent   []string
}

func (r *recordingThread) setRoster(roster []domain.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roster = roster
}

func (r *recordingThread) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func (r *recordingThread) Members(_ context.Context, _ string) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Member(nil), r.roster...), nil
}

func (r *recordingThread) RecentMessages(_ context.Context, _ string, _ int) ([]domain.Message, error) {
	return nil, nil
}

func (r *recordingThread) UserProfile(_ context.Context, id domain.MemberID) (domain.Member, error) {
	return domain.Member{ID: id}, nil
}

func (r *recordingThread) SendText(_ context.Context, _ string, text string, _ []domain.MemberID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}
