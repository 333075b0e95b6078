package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultPollInterval = 10 * time.Second
	DefaultMentionPause = 2 * time.Second
)

type WatchConfig struct {
	ThreadID    string
	AdminHandle domain.Handle
	Trigger     string
	Interval    time.Duration
	// MaxBackoff caps the doubled delay after failed member fetches. Zero keeps the interval fixed.
	MaxBackoff   time.Duration
	BatchSize    int
	MentionPause time.Duration
	Templates    []string
}

// WatchState is everything the poll loop carries from one tick to the next.
type WatchState struct {
	Baseline       domain.Snapshot
	Seeded         bool
	LastMessageID  string
	MessagesSeeded bool
	Failures       int
}

type Watcher struct {
	api   ports.ThreadAPI
	cfg   WatchConfig
	state WatchState
	pick  func(n int) int
	sleep func(ctx context.Context, d time.Duration) error
	log   zerolog.Logger
}

func NewWatcher(api ports.ThreadAPI, cfg WatchConfig, logger zerolog.Logger) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = domain.DefaultMentionBatchSize
	}
	if cfg.MentionPause < 0 {
		cfg.MentionPause = 0
	}
	if strings.TrimSpace(cfg.Trigger) == "" {
		cfg.Trigger = domain.DefaultMentionTrigger
	}
	if len(cfg.Templates) == 0 {
		cfg.Templates = domain.WelcomeTemplates
	}

	return &Watcher{
		api:   api,
		cfg:   cfg,
		pick:  rand.IntN,
		sleep: sleepContext,
		log:   logger.With().Str("module", "app.watcher").Str("thread", cfg.ThreadID).Logger(),
	}
}

func (w *Watcher) State() WatchState {
	return w.state
}

// Run seeds the baseline and polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.Seed(ctx)
	w.log.Info().Int("members", w.state.Baseline.Len()).Dur("interval", w.cfg.Interval).Msg("watching thread")

	for {
		if w.Tick(ctx) {
			w.state.Failures = 0
		} else {
			w.state.Failures++
		}

		if err := w.sleep(ctx, w.nextDelay()); err != nil {
			return err
		}
	}
}

// Seed takes the initial snapshot and marks the current latest message as handled.
func (w *Watcher) Seed(ctx context.Context) {
	if snapshot, ok := w.fetchMembers(ctx); ok {
		w.state.Baseline = snapshot
		w.state.Seeded = true
	}

	w.seedMessages(ctx)
}

// seedMessages records the latest message as handled without acting on it.
func (w *Watcher) seedMessages(ctx context.Context) bool {
	msg, _, err := w.latestMessage(ctx)
	if err != nil {
		return false
	}

	w.state.LastMessageID = msg.ID
	w.state.MessagesSeeded = true
	return true
}

// Tick runs one poll iteration and reports whether the member fetch succeeded.
func (w *Watcher) Tick(ctx context.Context) bool {
	w.checkMentionAll(ctx)

	current, ok := w.fetchMembers(ctx)
	if !ok {
		return false
	}

	if !w.state.Seeded {
		w.state.Baseline = current
		w.state.Seeded = true
		w.log.Info().Int("members", current.Len()).Msg("baseline established")
		return true
	}

	w.Welcome(ctx, w.state.Baseline, current)
	w.state.Baseline = current

	return true
}

// Welcome greets every member of current that is missing from previous and
// returns how many greetings were sent.
func (w *Watcher) Welcome(ctx context.Context, previous, current domain.Snapshot) int {
	sent := 0
	for _, member := range current.Joined(previous) {
		template := w.cfg.Templates[w.pick(len(w.cfg.Templates))]
		text := domain.RenderWelcome(template, member.Handle)

		if err := w.api.SendText(ctx, w.cfg.ThreadID, text, nil); err != nil {
			w.log.Error().Err(err).Str("member", string(member.Handle)).Msg("send welcome")
			continue
		}

		sent++
		w.log.Info().Str("member", string(member.Handle)).Msg("welcomed member")
	}

	return sent
}

// MentionAll handles a trigger message: admins get every member mentioned in
// batches, anyone else gets a rejection. It returns the number of batches sent.
func (w *Watcher) MentionAll(ctx context.Context, msg domain.Message) int {
	sender, err := w.resolveHandle(ctx, msg.SenderID)
	if err != nil {
		w.log.Error().Err(err).Str("sender_id", string(msg.SenderID)).Msg("resolve trigger sender")
		return 0
	}

	if !w.isAdmin(sender) {
		w.log.Info().Str("sender", string(sender)).Msg("rejected mention-all from non-admin")
		rejection := fmt.Sprintf("Sorry @%s, only the admin can use %q.", sender, w.cfg.Trigger)
		if err := w.api.SendText(ctx, w.cfg.ThreadID, rejection, []domain.MemberID{msg.SenderID}); err != nil {
			w.log.Error().Err(err).Msg("send rejection")
		}
		return 0
	}

	snapshot, ok := w.fetchMembers(ctx)
	if !ok {
		return 0
	}

	batches := domain.Batch(snapshot.Members(), w.cfg.BatchSize)
	limiter := rate.NewLimiter(rate.Every(w.cfg.MentionPause), 1)

	sent := 0
	for i, batch := range batches {
		if err := limiter.Wait(ctx); err != nil {
			w.log.Warn().Err(err).Int("batch", i+1).Msg("mention-all interrupted")
			return sent
		}

		if err := w.api.SendText(ctx, w.cfg.ThreadID, domain.MentionText(batch), domain.MemberIDs(batch)); err != nil {
			w.log.Error().Err(err).Int("batch", i+1).Int("batches", len(batches)).Msg("send mention batch")
			return sent
		}
		sent++
	}

	w.log.Info().Str("admin", string(sender)).Int("members", snapshot.Len()).Int("batches", sent).Msg("mentioned all members")
	return sent
}

func (w *Watcher) checkMentionAll(ctx context.Context) {
	if !w.state.MessagesSeeded {
		if w.seedMessages(ctx) {
			w.log.Info().Str("message", w.state.LastMessageID).Msg("message baseline established")
		}
		return
	}

	msg, ok, err := w.latestMessage(ctx)
	if err != nil || !ok || msg.ID == "" || msg.ID == w.state.LastMessageID {
		return
	}
	w.state.LastMessageID = msg.ID

	if !domain.IsTrigger(msg.Text, w.cfg.Trigger) {
		return
	}

	w.MentionAll(ctx, msg)
}

func (w *Watcher) fetchMembers(ctx context.Context) (domain.Snapshot, bool) {
	members, err := w.api.Members(ctx, w.cfg.ThreadID)
	if err != nil {
		w.log.Error().Err(err).Msg("fetch group members")
		return domain.Snapshot{}, false
	}

	return domain.NewSnapshot(members), true
}

func (w *Watcher) latestMessage(ctx context.Context) (domain.Message, bool, error) {
	messages, err := w.api.RecentMessages(ctx, w.cfg.ThreadID, 1)
	if err != nil {
		w.log.Error().Err(err).Msg("fetch latest message")
		return domain.Message{}, false, err
	}
	if len(messages) == 0 {
		return domain.Message{}, false, nil
	}

	return messages[0], true, nil
}

func (w *Watcher) resolveHandle(ctx context.Context, id domain.MemberID) (domain.Handle, error) {
	if handle, ok := w.state.Baseline.Handle(id); ok && handle != "" {
		return handle, nil
	}

	profile, err := w.api.UserProfile(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch user profile %s: %w", id, err)
	}

	return profile.Handle, nil
}

func (w *Watcher) isAdmin(handle domain.Handle) bool {
	return w.cfg.AdminHandle != "" && handle == w.cfg.AdminHandle
}

func (w *Watcher) nextDelay() time.Duration {
	if w.cfg.MaxBackoff <= w.cfg.Interval || w.state.Failures == 0 {
		return w.cfg.Interval
	}

	delay := w.cfg.Interval
	for range w.state.Failures {
		delay *= 2
		if delay >= w.cfg.MaxBackoff {
			return w.cfg.MaxBackoff
		}
	}

	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
