package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"io.winapps.moodjournal/internal/config"
	"io.winapps.moodjournal/internal/journal"
	"io.winapps.moodjournal/internal/kvstore"
	notificationsmodels "io.winapps.moodjournal/internal/models/notifications"
	"io.winapps.moodjournal/internal/sentiment"
)

var schedulerNow = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

func testNotificationsConfig() config.NotificationsConfig {
	return config.NotificationsConfig{
		Enabled:           true,
		Timezone:          time.UTC,
		DailyReminderSpec: "0 20 * * *",
		WeeklyDigestSpec:  "0 19 * * 0",
	}
}

type schedulerFixture struct {
	scheduler *Scheduler
	notifier  *recordingNotifier
	kv        *kvstore.Memory
	entries   *journal.Store
}

func newSchedulerFixture(t *testing.T, clock func() time.Time) *schedulerFixture {
	t.Helper()
	logger := zaptest.NewLogger(t).Sugar()
	kv := kvstore.NewMemory()
	entries := journal.NewStore(kv, logger, journal.WithClock(clock))
	notifier := &recordingNotifier{}

	s, err := NewScheduler(testNotificationsConfig(), notifier, NewTokenStore(kv), entries, logger)
	require.NoError(t, err)
	s.now = clock

	return &schedulerFixture{scheduler: s, notifier: notifier, kv: kv, entries: entries}
}

func (f *schedulerFixture) registerToken(t *testing.T) {
	t.Helper()
	f.registerTokenIn(t, "")
}

func (f *schedulerFixture) registerTokenIn(t *testing.T, timezone string) {
	t.Helper()
	require.NoError(t, NewTokenStore(f.kv).Save(context.Background(), notificationsmodels.PushToken{
		ExpoPushToken: "ExponentPushToken[abc]",
		Timezone:      timezone,
	}))
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	cfg := testNotificationsConfig()
	cfg.WeeklyDigestSpec = "every sunday"

	_, err := NewScheduler(cfg, &recordingNotifier{}, NewTokenStore(kvstore.NewMemory()), journal.NewStore(kvstore.NewMemory(), nil), nil)
	assert.Error(t, err)
}

func TestSchedulerStartStopDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.scheduler.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	f.scheduler.Stop(ctx)
}

func TestDailyReminderWithoutToken(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })

	err := f.scheduler.SendDailyReminder(context.Background())
	assert.ErrorIs(t, err, ErrNoPushToken)
	assert.Empty(t, f.notifier.sent)
}

func TestDailyReminderSent(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.registerToken(t)

	require.NoError(t, f.scheduler.SendDailyReminder(context.Background()))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "ExponentPushToken[abc]", f.notifier.token[0])
	assert.Equal(t, promptFor(schedulerNow), f.notifier.sent[0].Body)
	assert.Equal(t, "2026-10-19", f.notifier.sent[0].Data["date"])
}

func TestDailyReminderSkippedAfterTodaysEntry(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.registerToken(t)

	_, err := f.entries.Append(context.Background(), journal.Draft{Text: "done", Sentiment: sentiment.Positive})
	require.NoError(t, err)

	require.NoError(t, f.scheduler.SendDailyReminder(context.Background()))
	assert.Empty(t, f.notifier.sent)
}

func TestDailyReminderSentWhenLastEntryIsYesterday(t *testing.T) {
	yesterday := schedulerNow.Add(-24 * time.Hour)
	current := yesterday
	f := newSchedulerFixture(t, func() time.Time { return current })
	f.registerToken(t)

	_, err := f.entries.Append(context.Background(), journal.Draft{Text: "yesterday", Sentiment: sentiment.Neutral})
	require.NoError(t, err)
	current = schedulerNow

	require.NoError(t, f.scheduler.SendDailyReminder(context.Background()))
	assert.Len(t, f.notifier.sent, 1)
}

func TestWeeklyDigest(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.registerToken(t)

	for i := 0; i < 5; i++ {
		_, err := f.entries.Append(context.Background(), journal.Draft{Sentiment: sentiment.Positive})
		require.NoError(t, err)
	}
	_, err := f.entries.Append(context.Background(), journal.Draft{Sentiment: sentiment.Negative})
	require.NoError(t, err)

	require.NoError(t, f.scheduler.SendWeeklyDigest(context.Background()))

	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].Body, "83%")
	assert.Equal(t, "positive", f.notifier.sent[0].Data["trend"])
}

func TestWeeklyDigestWithoutEntries(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.registerToken(t)

	require.NoError(t, f.scheduler.SendWeeklyDigest(context.Background()))
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "empty", f.notifier.sent[0].Data["trend"])
}

func TestDailyReminderUsesDeviceTimezone(t *testing.T) {
	// 14:00 UTC is 23:00 on the 19th in Tokyo; 18:00 UTC is already the 20th there
	current := schedulerNow.Add(-4 * time.Hour)
	f := newSchedulerFixture(t, func() time.Time { return current })
	f.registerTokenIn(t, "Asia/Tokyo")

	_, err := f.entries.Append(context.Background(), journal.Draft{Text: "written on the 19th", Sentiment: sentiment.Positive})
	require.NoError(t, err)
	current = schedulerNow

	require.NoError(t, f.scheduler.SendDailyReminder(context.Background()))

	require.Len(t, f.notifier.sent, 1, "the 19th's entry does not count for the device's 20th")
	assert.Equal(t, "2026-10-20", f.notifier.sent[0].Data["date"])
}

func TestDailyReminderUnknownDeviceTimezone(t *testing.T) {
	f := newSchedulerFixture(t, func() time.Time { return schedulerNow })
	f.registerTokenIn(t, "Mars/Olympus_Mons")

	require.NoError(t, f.scheduler.SendDailyReminder(context.Background()))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "2026-10-19", f.notifier.sent[0].Data["date"])
}
