package ledger

import (
	"context"
	"testing"
	"time"

	"eventbot/internal/lib/logger/handlers/slogdiscard"
	"eventbot/internal/models"
	"eventbot/internal/service/ledger/mocks"
	"eventbot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ledgerMocks struct {
	registrations *mocks.RegistrationStore
	events        *mocks.EventProvider
	users         *mocks.UserStore
	blacklist     *mocks.BlacklistStore
	notifier      *mocks.Notifier
}

func newTestLedger(t *testing.T) (*Ledger, ledgerMocks) {
	t.Helper()

	m := ledgerMocks{
		registrations: mocks.NewRegistrationStore(t),
		events:        mocks.NewEventProvider(t),
		users:         mocks.NewUserStore(t),
		blacklist:     mocks.NewBlacklistStore(t),
		notifier:      mocks.NewNotifier(t),
	}

	l := New(slogdiscard.NewDiscardLogger(), m.registrations, m.events, m.users, m.blacklist, m.notifier)

	return l, m
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success returns remaining slots", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@alice", int64(42)).Return(nil)
		m.registrations.On("RegisterUser", ctx, 1, "@alice").Return(nil)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 7}, nil)

		slots, err := l.Register(ctx, 1, "@alice", 42)

		require.NoError(t, err)
		assert.Equal(t, 3, slots)
	})

	t.Run("username is normalized before the store sees it", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@alice", int64(0)).Return(nil)
		m.registrations.On("RegisterUser", ctx, 1, "@alice").Return(nil)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 1}, nil)

		_, err := l.Register(ctx, 1, "alice", 0)

		require.NoError(t, err)
	})

	t.Run("full event maps to capacity error", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@alice", int64(0)).Return(nil)
		m.registrations.On("RegisterUser", ctx, 1, "@alice").Return(storage.ErrEventFull)

		_, err := l.Register(ctx, 1, "@alice", 0)

		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("blacklisted user is rejected", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@alice", int64(0)).Return(nil)
		m.registrations.On("RegisterUser", ctx, 1, "@alice").Return(storage.ErrBlacklisted)

		_, err := l.Register(ctx, 1, "@alice", 0)

		assert.ErrorIs(t, err, ErrBlacklisted)
	})

	t.Run("infrastructure error is wrapped", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@alice", int64(0)).Return(nil)
		m.registrations.On("RegisterUser", ctx, 1, "@alice").Return(assert.AnError)

		_, err := l.Register(ctx, 1, "@alice", 0)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("freed seat promotes and notifies the next waitlisted user", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		event := &models.Event{
			ID:         1,
			Title:      "Go Meetup",
			Date:       time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
			Capacity:   10,
			Registered: 10,
		}

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("@bob", nil)
		m.users.On("UserChatID", ctx, "@bob").Return(int64(77), nil)
		m.events.On("GetEvent", ctx, 1).Return(event, nil)
		m.notifier.On("SendMessage", ctx, int64(77),
			mock.MatchedBy(func(text string) bool { return text != "" })).Return(nil)

		slots, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
		assert.Equal(t, 0, slots)
	})

	t.Run("empty waitlist leaves the seat open", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("", storage.ErrWaitlistEmpty)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 9}, nil)

		slots, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
		assert.Equal(t, 1, slots)
		m.notifier.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("promotion notification failure does not fail the caller", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("@bob", nil)
		m.users.On("UserChatID", ctx, "@bob").Return(int64(77), nil)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 10}, nil)
		m.notifier.On("SendMessage", ctx, int64(77), mock.Anything).Return(assert.AnError)

		_, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
	})

	t.Run("seat retaken before promotion leaves the waitlist untouched", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("", storage.ErrEventFull)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 10}, nil)

		slots, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
		assert.Equal(t, 0, slots)
		m.notifier.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("closed event does not promote", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("", storage.ErrEventClosed)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 9, IsCancelled: true}, nil)

		_, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
		m.notifier.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("promoted user without chat id is skipped", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("@bob", nil)
		m.users.On("UserChatID", ctx, "@bob").Return(int64(0), storage.ErrUserNotFound)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 10, Registered: 10}, nil)

		_, err := l.Unregister(ctx, 1, "@alice")

		require.NoError(t, err)
		m.notifier.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not registered maps to domain error", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.registrations.On("UnregisterUser", ctx, 1, "@alice").Return(storage.ErrNotRegistered)

		_, err := l.Unregister(ctx, 1, "@alice")

		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}

func TestJoinWaitlist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success returns 1-based position", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@carol", int64(7)).Return(nil)
		m.registrations.On("JoinWaitlist", ctx, 1, "@carol").Return(nil)
		m.registrations.On("WaitlistPosition", ctx, 1, "@carol").Return(3, nil)

		pos, err := l.JoinWaitlist(ctx, 1, "@carol", 7)

		require.NoError(t, err)
		assert.Equal(t, 3, pos)
	})

	t.Run("position read failure surfaces the error", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@carol", int64(0)).Return(nil)
		m.registrations.On("JoinWaitlist", ctx, 1, "@carol").Return(nil)
		m.registrations.On("WaitlistPosition", ctx, 1, "@carol").Return(0, assert.AnError)

		pos, err := l.JoinWaitlist(ctx, 1, "@carol", 0)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, pos)
	})

	t.Run("event with free seats rejects the join", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.users.On("EnsureUser", ctx, "@carol", int64(0)).Return(nil)
		m.registrations.On("JoinWaitlist", ctx, 1, "@carol").Return(storage.ErrEventNotFull)

		_, err := l.JoinWaitlist(ctx, 1, "@carol", 0)

		assert.ErrorIs(t, err, ErrNotFull)
	})
}

func TestAvailableSlots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("uncapped event reports the sentinel", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Capacity: 0, Registered: 500}, nil)

		slots, err := l.AvailableSlots(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, models.UnlimitedSlots, slots)
	})

	t.Run("missing event maps to domain error", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.events.On("GetEvent", ctx, 99).Return(nil, storage.ErrEventNotFound)

		_, err := l.AvailableSlots(ctx, 99)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestBlacklist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("cancelling a registered seat promotes the waitlist", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.blacklist.On("AddToBlacklist", ctx, 1, "@spammer", "@admin", "spam").Return(nil)
		m.registrations.On("CancelActiveRegistration", ctx, 1, "@spammer").
			Return(models.StatusRegistered, nil)
		m.registrations.On("PromoteNext", ctx, 1).Return("@bob", nil)
		m.users.On("UserChatID", ctx, "@bob").Return(int64(77), nil)
		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, Title: "Go Meetup", Capacity: 10, Registered: 10}, nil)
		m.notifier.On("SendMessage", ctx, int64(77), mock.Anything).Return(nil)

		err := l.Blacklist(ctx, 1, "@spammer", "@admin", "spam")

		require.NoError(t, err)
	})

	t.Run("cancelling a waitlist entry does not promote", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.blacklist.On("AddToBlacklist", ctx, 1, "@spammer", "@admin", "").Return(nil)
		m.registrations.On("CancelActiveRegistration", ctx, 1, "@spammer").
			Return(models.StatusWaitlist, nil)

		err := l.Blacklist(ctx, 1, "@spammer", "@admin", "")

		require.NoError(t, err)
		m.registrations.AssertNotCalled(t, "PromoteNext", mock.Anything, mock.Anything)
	})

	t.Run("no active registration is fine", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.blacklist.On("AddToBlacklist", ctx, 1, "@spammer", "@admin", "").Return(nil)
		m.registrations.On("CancelActiveRegistration", ctx, 1, "@spammer").
			Return(models.RegistrationStatus(""), storage.ErrNotRegistered)

		err := l.Blacklist(ctx, 1, "@spammer", "@admin", "")

		require.NoError(t, err)
	})
}

func TestBlacklistGlobal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	l, m := newTestLedger(t)

	m.blacklist.On("AddToGlobalBlacklist", ctx, "@spammer", "@admin").Return(nil)
	m.registrations.On("ActiveRegistrations", ctx, "@spammer").Return([]models.Registration{
		{EventID: 1, Username: "@spammer", Status: models.StatusRegistered},
		{EventID: 2, Username: "@spammer", Status: models.StatusWaitlist},
	}, nil)
	m.registrations.On("CancelActiveRegistration", ctx, 1, "@spammer").
		Return(models.StatusRegistered, nil)
	m.registrations.On("CancelActiveRegistration", ctx, 2, "@spammer").
		Return(models.StatusWaitlist, nil)
	m.registrations.On("PromoteNext", ctx, 1).Return("", storage.ErrWaitlistEmpty)

	err := l.BlacklistGlobal(ctx, "@spammer", "@admin")

	require.NoError(t, err)
	m.registrations.AssertNotCalled(t, "PromoteNext", ctx, 2)
}

func TestCancelEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("participants are notified best-effort", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		event := &models.Event{
			ID:    1,
			Title: "Go Meetup",
			Date:  time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
		}

		m.events.On("GetEvent", ctx, 1).Return(event, nil)
		m.events.On("CancelEvent", ctx, 1).Return(nil)
		m.registrations.On("EventParticipants", ctx, 1).Return([]models.Participant{
			{Username: "@alice", ChatID: 11, Status: models.StatusRegistered},
			{Username: "@nochat", ChatID: 0, Status: models.StatusRegistered},
			{Username: "@bob", ChatID: 22, Status: models.StatusWaitlist},
		}, nil)
		m.notifier.On("SendMessage", ctx, int64(11), mock.Anything).Return(nil)
		m.notifier.On("SendMessage", ctx, int64(22), mock.Anything).Return(assert.AnError)

		err := l.CancelEvent(ctx, 1)

		require.NoError(t, err)
		m.notifier.AssertNumberOfCalls(t, "SendMessage", 2)
	})

	t.Run("already closed event maps to domain error", func(t *testing.T) {
		t.Parallel()

		l, m := newTestLedger(t)

		m.events.On("GetEvent", ctx, 1).
			Return(&models.Event{ID: 1, IsCancelled: true}, nil)
		m.events.On("CancelEvent", ctx, 1).Return(storage.ErrEventClosed)

		err := l.CancelEvent(ctx, 1)

		assert.ErrorIs(t, err, ErrEventClosed)
	})
}

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{"alice", "@alice"},
		{"@alice", "@alice"},
		{"  alice  ", "@alice"},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, NormalizeUsername(tc.in), "input %q", tc.in)
	}
}
