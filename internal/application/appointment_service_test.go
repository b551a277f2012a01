package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
)

func TestAppointmentCreateRejectsNonProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.register(t, "Client", "client@example.com", false)
	other := f.register(t, "Other", "other@example.com", false)

	for _, providerID := range []string{other.ID, "missing"} {
		_, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{
			ProviderID: providerID,
			Date:       f.now.Add(24 * time.Hour),
		})
		if !errors.Is(err, ErrInvalidProvider) {
			t.Fatalf("provider %q: expected ErrInvalidProvider, got %v", providerID, err)
		}
	}
	if n := len(f.store.appointments); n != 0 {
		t.Fatalf("expected nothing persisted, got %d appointments", n)
	}
}

func TestAppointmentCreateTruncatesToHour(t *testing.T) {
	f := newFixture(t)
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)

	in := time.Date(2030, time.March, 11, 14, 37, 12, 500, time.UTC)
	a, err := f.appointments.Create(context.Background(), client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: in})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2030, time.March, 11, 14, 0, 0, 0, time.UTC)
	if !a.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, a.Date)
	}
	if stored := f.store.appointments[a.ID]; !stored.Date.Equal(want) {
		t.Fatalf("stored date %v, want %v", stored.Date, want)
	}
	if a.Provider == nil || a.Provider.ID != provider.ID || a.User == nil || a.User.ID != client.ID {
		t.Fatalf("expected provider and user attached, got %+v", a)
	}
}

func TestAppointmentCreatePastDate(t *testing.T) {
	// now is 12:00:00 sharp
	cases := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"yesterday", time.Date(2030, time.March, 9, 15, 0, 0, 0, time.UTC), ErrPastDate},
		{"an hour ago", time.Date(2030, time.March, 10, 11, 0, 0, 0, time.UTC), ErrPastDate},
		{"now", time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC), ErrPastDate},
		{"later in the current hour", time.Date(2030, time.March, 10, 12, 45, 0, 0, time.UTC), ErrPastDate},
		{"next hour", time.Date(2030, time.March, 10, 13, 5, 0, 0, time.UTC), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			client := f.register(t, "Client", "client@example.com", false)
			provider := f.register(t, "Barber", "barber@example.com", true)

			_, err := f.appointments.Create(context.Background(), client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: tc.date})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAppointmentCreateSelfBooking(t *testing.T) {
	f := newFixture(t)
	provider := f.register(t, "Barber", "barber@example.com", true)

	_, err := f.appointments.Create(context.Background(), provider.ID, CreateAppointmentInput{
		ProviderID: provider.ID,
		Date:       f.now.Add(3 * time.Hour),
	})
	if !errors.Is(err, ErrSelfBooking) {
		t.Fatalf("expected ErrSelfBooking, got %v", err)
	}
}

func TestAppointmentSlotTakenUntilCanceled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com", false)
	bob := f.register(t, "Bob", "bob@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	slot := time.Date(2030, time.March, 12, 10, 0, 0, 0, time.UTC)

	first, err := f.appointments.Create(ctx, alice.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: slot})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := f.appointments.Create(ctx, bob.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: slot.Add(20 * time.Minute)}); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	if _, err := f.appointments.Cancel(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.appointments.Create(ctx, bob.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: slot}); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestAppointmentCreateSlotTakenFromStore(t *testing.T) {
	// a concurrent winner is only visible through the store's unique slot constraint
	f := newFixture(t)
	ctx := context.Background()
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	slot := time.Date(2030, time.March, 12, 10, 0, 0, 0, time.UTC)

	f.appointments.Appointments = racingAppointments{memAppointments{f.store}}
	if _, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: slot}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: slot})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

// racingAppointments hides existing bookings from the availability check.
type racingAppointments struct{ memAppointments }

func (racingAppointments) FindActiveByProviderAndDate(context.Context, string, time.Time) (*entity.Appointment, error) {
	return nil, repo.ErrNotFound
}

func TestAppointmentScenarioNotifiesProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com", false)
	provider := f.register(t, "Paul", "paul@example.com", true)

	a, err := f.appointments.Create(ctx, alice.ID, CreateAppointmentInput{
		ProviderID: provider.ID,
		Date:       time.Date(2099, time.January, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := time.Date(2099, time.January, 1, 10, 0, 0, 0, time.UTC); !a.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", a.Date, want)
	}

	feed, err := f.notifications.ListByUser(ctx, provider.ID, 20)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(feed))
	}
	if !strings.Contains(feed[0].Content, "Alice") || !strings.Contains(feed[0].Content, "January 01, at 10:00h") {
		t.Fatalf("unexpected content %q", feed[0].Content)
	}
	if feed[0].Read {
		t.Fatal("new notification should be unread")
	}

	_, err = f.appointments.Create(ctx, alice.ID, CreateAppointmentInput{
		ProviderID: provider.ID,
		Date:       time.Date(2099, time.January, 1, 10, 30, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestAppointmentCreateNotificationFailurePropagates(t *testing.T) {
	f := newFixture(t)
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	f.notifications.failCreate = errStoreDown

	_, err := f.appointments.Create(context.Background(), client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: f.now.Add(5 * time.Hour)})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAppointmentCreateClientOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	receptionist := f.register(t, "Front Desk", "desk@example.com", false)
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	date := f.now.Add(6 * time.Hour)

	t.Run("books for the client", func(t *testing.T) {
		a, err := f.appointments.Create(ctx, receptionist.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: date, ClientID: client.ID})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if a.UserID != client.ID {
			t.Fatalf("expected appointment owned by client, got %s", a.UserID)
		}
	})
	t.Run("client equal to provider", func(t *testing.T) {
		_, err := f.appointments.Create(ctx, receptionist.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: date.Add(time.Hour), ClientID: provider.ID})
		if !errors.Is(err, ErrSelfBooking) {
			t.Fatalf("expected ErrSelfBooking, got %v", err)
		}
	})
	t.Run("unknown client", func(t *testing.T) {
		_, err := f.appointments.Create(ctx, receptionist.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: date.Add(2 * time.Hour), ClientID: "missing"})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAppointmentCancelWindow(t *testing.T) {
	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"two hours and one minute before", time.Date(2030, time.March, 10, 12, 59, 0, 0, time.UTC), nil},
		{"exactly two hours before", time.Date(2030, time.March, 10, 13, 0, 0, 0, time.UTC), ErrCancellationWindowExpired},
		{"ninety minutes before", time.Date(2030, time.March, 10, 13, 30, 0, 0, time.UTC), ErrCancellationWindowExpired},
		{"after the appointment", time.Date(2030, time.March, 10, 16, 0, 0, 0, time.UTC), ErrCancellationWindowExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			client := f.register(t, "Client", "client@example.com", false)
			provider := f.register(t, "Barber", "barber@example.com", true)
			a, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{
				ProviderID: provider.ID,
				Date:       time.Date(2030, time.March, 10, 15, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			f.now = tc.now
			got, err := f.appointments.Cancel(ctx, client.ID, a.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				if len(f.mail.sent) != 0 {
					t.Fatal("no mail expected on rejected cancel")
				}
				return
			}
			if got.CanceledAt == nil || !got.CanceledAt.Equal(tc.now) {
				t.Fatalf("canceled_at = %v, want %v", got.CanceledAt, tc.now)
			}
			if len(f.mail.sent) != 1 {
				t.Fatalf("expected 1 dispatched mail, got %d", len(f.mail.sent))
			}
			sent := f.mail.sent[0]
			if sent.Provider == nil || sent.Provider.Email != "barber@example.com" || sent.User == nil || sent.User.Name != "Client" {
				t.Fatalf("dispatched appointment missing identities: %+v", sent)
			}
		})
	}
}

func TestAppointmentCancelForbiddenForOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Owner", "owner@example.com", false)
	intruder := f.register(t, "Intruder", "intruder@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	a, err := f.appointments.Create(ctx, owner.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: f.now.Add(5 * time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, now := range []time.Time{f.now, f.now.Add(4 * time.Hour)} {
		f.now = now
		if _, err := f.appointments.Cancel(ctx, intruder.ID, a.ID); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("at %v: expected ErrNotOwner, got %v", now, err)
		}
	}
	if f.store.appointments[a.ID].CanceledAt != nil {
		t.Fatal("appointment must stay active")
	}
}

func TestAppointmentCancelNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.appointments.Cancel(context.Background(), "1", "missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestAppointmentCancelTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)
	a, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: f.now.Add(5 * time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := f.appointments.Cancel(ctx, client.ID, a.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.now = f.now.Add(time.Minute)
	second, err := f.appointments.Cancel(ctx, client.ID, a.ID)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if !second.CanceledAt.Equal(*first.CanceledAt) {
		t.Fatalf("canceled_at moved from %v to %v", first.CanceledAt, second.CanceledAt)
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("expected a single mail, got %d", len(f.mail.sent))
	}
}

func TestAppointmentListPaginatesActiveOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.register(t, "Client", "client@example.com", false)
	other := f.register(t, "Other", "other@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)

	var ids []string
	for i := 22; i >= 1; i-- {
		a, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: f.now.Add(time.Duration(i) * time.Hour)})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, a.ID)
	}
	// the latest one is canceled and someone else's booking must not show up
	if _, err := f.appointments.Cancel(ctx, client.ID, ids[0]); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.appointments.Create(ctx, other.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: f.now.Add(30 * time.Hour)}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	page1, err := f.appointments.List(ctx, client.ID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page1) != AppointmentsPageSize {
		t.Fatalf("page 1 size = %d", len(page1))
	}
	for i := 1; i < len(page1); i++ {
		if !page1[i-1].Date.Before(page1[i].Date) {
			t.Fatalf("page not ordered by date at %d", i)
		}
	}
	if page1[0].Provider == nil || page1[0].Provider.ID != provider.ID {
		t.Fatalf("expected provider joined, got %+v", page1[0].Provider)
	}

	page2, err := f.appointments.List(ctx, client.ID, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 size = %d, want 1", len(page2))
	}

	page0, _ := f.appointments.List(ctx, client.ID, 0)
	if len(page0) != len(page1) || page0[0].ID != page1[0].ID {
		t.Fatal("page 0 should behave like page 1")
	}
}

func TestAppointmentSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.register(t, "Client", "client@example.com", false)
	provider := f.register(t, "Barber", "barber@example.com", true)

	today := time.Date(2030, time.March, 10, 15, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	for _, d := range []time.Time{today, tomorrow} {
		if _, err := f.appointments.Create(ctx, client.ID, CreateAppointmentInput{ProviderID: provider.ID, Date: d}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := f.appointments.Schedule(ctx, provider.ID, today)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(got) != 1 || !got[0].Date.Equal(today) {
		t.Fatalf("unexpected schedule %+v", got)
	}
	if got[0].User == nil || got[0].User.Name != "Client" {
		t.Fatalf("expected requester joined, got %+v", got[0].User)
	}

	if _, err := f.appointments.Schedule(ctx, client.ID, today); !errors.Is(err, ErrNotProvider) {
		t.Fatalf("expected ErrNotProvider, got %v", err)
	}
}
