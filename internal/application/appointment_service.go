package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
	mailtpl "github.com/oksasatya/go-barber/pkg/mailer/templates"
)

// AppointmentsPageSize is the fixed page size of the requester's appointment list.
const AppointmentsPageSize = 20

// CancellationDispatcher receives canceled appointments for asynchronous email delivery.
type CancellationDispatcher interface {
	DispatchCancellation(ctx context.Context, a *entity.Appointment)
}

type AppointmentService struct {
	Appointments  repo.AppointmentRepository
	Users         repo.UserRepository
	Notifications repo.NotificationRepository
	Mail          CancellationDispatcher
	Logger        *logrus.Logger
	Now           func() time.Time
}

func NewAppointmentService(appointments repo.AppointmentRepository, users repo.UserRepository, notifications repo.NotificationRepository, mail CancellationDispatcher, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{
		Appointments:  appointments,
		Users:         users,
		Notifications: notifications,
		Mail:          mail,
		Logger:        logger,
		Now:           time.Now,
	}
}

func (s *AppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns the requester's active appointments, oldest first, 20 per page (pages start at 1).
func (s *AppointmentService) List(ctx context.Context, requesterID string, page int) ([]entity.Appointment, error) {
	if page < 1 {
		page = 1
	}
	out, err := s.Appointments.ListActiveByUser(ctx, requesterID, AppointmentsPageSize, (page-1)*AppointmentsPageSize)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

type CreateAppointmentInput struct {
	ProviderID string
	Date       time.Time
	// ClientID books on behalf of another user when set.
	ClientID string
}

// Create books the provider hour containing in.Date for the caller (or in.ClientID)
// and notifies the provider.
func (s *AppointmentService) Create(ctx context.Context, callerID string, in CreateAppointmentInput) (*entity.Appointment, error) {
	provider, err := s.Users.GetByID(ctx, in.ProviderID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidProvider
	}
	if err != nil {
		return nil, fmt.Errorf("load provider: %w", err)
	}
	if !provider.Provider {
		return nil, ErrInvalidProvider
	}

	requesterID := callerID
	if in.ClientID != "" {
		requesterID = in.ClientID
	}

	hourStart := entity.StartOfHour(in.Date)
	if !hourStart.After(s.now()) {
		return nil, ErrPastDate
	}

	if requesterID == provider.ID {
		return nil, ErrSelfBooking
	}

	_, err = s.Appointments.FindActiveByProviderAndDate(ctx, provider.ID, hourStart)
	if err == nil {
		slotConflicts.Add(1)
		return nil, ErrSlotTaken
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	requester, err := s.Users.GetByID(ctx, requesterID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}

	a := &entity.Appointment{
		UserID:     requester.ID,
		ProviderID: provider.ID,
		Date:       hourStart,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrSlotTaken) {
			slotConflicts.Add(1)
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	appointmentsBooked.Add(1)

	n := &entity.Notification{
		Content: fmt.Sprintf("New appointment from %s for %s", requester.Name, hourStart.Format(mailtpl.DateLayout)),
		User:    provider.ID,
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("appointment_id", a.ID).Error("notify provider failed")
		}
		return nil, fmt.Errorf("notify provider: %w", err)
	}

	a.Provider = provider
	a.User = requester
	return a, nil
}

// Cancel marks the requester's appointment canceled and queues the provider email.
func (s *AppointmentService) Cancel(ctx context.Context, requesterID, appointmentID string) (*entity.Appointment, error) {
	a, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if a.UserID != requesterID {
		return nil, ErrNotOwner
	}

	now := s.now()
	if !a.Cancelable(now) {
		return nil, ErrCancellationWindowExpired
	}
	if a.Canceled() {
		return a, nil
	}

	if err := s.Appointments.Cancel(ctx, a.ID, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	a.CanceledAt = &now
	appointmentsCanceled.Add(1)

	if s.Mail != nil {
		s.Mail.DispatchCancellation(ctx, a)
	}
	return a, nil
}

// Schedule lists a provider's active appointments on the calendar day of day.
func (s *AppointmentService) Schedule(ctx context.Context, providerID string, day time.Time) ([]entity.Appointment, error) {
	u, err := s.Users.GetByID(ctx, providerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.Provider {
		return nil, ErrNotProvider
	}

	from := startOfDay(day)
	out, err := s.Appointments.ListActiveByProviderBetween(ctx, providerID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
