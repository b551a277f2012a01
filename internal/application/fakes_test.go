package application

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

type memStore struct {
	mu            sync.Mutex
	seq           int
	users         map[string]*entity.User
	files         map[string]*entity.File
	appointments  map[string]*entity.Appointment
	notifications []*entity.Notification
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]*entity.User{},
		files:        map[string]*entity.File{},
		appointments: map[string]*entity.Appointment{},
	}
}

func (m *memStore) nextID() string {
	m.seq++
	return strconv.Itoa(m.seq)
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = r.nextID()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) resolve(u entity.User) *entity.User {
	if u.AvatarID != nil {
		if f, ok := r.files[*u.AvatarID]; ok {
			fc := *f
			u.Avatar = &fc
		}
	} else {
		u.Avatar = nil
	}
	return &u
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.resolve(*u), nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return r.resolve(*u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, x := range r.users {
		if id != u.ID && x.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	cp := *u
	cp.Avatar = nil
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) ListProviders(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for _, u := range r.users {
		if u.Provider {
			out = append(out, *r.resolve(*u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// files

type memFiles struct{ *memStore }

func (r memFiles) Create(_ context.Context, f *entity.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID()
	cp := *f
	r.files[f.ID] = &cp
	return nil
}

func (r memFiles) GetByID(_ context.Context, id string) (*entity.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

// appointments; Create enforces one active appointment per provider hour like the partial index

type memAppointments struct{ *memStore }

func (r memAppointments) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.appointments {
		if x.ProviderID == a.ProviderID && x.Date.Equal(a.Date) && x.CanceledAt == nil {
			return repo.ErrSlotTaken
		}
	}
	a.ID = r.nextID()
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r memAppointments) withUsers(a entity.Appointment) *entity.Appointment {
	if p, ok := r.users[a.ProviderID]; ok {
		pc := *p
		a.Provider = &pc
	}
	if u, ok := r.users[a.UserID]; ok {
		uc := *u
		a.User = &uc
	}
	return &a
}

func (r memAppointments) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.withUsers(*a), nil
}

func (r memAppointments) FindActiveByProviderAndDate(_ context.Context, providerID string, date time.Time) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ProviderID == providerID && a.Date.Equal(date) && a.CanceledAt == nil {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memAppointments) active(match func(*entity.Appointment) bool) []entity.Appointment {
	out := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.CanceledAt == nil && match(a) {
			out = append(out, *r.withUsers(*a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r memAppointments) ListActiveByUser(_ context.Context, userID string, limit, offset int) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.active(func(a *entity.Appointment) bool { return a.UserID == userID })
	if offset >= len(all) {
		return []entity.Appointment{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memAppointments) ListActiveByProviderBetween(_ context.Context, providerID string, from, to time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active(func(a *entity.Appointment) bool {
		return a.ProviderID == providerID && !a.Date.Before(from) && a.Date.Before(to)
	}), nil
}

func (r memAppointments) Cancel(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.CanceledAt != nil {
		return repo.ErrNotFound
	}
	a.CanceledAt = &at
	return nil
}

// notifications

type memNotifications struct {
	*memStore
	failCreate error
}

func (r *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID()
	n.CreatedAt = time.Unix(int64(r.seq), 0)
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *memNotifications) ListByUser(_ context.Context, userID string, limit int) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Notification{}
	for i := len(r.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.notifications[i].User == userID {
			out = append(out, *r.notifications[i])
		}
	}
	return out, nil
}

func (r *memNotifications) MarkRead(_ context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			cp := *n
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

// mail

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []*entity.Appointment
}

func (d *recordingDispatcher) DispatchCancellation(_ context.Context, a *entity.Appointment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, a)
}

type recordingPublisher struct {
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

var errStoreDown = errors.New("store down")

// fixture wires every service against one in-memory store and a fixed clock.
type fixture struct {
	store         *memStore
	notifications *memNotifications
	mail          *recordingDispatcher
	now           time.Time

	users        *UserService
	sessions     *SessionService
	appointments *AppointmentService
	providers    *ProviderService
	notifySvc    *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemStore()
	f := &fixture{
		store:         st,
		notifications: &memNotifications{memStore: st},
		mail:          &recordingDispatcher{},
		now:           time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	logger := helpers.NewNopLogger()

	jwt := helpers.NewJWTManager("test-secret", 7*24*time.Hour)
	jwt.Now = clock

	f.users = NewUserService(memUsers{st}, memFiles{st}, nil, logger)
	f.sessions = NewSessionService(memUsers{st}, jwt, logger)
	f.appointments = NewAppointmentService(memAppointments{st}, memUsers{st}, f.notifications, f.mail, logger)
	f.appointments.Now = clock
	f.providers = NewProviderService(memUsers{st}, memAppointments{st}, nil, 0, logger)
	f.providers.Now = clock
	f.notifySvc = NewNotificationService(f.notifications, memUsers{st})
	return f
}

func (f *fixture) register(t *testing.T, name, email string, provider bool) *entity.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "123456", Provider: provider,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}
