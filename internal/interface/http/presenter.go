package handlers

import (
	"time"

	"github.com/oksasatya/go-barber/internal/domain/entity"
)

type fileJSON struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type userJSON struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Provider bool      `json:"provider"`
	Avatar   *fileJSON `json:"avatar,omitempty"`
}

type appointmentJSON struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Past       bool       `json:"past"`
	Cancelable bool       `json:"cancelable"`
	CanceledAt *time.Time `json:"canceled_at"`
	UserID     string     `json:"user_id"`
	ProviderID string     `json:"provider_id"`
	Provider   *userJSON  `json:"provider,omitempty"`
	User       *userJSON  `json:"user,omitempty"`
}

// presenter turns entities into response bodies; derived fields are computed here.
type presenter struct {
	filesURL string
	now      func() time.Time
}

func newPresenter(filesURL string) presenter {
	return presenter{filesURL: filesURL, now: time.Now}
}

func (p presenter) file(f *entity.File) *fileJSON {
	if f == nil {
		return nil
	}
	return &fileJSON{ID: f.ID, Name: f.Name, Path: f.Path, URL: f.URL(p.filesURL)}
}

func (p presenter) user(u *entity.User) *userJSON {
	if u == nil {
		return nil
	}
	return &userJSON{ID: u.ID, Name: u.Name, Email: u.Email, Provider: u.Provider, Avatar: p.file(u.Avatar)}
}

func (p presenter) users(us []entity.User) []userJSON {
	out := make([]userJSON, 0, len(us))
	for i := range us {
		out = append(out, *p.user(&us[i]))
	}
	return out
}

func (p presenter) appointment(a *entity.Appointment) appointmentJSON {
	now := p.now()
	return appointmentJSON{
		ID:         a.ID,
		Date:       a.Date,
		Past:       a.Past(now),
		Cancelable: a.Cancelable(now),
		CanceledAt: a.CanceledAt,
		UserID:     a.UserID,
		ProviderID: a.ProviderID,
		Provider:   p.user(a.Provider),
		User:       p.user(a.User),
	}
}

func (p presenter) appointments(as []entity.Appointment) []appointmentJSON {
	out := make([]appointmentJSON, 0, len(as))
	for i := range as {
		out = append(out, p.appointment(&as[i]))
	}
	return out
}
