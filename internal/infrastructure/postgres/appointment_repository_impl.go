package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	"github.com/oksasatya/go-barber/internal/domain/repository"
)

// appointmentsSlotKey is the partial unique index on (provider_id, date) of active rows.
const appointmentsSlotKey = "appointments_provider_slot_key"

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, provider_id, date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.ProviderID, a.Date).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if uniqueViolationOn(err, appointmentsSlotKey) {
		return repository.ErrSlotTaken
	}
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a := &entity.Appointment{Provider: &entity.User{}, User: &entity.User{}}
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at, a.created_at, a.updated_at,
		       p.name, p.email, p.provider, c.name, c.email
		FROM appointments a
		JOIN users p ON p.id = a.provider_id
		JOIN users c ON c.id = a.user_id
		WHERE a.id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.ProviderID, &a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt,
		&a.Provider.Name, &a.Provider.Email, &a.Provider.Provider, &a.User.Name, &a.User.Email)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Provider.ID = a.ProviderID
	a.User.ID = a.UserID
	return a, nil
}

func (r *AppointmentRepository) FindActiveByProviderAndDate(ctx context.Context, providerID string, date time.Time) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, provider_id, date, canceled_at, created_at, updated_at
		FROM appointments
		WHERE provider_id = $1 AND date = $2 AND canceled_at IS NULL
		LIMIT 1
	`, providerID, date).Scan(&a.ID, &a.UserID, &a.ProviderID, &a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) ListActiveByUser(ctx context.Context, userID string, limit, offset int) ([]entity.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at, a.created_at, a.updated_at,
		       p.name, p.email, f.id, f.name, f.path
		FROM appointments a
		JOIN users p ON p.id = a.provider_id
		LEFT JOIN files f ON f.id = p.avatar_id
		WHERE a.user_id = $1 AND a.canceled_at IS NULL
		ORDER BY a.date
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		if isNoRows(err) {
			return []entity.Appointment{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := []entity.Appointment{}
	for rows.Next() {
		a := entity.Appointment{Provider: &entity.User{}}
		var fileID, fileName, filePath *string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProviderID, &a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt,
			&a.Provider.Name, &a.Provider.Email, &fileID, &fileName, &filePath); err != nil {
			return nil, err
		}
		a.Provider.ID = a.ProviderID
		a.Provider.Provider = true
		if fileID != nil {
			a.Provider.AvatarID = fileID
			a.Provider.Avatar = &entity.File{ID: *fileID, Name: deref(fileName), Path: deref(filePath)}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) ListActiveByProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]entity.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at, a.created_at, a.updated_at,
		       c.name, c.email
		FROM appointments a
		JOIN users c ON c.id = a.user_id
		WHERE a.provider_id = $1 AND a.canceled_at IS NULL
		  AND a.date >= $2 AND a.date < $3
		ORDER BY a.date
	`, providerID, from, to)
	if err != nil {
		if isNoRows(err) {
			return []entity.Appointment{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := []entity.Appointment{}
	for rows.Next() {
		a := entity.Appointment{User: &entity.User{}}
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProviderID, &a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt,
			&a.User.Name, &a.User.Email); err != nil {
			return nil, err
		}
		a.User.ID = a.UserID
		out = append(out, a)
	}
	return out, rows.Err()
}

// Cancel stamps canceled_at on an active appointment; ErrNotFound if none matched.
func (r *AppointmentRepository) Cancel(ctx context.Context, id string, at time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE appointments SET canceled_at = $2, updated_at = now()
		WHERE id = $1 AND canceled_at IS NULL
	`, id, at)
	if err != nil {
		if isNoRows(err) {
			return repository.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
