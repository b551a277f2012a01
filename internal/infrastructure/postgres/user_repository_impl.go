package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	"github.com/oksasatya/go-barber/internal/domain/repository"
)

const usersEmailKey = "users_email_key"

const selectUser = `
	SELECT u.id, u.name, u.email, u.password_hash, u.provider, u.avatar_id, u.created_at, u.updated_at,
	       f.id, f.name, f.path, f.created_at, f.updated_at
	FROM users u
	LEFT JOIN files f ON f.id = u.avatar_id`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, provider, avatar_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Provider, u.AvatarID)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if uniqueViolationOn(err, usersEmailKey) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.email = $1`, email))
}

func (r *UserRepository) ListProviders(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, selectUser+` WHERE u.provider = true ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, provider = $4, avatar_id = $5, updated_at = $6
		WHERE id = $7
	`, u.Name, u.Email, u.PasswordHash, u.Provider, u.AvatarID, u.UpdatedAt, u.ID)
	if err != nil {
		if uniqueViolationOn(err, usersEmailKey) {
			return repository.ErrDuplicateEmail
		}
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// scanUser reads one selectUser row; the avatar columns are NULL when no file is attached.
func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var (
		fileID, fileName, filePath *string
		fileCreated, fileUpdated   *time.Time
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider, &u.AvatarID,
		&u.CreatedAt, &u.UpdatedAt,
		&fileID, &fileName, &filePath, &fileCreated, &fileUpdated); err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if fileID != nil {
		u.Avatar = &entity.File{ID: *fileID, Name: deref(fileName), Path: deref(filePath)}
		if fileCreated != nil {
			u.Avatar.CreatedAt = *fileCreated
		}
		if fileUpdated != nil {
			u.Avatar.UpdatedAt = *fileUpdated
		}
	}
	return u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.UserRepository = (*UserRepository)(nil)
