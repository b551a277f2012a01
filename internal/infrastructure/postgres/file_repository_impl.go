package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	"github.com/oksasatya/go-barber/internal/domain/repository"
)

type FileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

func (r *FileRepository) Create(ctx context.Context, f *entity.File) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO files (name, path)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, f.Name, f.Path).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*entity.File, error) {
	f := &entity.File{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, path, created_at, updated_at FROM files WHERE id = $1
	`, id).Scan(&f.ID, &f.Name, &f.Path, &f.CreatedAt, &f.UpdatedAt)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

var _ repository.FileRepository = (*FileRepository)(nil)
