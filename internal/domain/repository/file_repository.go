package repository

import (
	"context"

	"github.com/oksasatya/go-barber/internal/domain/entity"
)

type FileRepository interface {
	Create(ctx context.Context, f *entity.File) error
	GetByID(ctx context.Context, id string) (*entity.File, error)
}
