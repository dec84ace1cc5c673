package repository

import (
	"context"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/pkg/pagination"
)

// PrintJobRepository is the print journal.
type PrintJobRepository interface {
	Create(ctx context.Context, job *entity.PrintJob) error
	// List returns jobs newest first.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.PrintJob, int64, error)
}
