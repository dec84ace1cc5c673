package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/pagination"
)

// DefaultJournalSize bounds the in-memory print journal.
const DefaultJournalSize = 500

// PrintJobRepository is a bounded print journal used when no database is
// configured. The oldest jobs are dropped first.
type PrintJobRepository struct {
	mu   sync.RWMutex
	jobs []entity.PrintJob
	max  int
}

var _ domainRepo.PrintJobRepository = (*PrintJobRepository)(nil)

func NewPrintJobRepository(max int) *PrintJobRepository {
	if max <= 0 {
		max = DefaultJournalSize
	}
	return &PrintJobRepository{max: max}
}

func (r *PrintJobRepository) Create(_ context.Context, job *entity.PrintJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, *job)
	if over := len(r.jobs) - r.max; over > 0 {
		r.jobs = append([]entity.PrintJob(nil), r.jobs[over:]...)
	}
	return nil
}

func (r *PrintJobRepository) List(_ context.Context, params *pagination.PaginationParams) ([]entity.PrintJob, int64, error) {
	r.mu.RLock()
	newest := make([]entity.PrintJob, len(r.jobs))
	for i, j := range r.jobs {
		newest[len(r.jobs)-1-i] = j
	}
	r.mu.RUnlock()

	page := pagination.Slice(newest, params)
	return page.Items, page.Pagination.Total, nil
}
