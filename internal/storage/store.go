package storage

import (
	"context"
	"errors"

	"github.com/slidelens/slidelens/internal/types"
)

var ErrReportNotFound = errors.New("report not found")

const DEFAULT_LIST_LIMIT = 20

// Store keeps finished reports so they can be fetched again by id.
type Store interface {
	Save(ctx context.Context, report *types.Report) error
	Get(ctx context.Context, id string) (*types.Report, error)
	List(ctx context.Context, limit int) ([]types.ReportSummary, error)
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DEFAULT_LIST_LIMIT
	}
	if limit > 100 {
		return 100
	}
	return limit
}
