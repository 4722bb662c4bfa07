package collect

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/repository"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// Upserter writes collected rows in fixed-size chunks with a small pause
// between chunks so a large run does not monopolize the connection pool.
type Upserter struct {
	db        *gorm.DB
	chunkSize int
	delay     time.Duration
}

// NewUpserter creates an Upserter from the collect configuration.
func NewUpserter(db *gorm.DB, cfg *config.Config) *Upserter {
	chunk := cfg.Tidecast.Collect.ChunkSize
	if chunk <= 0 {
		chunk = 500
	}
	if chunk > 1000 {
		chunk = 1000
	}
	delay := time.Duration(cfg.Tidecast.Collect.ChunkDelayMs) * time.Millisecond
	return &Upserter{db: db, chunkSize: chunk, delay: delay}
}

// DedupLastWins removes conflict-key duplicates from rows, keeping the last
// occurrence in the first occurrence's position. A batch INSERT ... ON
// CONFLICT rejects two rows with the same key, so duplicates must be resolved
// client-side first.
func DedupLastWins[T any](rows []T, key func(T) string) []T {
	if len(rows) < 2 {
		return rows
	}
	index := make(map[string]int, len(rows))
	deduped := make([]T, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if at, seen := index[k]; seen {
			deduped[at] = row
			continue
		}
		index[k] = len(deduped)
		deduped = append(deduped, row)
	}
	return deduped
}

// UpsertRows deduplicates rows by conflict key, then upserts them chunk by
// chunk. A failed chunk is recorded and skipped; the remaining chunks still
// run. Returns the rows written plus the aggregated chunk errors, if any.
// chunkSize 0 uses the configured default.
func UpsertRows[T any](ctx context.Context, u *Upserter, rows []T, table string, conflictColumns, updateColumns []string, chunkSize int, key func(T) string) (int64, error) {
	rows = DedupLastWins(rows, key)
	if len(rows) == 0 {
		return 0, nil
	}
	if chunkSize <= 0 {
		chunkSize = u.chunkSize
	}

	var written int64
	var errs *multierror.Error
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		chunkCtx, span := otel.Tracer("tidecast/collect").Start(ctx, "upsert."+table,
			trace.WithAttributes(
				attribute.String("db.table", table),
				attribute.Int("rows", len(chunk)),
			))
		affected, err := repository.ExecuteUpsert(chunkCtx, u.db, &chunk, table, conflictColumns, updateColumns)
		span.End()
		if err != nil {
			logger.Errorf("upsert chunk %d-%d into %s failed: %v", start, end, table, err)
			errs = multierror.Append(errs, err)
		} else {
			written += affected
		}

		if end < len(rows) && u.delay > 0 {
			select {
			case <-ctx.Done():
				errs = multierror.Append(errs, ctx.Err())
				return written, errs.ErrorOrNil()
			case <-time.After(u.delay):
			}
		}
	}
	return written, errs.ErrorOrNil()
}
