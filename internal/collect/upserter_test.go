package collect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type keyedRow struct {
	Key   string
	Value int
}

func rowKey(r keyedRow) string { return r.Key }

func TestDedupLastWins(t *testing.T) {
	rows := []keyedRow{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "a", Value: 3},
		{Key: "c", Value: 4},
	}

	deduped := DedupLastWins(rows, rowKey)
	assert.Len(t, deduped, 3)

	// The later duplicate wins, in the first occurrence's position.
	assert.Equal(t, "a", deduped[0].Key)
	assert.Equal(t, 3, deduped[0].Value)
	assert.Equal(t, "b", deduped[1].Key)
	assert.Equal(t, "c", deduped[2].Key)
}

func TestDedupLastWinsSmallInputs(t *testing.T) {
	assert.Empty(t, DedupLastWins([]keyedRow{}, rowKey))

	single := []keyedRow{{Key: "a", Value: 1}}
	assert.Equal(t, single, DedupLastWins(single, rowKey))
}

func TestForEachBatchRunsEverything(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	seen := make([]bool, len(items))

	errs := forEachBatch(context.Background(), items, 2, 0, func(ctx context.Context, index int, item int) error {
		seen[index] = true
		if item == 3 {
			return errors.New("item 3 failed")
		}
		return nil
	})

	// One failure never cancels its siblings.
	for i, ok := range seen {
		assert.True(t, ok, "item %d should have run", i)
	}
	assert.NoError(t, errs[0])
	assert.Error(t, errs[2])
	assert.NoError(t, errs[4])
}

func TestForEachBatchCancelledBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	items := []int{1, 2, 3, 4}
	errs := forEachBatch(ctx, items, 2, 50*time.Millisecond, func(ctx context.Context, index int, item int) error {
		if index == 0 {
			cancel()
		}
		return nil
	})

	// The first batch completed; the rest were marked with the context error.
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.ErrorIs(t, errs[2], context.Canceled)
	assert.ErrorIs(t, errs[3], context.Canceled)
}

func TestForEachBatchZeroBatchSize(t *testing.T) {
	ran := 0
	errs := forEachBatch(context.Background(), []int{1, 2}, 0, 0, func(ctx context.Context, index int, item int) error {
		ran++
		return nil
	})
	assert.Len(t, errs, 2)
	assert.Equal(t, 2, ran)
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "35.1785,129.1996", LocationKey(35.1785, 129.1996))
	assert.Equal(t, "37.5,-122.25", LocationKey(37.5, -122.25))
	// %g drops trailing zeros, keeping the key stable across float renderings.
	assert.Equal(t, "35,129", LocationKey(35.0, 129.0))
}
