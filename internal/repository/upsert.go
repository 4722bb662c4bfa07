// Package repository provides the GORM-backed persistence layer: batch
// upserts keyed by explicit conflict columns, the read-API queries, and the
// retention sweep primitives.
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
)

// ExecuteUpsert performs a bulk INSERT ... ON CONFLICT for the given slice of
// entities. An empty updateColumns list produces DO NOTHING; otherwise the
// listed columns are overwritten on conflict. Returns the rows affected,
// which may be 0 under DO NOTHING even when the insert attempt succeeded.
func ExecuteUpsert(ctx context.Context, db *gorm.DB, model interface{}, tableName string, conflictColumns, updateColumns []string) (int64, error) {
	tx := db.WithContext(ctx)
	if tableName != "" {
		tx = tx.Table(tableName)
	}

	var columns []clause.Column
	for _, col := range conflictColumns {
		columns = append(columns, clause.Column{Name: col})
	}

	onConflict := clause.OnConflict{
		Columns: columns,
	}
	if len(updateColumns) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(updateColumns)
	} else {
		onConflict.DoNothing = true
	}

	result := tx.Clauses(onConflict).Create(model)
	if result.Error != nil {
		return 0, exception.NewAppError("repository", exception.KindPersistence, "bulk upsert failed for table "+tableName, result.Error, exception.IsTemporary(result.Error))
	}
	return result.RowsAffected, nil
}
