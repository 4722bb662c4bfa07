// Package archive writes expired rows to parquet files in Google Cloud
// Storage before the retention sweep deletes them.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/mulgyeol/tidecast/internal/config"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/exception"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

const ModuleArchive = "archive"

// Archiver uploads parquet snapshots of rows about to be deleted. With no
// bucket configured, archiving is skipped with a warning so the sweep itself
// still runs.
type Archiver struct {
	cfg config.ArchiveConfig
}

// NewArchiver creates an Archiver.
func NewArchiver(cfg *config.Config) *Archiver {
	return &Archiver{cfg: cfg.Tidecast.Archive}
}

// Enabled reports whether archiving will actually upload anything.
func (a *Archiver) Enabled() bool {
	return a.cfg.Enabled && a.cfg.Bucket != ""
}

// ArchiveMarineObservations writes the rows as one snappy parquet object and
// returns the object name. A skipped archive returns an empty name and no error.
func (a *Archiver) ArchiveMarineObservations(ctx context.Context, rows []entity.MarineObservation) (string, error) {
	if !a.Enabled() {
		logger.Warnf("archive bucket not configured; skipping archival of %d marine observations", len(rows))
		return "", nil
	}
	if len(rows) == 0 {
		return "", nil
	}

	buf := new(bytes.Buffer)
	pw, err := writer.NewParquetWriterFromWriter(buf, new(entity.MarineObservationArchive), int64(len(rows)))
	if err != nil {
		return "", exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to create parquet writer", err, false)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(toArchiveRow(row)); err != nil {
			return "", exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to write parquet row", err, false)
		}
	}
	if err := writeStop(pw); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/marine_observations/dt=%s/data_%s_%s.parquet",
		a.cfg.Prefix,
		time.Now().UTC().Format("2006-01-02"),
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8],
	)
	if err := a.upload(ctx, objectName, buf); err != nil {
		return "", err
	}
	logger.Infof("archived %d marine observations to gs://%s/%s", len(rows), a.cfg.Bucket, objectName)
	return objectName, nil
}

// writeStop finalizes the parquet file. The library panics on some malformed
// schemas, so the panic is converted into an error.
func writeStop(pw *writer.ParquetWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = exception.NewAppErrorf(ModuleArchive, exception.KindUnhandled, "parquet writer panicked during finalization: %v", r)
		}
	}()
	if stopErr := pw.WriteStop(); stopErr != nil {
		return exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to finalize parquet file", stopErr, false)
	}
	return nil
}

func (a *Archiver) upload(ctx context.Context, objectName string, buf *bytes.Buffer) error {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to create storage client", err, false)
	}
	defer client.Close()

	w := client.Bucket(a.cfg.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	if _, err := w.Write(buf.Bytes()); err != nil {
		_ = w.Close()
		return exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to upload archive object "+objectName, err, true)
	}
	if err := w.Close(); err != nil {
		return exception.NewAppError(ModuleArchive, exception.KindUnhandled, "failed to finalize archive object "+objectName, err, true)
	}
	return nil
}

// toArchiveRow flattens a nullable observation into the parquet projection.
// NULL measurements become zero values; the archive is a cold-storage dump,
// not a query surface.
func toArchiveRow(row entity.MarineObservation) entity.MarineObservationArchive {
	return entity.MarineObservationArchive{
		StationID:          row.StationID,
		ObservationTimeKST: row.ObservationTimeKST,
		WaveHeight:         deref(row.WaveHeight),
		WindDirection:      deref(row.WindDirection),
		WindSpeed:          deref(row.WindSpeed),
		WaterTemperature:   deref(row.WaterTemperature),
		AirTemperature:     deref(row.AirTemperature),
		Pressure:           deref(row.Pressure),
		Humidity:           deref(row.Humidity),
		CreatedAt:          row.CreatedAt.UnixMilli(),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
