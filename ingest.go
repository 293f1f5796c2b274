package certpay

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/types"
)

// Ingest queues a raw timesheet record from an external payroll source
// (non-blocking). Records are normalized, deduplicated, and stored by the
// background flush worker.
func (e *Engine) Ingest(_ context.Context, rec *payroll.IngestRecord) error {
	if rec == nil || rec.Source == "" {
		return ValidationError{Field: "source", Message: "source is required"}
	}

	select {
	case e.ingestBuffer <- rec:
		return nil
	default:
		return ErrIngestBufferFull
	}
}

// ingestFlushWorker flushes queued ingest records to the store.
func (e *Engine) ingestFlushWorker(ctx context.Context) {
	defer e.wg.Done()

	batch := make([]*payroll.IngestRecord, 0, e.ingestBatchSize)
	ticker := time.NewTicker(e.ingestFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			// Final flush, draining anything still buffered.
			for {
				select {
				case rec := <-e.ingestBuffer:
					batch = append(batch, rec)
					continue
				default:
				}
				break
			}
			if len(batch) > 0 {
				e.flushIngestBatch(ctx, batch)
			}
			return

		case rec := <-e.ingestBuffer:
			batch = append(batch, rec)
			if len(batch) >= e.ingestBatchSize {
				e.flushIngestBatch(ctx, batch)
				batch = make([]*payroll.IngestRecord, 0, e.ingestBatchSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				e.flushIngestBatch(ctx, batch)
				batch = make([]*payroll.IngestRecord, 0, e.ingestBatchSize)
			}
		}
	}
}

// flushIngestBatch normalizes and stores one batch. A record that repeats a
// (source, project, worker, date) combination already claimed within the
// ledger's TTL counts as a duplicate and is dropped.
func (e *Engine) flushIngestBatch(ctx context.Context, batch []*payroll.IngestRecord) {
	start := time.Now()

	var stored, failed, duplicate int
	for _, rec := range batch {
		workDate, err := e.normalizeIngestRecord(ctx, rec)
		if err != nil {
			failed++
			e.logger.Warn("ingest record dropped",
				"source", rec.Source,
				"worker_id", rec.WorkerID,
				"error", err,
			)
			continue
		}

		key := fmt.Sprintf("%s:%s:%s:%s", rec.Source, rec.ProjectID, rec.WorkerID, rec.WorkDate)
		if !e.keys.Claim(key) {
			duplicate++
			continue
		}

		entry := &project.TimesheetEntry{
			Entity:    types.NewEntity(),
			ID:        id.NewTimesheetEntryID(),
			ProjectID: rec.ProjectID,
			WorkerID:  rec.WorkerID,
			WorkDate:  workDate,
			Hours:     rec.Hours,
			WageRate:  rec.WageRate,
			Source:    rec.Source,
		}
		if err := e.store.CreateTimesheetEntry(ctx, entry); err != nil {
			failed++
			e.logger.Error("ingest store failed",
				"source", rec.Source,
				"worker_id", rec.WorkerID,
				"error", err,
			)
			continue
		}
		stored++
	}

	elapsed := time.Since(start)
	e.plugins.EmitTimesheetsFlushed(ctx, stored, failed, duplicate, elapsed)

	e.logger.Debug("flushed ingest batch",
		"stored", stored,
		"failed", failed,
		"duplicate", duplicate,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// normalizeIngestRecord validates a raw record against the roster and
// returns its parsed work date.
func (e *Engine) normalizeIngestRecord(ctx context.Context, rec *payroll.IngestRecord) (time.Time, error) {
	if rec.ProjectID.IsNil() || rec.WorkerID.IsNil() || rec.WorkDate == "" {
		return time.Time{}, ValidationError{Field: "project_id, worker_id, work_date", Message: "missing required fields"}
	}
	if rec.Hours <= 0 || rec.WageRate <= 0 {
		return time.Time{}, ValidationError{Field: "hours, wage_rate", Message: "hours and wageRate must be positive"}
	}
	if _, err := e.store.GetProject(ctx, rec.ProjectID); err != nil {
		return time.Time{}, err
	}
	if _, err := e.store.GetWorker(ctx, rec.WorkerID); err != nil {
		return time.Time{}, err
	}
	return parseDate("work_date", rec.WorkDate)
}

// sweepWorker periodically evicts expired idempotency claims.
func (e *Engine) sweepWorker() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			if n := e.keys.Sweep(); n > 0 {
				e.logger.Debug("swept idempotency claims", "evicted", n)
			}
		}
	}
}
