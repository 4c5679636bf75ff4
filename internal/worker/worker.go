// Package worker processes design generation jobs in the background. Jobs
// are queued by id; each worker loads the project's inputs, runs the MEP
// engine, and persists the designs and CAD output files. A cron schedule
// marks jobs stuck in pending or in_progress as failed.
package worker

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mepdesign/internal/database"
	"mepdesign/internal/logging"
)

// Worker manages background processing of design generation jobs
type Worker struct {
	db         *sql.DB
	outputDir  string
	jobQueue   chan string
	workerWg   sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	cron       *cron.Cron
}

// New creates a Worker writing CAD outputs under outputDir
func New(db *sql.DB, outputDir string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		db:         db,
		outputDir:  outputDir,
		jobQueue:   make(chan string, 100),
		ctx:        ctx,
		cancelFunc: cancel,
		cron:       cron.New(),
	}
}

// Start begins processing jobs with the specified number of workers
func (w *Worker) Start(numWorkers int) {
	// Periodic cleanup of stale jobs
	if _, err := w.cron.AddFunc("@every 1m", w.cleanupStaleJobs); err != nil {
		logging.Error("Failed to schedule stale job cleanup: %v", err)
	}
	w.cron.Start()

	for i := 0; i < numWorkers; i++ {
		w.workerWg.Add(1)
		go w.worker(i)
	}

	// Pick up any pending jobs on startup
	go w.pickupPendingJobs()
}

// pickupPendingJobs finds and enqueues any pending jobs from the database
func (w *Worker) pickupPendingJobs() {
	// Wait a moment for workers to be ready
	time.Sleep(1 * time.Second)

	rows, err := w.db.Query(
		`SELECT id FROM design_jobs WHERE status = ? ORDER BY created_at ASC`,
		database.StatusPending,
	)
	if err != nil {
		logging.Error("Failed to query pending jobs: %v", err)
		return
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Error("Failed to close rows: %v", err)
		}
	}()

	count := 0
	for rows.Next() {
		var jobID string
		if err := rows.Scan(&jobID); err != nil {
			logging.Error("Failed to scan job ID: %v", err)
			continue
		}
		w.Enqueue(jobID)
		count++
	}

	if count > 0 {
		logging.Info("Picked up %d pending jobs on startup", count)
	}
}

// Stop gracefully shuts down all workers
func (w *Worker) Stop() {
	w.cancelFunc()
	w.cron.Stop()
	close(w.jobQueue)
	w.workerWg.Wait()
}

// Enqueue adds a job to the processing queue
func (w *Worker) Enqueue(jobID string) {
	select {
	case w.jobQueue <- jobID:
		logging.Info("Enqueued design job: %s", jobID)
	default:
		logging.Warning("Job queue full, dropping job: %s", jobID)
	}
}

func (w *Worker) worker(id int) {
	defer w.workerWg.Done()
	logging.Info("Worker %d started", id)

	for {
		select {
		case jobID, ok := <-w.jobQueue:
			if !ok {
				logging.Info("Worker %d stopping", id)
				return
			}
			w.processJob(jobID)
		case <-w.ctx.Done():
			logging.Info("Worker %d stopping due to context cancellation", id)
			return
		}
	}
}

func (w *Worker) processJob(jobID string) {
	logging.Info("Processing design job: %s", jobID)

	job, err := database.GetDesignJob(jobID)
	if err != nil {
		logging.Error("Failed to get job %s: %v", jobID, err)
		return
	}

	// Skip if not pending
	if job.Status != database.StatusPending {
		logging.Warning("Job %s is not pending (status: %s), skipping", jobID, job.Status)
		return
	}

	w.updateJobStatus(jobID, database.StatusInProgress, 0, "Starting design generation", "")

	if err := w.generate(job); err != nil {
		logging.Error("Design job %s failed: %v", jobID, err)
		w.updateJobStatus(jobID, database.StatusFailed, 0, "", err.Error())
		return
	}

	w.updateJobStatus(jobID, database.StatusCompleted, 100, "Design generation completed", "")
}

func (w *Worker) updateJobStatus(jobID, status string, progress int, progressMessage, errorMessage string) {
	query := `
		UPDATE design_jobs
		SET status = ?, progress = ?, progress_message = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if status == database.StatusCompleted || status == database.StatusFailed {
		query = `
			UPDATE design_jobs
			SET status = ?, progress = ?, progress_message = ?, error_message = ?,
			    updated_at = CURRENT_TIMESTAMP, completed_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
	}

	if _, err := w.db.Exec(query, status, progress, progressMessage, errorMessage, jobID); err != nil {
		logging.Error("Failed to update job status: %v", err)
	}
}

// cleanupStaleJobs marks jobs stuck for more than 5 minutes as failed
func (w *Worker) cleanupStaleJobs() {
	query := `
		UPDATE design_jobs
		SET status = ?,
		    error_message = 'Job timed out - worker may have been unavailable',
		    updated_at = CURRENT_TIMESTAMP,
		    completed_at = CURRENT_TIMESTAMP
		WHERE status IN (?, ?)
		AND created_at <= datetime('now', '-5 minutes')
	`

	result, err := w.db.Exec(query, database.StatusFailed, database.StatusPending, database.StatusInProgress)
	if err != nil {
		logging.Error("Failed to cleanup stale jobs: %v", err)
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logging.Error("Failed to get affected rows: %v", err)
		return
	}
	if affected > 0 {
		logging.Warning("Marked %d stale jobs as failed", affected)
	}
}
