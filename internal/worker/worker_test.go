package worker

import (
	"path/filepath"
	"testing"
	"time"

	"mepdesign/internal/database"
)

func setupWorkerTest(t *testing.T) *Worker {
	t.Helper()
	dir := t.TempDir()
	if err := database.Initialize(filepath.Join(dir, "test.db")); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { database.Close() }) //nolint:errcheck // Test teardown

	return New(database.GetDB(), filepath.Join(dir, "output"))
}

func waitForJob(t *testing.T, jobID string) *database.DesignJob {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		job, err := database.GetDesignJob(jobID)
		if err != nil {
			t.Fatalf("GetDesignJob failed: %v", err)
		}
		if job.Status == database.StatusCompleted || job.Status == database.StatusFailed {
			return job
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("Job did not finish in time")
	return nil
}

func TestJobPipeline(t *testing.T) {
	w := setupWorkerTest(t)

	projectID, err := database.CreateProject("Office", "")
	if err != nil {
		t.Fatal(err)
	}
	jobID, err := database.CreateDesignJob(projectID)
	if err != nil {
		t.Fatal(err)
	}

	w.Start(1)
	defer w.Stop()
	w.Enqueue(jobID)

	job := waitForJob(t, jobID)
	if job.Status != database.StatusCompleted {
		t.Fatalf("Job failed: %s (%s)", job.Status, job.ErrorMessage.String)
	}
	if job.Progress != 100 {
		t.Errorf("Completed job progress = %d", job.Progress)
	}
	if !job.CompletedAt.Valid {
		t.Error("Completed job has no completion timestamp")
	}

	// The project has no uploads, so the placeholder layout drives the
	// pipeline and all three disciplines are persisted.
	designs, err := database.GetDesigns(projectID)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{database.DisciplineMechanical, database.DisciplineElectrical, database.DisciplinePlumbing} {
		if _, ok := designs[d]; !ok {
			t.Errorf("Missing %s design", d)
		}
	}

	files, err := database.ListOutputFiles(projectID)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) < 2 {
		t.Errorf("Expected DXF and JSON outputs at least, got %v", files)
	}
}

func TestJobForMissingProjectFails(t *testing.T) {
	w := setupWorkerTest(t)

	projectID, err := database.CreateProject("Doomed", "")
	if err != nil {
		t.Fatal(err)
	}
	jobID, err := database.CreateDesignJob(projectID)
	if err != nil {
		t.Fatal(err)
	}
	// Point the job at a project that does not exist
	if _, err := database.GetDB().Exec(`UPDATE design_jobs SET project_id = 9999 WHERE id = ?`, jobID); err != nil {
		t.Fatal(err)
	}

	w.Start(1)
	defer w.Stop()
	w.Enqueue(jobID)

	job := waitForJob(t, jobID)
	if job.Status != database.StatusFailed {
		t.Fatalf("Expected failure, got %s", job.Status)
	}
	if !job.ErrorMessage.Valid || job.ErrorMessage.String == "" {
		t.Error("Failed job should carry an error message")
	}
}

func TestPickupPendingJobsOnStart(t *testing.T) {
	w := setupWorkerTest(t)

	projectID, err := database.CreateProject("Recovered", "")
	if err != nil {
		t.Fatal(err)
	}
	jobID, err := database.CreateDesignJob(projectID)
	if err != nil {
		t.Fatal(err)
	}

	// Start without explicitly enqueueing; the startup scan must find it
	w.Start(1)
	defer w.Stop()

	job := waitForJob(t, jobID)
	if job.Status != database.StatusCompleted {
		t.Fatalf("Picked-up job did not complete: %s (%s)", job.Status, job.ErrorMessage.String)
	}
}

func TestCleanupStaleJobs(t *testing.T) {
	w := setupWorkerTest(t)

	projectID, err := database.CreateProject("Stale", "")
	if err != nil {
		t.Fatal(err)
	}
	jobID, err := database.CreateDesignJob(projectID)
	if err != nil {
		t.Fatal(err)
	}
	// Backdate the job past the staleness threshold
	if _, err := database.GetDB().Exec(
		`UPDATE design_jobs SET created_at = datetime('now', '-10 minutes') WHERE id = ?`, jobID,
	); err != nil {
		t.Fatal(err)
	}

	w.cleanupStaleJobs()

	job, err := database.GetDesignJob(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != database.StatusFailed {
		t.Errorf("Stale job not failed: %s", job.Status)
	}
	if !job.ErrorMessage.Valid || job.ErrorMessage.String == "" {
		t.Error("Stale job should carry a timeout message")
	}
}
