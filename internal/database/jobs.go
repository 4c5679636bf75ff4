package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateDesignJob registers a new pending design generation job and returns
// its id.
func CreateDesignJob(projectID int64) (string, error) {
	db := GetDB()
	if db == nil {
		return "", fmt.Errorf("database not initialized")
	}

	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO design_jobs (id, project_id, status) VALUES (?, ?, ?)`,
		id, projectID, StatusPending,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create design job: %w", err)
	}
	return id, nil
}

// GetDesignJob fetches one job by id. Returns sql.ErrNoRows when absent.
func GetDesignJob(id string) (*DesignJob, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var j DesignJob
	err := db.QueryRow(
		`SELECT id, project_id, status, progress, progress_message, error_message,
		        created_at, updated_at, completed_at
		 FROM design_jobs WHERE id = ?`, id,
	).Scan(&j.ID, &j.ProjectID, &j.Status, &j.Progress, &j.ProgressMessage,
		&j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// LatestJobForProject returns the most recent job for a project, or nil when
// the project has never been generated.
func LatestJobForProject(projectID int64) (*DesignJob, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var j DesignJob
	err := db.QueryRow(
		`SELECT id, project_id, status, progress, progress_message, error_message,
		        created_at, updated_at, completed_at
		 FROM design_jobs WHERE project_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		projectID,
	).Scan(&j.ID, &j.ProjectID, &j.Status, &j.Progress, &j.ProgressMessage,
		&j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest job: %w", err)
	}
	return &j, nil
}

// HasActiveJob reports whether a project has a pending or running job.
func HasActiveJob(projectID int64) (bool, error) {
	db := GetDB()
	if db == nil {
		return false, fmt.Errorf("database not initialized")
	}

	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM design_jobs WHERE project_id = ? AND status IN (?, ?)`,
		projectID, StatusPending, StatusInProgress,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count active jobs: %w", err)
	}
	return n > 0, nil
}
