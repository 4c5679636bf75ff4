package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

type Project struct {
	ID           int64
	Name         string
	Description  sql.NullString
	Requirements json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Blueprint struct {
	ID          int64
	ProjectID   int64
	Filename    string
	StoredPath  string
	SpatialData json.RawMessage
	UploadedAt  time.Time
}

type BuildingCode struct {
	ID         int64
	ProjectID  int64
	Filename   string
	StoredPath string
	Rules      json.RawMessage
	UploadedAt time.Time
}

type MEPDesign struct {
	ID         int64
	ProjectID  int64
	Discipline string
	Data       json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OutputFile struct {
	ID        int64
	ProjectID int64
	FileType  string
	Path      string
	CreatedAt time.Time
}

type Feedback struct {
	ID        int64
	ProjectID int64
	Component string
	Comment   string
	CreatedAt time.Time
}

type DesignJob struct {
	ID              string
	ProjectID       int64
	Status          string
	Progress        int
	ProgressMessage sql.NullString
	ErrorMessage    sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     sql.NullTime
}

type SystemVitalLog struct {
	ID               int64
	Timestamp        time.Time
	CPUPercent       float64
	MemoryPercent    float64
	DiskUsagePercent float64
}

const (
	// Design disciplines
	DisciplineMechanical = "mechanical"
	DisciplineElectrical = "electrical"
	DisciplinePlumbing   = "plumbing"

	// Job status choices
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
