package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// CreateProject inserts a new project and returns its id.
func CreateProject(name, description string) (int64, error) {
	db := GetDB()
	if db == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	result, err := db.Exec(
		`INSERT INTO projects (name, description) VALUES (?, ?)`,
		name, description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}
	return result.LastInsertId()
}

// GetProject fetches one project by id. Returns sql.ErrNoRows when absent.
func GetProject(id int64) (*Project, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var p Project
	var requirements sql.NullString
	err := db.QueryRow(
		`SELECT id, name, description, requirements, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &requirements, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if requirements.Valid {
		p.Requirements = json.RawMessage(requirements.String)
	}
	return &p, nil
}

// ListProjects returns all projects, newest first.
func ListProjects() ([]Project, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(
		`SELECT id, name, description, requirements, created_at, updated_at
		 FROM projects ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var requirements sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &requirements, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if requirements.Valid {
			p.Requirements = json.RawMessage(requirements.String)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return projects, nil
}

// UpdateProjectRequirements stores the requirements payload for a project.
func UpdateProjectRequirements(id int64, requirements json.RawMessage) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(
		`UPDATE projects SET requirements = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(requirements), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update requirements: %w", err)
	}
	return nil
}
