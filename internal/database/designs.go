package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// UpsertDesign stores the design data for one discipline of a project,
// replacing any previous generation.
func UpsertDesign(projectID int64, discipline string, data json.RawMessage) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(
		`INSERT INTO mep_designs (project_id, discipline, data) VALUES (?, ?, ?)
		 ON CONFLICT(project_id, discipline)
		 DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		projectID, discipline, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s design: %w", discipline, err)
	}
	return nil
}

// GetDesigns returns all stored discipline designs for a project keyed by
// discipline.
func GetDesigns(projectID int64) (map[string]json.RawMessage, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(
		`SELECT discipline, data FROM mep_designs WHERE project_id = ?`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query designs: %w", err)
	}
	defer rows.Close()

	designs := make(map[string]json.RawMessage)
	for rows.Next() {
		var discipline, data string
		if err := rows.Scan(&discipline, &data); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		designs[discipline] = json.RawMessage(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return designs, nil
}

// HasDesign reports whether any discipline design exists for a project.
func HasDesign(projectID int64) (bool, error) {
	db := GetDB()
	if db == nil {
		return false, fmt.Errorf("database not initialized")
	}

	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM mep_designs WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to count designs: %w", err)
	}
	return n > 0, nil
}
