package database

import (
	"fmt"
)

// CreateFeedback stores one feedback comment against a project.
func CreateFeedback(projectID int64, component, comment string) (int64, error) {
	db := GetDB()
	if db == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	result, err := db.Exec(
		`INSERT INTO feedback (project_id, component, comment) VALUES (?, ?, ?)`,
		projectID, component, comment,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create feedback: %w", err)
	}
	return result.LastInsertId()
}

// ListFeedback returns feedback for a project, newest first.
func ListFeedback(projectID int64) ([]Feedback, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(
		`SELECT id, project_id, component, comment, created_at
		 FROM feedback WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var items []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Component, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return items, nil
}
