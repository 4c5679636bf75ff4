package database

import (
	"fmt"
)

// RecordOutputFile stores the path of one generated output file, replacing
// any previous file of the same type for the project.
func RecordOutputFile(projectID int64, fileType, path string) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(
		`INSERT INTO output_files (project_id, file_type, path) VALUES (?, ?, ?)
		 ON CONFLICT(project_id, file_type)
		 DO UPDATE SET path = excluded.path, created_at = CURRENT_TIMESTAMP`,
		projectID, fileType, path,
	)
	if err != nil {
		return fmt.Errorf("failed to record output file: %w", err)
	}
	return nil
}

// ListOutputFiles returns the generated output files for a project.
func ListOutputFiles(projectID int64) ([]OutputFile, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(
		`SELECT id, project_id, file_type, path, created_at
		 FROM output_files WHERE project_id = ? ORDER BY file_type`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query output files: %w", err)
	}
	defer rows.Close()

	var files []OutputFile
	for rows.Next() {
		var f OutputFile
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.FileType, &f.Path, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan output file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return files, nil
}
