package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SaveBlueprint records an uploaded blueprint and its extracted spatial
// data.
func SaveBlueprint(projectID int64, filename, storedPath string, spatialData json.RawMessage) (int64, error) {
	db := GetDB()
	if db == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	result, err := db.Exec(
		`INSERT INTO blueprints (project_id, filename, stored_path, spatial_data) VALUES (?, ?, ?, ?)`,
		projectID, filename, storedPath, string(spatialData),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save blueprint: %w", err)
	}
	return result.LastInsertId()
}

// LatestBlueprint returns the most recently uploaded blueprint for a
// project, or nil when none exists.
func LatestBlueprint(projectID int64) (*Blueprint, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var b Blueprint
	var spatialData sql.NullString
	err := db.QueryRow(
		`SELECT id, project_id, filename, stored_path, spatial_data, uploaded_at
		 FROM blueprints WHERE project_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		projectID,
	).Scan(&b.ID, &b.ProjectID, &b.Filename, &b.StoredPath, &spatialData, &b.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query blueprint: %w", err)
	}
	if spatialData.Valid {
		b.SpatialData = json.RawMessage(spatialData.String)
	}
	return &b, nil
}

// SaveBuildingCode records an uploaded building-code document and its
// extracted rules.
func SaveBuildingCode(projectID int64, filename, storedPath string, rules json.RawMessage) (int64, error) {
	db := GetDB()
	if db == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	result, err := db.Exec(
		`INSERT INTO building_codes (project_id, filename, stored_path, rules) VALUES (?, ?, ?, ?)`,
		projectID, filename, storedPath, string(rules),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save building code: %w", err)
	}
	return result.LastInsertId()
}

// LatestBuildingCode returns the most recently uploaded building-code
// document for a project, or nil when none exists.
func LatestBuildingCode(projectID int64) (*BuildingCode, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var c BuildingCode
	var rules sql.NullString
	err := db.QueryRow(
		`SELECT id, project_id, filename, stored_path, rules, uploaded_at
		 FROM building_codes WHERE project_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		projectID,
	).Scan(&c.ID, &c.ProjectID, &c.Filename, &c.StoredPath, &rules, &c.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query building code: %w", err)
	}
	if rules.Valid {
		c.Rules = json.RawMessage(rules.String)
	}
	return &c, nil
}
