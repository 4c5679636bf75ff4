package database

import (
	"database/sql"
	"fmt"
	"time"
)

// StoreSystemVital saves a new system vital log entry to the database.
func StoreSystemVital(cpuPercent, memoryPercent, diskUsagePercent float64) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(
		`INSERT INTO system_vital_logs (cpu_percent, memory_percent, disk_usage_percent)
		 VALUES (?, ?, ?)`,
		cpuPercent, memoryPercent, diskUsagePercent,
	)
	if err != nil {
		return fmt.Errorf("failed to store system vital: %w", err)
	}
	return nil
}

// LatestSystemVital retrieves the most recent vital log entry. Returns nil
// when no vitals have been recorded yet.
func LatestSystemVital() (*SystemVitalLog, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var m SystemVitalLog
	err := db.QueryRow(
		`SELECT id, timestamp, cpu_percent, memory_percent, disk_usage_percent
		 FROM system_vital_logs ORDER BY timestamp DESC, id DESC LIMIT 1`,
	).Scan(&m.ID, &m.Timestamp, &m.CPUPercent, &m.MemoryPercent, &m.DiskUsagePercent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest vital: %w", err)
	}
	return &m, nil
}

// SystemVitalsSince retrieves vital log entries newer than the cutoff,
// oldest first.
func SystemVitalsSince(since time.Time) ([]SystemVitalLog, error) {
	db := GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := db.Query(
		`SELECT id, timestamp, cpu_percent, memory_percent, disk_usage_percent
		 FROM system_vital_logs WHERE timestamp >= ? ORDER BY timestamp ASC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query vitals: %w", err)
	}
	defer rows.Close()

	metrics := []SystemVitalLog{}
	for rows.Next() {
		var m SystemVitalLog
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.CPUPercent, &m.MemoryPercent, &m.DiskUsagePercent); err != nil {
			return nil, fmt.Errorf("failed to scan vital: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return metrics, nil
}
