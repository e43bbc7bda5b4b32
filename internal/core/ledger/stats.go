package ledger

import (
	"os"
	"path/filepath"
)

// Stats summarizes the catalog.
type Stats struct {
	TotalRuns   int
	RunsByMode  map[string]int
	LiveRuns    int   // runs whose directory still exists
	StagedBytes int64 // total size of live staging directories
}

// GetStats walks the catalog and the live staging directories.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{RunsByMode: make(map[string]int)}

	if err := db.conn.QueryRow("SELECT COUNT(*) FROM staging_runs").Scan(&stats.TotalRuns); err != nil {
		return nil, err
	}

	rows, err := db.conn.Query("SELECT mode, COUNT(*) FROM staging_runs GROUP BY mode")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, err
		}
		stats.RunsByMode[mode] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs, err := db.List("")
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		if !r.Exists {
			continue
		}
		stats.LiveRuns++
		stats.StagedBytes += dirSize(r.Path)
	}
	return stats, nil
}

// dirSize sums regular-file sizes under path. Walk errors are skipped;
// a half-readable staging dir should still produce a number.
func dirSize(path string) int64 {
	var total int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
