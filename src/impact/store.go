package impact

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SnapshotStore persists the last partner directory listing so a run can
// resolve partners without re-walking the paginated Impact API when the
// snapshot is still fresh.
type SnapshotStore struct {
	db *sql.DB
}

func OpenSnapshotStore(databasePath string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database at %s: %w", databasePath, err)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS impact_partners (
		network_partner_id TEXT PRIMARY KEY,
		media_partner_id TEXT NOT NULL,
		refreshed_at TIMESTAMP NOT NULL
	);
	`
	if _, err := db.Exec(createTableStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

func (s *SnapshotStore) Close() error { return s.db.Close() }

// Load returns the persisted partner map and the time it was refreshed.
// An empty map and zero time mean no snapshot has been saved yet.
func (s *SnapshotStore) Load() (map[string]string, time.Time, error) {
	rows, err := s.db.Query(`SELECT network_partner_id, media_partner_id, refreshed_at FROM impact_partners`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("error querying partner snapshot: %w", err)
	}
	defer rows.Close()

	partners := make(map[string]string)
	var refreshedAt time.Time
	for rows.Next() {
		var networkID, mediaPartnerID string
		var at time.Time
		if err := rows.Scan(&networkID, &mediaPartnerID, &at); err != nil {
			return nil, time.Time{}, fmt.Errorf("error scanning partner snapshot row: %w", err)
		}
		partners[networkID] = mediaPartnerID
		if at.After(refreshedAt) {
			refreshedAt = at
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("error iterating partner snapshot rows: %w", err)
	}
	return partners, refreshedAt, nil
}

// Save replaces the snapshot with the given partner map.
func (s *SnapshotStore) Save(partners map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM impact_partners`); err != nil {
		return fmt.Errorf("error clearing partner snapshot: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO impact_partners (network_partner_id, media_partner_id, refreshed_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for networkID, mediaPartnerID := range partners {
		if _, err := stmt.Exec(networkID, mediaPartnerID, now); err != nil {
			return fmt.Errorf("error inserting snapshot row for partner %s: %w", networkID, err)
		}
	}
	return tx.Commit()
}
