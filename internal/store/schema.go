package store

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	poster      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rooms (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	movie_title TEXT,
	status      TEXT NOT NULL,
	price       REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tickets (
	id          INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL,
	movie_id    INTEGER NOT NULL,
	room_id     INTEGER NOT NULL,
	seat_number TEXT NOT NULL,
	price       REAL NOT NULL,
	booked_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS tickets_customer ON tickets (customer_id, booked_at);

CREATE TABLE IF NOT EXISTS booking_requests (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id  INTEGER NOT NULL,
	room_id      INTEGER NOT NULL,
	movie_id     INTEGER NOT NULL,
	requested_at INTEGER NOT NULL,
	status       TEXT NOT NULL
);
`

// prepareConnection applies pragmas and the schema. It runs once per
// pooled connection.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=OFF",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("store: schema: %w", err)
	}
	return nil
}
