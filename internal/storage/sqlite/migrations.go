package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Monetary columns (amount, balance) are stored as exact decimal strings,
// never REAL. Transactions deliberately carry no ON DELETE CASCADE: the
// backing store contract has no native cascade, so DeleteFriend performs
// the two-phase delete itself. The seq column preserves insertion order
// for transactions that share a created_at value.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS friends (
    owner_id TEXT NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    balance TEXT NOT NULL DEFAULT '0',
    created_at INTEGER NOT NULL,
    PRIMARY KEY (owner_id, id)
);

CREATE TABLE IF NOT EXISTS transactions (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    friend_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    description TEXT NOT NULL,
    direction TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_key ON transactions(owner_id, friend_id, id);
CREATE INDEX IF NOT EXISTS idx_transactions_order ON transactions(owner_id, friend_id, created_at DESC, seq DESC);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
