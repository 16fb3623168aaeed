package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS goals (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	target      INTEGER NOT NULL,
	saved       INTEGER NOT NULL DEFAULT 0,
	deadline    TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	created_at  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS goal_transactions (
	id       TEXT PRIMARY KEY,
	goal_id  TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
	amount   INTEGER NOT NULL,
	date     TEXT NOT NULL,
	time     TEXT NOT NULL,
	at       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_goals_position ON goals(position);
CREATE INDEX IF NOT EXISTS idx_goal_transactions_goal ON goal_transactions(goal_id, at);
`
