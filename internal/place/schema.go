package place

// PlacesSchema defines the table holding stored places.
// Timestamps are RFC 3339 strings in UTC.
const PlacesSchema = `
CREATE TABLE IF NOT EXISTS places (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);
`
