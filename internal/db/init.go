package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('admin', 'user')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS serving_personnel (
    service_id CHAR(8) PRIMARY KEY,
    name TEXT NOT NULL,
    date_of_birth DATE NOT NULL,
    rank TEXT NOT NULL,
    regiment TEXT,
    salary NUMERIC(12,2) NOT NULL CHECK (salary > 0),
    awards TEXT,
    skills TEXT,
    posting TEXT NOT NULL CHECK (posting IN ('FIELD', 'GARRISON', 'HQ', 'RESERVE')),
    blood_group TEXT,
    medical_status TEXT
);

CREATE TABLE IF NOT EXISTS retired_personnel (
    service_id CHAR(8) PRIMARY KEY,
    name TEXT NOT NULL,
    date_of_birth DATE NOT NULL,
    rank TEXT NOT NULL,
    regiment TEXT,
    retirement_date DATE NOT NULL,
    pension NUMERIC(12,2) NOT NULL CHECK (pension > 0),
    awards TEXT,
    skills TEXT
);

CREATE TABLE IF NOT EXISTS logistics (
    equipment_id CHAR(8) PRIMARY KEY,
    category TEXT NOT NULL,
    cost NUMERIC(14,2) NOT NULL CHECK (cost > 0),
    procured DATE NOT NULL,
    technology TEXT,
    location TEXT,
    assigned_to CHAR(8) REFERENCES serving_personnel(service_id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS artillery (
    equipment_id CHAR(8) PRIMARY KEY REFERENCES logistics(equipment_id) ON DELETE CASCADE,
    range_km NUMERIC(8,2) NOT NULL CHECK (range_km > 0),
    commissioned DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS ships (
    equipment_id CHAR(8) PRIMARY KEY REFERENCES logistics(equipment_id) ON DELETE CASCADE,
    staff_size INTEGER NOT NULL CHECK (staff_size > 0),
    commissioned DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS jets (
    equipment_id CHAR(8) PRIMARY KEY REFERENCES logistics(equipment_id) ON DELETE CASCADE,
    speed_kmh NUMERIC(8,2) NOT NULL CHECK (speed_kmh > 0),
    commissioned DATE NOT NULL
);
`

// The age rule lives in the store so no write path can bypass it.
// Age is computed against the wall clock at insert time; [18, 60).
const ageTrigger = `
CREATE OR REPLACE FUNCTION enforce_serving_age() RETURNS trigger AS $$
BEGIN
    IF date_part('year', age(CURRENT_DATE, NEW.date_of_birth)) < 18
       OR date_part('year', age(CURRENT_DATE, NEW.date_of_birth)) >= 60 THEN
        RAISE EXCEPTION 'serving personnel age must be between 18 and 59';
    END IF;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS serving_age_check ON serving_personnel;
CREATE TRIGGER serving_age_check
    BEFORE INSERT ON serving_personnel
    FOR EACH ROW EXECUTE FUNCTION enforce_serving_age();
`

// InitPostgres opens a connection to the given DSN, verifies reachability
// and ensures the schema exists. Any failure here is fatal to startup: the
// server must not begin accepting requests against an unreachable store.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if _, err := db.Exec(ageTrigger); err != nil {
		return nil, fmt.Errorf("create age trigger: %w", err)
	}

	return db, nil
}
