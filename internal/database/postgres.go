package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL, which holds the recovery-station
// reference data.
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates and seeds the stations table if needed.
func InitPostgresTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS stations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			city VARCHAR(255) NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stations_city ON stations(city)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	if err := seedStations(); err != nil {
		return err
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// seedStations inserts the default recovery stations. ON CONFLICT keeps the
// seed idempotent across restarts.
func seedStations() error {
	seed := []struct {
		name string
		city string
		lat  float64
		lon  float64
	}{
		{"Islamabad Recovery Station", "Islamabad", 33.6844, 73.0479},
		{"Lahore Recovery Station", "Lahore", 31.5497, 74.3436},
		{"Karachi Recovery Station", "Karachi", 24.8607, 67.0011},
	}

	for _, s := range seed {
		_, err := PostgresDB.Exec(
			`INSERT INTO stations (name, city, lat, lon) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			s.name, s.city, s.lat, s.lon,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
