package repository

import (
	"context"
	"database/sql"

	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/models"
)

// StationRepository reads the seeded recovery-station reference data.
type StationRepository interface {
	GetAll(ctx context.Context) ([]models.Station, error)
}

type postgresStationRepository struct {
	db *sql.DB
}

func NewStationRepository() StationRepository {
	return &postgresStationRepository{db: database.PostgresDB}
}

func (r *postgresStationRepository) GetAll(ctx context.Context) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, city, lat, lon FROM stations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}
