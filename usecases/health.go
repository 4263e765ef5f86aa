package usecases

import (
	"context"
	"time"

	"mentesana-server/db"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthUseCase struct {
	DB db.Database
}

func NewHealthUseCase(database db.Database) *HealthUseCase {
	return &HealthUseCase{DB: database}
}

// Check runs a trivial query on the active engine.
func (uc *HealthUseCase) Check(ctx context.Context) (HealthStatus, bool) {
	engine := string(uc.DB.Engine())
	if _, err := uc.DB.QueryOne(ctx, "SELECT 1 AS ok", nil); err != nil {
		return HealthStatus{Status: "Error", Database: engine, Error: err.Error()}, false
	}
	return HealthStatus{
		Status:    "OK",
		Database:  engine,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, true
}
