// Package storage supplies trade and compliance-task snapshots to the
// rest of the service. The analysis engine never touches a Store; it is
// handed plain value slices loaded here.
package storage

import (
	"context"
	"errors"

	"github.com/tapan77777/Transpera/models"
)

// ErrTaskNotFound is returned when a status update names an unknown task.
var ErrTaskNotFound = errors.New("compliance task not found")

// Store holds the trade book and the compliance task list. Reads return
// full snapshots; writes replace whole collections or touch one task's
// status. Implementations must make reads safe to use while later writes
// happen.
type Store interface {
	Trades(ctx context.Context) ([]models.Trade, error)
	ReplaceTrades(ctx context.Context, all []models.Trade) error
	AppendTrade(ctx context.Context, t models.Trade) error

	Tasks(ctx context.Context) ([]models.ComplianceTask, error)
	ReplaceTasks(ctx context.Context, all []models.ComplianceTask) error
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error

	Close() error
}
