package repository

import (
	"context"
	"fmt"

	"github.com/mserban/cabinet-bot/internal/model"
)

// Repository is the contract against the external expense table.
type Repository interface {
	// CreateExpense stores a new record and returns its identifier.
	CreateExpense(ctx context.Context, expense *model.Expense) (string, error)
	// RecentExpenses returns every record dated within the trailing
	// one-month window, as defined by the backend.
	RecentExpenses(ctx context.Context) ([]model.Expense, error)
}

// WriteError reports a failed record creation. Writes are never
// retried.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed record query. Reads are never retried.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("storage read failed: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
