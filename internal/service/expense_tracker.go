package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	applog "github.com/mserban/cabinet-bot/internal/log"
	"github.com/mserban/cabinet-bot/internal/model"
	"github.com/mserban/cabinet-bot/internal/repository"
)

// ExpenseTracker provides the operations behind both the chat dialog
// and the HTTP surface: record creation and the monthly totals report.
type ExpenseTracker struct {
	repo          repository.Repository
	splitFraction float64
	log           *applog.Logger
	now           func() time.Time
}

func NewExpenseTracker(repo repository.Repository, splitFraction float64, logger *applog.Logger) *ExpenseTracker {
	return &ExpenseTracker{
		repo:          repo,
		splitFraction: splitFraction,
		log:           logger.WithComponent("tracker"),
		now:           time.Now,
	}
}

// ParseAmount converts raw amount text to a number. Unparseable input
// yields NaN rather than an error; callers that want rejection must
// validate before submitting. NaN amounts poison downstream sums.
func ParseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// AddExpense creates one record stamped with the day of submission.
// The amount is taken as entered; see ParseAmount.
func (s *ExpenseTracker) AddExpense(ctx context.Context, name, rawAmount, details string) (string, error) {
	now := s.now()
	expense := &model.Expense{
		Name:    name,
		Details: details,
		Amount:  ParseAmount(rawAmount),
		Date:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return "", fmt.Errorf("add expense: %w", err)
	}
	return id, nil
}

// MonthlyReport queries the trailing month and reduces it to totals
// split between the cabinet and the counterpart.
func (s *ExpenseTracker) MonthlyReport(ctx context.Context) (*Report, error) {
	expenses, err := s.repo.RecentExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}

	report := Aggregate(expenses, s.splitFraction)
	s.log.Info("monthly report built", "count", report.Count, "total", report.Total)
	return &report, nil
}
