package repository

import (
	"context"
	"math"
	"time"

	"github.com/jomei/notionapi"

	applog "github.com/mserban/cabinet-bot/internal/log"
	"github.com/mserban/cabinet-bot/internal/model"
)

// Property names of the expense database schema. The adapter must
// match the remote schema exactly.
const (
	propName    = "Name"
	propDetails = "Details"
	propAmount  = "Amount"
	propDate    = "Date"
)

// NotionRepository persists expenses as pages of a Notion database.
type NotionRepository struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	log        *applog.Logger
}

func NewNotionRepository(token, databaseID string, logger *applog.Logger) *NotionRepository {
	return &NotionRepository{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
		log:        logger.WithComponent(applog.ComponentStorage),
	}
}

func (r *NotionRepository) CreateExpense(ctx context.Context, expense *model.Expense) (string, error) {
	page, err := r.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: r.databaseID,
		},
		Properties: expenseProperties(expense),
	})
	if err != nil {
		r.log.Error("expense create failed", applog.FieldError, err)
		return "", &WriteError{Err: err}
	}

	expense.ID = page.ID.String()
	r.log.Info("expense created", applog.FieldRecordID, expense.ID)
	return expense.ID, nil
}

func (r *NotionRepository) RecentExpenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	var cursor notionapi.Cursor

	for {
		resp, err := r.client.Database.Query(ctx, r.databaseID, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: propDate,
				Date: &notionapi.DateFilterCondition{
					PastMonth: &struct{}{},
				},
			},
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			r.log.Error("expense query failed", applog.FieldError, err)
			return nil, &ReadError{Err: err}
		}

		for i := range resp.Results {
			expenses = append(expenses, expenseFromPage(&resp.Results[i]))
		}

		if !resp.HasMore {
			return expenses, nil
		}
		cursor = resp.NextCursor
	}
}

// expenseProperties maps a record onto the database schema. A NaN
// amount cannot be serialized, so the property is left unset, which is
// how Notion represents an empty number.
func expenseProperties(expense *model.Expense) notionapi.Properties {
	props := notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: expense.Name}},
			},
		},
		propDetails: notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: expense.Details}},
			},
		},
		propDate: notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: dateOf(expense),
			},
		},
	}
	if !math.IsNaN(expense.Amount) {
		props[propAmount] = notionapi.NumberProperty{Number: expense.Amount}
	}
	return props
}

func dateOf(expense *model.Expense) *notionapi.Date {
	d := notionapi.Date(expense.Date)
	return &d
}

// expenseFromPage reads a queried page back into a record. A page with
// no usable amount yields NaN, which poisons any sum it enters.
func expenseFromPage(page *notionapi.Page) model.Expense {
	expense := model.Expense{
		ID:     page.ID.String(),
		Amount: math.NaN(),
	}

	if p, ok := page.Properties[propName].(*notionapi.TitleProperty); ok {
		expense.Name = plainText(p.Title)
	}
	if p, ok := page.Properties[propDetails].(*notionapi.RichTextProperty); ok {
		expense.Details = plainText(p.RichText)
	}
	if p, ok := page.Properties[propAmount].(*notionapi.NumberProperty); ok {
		expense.Amount = p.Number
	}
	if p, ok := page.Properties[propDate].(*notionapi.DateProperty); ok {
		if p.Date != nil && p.Date.Start != nil {
			expense.Date = time.Time(*p.Date.Start)
		}
	}
	return expense
}

func plainText(parts []notionapi.RichText) string {
	var out string
	for _, part := range parts {
		if part.Text != nil {
			out += part.Text.Content
			continue
		}
		out += part.PlainText
	}
	return out
}
