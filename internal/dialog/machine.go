// Package dialog implements the conversation state machine that walks
// a chat through expense entry: name, then amount, then details, then
// submission. It consumes chat events and emits outbound messages; the
// transport and the store are injected collaborators.
package dialog

import (
	"context"
	"fmt"
	"math"
	"sync"

	applog "github.com/mserban/cabinet-bot/internal/log"
	"github.com/mserban/cabinet-bot/internal/service"
	"github.com/mserban/cabinet-bot/internal/session"
)

const (
	textWelcome        = "Welcome to the Expense Tracker bot! Please select an option:"
	textSelectOption   = "Please select an option:"
	textChooseAction   = "You have selected %s. Please choose an action:"
	textAskName        = "Please enter the expense name:"
	textAskAmount      = "Please enter the expense amount:"
	textAskAmountAgain = "That doesn't look like a number. Please enter the expense amount (e.g. 120.50):"
	textAskDetails     = "Please enter the expense details:"
	textConfirmation   = "Expense Name: %s\nExpense Amount: %s\nExpense Details: %s"
	textSaved          = "Expense added successfully!"
	textSaveFailed     = "Failed to save the expense. Please try again."
	textReportFailed   = "Could not retrieve expenses. Please try again later."
	textReport         = "Pacienti aceasta luna: %d\nTotal Venit: %.2f\nCabinet: %.2f\nSRJ: %.2f"
)

// Recorder creates one expense record from the collected fields.
type Recorder interface {
	AddExpense(ctx context.Context, name, rawAmount, details string) (string, error)
}

// Reporter builds the trailing-month totals report.
type Reporter interface {
	MonthlyReport(ctx context.Context) (*service.Report, error)
}

// ChartRenderer turns a report into a PNG, or nil when there is
// nothing to draw.
type ChartRenderer interface {
	MonthlyChart(report *service.Report) ([]byte, error)
}

// Machine drives the per-chat expense entry flow. Events for one chat
// are serialized on a per-chat lock; distinct chats never contend.
type Machine struct {
	sessions *session.Store
	recorder Recorder
	reporter Reporter
	charts   ChartRenderer
	log      *applog.Logger

	// Chat locks are striped so the set of mutexes stays bounded no
	// matter how many chats the process has seen.
	chatLocks [64]sync.Mutex
}

// NewMachine wires the state machine. charts may be nil to disable
// report images.
func NewMachine(sessions *session.Store, recorder Recorder, reporter Reporter, charts ChartRenderer, logger *applog.Logger) *Machine {
	return &Machine{
		sessions: sessions,
		recorder: recorder,
		reporter: reporter,
		charts:   charts,
		log:      logger.WithComponent(applog.ComponentDialog),
	}
}

// HandleStart answers the /start command with the cabinet menu.
func (m *Machine) HandleStart(chatID int64) []Message {
	return []Message{cabinetMenu(textWelcome)}
}

// HandleCallback processes a pressed menu button.
func (m *Machine) HandleCallback(ctx context.Context, chatID int64, token string) []Message {
	lock := m.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	switch token {
	case TokenCabinetOne, TokenCabinetTwo:
		// Re-selecting a cabinet always resets: any in-progress draft
		// is discarded.
		m.sessions.Create(chatID, token)
		return []Message{actionMenu(fmt.Sprintf(textChooseAction, token))}

	case TokenAddExpense:
		// Selecting "add expense" again mid-flow discards the draft
		// and starts the field sequence over.
		ok := m.sessions.Update(chatID, func(s *session.Session) {
			s.Draft = session.Draft{}
			s.State = session.StateAwaitingName
		})
		if !ok {
			return []Message{cabinetMenu(textSelectOption)}
		}
		return []Message{prompt(textAskName)}

	case TokenGetTotal:
		return m.reportTotal(ctx, chatID)
	}

	m.log.Warn("unknown callback token", "token", token, applog.FieldChatID, chatID)
	return nil
}

// HandleText processes a free-text reply according to the chat's
// session state. Replies outside any flow just re-show the menu.
func (m *Machine) HandleText(ctx context.Context, chatID int64, text string) []Message {
	lock := m.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := m.sessions.Get(chatID)
	if !ok {
		return []Message{cabinetMenu(textSelectOption)}
	}

	switch sess.State {
	case session.StateAwaitingName:
		m.sessions.Update(chatID, func(s *session.Session) {
			s.Draft.Name = text
			s.State = session.StateAwaitingAmount
		})
		return []Message{prompt(textAskAmount)}

	case session.StateAwaitingAmount:
		if math.IsNaN(service.ParseAmount(text)) {
			return []Message{prompt(textAskAmountAgain)}
		}
		m.sessions.Update(chatID, func(s *session.Session) {
			s.Draft.Amount = text
			s.State = session.StateAwaitingDetails
		})
		return []Message{prompt(textAskDetails)}

	case session.StateAwaitingDetails:
		draft := sess.Draft
		draft.Details = text
		return m.submit(ctx, chatID, draft)
	}

	return nil
}

// submit completes the flow: confirmation, record creation, teardown.
// The session is gone afterwards whether or not the write succeeded.
func (m *Machine) submit(ctx context.Context, chatID int64, draft session.Draft) []Message {
	m.sessions.Delete(chatID)

	messages := []Message{
		{Text: fmt.Sprintf(textConfirmation, draft.Name, draft.Amount, draft.Details)},
	}

	id, err := m.recorder.AddExpense(ctx, draft.Name, draft.Amount, draft.Details)
	if err != nil {
		m.log.Error("expense submission failed", applog.FieldChatID, chatID, applog.FieldError, err)
		return append(messages,
			Message{Text: textSaveFailed},
			cabinetMenu(textSelectOption),
		)
	}

	m.log.Info("expense submitted", applog.FieldChatID, chatID, applog.FieldRecordID, id)
	return append(messages,
		Message{Text: textSaved},
		cabinetMenu(textSelectOption),
	)
}

// reportTotal runs the stateless reporting flow and returns to Idle.
func (m *Machine) reportTotal(ctx context.Context, chatID int64) []Message {
	m.sessions.Delete(chatID)

	report, err := m.reporter.MonthlyReport(ctx)
	if err != nil {
		m.log.Error("report query failed", applog.FieldChatID, chatID, applog.FieldError, err)
		return []Message{
			{Text: textReportFailed},
			cabinetMenu(textSelectOption),
		}
	}

	messages := []Message{{
		Text: fmt.Sprintf(textReport, report.Count, report.Total, report.OwnerShare, report.CounterpartShare),
	}}

	if m.charts != nil {
		png, err := m.charts.MonthlyChart(report)
		if err != nil {
			m.log.Warn("chart rendering failed", applog.FieldError, err)
		} else if png != nil {
			messages = append(messages, Message{Text: "Expenses this month", PhotoPNG: png})
		}
	}

	return append(messages, cabinetMenu(textSelectOption))
}

func (m *Machine) chatLock(chatID int64) *sync.Mutex {
	return &m.chatLocks[uint64(chatID)%uint64(len(m.chatLocks))]
}
