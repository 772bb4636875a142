package dialog

// Button is one inline keyboard button: a visible label and the token
// sent back when it is pressed.
type Button struct {
	Label string
	Token string
}

// Message is one outbound chat message, transport-agnostic. When
// PhotoPNG is set the message is an image and Text is its caption.
type Message struct {
	Text       string
	Keyboard   [][]Button
	ForceReply bool
	PhotoPNG   []byte
}

// Callback tokens understood by the menus.
const (
	TokenCabinetOne = "pfa1"
	TokenCabinetTwo = "pfa2"
	TokenAddExpense = "addexpense"
	TokenGetTotal   = "getexpensetotal"
)

func cabinetMenu(text string) Message {
	return Message{
		Text: text,
		Keyboard: [][]Button{{
			{Label: "CABINET-1", Token: TokenCabinetOne},
			{Label: "CABINET-2", Token: TokenCabinetTwo},
		}},
	}
}

func actionMenu(text string) Message {
	return Message{
		Text: text,
		Keyboard: [][]Button{{
			{Label: "Add Expense", Token: TokenAddExpense},
			{Label: "Get Expense Total", Token: TokenGetTotal},
		}},
	}
}

func prompt(text string) Message {
	return Message{Text: text, ForceReply: true}
}
