package contactform

// Outcome messages shown after a submission settles.
const (
	MsgSuccess = "Message sent successfully! I'll get back to you soon."
	MsgFailure = "Failed to send message. Please try again."
)

// Level classifies a Notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelSuccess {
		return "success"
	}
	return "error"
}

// Notification is a user-facing outcome message.
type Notification struct {
	Message string
	Err     error // set for LevelError
	Level   Level
}

// Notifier surfaces notifications to the user, e.g. as a toast or terminal line.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
