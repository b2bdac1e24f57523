package notifier

const (
	LarkNotifierName  = "LarkNotifier"
	SlackNotifierName = "SlackNotifier"
)

type Notifier interface {
	Name() string
	Notify(data any)
}
