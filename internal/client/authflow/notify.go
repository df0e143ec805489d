package authflow

// Notification is a transient message shown to the user.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

const (
	titleError   = "Ошибка"
	titleSuccess = "Успешно!"

	msgSomethingWrong = "Что-то пошло не так"
	msgUnreachable    = "Не удалось подключиться к серверу"
	msgStorage        = "Не удалось сохранить сессию"
)
