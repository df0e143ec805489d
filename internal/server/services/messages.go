package services

import "github.com/dmitrijs2005/tpforum/internal/common"

// User-facing messages returned by the auth endpoint.
const (
	MsgAllFieldsRequired   = "Все поля обязательны для заполнения"
	MsgUsernameLength      = "Имя пользователя должно быть от 3 до 50 символов"
	MsgPasswordLength      = "Пароль должен быть минимум 6 символов"
	MsgUserExists          = "Пользователь с таким именем или email уже существует"
	MsgRegistered          = "Регистрация успешна!"
	MsgLoginRequired       = "Введите имя пользователя/email и пароль"
	MsgInvalidCredentials  = "Неверное имя пользователя или пароль"
	MsgLoggedIn            = "Вход выполнен успешно!"
	MsgSessionRequired     = "Требуется авторизация"
	MsgMethodNotAllowed    = "Метод не поддерживается"
	MsgUnknownAction       = "Неизвестное действие"
	MsgInvalidRequest      = "Некорректный запрос"
	MsgTooManyRequests     = "Слишком много запросов, попробуйте позже"
	MsgInternalServerError = "Внутренняя ошибка сервера"
)

// ValidationError is returned for input the endpoint rejects with 400.
// Message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }
