package serrors

import "fmt"

// BaseError is the coded error carried across infrastructure boundaries.
// Code is a stable machine-readable identifier, Message a developer-facing
// description, LocaleKey an optional translation key for presentation layers.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}
