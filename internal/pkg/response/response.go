package response

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/domain"
)

// Envelope is the body of every JSON reply.
type Envelope struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Errors  []FieldError `json:"errors,omitempty"`
	Meta    *ListMeta    `json:"meta,omitempty"`
}

// FieldError names the input field a 400 is about.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListMeta describes a collection reply. Total counts the whole collection,
// Count the items in this reply.
type ListMeta struct {
	Total int `json:"total"`
	Count int `json:"count"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageInternalServerError = "internal server error"
	MessageTimeout             = "request timed out"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, Envelope{Status: status, Message: message, Data: data})
}

// List replies with items and their counts. A nil slice is sent as [].
func List[T any](c fiber.Ctx, message string, items []T, total int) error {
	if items == nil {
		items = []T{}
	}
	return write(c, Envelope{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    items,
		Meta:    &ListMeta{Total: total, Count: len(items)},
	})
}

func Error(c fiber.Ctx, status int, message string, data interface{}, fields ...FieldError) error {
	return write(c, Envelope{Status: status, Message: message, Data: data, Errors: fields})
}

// Fields lists the field details carried by err, if it is a validation error.
func Fields(err error) []FieldError {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field == "" {
		return nil
	}
	return []FieldError{{Field: verr.Field, Message: verr.Error()}}
}

func write(c fiber.Ctx, env Envelope) error {
	if env.Status < 100 || env.Status > 599 {
		env.Status = fiber.StatusInternalServerError
	}
	if env.Message == "" {
		env.Message = DefaultMessage(env.Status)
	}
	return c.Status(env.Status).JSON(env)
}

// DefaultMessage is the message sent when a reply does not set one.
func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusOK, fiber.StatusCreated:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusGatewayTimeout:
		return MessageTimeout
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}
