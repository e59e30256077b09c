package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwise/internal/domain"
)

func serve(t *testing.T, h fiber.Handler) (int, map[string]json.RawMessage) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccess_DefaultsMessage(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, "", fiber.Map{"id": "a"})
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `"ok"`, string(body["message"]))
	assert.JSONEq(t, `{"id":"a"}`, string(body["data"]))
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, body, "meta")
}

func TestError_OutOfRangeStatus(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return Error(c, 42, "", nil)
	})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `"internal server error"`, string(body["message"]))
	assert.JSONEq(t, `null`, string(body["data"]))
}

func TestError_FieldDetails(t *testing.T) {
	verr := domain.NewValidationError("rating", "rating must be at most 5")
	status, body := serve(t, func(c fiber.Ctx) error {
		return Error(c, fiber.StatusBadRequest, verr.Error(), nil, Fields(verr)...)
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `[{"field":"rating","message":"rating must be at most 5"}]`, string(body["errors"]))
}

func TestList_Meta(t *testing.T) {
	status, body := serve(t, func(c fiber.Ctx) error {
		return List(c, MessageOK, []string{"a", "b"}, 5)
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `["a","b"]`, string(body["data"]))
	assert.JSONEq(t, `{"total":5,"count":2}`, string(body["meta"]))
}

func TestList_NilIsEmptyArray(t *testing.T) {
	_, body := serve(t, func(c fiber.Ctx) error {
		var items []int
		return List(c, MessageOK, items, 0)
	})

	assert.JSONEq(t, `[]`, string(body["data"]))
	assert.JSONEq(t, `{"total":0,"count":0}`, string(body["meta"]))
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(nil))
	assert.Nil(t, Fields(domain.ErrNotFound))
	assert.Nil(t, Fields(domain.NewValidationError("", "at least one field is required")))
	assert.Equal(t, []FieldError{{Field: "email", Message: "email is required"}},
		Fields(domain.NewValidationError("email", "email is required")))
}
