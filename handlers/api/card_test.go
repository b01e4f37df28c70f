package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovestudio/handlers/web"
	"lovestudio/models"
	"lovestudio/storage"
)

func newTestApp(t *testing.T) (*fiber.App, *storage.LocalStorage) {
	t.Helper()

	db, err := storage.InitDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	local := storage.NewLocalStorage(db)
	handler := NewCardHandler(storage.NewCardStore(local))

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	app.Get("/api/card", handler.GetCard)
	app.Put("/api/card", handler.PutCard)
	app.Delete("/api/card", handler.DeleteCard)
	app.Get("/api/themes", ListThemes)
	app.Get("/api/occasions", ListOccasions)
	app.Get("/api/messages", GetMessages)
	return app, local
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestCardLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/card", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No card has been created yet.", body["error"])

	status, body = call(t, app, http.MethodPut, "/api/card",
		`{"senderName":" Alex ","recipientName":"Sam","message":"Hi","theme":"minimal","specialDay":"hug day"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alex", body["senderName"])
	assert.Equal(t, "Hug Day", body["specialDay"])

	status, body = call(t, app, http.MethodGet, "/api/card", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{
		"senderName":    "Alex",
		"recipientName": "Sam",
		"message":       "Hi",
		"theme":         "minimal",
		"specialDay":    "Hug Day",
	}, body)

	status, _ = call(t, app, http.MethodDelete, "/api/card", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/api/card", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPutCardValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodPut, "/api/card", `{"senderName":"Alex","message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please fill in all the details! ❤️", body["error"])
	assert.Equal(t, []interface{}{"message", "recipientName"}, body["fields"])

	status, _ = call(t, app, http.MethodGet, "/api/card", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPutCardRequiresJSON(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/card", strings.NewReader("senderName=Alex"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	status, _ := call(t, app, http.MethodPut, "/api/card", `{"senderName":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetCardMalformed(t *testing.T) {
	app, local := newTestApp(t)
	require.NoError(t, local.SetItem(storage.CardKey, "garbage"))

	status, body := call(t, app, http.MethodGet, "/api/card", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body["error"], "could not be read")
}

func TestListThemes(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/themes", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(models.DefaultTheme), body["default"])

	themes, ok := body["themes"].([]interface{})
	require.True(t, ok)
	require.Len(t, themes, len(models.Themes))
	for i, raw := range themes {
		entry := raw.(map[string]interface{})
		assert.Equal(t, string(models.Themes[i]), entry["id"])
		assert.NotEmpty(t, entry["label"])
		assert.NotEmpty(t, entry["swatch"])
		assert.Contains(t, entry, "decorations")
	}
}

func TestListOccasions(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/occasions", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Valentine's Day", body["default"])

	occasions, ok := body["occasions"].([]interface{})
	require.True(t, ok)
	require.Len(t, occasions, len(models.Occasions))
	assert.Equal(t, "Rose Day", occasions[0])
}

func TestGetMessages(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/messages", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body, len(clientMessages))
	assert.Equal(t, "Dismiss", body["banner_dismiss"])
	for _, id := range clientMessages {
		assert.NotEqual(t, id, body[id], "message %s missing from catalog", id)
	}
}
