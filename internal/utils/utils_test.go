package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("Set and get", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 42, "user")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
		assert.Equal(t, "user", GetUserRoleFromContext(ctx))
	})

	t.Run("Missing user", func(t *testing.T) {
		id, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Zero(t, id)
		assert.Empty(t, GetUserRoleFromContext(context.Background()))
	})

	t.Run("Wrong type is ignored", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, 7)

		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestPointers(t *testing.T) {
	assert.Equal(t, "p1", *StrPtr("p1"))
	assert.Equal(t, "p1", PtrString(StrPtr("p1")))
	assert.Equal(t, "", PtrString(nil))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSONError(w, "unauthorized", http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}
