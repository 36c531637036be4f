package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr error
	}{
		{name: "valid", value: "42", want: 42},
		{name: "missing", value: "", wantErr: domain.ErrValidation},
		{name: "not a number", value: "abc", wantErr: domain.ErrInvalidID},
		{name: "zero", value: "0", wantErr: domain.ErrInvalidID},
		{name: "negative", value: "-3", wantErr: domain.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			got, err := getPathID(r, "id")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleUserIDAndPathID(t *testing.T) {
	userID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "1")
		_, _, ok := handleUserIDAndPathID(w, r, nil, store.ErrProductNotFound)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "abc")
		r = r.WithContext(shared.WithUserID(r.Context(), userID))
		_, _, ok := handleUserIDAndPathID(w, r, nil, store.ErrProductNotFound)
		assert.False(t, ok)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "7")
		r = r.WithContext(shared.WithUserID(r.Context(), userID))
		gotUser, gotID, ok := handleUserIDAndPathID(w, r, nil, store.ErrProductNotFound)
		assert.True(t, ok)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, int64(7), gotID)
	})
}

func TestParseCategoryIDs(t *testing.T) {
	ids, err := parseCategoryIDs("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parseCategoryIDs("1, 2,,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = parseCategoryIDs("1,abc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = parseCategoryIDs("-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, onlySeparators := range []string{",", ",,", " , ,"} {
		ids, err = parseCategoryIDs(onlySeparators)
		assert.ErrorIs(t, err, domain.ErrValidation, onlySeparators)
		assert.Nil(t, ids)
	}
}

func TestParseAssignedOnly(t *testing.T) {
	for raw, want := range map[string]bool{"": false, "0": false, "1": true} {
		got, err := parseAssignedOnly(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseAssignedOnly("true")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
