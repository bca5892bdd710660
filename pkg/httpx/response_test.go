package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type login struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	tests := []struct {
		name    string
		body    string
		want    login
		wantErr bool
	}{
		{"object", `{"email":"a@x.com","password":"pw"}`, login{"a@x.com", "pw"}, false},
		{"trailing whitespace", "{\"email\":\"a@x.com\"}\n\t ", login{Email: "a@x.com"}, false},
		{"unknown fields ignored", `{"email":"a@x.com","extra":1}`, login{Email: "a@x.com"}, false},
		{"empty body", "", login{}, false},
		{"malformed", `{"email":`, login{}, true},
		{"trailing garbage", `{"email":"a@x.com","password":"pw"} trailing`, login{}, true},
		{"second value", `{"email":"a@x.com"} {"email":"b@x.com"}`, login{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var got login
			err := DecodeJSON(r, &got)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}
