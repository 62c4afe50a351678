package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

func TestFlexNumber(t *testing.T) {
	var body struct {
		Salary   flexNumber `json:"salary"`
		Position flexNumber `json:"position"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"salary":" 12.5 ","position":3}`), &body))

	salary, err := body.Salary.Float()
	require.NoError(t, err)
	assert.Equal(t, 12.5, salary)

	position, err := body.Position.Int()
	require.NoError(t, err)
	assert.Equal(t, 3, position)

	_, err = flexNumber("2.5").Int()
	assert.Error(t, err)
	_, err = flexNumber("twelve").Float()
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"salary":null}`), &body))
	assert.Equal(t, flexNumber(""), body.Salary)
	assert.Error(t, json.Unmarshal([]byte(`{"salary":true}`), &body))
}

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		set     bool
		wantErr bool
	}{
		{name: "absent", raw: ``, want: nil, set: false},
		{name: "null", raw: `null`, want: nil, set: false},
		{name: "joined string", raw: `"Go , Rust,,"`, want: []string{"Go", "Rust"}, set: true},
		{name: "list kept as sent", raw: `[" Go ","Rust"]`, want: []string{" Go ", "Rust"}, set: true},
		{name: "empty list", raw: `[]`, want: []string{}, set: true},
		{name: "number", raw: `42`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, set, err := parseRequirements(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, errInvalidRequirements)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.set, set)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	err := validate.Struct(PostJobRequest{Title: "x"})
	assert.Equal(t, msgSomethingMissed, validationMessage(err, msgSomethingMissed))

	err = validate.Struct(RegisterRequest{
		Fullname: "Ana", Email: "ana@example.com", PhoneNumber: "1", Password: "x", Role: "admin",
	})
	assert.Equal(t, "Invalid role", validationMessage(err, msgSomethingMissed))

	assert.Equal(t, "invalid request", validationMessage(assert.AnError, msgSomethingMissed))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := issueToken("user-1", secret, time.Hour)
	require.NoError(t, err)

	claims, err := parseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	_, err = parseToken(token, []byte("other"))
	assert.Error(t, err)

	expired, err := issueToken("user-1", secret, -time.Minute)
	require.NoError(t, err)
	_, err = parseToken(expired, secret)
	assert.Error(t, err)
}

func TestSessionTokenPrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	token, err := sessionToken(req)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)

	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "from-cookie"})
	token, err = sessionToken(req)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	_, err = sessionToken(req)
	assert.Error(t, err)
}

func TestUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := userIDFromContext(req.Context())
	assert.Error(t, err)

	ctx := context.WithValue(req.Context(), contextSubjectKey, " user-1 ")
	id, err := userIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ID("user-1"), id)
}
