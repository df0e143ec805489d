package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResponse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"message":"ok","session_token":"T1","user":{"id":1,"username":"alice"}}`},
		{name: "missing token", body: `{"message":"ok","user":{"id":1,"username":"alice"}}`, wantErr: true},
		{name: "missing user", body: `{"message":"ok","session_token":"T1"}`, wantErr: true},
		{name: "null user", body: `{"session_token":"T1","user":null}`, wantErr: true},
		{name: "user without id", body: `{"session_token":"T1","user":{"username":"alice"}}`, wantErr: true},
		{name: "user without name", body: `{"session_token":"T1","user":{"id":3}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r AuthResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			err := r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_DecodeServerShapes(t *testing.T) {
	body := `{
		"id": 7,
		"username": "alice",
		"email": "alice@example.com",
		"avatar_url": null,
		"created_at": "2025-11-06T21:05:00.123456"
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	assert.Nil(t, u.AvatarURL)
	require.NotNil(t, u.CreatedAt)
	assert.Equal(t, time.Date(2025, 11, 6, 21, 5, 0, 123456000, time.UTC), u.CreatedAt.Time)

	var z User
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"username":"a","created_at":"2025-11-06T21:05:00+03:00"}`), &z))
	assert.Equal(t, 18, z.CreatedAt.Hour())

	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"username":"a","created_at":"yesterday"}`), &z))
}

func TestAuthResponse_Session(t *testing.T) {
	r := AuthResponse{SessionToken: "T1", User: &User{ID: 1, Username: "alice"}}
	s := r.Session()
	assert.Equal(t, "T1", s.Token)
	assert.Equal(t, "alice", s.User.Username)
}
