package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	type args struct {
		username     string
		passwordHash string
	}
	tests := []struct {
		name string
		args args
		want User
	}{
		{
			name: "Create new user with valid username and password hash",
			args: args{
				username:     "testuser",
				passwordHash: "$2a$10$hash",
			},
			want: User{
				ID:           "", // left empty for the storage layer to populate
				Username:     "testuser",
				PasswordHash: "$2a$10$hash",
			},
		},
		{
			name: "Create new user with empty username and password",
			args: args{
				username:     "",
				passwordHash: "",
			},
			want: User{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := time.Now().UnixNano()
			got := NewUser(tt.args.username, tt.args.passwordHash)

			assert.GreaterOrEqual(t, got.CreatedAt, before)
			got.CreatedAt = 0
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "ascii", username: "alice", want: true},
		{name: "empty", username: "", want: false},
		{name: "64 multibyte characters", username: strings.Repeat("é", MaxUsernameLength), want: true},
		{name: "65 characters", username: strings.Repeat("a", MaxUsernameLength+1), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}
