package auth

import (
	"strings"
	"testing"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name    string
		input   SignupInput
		wantMsg string
	}{
		{"valid", SignupInput{Username: "alice", Password: "pw123!", Confirm: "pw123!"}, ""},
		{"30 runes", SignupInput{Username: strings.Repeat("é", 30), Password: "p", Confirm: "p"}, ""},
		{"blank username", SignupInput{Username: " ", Password: "p", Confirm: "p"}, "username is required"},
		{"31 chars", SignupInput{Username: strings.Repeat("a", 31), Password: "p", Confirm: "p"}, "username must be at most 30 characters"},
		{"markup", SignupInput{Username: "<i>x</i>", Password: "p", Confirm: "p"}, "username must not contain HTML markup"},
		{"apostrophe", SignupInput{Username: "O'Brien", Password: "p", Confirm: "p"}, ""},
		{"ampersand", SignupInput{Username: "tom&jerry", Password: "p", Confirm: "p"}, ""},
		{"double quote", SignupInput{Username: `a"b`, Password: "p", Confirm: "p"}, ""},
		{"no password", SignupInput{Username: "alice", Confirm: "p"}, "password is required"},
		{"no confirm", SignupInput{Username: "alice", Password: "p"}, "please confirm your password"},
		{"mismatch", SignupInput{Username: "alice", Password: "p", Confirm: "q"}, "passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSignup(tt.input)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q, got nil", tt.wantMsg)
			}
			if got := apperror.SafeMessage(err); got != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, got)
			}
		})
	}
}
