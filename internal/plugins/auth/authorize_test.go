package auth

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		owner    int64
		want     bool
	}{
		{"anonymous", Anonymous, 5, false},
		{"owner", Authenticated(5), 5, true},
		{"other user", Authenticated(5), 6, false},
		{"anonymous vs zero owner", Anonymous, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.identity, tt.owner); got != tt.want {
				t.Errorf("Authorize(%+v, %d) = %v, want %v", tt.identity, tt.owner, got, tt.want)
			}
		})
	}
}

func TestIdentity_ZeroValueIsAnonymous(t *testing.T) {
	var id Identity
	if !id.IsAnonymous() {
		t.Error("expected zero Identity to be anonymous")
	}
	if _, ok := id.UserID(); ok {
		t.Error("expected no user id for anonymous")
	}
	if uid, ok := Authenticated(42).UserID(); !ok || uid != 42 {
		t.Errorf("expected (42, true), got (%d, %v)", uid, ok)
	}
}
