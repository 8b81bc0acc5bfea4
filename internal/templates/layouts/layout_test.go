package layouts

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

var testPage = Extend(`{{define "title"}}Test{{end}}{{define "content"}}<p>{{.Data}}</p>{{end}}`)

func TestPage_AnonymousNav(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(testPage, "<hello>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="/login"`) {
		t.Error("expected login link for anonymous visitor")
	}
	if !strings.Contains(out, "&lt;hello&gt;") {
		t.Error("expected page data to be HTML-escaped")
	}
	if !strings.Contains(out, "<title>Test · FitCoach</title>") {
		t.Errorf("unexpected title in %s", out)
	}
}

func TestPage_AuthenticatedNav(t *testing.T) {
	ctx := SetUserID(SetIsAuthenticated(context.Background(), true), 7)

	var buf bytes.Buffer
	if err := Page(testPage, "x").Render(ctx, &buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(buf.String(), `href="/logout"`) {
		t.Error("expected logout link for authenticated user")
	}
	if GetUserID(ctx) != 7 {
		t.Errorf("expected user id 7, got %d", GetUserID(ctx))
	}
}
