package sanitize

import "testing"

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"alice", true},
		{"coach_mike-2", true},
		{"", true},
		{"<b>alice</b>", false},
		{"<script>alert(1)</script>", false},
		{"tom&jerry", true},
		{"O'Brien", true},
		{`a"b`, true},
		{"a > b", true},
		{"<img src=x>", false},
	}
	for _, tt := range tests {
		if got := IsPlainText(tt.input); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestText_StripsTags(t *testing.T) {
	if got := Text("<i>bob</i>"); got != "bob" {
		t.Errorf("Text() = %q, want %q", got, "bob")
	}
}
