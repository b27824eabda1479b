package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "A fine film", "A fine film"},
		{"script removed", `Great<script>alert(1)</script> movie`, "Great movie"},
		{"block tags split words", "<p>first</p><p>second</p>", "first second"},
		{"entities kept readable", "Tom &amp; Jerry", "Tom & Jerry"},
		{"outer whitespace trimmed", "  padded \n\t", "padded"},
		{"line breaks kept", "Line one\n\nLine two", "Line one\n\nLine two"},
		{"inner spacing kept", "two  spaces", "two  spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
