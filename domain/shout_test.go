package domain

import "testing"

func TestShoutedText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "hello", want: `"hello" has been shouted!`},
		{in: "", want: `"" has been shouted!`},
		{in: `say "hi"`, want: `"say "hi"" has been shouted!`},
	}
	for _, tc := range tests {
		if got := ShoutedText(tc.in); got != tc.want {
			t.Fatalf("ShoutedText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResponseText(t *testing.T) {
	got := ResponseText(Receipt{Raw: `{"id":"1"}`})
	if got != `The response is: {"id":"1"}` {
		t.Fatalf("unexpected response text: %q", got)
	}
	if (Receipt{}).String() != "" {
		t.Fatalf("empty receipt must have empty string form")
	}
}
