package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"  Admin@Example.COM ", "admin@example.com"},
		{"ALREADY", "already"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseInputString(tc.in); got != tc.want {
			t.Errorf("ParseInputString(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestTrimInputString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"  Data Structures  ", "Data Structures"},
		{"MixedCase", "MixedCase"},
		{"\tindented\n", "indented"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TrimInputString(tc.in); got != tc.want {
			t.Errorf("TrimInputString(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}
