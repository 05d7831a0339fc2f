package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Morning Yoga  ", want: "Morning Yoga"},
		{name: "multiple spaces between words", input: "Morning    Yoga", want: "Morning Yoga"},
		{name: "tabs and newlines", input: "Morning\t\nYoga", want: "Morning Yoga"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "hebrew characters", input: " שיעור בוקר ", want: "שיעור בוקר"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: " Dana@Studio.Example ", want: "dana@studio.example"},
		{input: "dana@studio.example", want: "dana@studio.example"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeClock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already padded", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "dot separator", input: "9.30", want: "09:30"},
		{name: "surrounding spaces", input: " 17:00 ", want: "17:00"},
		{name: "not a clock left alone", input: "noon", want: "noon"},
		{name: "out of range left for validator", input: "25:00", want: "25:00"},
		{name: "single digit minutes left alone", input: "9:5", want: "9:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeClock(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeClock(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := SanitizeClock(got); again != got {
				t.Errorf("SanitizeClock is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already padded", input: "2024-03-05", want: "2024-03-05"},
		{name: "unpadded month and day", input: "2024-3-5", want: "2024-03-05"},
		{name: "surrounding spaces", input: " 2024-12-31 ", want: "2024-12-31"},
		{name: "other format left alone", input: "05/03/2024", want: "05/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDate(tt.input); got != tt.want {
				t.Errorf("SanitizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already padded", input: "2024-03", want: "2024-03"},
		{name: "unpadded month", input: "2024-3", want: "2024-03"},
		{name: "surrounding spaces", input: " 2024-12 ", want: "2024-12"},
		{name: "full date left alone", input: "2024-03-05", want: "2024-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeMonth(tt.input); got != tt.want {
				t.Errorf("SanitizeMonth(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := Pipeline{
		func(s string) string { return s + "a" },
		func(s string) string { return s + "b" },
	}
	if got := p.Apply("x"); got != "xab" {
		t.Errorf("Apply() = %q, want %q", got, "xab")
	}
}
