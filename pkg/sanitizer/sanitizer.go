package sanitizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reLooseClock = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)
	reLooseDate  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	reLooseMonth = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

func lower(s string) string {
	return strings.ToLower(s)
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		lower,
	}
	return p.Apply(input)
}

func SanitizeID(input string) string {
	return strings.TrimSpace(input)
}

func SanitizeClock(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		padClock,
	}
	return p.Apply(input)
}

func SanitizeDate(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		padDate,
	}
	return p.Apply(input)
}

func SanitizeMonth(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		padMonth,
	}
	return p.Apply(input)
}

func padClock(s string) string {
	m := reLooseClock.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", h, m[2])
}

func padDate(s string) string {
	m := reLooseDate.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
}

func padMonth(s string) string {
	m := reLooseMonth.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d", m[1], month)
}
