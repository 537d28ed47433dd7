package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple title", "Hello, World!", "hello-world"},
		{"already a slug", "hello-world", "hello-world"},
		{"ampersand", "Tips & Tricks", "tips-and-tricks"},
		{"inner whitespace runs", "a   b\tc", "a-b-c"},
		{"unicode stripped", "Привет world", "world"},
		{"underscores kept", "snake_case title", "snake_case-title"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"all punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"Tips & Tricks for 2024",
		"  A   very --- messy ___ title  ",
		"灰 mixed 本 content",
	}

	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", in)
	}
}

func TestWithTimeSuffix(t *testing.T) {
	got := WithTimeSuffix("hello-world")
	assert.Regexp(t, regexp.MustCompile(`^hello-world-\d{6}$`), got)
	assert.NotEqual(t, "hello-world", got)
}
