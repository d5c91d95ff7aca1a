package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"windows", Unsupported},
		{"darwin", Homebrew},
		{"linux", Debian},
		{"freebsd", Unsupported},
		{"plan9", Unsupported},
		{"", Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.goos))
		})
	}
}

func TestNeedsSudo(t *testing.T) {
	assert.True(t, NeedsSudo(Debian))
	assert.False(t, NeedsSudo(Homebrew))
	assert.False(t, NeedsSudo(Unsupported))
}

func TestString(t *testing.T) {
	assert.Equal(t, "debian", Debian.String())
	assert.Equal(t, "homebrew", Homebrew.String())
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "unsupported", Platform(42).String())
}
