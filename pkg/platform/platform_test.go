package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	p := Current()
	assert.Equal(t, OS(runtime.GOOS), p.OS)
}

func TestPlatformPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		os        OS
		isWindows bool
		isDarwin  bool
		isUnix    bool
	}{
		{Darwin, false, true, true},
		{Linux, false, false, true},
		{Windows, true, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.os), func(t *testing.T) {
			t.Parallel()
			p := Platform{OS: tt.os}
			assert.Equal(t, tt.isWindows, p.IsWindows())
			assert.Equal(t, tt.isDarwin, p.IsDarwin())
			assert.Equal(t, tt.isUnix, p.IsUnix())
		})
	}
}

func TestExeSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".exe", Platform{OS: Windows}.ExeSuffix())
	assert.Equal(t, "", Platform{OS: Darwin}.ExeSuffix())
	assert.Equal(t, "", Platform{OS: Linux}.ExeSuffix())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, os := range []OS{Darwin, Linux, Windows} {
		assert.NoError(t, Platform{OS: os}.Validate())
	}

	err := Platform{OS: "plan9"}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}
