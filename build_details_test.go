package paramprep

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.NotEmpty(t, v)
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"), "unexpected version %q", v)
}

func TestCommit(t *testing.T) {
	c := Commit()
	if c == "unknown" {
		return
	}
	assert.GreaterOrEqual(t, len(c), 7)
	assert.Equal(t, -1, strings.IndexFunc(c, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdef", r)
	}), "commit should be hex: %s", c)
}

func TestBuildTime(t *testing.T) {
	if bt := BuildTime(); bt != "unknown" {
		assert.Contains(t, bt, "T")
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "paramprep/"+Version(), ua)
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\n")
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	for _, want := range []string{
		"Version: " + Version(),
		"Commit: " + Commit(),
		"Build Time: " + BuildTime(),
		"Go Version: " + GoVersion(),
	} {
		assert.Contains(t, info, want)
	}
}
