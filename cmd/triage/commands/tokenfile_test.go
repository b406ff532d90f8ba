package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrtus0x0/triage/internal/constants"
)

func TestParseTokenFile(t *testing.T) {
	t.Parallel()
	t.Run("simple credential line", func(t *testing.T) {
		t.Parallel()

		rootURL, token, err := parseTokenFile(strings.NewReader("https://api.tria.ge secret-token\n"))
		require.NoError(t, err)
		assert.Equal(t, "https://api.tria.ge", rootURL)
		assert.Equal(t, "secret-token", token)
	})

	t.Run("skips comments and blank lines", func(t *testing.T) {
		t.Parallel()

		content := "# credentials written by triage authenticate\n" +
			"\n" +
			"   \n" +
			"https://api.tria.ge secret-token\n"

		rootURL, token, err := parseTokenFile(strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "https://api.tria.ge", rootURL)
		assert.Equal(t, "secret-token", token)
	})

	t.Run("malformed line", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseTokenFile(strings.NewReader("just-a-token\n"))
		assert.ErrorIs(t, err, constants.ErrTokenFileMalformed)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseTokenFile(strings.NewReader(""))
		assert.ErrorIs(t, err, constants.ErrTokenFileMalformed)
	})
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "memory.dmp", sanitizeFilename("memory.dmp"))
	assert.Equal(t, "....etcpasswd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "cwindowsevil.exe", sanitizeFilename(`c:\windows\evil.exe`))
	assert.Equal(t, "whatname", sanitizeFilename("what?<name>|*"))
}
