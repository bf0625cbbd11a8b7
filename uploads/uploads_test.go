package uploads

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"groovy/errs"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"file.mp3", "file.mp3"},
		{"my song.mp3", "my_song.mp3"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"weird$na#me!.mp3", "weird_na_me_.mp3"},
		{"UPPER-case_09.MP3", "UPPER-case_09.MP3"},
	}
	for _, tc := range cases {
		got, err := Sanitize(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
		require.NotContains(t, got, "/")
		require.NotContains(t, got, `\`)
	}

	for _, in := range []string{"", "...", "___", "../..", "/", "$$$"} {
		_, err := Sanitize(in)
		require.ErrorIs(t, err, errs.ErrInvalidUpload, in)
	}
}

func TestStagePromoteRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := []byte("ID3\x04\x00fake mp3 payload bytes")
	require.NoError(t, s.Stage("song.mp3", bytes.NewReader(payload)))

	// Not visible under the final name until promoted.
	_, err = os.Stat(s.Path("song.mp3"))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, s.Promote("song.mp3"))
	got, err := os.ReadFile(s.Path("song.mp3"))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestStage_RefusesDoubleWrite(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Stage("dup.mp3", strings.NewReader("first")))
	err = s.Stage("dup.mp3", strings.NewReader("second"))
	require.Error(t, err)

	require.NoError(t, s.Promote("dup.mp3"))
	got, err := os.ReadFile(s.Path("dup.mp3"))
	require.NoError(t, err)
	require.Equal(t, "first", string(got))
}

func TestDiscardAndRemove(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Stage("gone.mp3", strings.NewReader("payload")))
	s.Discard("gone.mp3")
	// Staging again succeeds because the staged file is gone.
	require.NoError(t, s.Stage("gone.mp3", strings.NewReader("payload")))
	require.NoError(t, s.Promote("gone.mp3"))

	require.NoError(t, s.Remove("gone.mp3"))
	_, err = os.Stat(s.Path("gone.mp3"))
	require.True(t, os.IsNotExist(err))

	require.Error(t, s.Remove("never-existed.mp3"))
}
