package platforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Known(t *testing.T) {
	p, err := Resolve("tiktok")
	require.NoError(t, err)
	assert.Equal(t, "tiktok", p.Name)
	assert.Equal(t, "TikTok", p.DisplayName)
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("unknown_platform")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestResolve_CaseSensitive(t *testing.T) {
	_, err := Resolve("TikTok")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestUsernameRoundTrip(t *testing.T) {
	for _, p := range All() {
		assert.Equal(t, "some_user", p.UsernameFromURL(p.LiveURL("some_user")), p.Name)
		assert.Equal(t, "some_user", p.UsernameFromURL(p.ProfileURL("some_user")), p.Name)
	}
}

func TestUsernameFromURL_NoMatch(t *testing.T) {
	for _, p := range All() {
		assert.Empty(t, p.UsernameFromURL("https://example.com/watch?v=123"), p.Name)
	}
}

func TestTikTokURLs(t *testing.T) {
	p, err := Resolve("tiktok")
	require.NoError(t, err)

	assert.Equal(t, "https://www.tiktok.com/@abc/live", p.LiveURL("abc"))
	assert.Equal(t, "https://www.tiktok.com/@abc", p.ProfileURL("abc"))
	assert.Equal(t, "abc", p.UsernameFromURL("https://www.tiktok.com/@abc/live?foo=1"))
}
