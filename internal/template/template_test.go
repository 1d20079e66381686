package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_TokenSequence(t *testing.T) {
	tokens := Parse("VODs/{platform}/{user}/{date}_{time}.mp4")

	assert.Equal(t, []Token{
		{Text: "VODs/"},
		{Text: "platform", Placeholder: true},
		{Text: "/"},
		{Text: "user", Placeholder: true},
		{Text: "/"},
		{Text: "date", Placeholder: true},
		{Text: "_"},
		{Text: "time", Placeholder: true},
		{Text: ".mp4"},
	}, tokens)
}

func TestParse_UnrecognizedBracesStayLiteral(t *testing.T) {
	tokens := Parse("clips/{channel}/{user}")

	assert.Equal(t, []Token{
		{Text: "clips/{channel}/"},
		{Text: "user", Placeholder: true},
	}, tokens)
}

func TestParse_NestedBracesResolveInnermost(t *testing.T) {
	tokens := Parse("{x{user}}")

	assert.Equal(t, []Token{
		{Text: "{x"},
		{Text: "user", Placeholder: true},
		{Text: "}"},
	}, tokens)
}

func TestExpand_NestedBraces(t *testing.T) {
	assert.Equal(t, "{xabc}", Expand("{x{user}}", Context{User: "abc"}))
	assert.Equal(t, "{abc}", Expand("{{user}}", Context{User: "abc"}))
}

func TestParse_UnterminatedBrace(t *testing.T) {
	tokens := Parse("VODs/{user")
	assert.Equal(t, []Token{{Text: "VODs/{user"}}, tokens)
}

func TestExpand_Full(t *testing.T) {
	out := Expand("VODs/{platform}/{user}/{date}_{time}.mp4", Context{
		Platform: "TikTok",
		User:     "abc",
		Date:     "2025-01-02",
		Time:     "15-04",
	})
	assert.Equal(t, "VODs/TikTok/abc/2025-01-02_15-04.mp4", out)
}

func TestExpand_PartialLeavesPlaceholders(t *testing.T) {
	out := Expand("VODs/{platform}/{user}/{date}_{time}.mp4", Context{
		Platform: "TikTok",
		User:     "abc",
	})
	assert.Equal(t, "VODs/TikTok/abc/{date}_{time}.mp4", out)
}

func TestDirectory_DerivesFolder(t *testing.T) {
	dir := Directory("VODs/{platform}/{user}/{date}_{time}.mp4", "TikTok", "abc")
	assert.Equal(t, "VODs/TikTok/abc", dir)
}

func TestDirectory_EmptyUserLeftIntact(t *testing.T) {
	dir := Directory("VODs/{platform}/{user}/{date}_{time}.mp4", "TikTok", "")
	assert.Equal(t, "VODs/TikTok/{user}", dir)
}

func TestDirectory_NoSeparator(t *testing.T) {
	assert.Empty(t, Directory("{date}_{time}.mp4", "TikTok", "abc"))
}
