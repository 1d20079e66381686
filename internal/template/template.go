// Package template expands VOD path templates. A template is parsed into a
// token sequence of literal segments and named placeholders, so resolving a
// subset of placeholders is a pass over the tokens rather than a chain of
// string replaces.
package template

import "strings"

// Recognized placeholder names. {date}, {time} and {title} are usually
// resolved later, at recording time; the client only fills {platform} and
// {user}.
const (
	PlaceholderPlatform = "platform"
	PlaceholderUser     = "user"
	PlaceholderDate     = "date"
	PlaceholderTime     = "time"
	PlaceholderTitle    = "title"
)

var recognized = map[string]struct{}{
	PlaceholderPlatform: {},
	PlaceholderUser:     {},
	PlaceholderDate:     {},
	PlaceholderTime:     {},
	PlaceholderTitle:    {},
}

// Token is one element of a parsed template: either a literal run or a
// recognized placeholder name.
type Token struct {
	Text        string
	Placeholder bool
}

// Parse splits a template into tokens. Braces around unrecognized names
// stay literal.
func Parse(tpl string) []Token {
	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(tpl); {
		open := strings.IndexByte(tpl[i:], '{')
		if open < 0 {
			literal.WriteString(tpl[i:])
			break
		}
		open += i
		end := strings.IndexByte(tpl[open:], '}')
		if end < 0 {
			literal.WriteString(tpl[i:])
			break
		}
		end += open

		// pair the '}' with the innermost opener: a later '{' before it wins
		if inner := strings.LastIndexByte(tpl[open+1:end], '{'); inner >= 0 {
			literal.WriteString(tpl[i : open+1+inner])
			i = open + 1 + inner
			continue
		}

		name := tpl[open+1 : end]
		if _, ok := recognized[name]; !ok {
			literal.WriteString(tpl[i : end+1])
			i = end + 1
			continue
		}

		literal.WriteString(tpl[i:open])
		flush()
		tokens = append(tokens, Token{Text: name, Placeholder: true})
		i = end + 1
	}
	flush()
	return tokens
}

// Context supplies placeholder values. An empty field means "leave the
// placeholder in place" so the remaining tokens can be resolved later.
type Context struct {
	Platform string
	User     string
	Date     string
	Time     string
	Title    string
}

func (c Context) value(name string) string {
	switch name {
	case PlaceholderPlatform:
		return c.Platform
	case PlaceholderUser:
		return c.User
	case PlaceholderDate:
		return c.Date
	case PlaceholderTime:
		return c.Time
	case PlaceholderTitle:
		return c.Title
	}
	return ""
}

// Expand substitutes the placeholders that have context values and re-emits
// the rest verbatim.
func Expand(tpl string, ctx Context) string {
	var b strings.Builder
	for _, tok := range Parse(tpl) {
		if !tok.Placeholder {
			b.WriteString(tok.Text)
			continue
		}
		if v := ctx.value(tok.Text); v != "" {
			b.WriteString(v)
		} else {
			b.WriteString("{" + tok.Text + "}")
		}
	}
	return b.String()
}

// Directory derives the save directory from a template: the filename
// portion after the last path separator is dropped, {platform} becomes the
// platform's display name, and {user} the username when it is non-empty.
func Directory(tpl, platformDisplayName, user string) string {
	idx := strings.LastIndex(tpl, "/")
	if idx < 0 {
		return ""
	}
	return Expand(tpl[:idx], Context{Platform: platformDisplayName, User: user})
}
