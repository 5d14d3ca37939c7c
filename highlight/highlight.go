package highlight

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

type Token struct {
	Text  string
	Style tcell.Style
}

type StyledLine struct {
	Tokens []Token
}

// Highlighter tokenizes file content into styled lines. Results are cached
// per owner (an entity id) and dropped whenever the content hash changes.
type Highlighter struct {
	cache map[string]cached
}

type cached struct {
	key   string
	lines []StyledLine
}

func New() *Highlighter {
	return &Highlighter{cache: make(map[string]cached)}
}

func (h *Highlighter) Invalidate(owner string) {
	delete(h.cache, owner)
}

// lexerFor resolves a language tag to a chroma lexer. Tags come from
// LanguageFor, and chroma knows most of them by name or alias.
func lexerFor(lang string) chroma.Lexer {
	var lexer chroma.Lexer
	if lang != "" && lang != PlainText {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Lines returns styled lines [start, end) of code. The whole document is
// tokenized so multi-line constructs (block comments, template strings)
// stay correct at the window edges.
func (h *Highlighter) Lines(owner, code, lang string, start, end int) []StyledLine {
	all := h.tokenize(owner, code, lang)
	if start < 0 {
		start = 0
	}
	if end > len(all) {
		end = len(all)
	}
	if start >= end {
		return nil
	}
	return all[start:end]
}

func (h *Highlighter) tokenize(owner, code, lang string) []StyledLine {
	key := fmt.Sprintf("%s:%x", lang, sha256.Sum256([]byte(code)))
	if c, ok := h.cache[owner]; ok && c.key == key {
		return c.lines
	}

	raw := strings.Split(code, "\n")
	lines := make([]StyledLine, len(raw))

	iter, err := lexerFor(lang).Tokenise(nil, code)
	if err != nil {
		for i, l := range raw {
			lines[i] = StyledLine{Tokens: []Token{{Text: l, Style: tcell.StyleDefault}}}
		}
		h.cache[owner] = cached{key: key, lines: lines}
		return lines
	}

	row := 0
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				row++
			}
			if row >= len(lines) {
				break
			}
			if part != "" {
				lines[row].Tokens = append(lines[row].Tokens, Token{Text: part, Style: style})
			}
		}
	}

	h.cache[owner] = cached{key: key, lines: lines}
	return lines
}

var categoryStyles = map[chroma.TokenType]tcell.Style{
	chroma.Keyword:       tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	chroma.NameBuiltin:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	chroma.NameFunction:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	chroma.NameClass:     tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	chroma.NameTag:       tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	chroma.NameAttribute: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	chroma.LiteralString: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	chroma.LiteralNumber: tcell.StyleDefault.Foreground(tcell.ColorDarkCyan),
	chroma.Comment:       tcell.StyleDefault.Foreground(tcell.ColorGray).Italic(true),
}

// tokenStyle picks the most specific style: exact type, then its sub
// category (NameFunction for NameFunctionMagic), then its category.
func tokenStyle(t chroma.TokenType) tcell.Style {
	if s, ok := categoryStyles[t]; ok {
		return s
	}
	if s, ok := categoryStyles[t.SubCategory()]; ok {
		return s
	}
	if s, ok := categoryStyles[t.Category()]; ok {
		return s
	}
	return tcell.StyleDefault.Foreground(tcell.ColorWhite)
}
