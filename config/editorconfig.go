package config

import (
	"bufio"
	"path"
	"strconv"
	"strings"
)

// Indent is the indentation a .editorconfig asks for. Zero values mean the
// file did not say.
type Indent struct {
	UseTabs bool
	Size    int
}

// ParseIndent reads editorconfig text and returns the indentation settings
// of every section matching fileName, later sections winning. The text
// comes from a .editorconfig file inside the workspace, so there is no
// directory walk and "root" is ignored. ok is false when nothing applies.
func ParseIndent(text, fileName string) (Indent, bool) {
	var (
		ind      Indent
		found    bool
		matching bool
		tabWidth int
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			matching = matchPattern(line[1:len(line)-1], fileName)
			continue
		}
		if !matching {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))

		switch key {
		case "indent_style":
			ind.UseTabs = value == "tab"
			found = true
		case "indent_size":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				ind.Size = n
				found = true
			}
		case "tab_width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				tabWidth = n
				found = true
			}
		}
	}

	if ind.Size == 0 {
		ind.Size = tabWidth
	}
	return ind, found
}

// matchPattern matches fileName against an editorconfig glob, expanding
// {a,b} alternatives first.
func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := path.Match(p, fileName); ok {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth, end := 0, -1
	for i := open; i < len(pattern) && end < 0; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return []string{pattern}
	}

	prefix, suffix := pattern[:open], pattern[end+1:]
	var out []string
	for _, alt := range splitAlternatives(pattern[open+1 : end]) {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}

func splitAlternatives(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
