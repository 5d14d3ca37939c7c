package ui

import (
	"strings"

	"void/assistant"
	"void/compile"
)

// OutputLines renders a compile result for the output panel. The first and
// last lines are the timestamped run markers and stay muted.
func OutputLines(r compile.Result) []Line {
	kind := LinePlain
	switch r.Status {
	case compile.Success:
		kind = LineSuccess
	case compile.Error:
		kind = LineError
	case compile.Info:
		kind = LineInfo
	}
	lines := make([]Line, 0, len(r.Output))
	for _, text := range r.Output {
		k := kind
		if strings.HasPrefix(text, "[") {
			k = LineMuted
		}
		lines = append(lines, Line{Text: text, Kind: k})
	}
	return lines
}

// StatusBadge is the short label the output panel shows next to its title.
func StatusBadge(s compile.Status) (string, LineKind) {
	switch s {
	case compile.Running:
		return "● running", LineInfo
	case compile.Success:
		return "✓ success", LineSuccess
	case compile.Error:
		return "✗ error", LineError
	case compile.Info:
		return "ℹ info", LineInfo
	}
	return "", LinePlain
}

// TranscriptLines lays out a chat history: a header per message, its text,
// its code block and its suggestions.
func TranscriptLines(msgs []assistant.Message, thinking bool) []Line {
	var lines []Line
	for i, m := range msgs {
		if i > 0 {
			lines = append(lines, Line{})
		}
		who := "AI"
		if m.Role == assistant.User {
			who = "You"
		}
		lines = append(lines, Line{Text: who + "  " + m.Time.Format("15:04"), Kind: LineAccent})
		if m.Content != "" {
			lines = append(lines, Line{Text: m.Content})
		}
		if m.Code != "" {
			lines = append(lines, Line{Text: "── code (Ctrl+G insert, Ctrl+R replace, Ctrl+L copy) ──", Kind: LineMuted})
			lines = append(lines, Line{Text: m.Code, Kind: LineCode})
		}
		for _, s := range m.Suggestions {
			lines = append(lines, Line{Text: "› " + s, Kind: LineInfo})
		}
	}
	if thinking {
		lines = append(lines, Line{}, Line{Text: "AI is thinking... (Esc to stop)", Kind: LineMuted})
	}
	return lines
}
