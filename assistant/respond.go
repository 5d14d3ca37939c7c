// Package assistant is a scripted coding assistant. Replies are chosen by
// keyword matching on the prompt; nothing leaves the process.
package assistant

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FileContext describes the file the user is looking at when asking.
type FileContext struct {
	Name     string
	Language string
	Content  string
}

type Request struct {
	Text      string
	File      *FileContext
	Selection string
}

type Reply struct {
	Content     string
	Code        string
	Suggestions []string
}

const greeting = "Hello! I'm your AI coding assistant. I can help you write code, explain concepts, " +
	"debug issues, and provide suggestions. What would you like to work on?"

var greetingSuggestions = []string{"Create a React component", "Generate a login form", "Explain the active file"}

// Respond picks the canned reply for req. The first matching rule wins.
func Respond(req Request) Reply {
	lower := strings.ToLower(req.Text)
	has := func(words ...string) bool {
		for _, w := range words {
			if !strings.Contains(lower, w) {
				return false
			}
		}
		return true
	}

	switch {
	case has("react", "counter"):
		return Reply{
			Content: "Of course! Here is a functional React counter component using TypeScript and hooks.",
			Code:    reactCounter,
		}
	case has("login form"):
		return Reply{
			Content: "Certainly. Here is a responsive HTML and CSS login form with a clean, modern design.",
			Code:    loginForm,
		}
	case has("make this code"), has("generate code"):
		return Reply{
			Content: "Great! What would you like me to generate? Please be as specific as possible.",
			Suggestions: []string{
				"A React counter component",
				"A login form with HTML and CSS",
				"A Python function to sort a list",
			},
		}
	case has("sort", "python"):
		return Reply{
			Content: "Here is a Python function that returns a sorted copy of a list, with an optional key and order.",
			Code:    pythonSort,
		}
	case has("explain"):
		return explain(req)
	case has("optimiz"):
		return advise(req, "Suggested optimizations", []string{
			"Hoist work that does not change out of loops.",
			"Cache results of repeated lookups instead of recomputing them.",
			"Prefer early returns to deeply nested conditionals.",
		})
	case has("debug"):
		return advise(req, "Things to check while debugging", []string{
			"Verify every opened brace and parenthesis is closed.",
			"Log the inputs at the start of the failing function.",
			"Check for values that may be empty or undefined before use.",
		})
	}

	return Reply{
		Content: fmt.Sprintf("I understand you're asking about: \"%s...\"\n\n"+
			"I can help you with:\n"+
			"• Code Generation: Create components, functions, etc.\n"+
			"• Explanations: Explain how your code works.\n"+
			"• Debugging: Find and fix issues.", truncate(req.Text, 50)),
		Suggestions: []string{"Explain this code", "Suggest optimizations", "Help me debug this"},
	}
}

func explain(req Request) Reply {
	if req.File == nil {
		return Reply{
			Content:     "Open a file first and I'll walk you through it.",
			Suggestions: []string{"Generate code"},
		}
	}
	subject, text := req.File.Name, req.File.Content
	if strings.TrimSpace(req.Selection) != "" {
		subject, text = "the selected code in "+req.File.Name, req.Selection
	}
	lines := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lines++
	}
	lang := req.File.Language
	if lang == "" {
		lang = "plain text"
	}
	return Reply{
		Content: fmt.Sprintf("%s is %d line(s) of %s. %s",
			capitalize(subject), lines, lang, structureNote(text)),
		Suggestions: []string{"Suggest optimizations", "Help me debug this"},
	}
}

// structureNote gives a rough impression of the code's shape.
func structureNote(code string) string {
	funcs := 0
	for _, kw := range []string{"function ", "func ", "def ", "=> "} {
		funcs += strings.Count(code, kw)
	}
	switch {
	case funcs > 1:
		return fmt.Sprintf("It defines about %d functions; each one handles a separate step.", funcs)
	case funcs == 1:
		return "It is built around a single function."
	case strings.Contains(code, "<"):
		return "It is mostly markup."
	default:
		return "It reads top to bottom without helper functions."
	}
}

func advise(req Request, title string, tips []string) Reply {
	target := "your code"
	if req.File != nil {
		target = req.File.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s:\n", title, target)
	for _, tip := range tips {
		b.WriteString("• " + tip + "\n")
	}
	return Reply{Content: strings.TrimSuffix(b.String(), "\n"), Suggestions: []string{"Explain this code"}}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

// RunCommand returns the status line for a command palette action.
func RunCommand(name string) string {
	switch name {
	case "explain":
		return "This code does..."
	case "optimize":
		return "Consider these optimizations..."
	case "debug":
		return "Potential issues found..."
	case "refactor":
		return "Refactoring suggestions..."
	case "generate":
		return "Generated code..."
	case "document":
		return "Added documentation..."
	case "compile":
		return "Compilation started..."
	default:
		return "Command executed"
	}
}
