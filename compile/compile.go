// Package compile simulates building and running a single file. Nothing is
// executed: the output is derived from simple checks on the source text.
package compile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	Running Status = "running"
	Success Status = "success"
	Error   Status = "error"
	Info    Status = "info"
)

type Result struct {
	Status    Status
	Output    []string
	Timestamp time.Time
}

// Source is the file being compiled. Language uses the names produced by
// highlight.LanguageFor.
type Source struct {
	Name     string
	Language string
	Content  string
}

var consoleLog = regexp.MustCompile(`console\.log\((.*?)\)`)

// Simulate classifies src and returns the final result lines, without the
// start and finish banners a Runner adds around them.
func Simulate(src Source) Result {
	switch src.Language {
	case "javascript", "typescript":
		return simulateScript(src.Content)
	case "html", "css":
		return Result{Status: Info, Output: []string{
			"This is a web file.",
			"Use the live preview (Ctrl+P) to see the output.",
		}}
	case "python":
		if strings.Contains(src.Content, "import") {
			return Result{Status: Success, Output: []string{
				"Running with Python 3.11...",
				"Hello, World!",
				"",
				"Process finished with exit code 0.",
			}}
		}
		return failure("Compilation failed.", "IndentationError: expected an indented block at line 2.")
	default:
		return Result{Status: Success, Output: []string{
			fmt.Sprintf("Build process started for %s...", src.Name),
			"Dependencies checked.",
			"Code compiled.",
			"Build finished successfully.",
		}}
	}
}

func simulateScript(code string) Result {
	if strings.Count(code, "{") != strings.Count(code, "}") {
		return failure("Compilation failed with 1 error.", "SyntaxError: Unmatched curly braces.")
	}
	if strings.Count(code, "(") != strings.Count(code, ")") {
		return failure("Compilation failed with 1 error.", "SyntaxError: Unmatched parentheses.")
	}

	out := []string{"Executing with Node.js..."}
	for _, m := range consoleLog.FindAllStringSubmatch(code, -1) {
		out = append(out, "> "+logValue(m[1]))
	}
	out = append(out, "", "Execution finished successfully.")
	return Result{Status: Success, Output: out}
}

func failure(headline, msg string) Result {
	return Result{Status: Error, Output: []string{headline, "Error: " + msg}}
}

// logValue approximates what console.log would print for arg: a single
// string literal is unquoted, anything else is shown with quotes removed.
func logValue(arg string) string {
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 && arg[0] == arg[len(arg)-1] && strings.ContainsRune(`"'`, rune(arg[0])) {
		inner := arg[1 : len(arg)-1]
		if !strings.ContainsRune(inner, rune(arg[0])) {
			if s, err := strconv.Unquote(`"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`); err == nil {
				return s
			}
			return inner
		}
	}
	return strings.NewReplacer(`"`, "", `'`, "", "`", "").Replace(arg)
}
