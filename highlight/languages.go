package highlight

import (
	"path"
	"strings"
)

// PlainText is the language tag for names with no known extension.
const PlainText = "plaintext"

var extLanguages = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"py":   "python",
	"java": "java",
	"cpp":  "cpp",
	"c":    "c",
	"cs":   "csharp",
	"php":  "php",
	"rb":   "ruby",
	"go":   "go",
	"rs":   "rust",
	"html": "html",
	"css":  "css",
	"scss": "scss",
	"json": "json",
	"md":   "markdown",
	"xml":  "xml",
	"yaml": "yaml",
	"yml":  "yaml",
	"sql":  "sql",
	"sh":   "shell",
	"bash": "shell",
}

var templates = map[string]string{
	"js":   "// JavaScript file\nconsole.log(\"Hello, World!\");\n",
	"jsx":  "import React from \"react\";\n\nconst Component = () => {\n  return <div>Hello, World!</div>;\n};\n\nexport default Component;\n",
	"ts":   "// TypeScript file\nconst message: string = \"Hello, World!\";\nconsole.log(message);\n",
	"tsx":  "import React from \"react\";\n\ninterface Props {}\n\nconst Component: React.FC<Props> = () => {\n  return <div>Hello, World!</div>;\n};\n\nexport default Component;\n",
	"py":   "# Python file\nprint(\"Hello, World!\")\n",
	"css":  "/* CSS file */\nbody {\n  font-family: Arial, sans-serif;\n  margin: 0;\n  padding: 0;\n}\n",
	"html": "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n  <meta charset=\"UTF-8\">\n  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n  <title>Document</title>\n</head>\n<body>\n  <h1>Hello, World!</h1>\n</body>\n</html>\n",
	"md":   "# Title\n\nHello, World!\n\n## Section\n\nContent goes here...\n",
	"json": "{\n  \"name\": \"example\",\n  \"version\": \"1.0.0\",\n  \"description\": \"Example JSON file\"\n}\n",
}

const defaultTemplate = "// New file\n"

// extension returns the lowercased text after the last dot. A name without
// a dot yields the whole name, so "Makefile" looks up "makefile".
func extension(name string) string {
	base := path.Base(name)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[i+1:]
	}
	return strings.ToLower(base)
}

// LanguageFor maps a file name to its language tag.
func LanguageFor(name string) string {
	if lang, ok := extLanguages[extension(name)]; ok {
		return lang
	}
	return PlainText
}

// Template returns the starter content for a newly created file.
func Template(name string) string {
	if t, ok := templates[extension(name)]; ok {
		return t
	}
	return defaultTemplate
}

// DisplayName is the human label shown in the status bar.
func DisplayName(lang string) string {
	switch lang {
	case "javascript":
		return "JavaScript"
	case "typescript":
		return "TypeScript"
	case "csharp":
		return "C#"
	case "cpp":
		return "C++"
	case "html", "css", "scss", "json", "xml", "yaml", "sql", "php":
		return strings.ToUpper(lang)
	case PlainText, "":
		return "Plain Text"
	default:
		return strings.ToUpper(lang[:1]) + lang[1:]
	}
}
