// Package preview turns the workspace's entry HTML file into a single
// self-contained document by inlining the stylesheets and scripts it
// references from the workspace.
package preview

import (
	"path"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"void/workspace"
)

const DefaultEntry = "index.html"

var (
	linkTag   = regexp.MustCompile(`(?is)<link\b[^>]*?\bhref\s*=\s*["']([^"']+\.css)["'][^>]*>`)
	scriptTag = regexp.MustCompile(`(?is)<script\b[^>]*?\bsrc\s*=\s*["']([^"']+\.js)["'][^>]*>\s*</script>`)
)

type Resolver struct {
	Entry string
	log   *zap.Logger
}

func New(entry string, log *zap.Logger) *Resolver {
	if strings.TrimSpace(entry) == "" {
		entry = DefaultEntry
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{Entry: entry, log: log}
}

// Resolve renders the preview for the given snapshot. The second result is
// false when the workspace has no entry file.
func (r *Resolver) Resolve(s *workspace.Store) (string, bool) {
	files := fileList(s)
	entry, ok := r.findEntry(files)
	if !ok {
		return "", false
	}

	dir := path.Dir(entry.Path)
	inlined := 0
	inline := func(re *regexp.Regexp, html string, wrap func(string) string) string {
		return re.ReplaceAllStringFunc(html, func(tag string) string {
			m := re.FindStringSubmatch(tag)
			f, ok := lookup(files, dir, m[1])
			if !ok {
				r.log.Debug("preview reference unresolved", zap.String("ref", m[1]))
				return tag
			}
			inlined++
			return wrap(f.Content)
		})
	}

	html := inline(linkTag, entry.Content, func(css string) string {
		return "<style>" + css + "</style>"
	})
	html = inline(scriptTag, html, func(js string) string {
		return `<script type="module">` + js + "</script>"
	})

	r.log.Debug("preview resolved", zap.String("entry", entry.Path), zap.Int("inlined", inlined))
	return html, true
}

func (r *Resolver) findEntry(files []workspace.Entity) (workspace.Entity, bool) {
	for _, f := range files {
		if strings.EqualFold(f.Name, r.Entry) {
			return f, true
		}
	}
	return workspace.Entity{}, false
}

func fileList(s *workspace.Store) []workspace.Entity {
	var files []workspace.Entity
	for _, e := range s.All() {
		if !e.IsFolder() {
			files = append(files, e)
		}
	}
	return files
}

// lookup resolves ref relative to the entry's folder first, then falls back
// to the first file whose path ends with ref on a segment boundary.
func lookup(files []workspace.Entity, dir, ref string) (workspace.Entity, bool) {
	if isAbsoluteURL(ref) {
		return workspace.Entity{}, false
	}
	want := path.Clean(path.Join(dir, ref))
	for _, f := range files {
		if f.Path == want {
			return f, true
		}
	}

	suffix := strings.TrimPrefix(path.Clean(ref), "./")
	suffix = strings.TrimLeft(suffix, "/")
	if suffix == "" || suffix == "." {
		return workspace.Entity{}, false
	}
	for _, f := range files {
		if f.Path == suffix || strings.HasSuffix(f.Path, "/"+suffix) {
			return f, true
		}
	}
	return workspace.Entity{}, false
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http:") ||
		strings.HasPrefix(lower, "https:") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
