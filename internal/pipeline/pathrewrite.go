package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// localRefs lists the attributes that may point at files next to a note.
var localRefs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths turns relative img src and a href values into
// file:// URLs under sourceDir, so a page loaded from a temp file still
// finds the note's images. URLs, anchors, absolute paths and references
// that would escape sourceDir are left alone. An empty sourceDir returns
// the input unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source directory: %w", err)
	}

	root, fragment, err := parseDocument(htmlContent)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	walk(root, func(n *html.Node) {
		key, ok := localRefs[n.DataAtom]
		if n.Type != html.ElementNode || !ok {
			return
		}
		for i, a := range n.Attr {
			if a.Key != key {
				continue
			}
			if resolved, ok := resolveLocal(a.Val, base); ok {
				n.Attr[i].Val = resolved
			}
		}
	})

	return renderDocument(root, fragment)
}

// walk visits n and its descendants depth-first.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// parseDocument parses a full page, or a fragment in body context. For a
// fragment the nodes are returned under a synthetic document node.
func parseDocument(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderDocument(root *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// resolveLocal maps a relative reference to a file:// URL under base.
func resolveLocal(ref, base string) (string, bool) {
	if !isRelativeRef(ref) {
		return "", false
	}
	target := filepath.Clean(filepath.Join(base, ref))
	if !within(target, base) {
		return "", false
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(target)}
	return u.String(), true
}

func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}
	return !filepath.IsAbs(ref)
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	dir = filepath.Clean(dir)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path+string(filepath.Separator), dir)
}
