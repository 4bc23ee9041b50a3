// Package htmlmeta reads document metadata from HTML design files.
package htmlmeta

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

// Meta is the metadata found in a document's <head>.
type Meta struct {
	Title       string // text of the first <title> element
	Description string // content of <meta name="description">
}

// ReadFile parses the HTML file at path.
func ReadFile(path string) (Meta, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Meta{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("html_path", path).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()
	return Read(file)
}

// Read parses HTML from r. Missing elements leave the fields empty.
func Read(r io.Reader) (Meta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Meta{}, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var meta Meta
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" {
					meta.Title = collapseSpace(textContent(n))
				}
			case "meta":
				if strings.EqualFold(getAttr(n, "name"), "description") && meta.Description == "" {
					meta.Description = collapseSpace(getAttr(n, "content"))
				}
			case "body":
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	return meta, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
