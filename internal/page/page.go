// Package page embeds the review form served at "/".
package page

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element ids the form script binds to
const (
	FormID   = "reviewForm"
	InputID  = "review"
	ResultID = "result"
)

//go:embed assets
var assets embed.FS

// Index returns the form page markup
func Index() []byte {
	b, err := assets.ReadFile("assets/index.html")
	if err != nil {
		panic(fmt.Sprintf("embedded index.html missing: %v", err))
	}
	return b
}

// Static returns the files served under /static
func Static() fs.FS {
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(fmt.Sprintf("embedded static dir missing: %v", err))
	}
	return sub
}

// Verify checks the embedded page carries the elements the form script expects
func Verify() error {
	return VerifyHTML(bytes.NewReader(Index()))
}

// VerifyHTML checks that r contains a form with FormID holding an input with InputID,
// plus an element with ResultID.
func VerifyHTML(r io.Reader) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	form := findByID(doc, FormID)
	if form == nil {
		return fmt.Errorf("page has no element with id %q", FormID)
	}
	if form.DataAtom != atom.Form {
		return fmt.Errorf("element %q is <%s>, want <form>", FormID, form.Data)
	}

	if findByID(doc, InputID) == nil {
		return fmt.Errorf("page has no element with id %q", InputID)
	}
	if findByID(form, InputID) == nil {
		return fmt.Errorf("element %q is outside form %q", InputID, FormID)
	}

	if findByID(doc, ResultID) == nil {
		return fmt.Errorf("page has no element with id %q", ResultID)
	}

	return nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
