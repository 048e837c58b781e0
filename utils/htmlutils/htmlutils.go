// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnsafeHTML is returned when a fragment carries active content.
var ErrUnsafeHTML = errors.New("unsafe html")

// Node2string appends the whitespace-normalized text of n to sb. Text
// of script and style elements is skipped.
func Node2string(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")
		if len(tmp) > 0 {
			if sb.Len() != 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(tmp)
		}
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}

		fallthrough
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			Node2string(child, sb)
		}
	}
}

// Text returns the visible text of n.
func Text(n *html.Node) string {
	sb := strings.Builder{}
	Node2string(n, &sb)

	return sb.String()
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// FindAll returns every element below n matching pred, in document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var ret []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			ret = append(ret, n)
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return ret
}

// ByTag matches elements by tag name.
func ByTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return strings.EqualFold(n.Data, tag)
	}
}

// ByClass matches elements carrying the given class.
func ByClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(Attr(n, "class")) {
			if c == class {
				return true
			}
		}

		return false
	}
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}

	return ""
}

// ParseFragment parses a snippet meant to live inside a <div>.
func ParseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing html fragment: %w", err)
	}

	return nodes, nil
}

// CheckFragment fails with ErrUnsafeHTML when the snippet contains
// scripts, frames, event handlers or javascript: URLs. Static markup
// such as headings, lists and links passes.
func CheckFragment(s string) error {
	nodes, err := ParseFragment(s)
	if err != nil {
		return err
	}

	for _, n := range nodes {
		if err := checkNode(n); err != nil {
			return err
		}
	}

	return nil
}

func checkNode(n *html.Node) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Iframe, atom.Object, atom.Embed, atom.Frame, atom.Frameset:
			return fmt.Errorf("%w: <%s> element", ErrUnsafeHTML, n.Data)
		}

		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if strings.HasPrefix(key, "on") {
				return fmt.Errorf("%w: %s attribute on <%s>", ErrUnsafeHTML, a.Key, n.Data)
			}

			if (key == "href" || key == "src") &&
				strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				return fmt.Errorf("%w: javascript url on <%s>", ErrUnsafeHTML, n.Data)
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := checkNode(child); err != nil {
			return err
		}
	}

	return nil
}
