/*
Package html loads the textual content of HTML into documents.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package html

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/rope"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}

// InnerText creates a rope for the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents). Block-level elements and <br>
// start a new line; the content of <script>, <style> and <head> is skipped.
func InnerText(n *html.Node) (*rope.Rope, error) {
	if n == nil {
		return nil, textbuf.ErrNilArgument
	}
	c := &collector{b: rope.NewBuilder()}
	if err := c.collect(n); err != nil {
		return nil, err
	}
	return c.b.Rope()
}

// DocumentFromHTML creates a document from the textual content of an HTML
// fragment. It does no interpretation of layout and styling, but extracts
// the pure text.
func DocumentFromHTML(input io.Reader, opts ...textbuf.Option) (*textbuf.Document, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	c := &collector{b: rope.NewBuilder()}
	for _, n := range nodes {
		if err := c.collect(n); err != nil {
			return nil, err
		}
	}
	text, err := c.b.Rope()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("html: extracted %d bytes of text from %d nodes", text.Len(), len(nodes))
	return textbuf.DocumentFromRope(text, opts...)
}

type collector struct {
	b         *rope.Builder
	atLineEnd bool // last text appended ends a line
	started   bool // text has been appended
}

func (c *collector) collect(n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		c.started = true
		c.atLineEnd = n.Data[len(n.Data)-1] == '\n'
		return c.b.AppendString(n.Data)
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Template:
			return nil
		case atom.Br:
			return c.newline()
		}
	}
	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		if err := c.breakLine(); err != nil {
			return err
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := c.collect(ch); err != nil {
			return err
		}
	}
	if block {
		return c.breakLine()
	}
	return nil
}

// breakLine starts a new line unless the text is empty or a line has just
// ended.
func (c *collector) breakLine() error {
	if !c.started || c.atLineEnd {
		return nil
	}
	return c.newline()
}

func (c *collector) newline() error {
	c.started, c.atLineEnd = true, true
	return c.b.AppendString("\n")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Tr, atom.Table,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Pre, atom.Blockquote, atom.Section, atom.Article, atom.Header,
		atom.Footer, atom.Dl, atom.Dt, atom.Dd, atom.Hr:
		return true
	}
	return false
}
