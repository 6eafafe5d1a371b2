// Package bookmarks parses browser bookmark-export files (the Netscape
// bookmark format: nested folder headings followed by sibling link anchors).
package bookmarks

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Link is one bookmark pulled out of an export file. Board is the name of
// the folder heading most recently seen before the link in document order.
type Link struct {
	Source    string
	SourceURL string
	Board     string
	Tags      []string
}

// Parse walks the flattened sequence of heading and link elements in
// document order. Each heading updates the current folder name; each anchor
// yields one Link filed under that folder. An anchor without an href is a
// parse error.
func Parse(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark file: %w", err)
	}

	var links []Link
	folder := ""

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				folder = strings.TrimSpace(textContent(n))
			case "a":
				link, err := anchorToLink(n, folder)
				if err != nil {
					return err
				}
				links = append(links, link)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(doc); err != nil {
		return nil, err
	}
	return links, nil
}

func anchorToLink(n *html.Node, folder string) (Link, error) {
	link := Link{
		Source: strings.TrimSpace(textContent(n)),
		Board:  folder,
		Tags:   []string{},
	}

	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "href":
			link.SourceURL = attr.Val
		case "tags":
			link.Tags = splitTags(attr.Val)
		}
	}

	if link.SourceURL == "" {
		return Link{}, fmt.Errorf("bookmark %q has no href attribute", link.Source)
	}
	return link, nil
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return sb.String()
}
