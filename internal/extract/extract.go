// Package extract evaluates declarative fallback chains against parsed HTML
// fragments.
//
// Every target field is described by a Chain: an ordered list of locator
// strategies tried until one yields a non-empty value. Adapting to markup
// drift on a source site means editing the chain, not the control flow.
// Missing fields never produce errors; an exhausted chain resolves to the
// chain's fallback value.
package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrBadInput reports top-level input that cannot be parsed at all. This is
// the only error condition in the package; per-field misses are not errors.
var ErrBadInput = errors.New("extract: unusable input")

// Strategy is one way to pull a value out of a fragment. When Selector is
// empty the fragment itself is the match. When Attr is set the attribute is
// read instead of the node text. Clean, when set, post-processes the
// trimmed value.
type Strategy struct {
	Selector string
	Attr     string
	Clean    func(string) string
}

// Chain is an ordered fallback list for one field. Evaluation stops at the
// first strategy producing a non-empty result; Fallback is returned when
// every strategy misses.
type Chain struct {
	Field      string
	Strategies []Strategy
	Fallback   string
}

// Resolve evaluates the chain against one fragment.
func (c Chain) Resolve(root *goquery.Selection) string {
	if root == nil {
		return c.Fallback
	}
	for _, st := range c.Strategies {
		if v := st.apply(root); v != "" {
			return v
		}
	}
	return c.Fallback
}

// ResolveAll returns the value of every node matched by the first strategy
// that matches anything. An exhausted chain yields the fallback as a single
// element, keeping list fields non-empty.
func (c Chain) ResolveAll(root *goquery.Selection) []string {
	if root == nil {
		return []string{c.Fallback}
	}
	for _, st := range c.Strategies {
		m := st.matches(root)
		if m == nil || m.Length() == 0 {
			continue
		}
		vals := make([]string, 0, m.Length())
		m.Each(func(_ int, s *goquery.Selection) {
			if v := st.value(s); v != "" {
				vals = append(vals, v)
			}
		})
		if len(vals) > 0 {
			return vals
		}
	}
	return []string{c.Fallback}
}

func (st Strategy) matches(root *goquery.Selection) *goquery.Selection {
	if st.Selector == "" {
		return root
	}
	return root.Find(st.Selector)
}

func (st Strategy) value(s *goquery.Selection) string {
	var v string
	if st.Attr != "" {
		v, _ = s.Attr(st.Attr)
	} else {
		v = s.Text()
	}
	v = strings.TrimSpace(v)
	if v != "" && st.Clean != nil {
		v = strings.TrimSpace(st.Clean(v))
	}
	return v
}

func (st Strategy) apply(root *goquery.Selection) string {
	m := st.matches(root)
	if m == nil || m.Length() == 0 {
		return ""
	}
	return st.value(m.First())
}

// Document parses a full HTML document. A read failure is the malformed
// top-level input case and surfaces as ErrBadInput.
func Document(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	return doc, nil
}

// StripLabel returns a Clean func that removes a leading label such as
// "Time:" or "Grades:" from an extracted value.
func StripLabel(label string) func(string) string {
	return func(v string) string {
		return strings.TrimSpace(strings.TrimPrefix(v, label))
	}
}

// AbsoluteURL returns a Clean func that resolves site-relative hrefs
// against the source's base URL.
func AbsoluteURL(base string) func(string) string {
	return func(v string) string {
		if v == "" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return v
		}
		return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(v, "/")
	}
}
