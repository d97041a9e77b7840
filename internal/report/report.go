// Package report formats errors as an indented cause tree. Locations carried
// by coded errors are highlighted with the colorize engine.
package report

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/badele/colorans/internal/colorize"
	"github.com/badele/colorans/internal/compose"
	"github.com/badele/colorans/internal/errors"
	"github.com/badele/colorans/internal/types"
)

// Node is one error of the cause tree. A node built from a joined error has
// no message of its own, only children.
type Node struct {
	Message  string
	Code     errors.ErrorCode
	At       *errors.Location
	Children []*Node
}

// IsGroup reports whether n only gathers sibling causes.
func (n *Node) IsGroup() bool {
	return n.Message == "" && len(n.Children) > 1
}

type pending struct {
	err  error
	node *Node
}

// Build converts err and its wrapped causes into a tree. Siblings from a
// joined error are sorted by code, then message.
func Build(err error) *Node {
	if err == nil {
		return nil
	}

	root := &Node{}
	stack := []pending{{err: err, node: root}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch e := cur.err.(type) {
		case interface{ Unwrap() []error }:
			for _, cause := range e.Unwrap() {
				if cause == nil {
					continue
				}
				child := &Node{}
				cur.node.Children = append(cur.node.Children, child)
				stack = append(stack, pending{err: cause, node: child})
			}
		case *errors.Error:
			cur.node.Message = e.Message
			cur.node.Code = e.Code
			cur.node.At = e.At
			if e.Wrapped != nil {
				child := &Node{}
				cur.node.Children = []*Node{child}
				stack = append(stack, pending{err: e.Wrapped, node: child})
			}
		default:
			inner := stderrors.Unwrap(cur.err)
			cur.node.Message = ownMessage(cur.err, inner)
			if inner != nil {
				child := &Node{}
				cur.node.Children = []*Node{child}
				stack = append(stack, pending{err: inner, node: child})
			}
		}
	}

	sortGroups(root)
	return collapse(root)
}

// ownMessage strips the wrapped error's text from a fmt.Errorf style message.
func ownMessage(err, inner error) string {
	msg := err.Error()
	if inner == nil {
		return msg
	}
	trimmed := strings.TrimSuffix(msg, inner.Error())
	trimmed = strings.TrimRight(trimmed, ": ")
	if trimmed == "" {
		return msg
	}
	return trimmed
}

func sortGroups(root *Node) {
	stack := []*Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Message == "" && len(cur.Children) > 1 {
			sort.SliceStable(cur.Children, func(i, j int) bool {
				a, b := cur.Children[i], cur.Children[j]
				if a.Code != b.Code {
					return a.Code < b.Code
				}
				return a.Message < b.Message
			})
		}
		stack = append(stack, cur.Children...)
	}
}

// collapse removes groups of a single cause.
func collapse(root *Node) *Node {
	for root.Message == "" && len(root.Children) == 1 {
		root = root.Children[0]
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i, child := range cur.Children {
			for child.Message == "" && len(child.Children) == 1 {
				child = child.Children[0]
			}
			cur.Children[i] = child
		}
		stack = append(stack, cur.Children...)
	}
	return root
}

// Pluralize returns "1 error", "2 errors" and so on.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Formatter renders cause trees.
type Formatter struct {
	colorizer *colorize.Colorizer
	indent    string

	LabelStyle     types.Style
	CodeStyle      types.Style
	HighlightStyle types.Style
}

type Option func(*Formatter)

// WithColorizer replaces the colorizer, and with it the styling switch.
func WithColorizer(c *colorize.Colorizer) Option {
	return func(f *Formatter) {
		f.colorizer = c
	}
}

func WithIndent(indent string) Option {
	return func(f *Formatter) {
		f.indent = indent
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{
		colorizer:      colorize.New(),
		indent:         "  ",
		LabelStyle:     types.NewStyle().WithForeground(types.Red).WithAttribute(types.Bold),
		CodeStyle:      types.NewStyle().WithAttribute(types.Dimmed),
		HighlightStyle: types.NewStyle().WithForeground(types.Yellow).WithAttribute(types.Underline),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type frame struct {
	node  *Node
	depth int
}

// Format renders root as indented lines. The root is labelled "error:",
// causes "caused by:". A group lists how many errors it holds.
func (f *Formatter) Format(root *Node) string {
	if root == nil {
		return ""
	}

	var b strings.Builder
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, prefix := cur.node, strings.Repeat(f.indent, cur.depth)

		label := "caused by:"
		if cur.depth == 0 {
			label = "error:"
		}

		b.WriteString(prefix)
		b.WriteString(f.style(label, f.LabelStyle))
		b.WriteByte(' ')
		if node.IsGroup() {
			b.WriteString(Pluralize(len(node.Children), "error", "errors"))
		} else {
			b.WriteString(node.Message)
		}
		if node.Code != "" {
			b.WriteByte(' ')
			b.WriteString(f.style("["+string(node.Code)+"]", f.CodeStyle))
		}
		b.WriteByte('\n')

		if node.At != nil {
			f.writeLocation(&b, prefix+f.indent, node.At)
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: node.Children[i], depth: cur.depth + 1})
		}
	}

	return b.String()
}

func (f *Formatter) writeLocation(b *strings.Builder, prefix string, at *errors.Location) {
	const label = "at: "

	line := types.NewText(at.Line)
	b.WriteString(prefix)
	b.WriteString(label)
	b.WriteString(f.colorizer.Colorize(line, nil, compose.NewRule(line.Slice(at.Start, at.End), f.HighlightStyle)))
	b.WriteByte('\n')

	if at.End <= at.Start {
		return
	}
	b.WriteString(prefix)
	b.WriteString(strings.Repeat(" ", len(label)+utf8.RuneCountInString(at.Line[:at.Start])))
	b.WriteString(strings.Repeat("^", utf8.RuneCountInString(at.Line[at.Start:at.End])))
	b.WriteByte('\n')
}

func (f *Formatter) style(s string, style types.Style) string {
	return f.colorizer.Colorize(types.NewText(s), &style)
}

// Write formats err and writes it to w.
func (f *Formatter) Write(w io.Writer, err error) error {
	_, werr := io.WriteString(w, f.Format(Build(err)))
	return werr
}

// Fprint formats err with a default formatter.
func Fprint(w io.Writer, err error) error {
	return New().Write(w, err)
}
