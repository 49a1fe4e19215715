package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructural indicates a node cannot be rendered because its shape is invalid:
// a leaf without a value, or a parent without a tag or children.
var ErrStructural = errors.New("invalid node structure")

// voidElements are tags rendered without content or a closing tag.
var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Serialization follows insertion order.
type Attrs []Attr

// String serializes attributes as ` key="value"` pairs.
// Returns an empty string when there are no attributes.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

// Get returns the value of the first attribute named key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a Attrs) writeTo(b *strings.Builder) {
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

func (a Attrs) equal(other Attrs) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// Node is an element of the tree. Implemented only by *Leaf and *Parent.
type Node interface {
	// Render serializes the subtree rooted at this node.
	// Returns ErrStructural if any node in the subtree is malformed.
	Render() (string, error)

	render(b *strings.Builder) error
}

// Compile-time interface implementation checks.
var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Parent)(nil)
)

// Leaf holds literal text. An empty Tag renders the value as raw text.
type Leaf struct {
	Tag   string
	Value string
	Attrs Attrs
}

// NewLeaf creates a Leaf. Attributes keep the order they are passed in.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs}
}

// Render implements Node.
func (l *Leaf) Render() (string, error) {
	var b strings.Builder
	if err := l.render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (l *Leaf) render(b *strings.Builder) error {
	if voidElements[l.Tag] {
		b.WriteByte('<')
		b.WriteString(l.Tag)
		l.Attrs.writeTo(b)
		b.WriteByte('>')
		return nil
	}
	if l.Value == "" {
		return fmt.Errorf("%w: leaf %q has no value", ErrStructural, l.Tag)
	}
	if l.Tag == "" {
		b.WriteString(l.Value)
		return nil
	}
	b.WriteByte('<')
	b.WriteString(l.Tag)
	l.Attrs.writeTo(b)
	b.WriteByte('>')
	b.WriteString(l.Value)
	b.WriteString("</")
	b.WriteString(l.Tag)
	b.WriteByte('>')
	return nil
}

// String returns a debug representation.
func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf(%q, %q, %v)", l.Tag, l.Value, []Attr(l.Attrs))
}

// Parent is a tagged element whose content is its children.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    Attrs

	// allowEmpty permits rendering with zero children. Only set by NewContainer.
	allowEmpty bool
}

// NewParent creates a Parent. Rendering fails unless tag and children are non-empty.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

// NewContainer creates a Parent that renders as an empty element when it has
// no children. Used for top-level document containers.
func NewContainer(tag string, children []Node, attrs ...Attr) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs, allowEmpty: true}
}

// Render implements Node.
func (p *Parent) Render() (string, error) {
	var b strings.Builder
	if err := p.render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *Parent) render(b *strings.Builder) error {
	if p.Tag == "" {
		return fmt.Errorf("%w: parent has no tag", ErrStructural)
	}
	if len(p.Children) == 0 && !p.allowEmpty {
		return fmt.Errorf("%w: parent %q has no children", ErrStructural, p.Tag)
	}

	b.WriteByte('<')
	b.WriteString(p.Tag)
	p.Attrs.writeTo(b)
	b.WriteByte('>')
	for _, child := range p.Children {
		if child == nil {
			return fmt.Errorf("%w: parent %q has a nil child", ErrStructural, p.Tag)
		}
		if err := child.render(b); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(p.Tag)
	b.WriteByte('>')
	return nil
}

// String returns a debug representation.
func (p *Parent) String() string {
	children := make([]string, len(p.Children))
	for i, c := range p.Children {
		children[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("Parent(%q, [%s], %v)", p.Tag, strings.Join(children, ", "), []Attr(p.Attrs))
}

// Equal reports whether two trees have the same tags, values, attributes and
// children. Intended for tests.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Tag == y.Tag && x.Value == y.Value && x.Attrs.equal(y.Attrs)
	case *Parent:
		y, ok := b.(*Parent)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		if x.Tag != y.Tag || !x.Attrs.equal(y.Attrs) || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
