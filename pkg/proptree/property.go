// SPDX-License-Identifier: MPL-2.0

package proptree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is the sentinel wrapped by MissingFieldError.
var ErrMissingField = errors.New("missing field")

type (
	// Property is a single node in a property tree.
	// A block has a non-nil Children slice (possibly empty); a leaf has a Value.
	Property struct {
		Name     string
		Value    string
		Children []*Property
	}

	// MissingFieldError is returned by Require when a mandatory key is absent.
	// It wraps ErrMissingField for errors.Is() compatibility.
	MissingFieldError struct {
		// Field is the key that was looked up.
		Field string
		// Block is the name of the block the key was expected in.
		Block string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("missing field %q in %q", e.Field, e.Block)
	}
	return fmt.Sprintf("missing field %q", e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// NewLeaf creates a node carrying a value.
func NewLeaf(name, value string) *Property {
	return &Property{Name: name, Value: value}
}

// NewBlock creates a node with the given children.
func NewBlock(name string, children ...*Property) *Property {
	if children == nil {
		children = []*Property{}
	}
	return &Property{Name: name, Children: children}
}

// IsBlock reports whether the node holds children rather than a value.
func (p *Property) IsBlock() bool {
	return p != nil && p.Children != nil
}

// HasChildren reports whether the node is a block with at least one child.
func (p *Property) HasChildren() bool {
	return p != nil && len(p.Children) > 0
}

// Find returns the first child named name, or nil.
func (p *Property) Find(name string) *Property {
	if p == nil {
		return nil
	}
	for _, c := range p.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// FindAll returns every child named name in declaration order.
func (p *Property) FindAll(name string) []*Property {
	if p == nil {
		return nil
	}
	var out []*Property
	for _, c := range p.Children {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the value of the first child named name, or def when there is none.
// A block child yields def as well, since it carries no scalar value.
func (p *Property) Get(name, def string) string {
	c := p.Find(name)
	if c == nil || c.IsBlock() {
		return def
	}
	return c.Value
}

// Bool reads a "0"/"1" flag. Any other value yields def.
func (p *Property) Bool(name string, def bool) bool {
	switch p.Get(name, "") {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}

// Require returns the value of a mandatory child.
func (p *Property) Require(name string) (string, error) {
	c := p.Find(name)
	if c == nil || c.IsBlock() {
		block := ""
		if p != nil {
			block = p.Name
		}
		return "", &MissingFieldError{Field: name, Block: block}
	}
	return c.Value, nil
}

// Values collects the values stored under name. A repeated leaf contributes its
// value, a block contributes the values of its leaf children. Empty values are
// dropped.
func (p *Property) Values(name string) []string {
	var out []string
	for _, c := range p.FindAll(name) {
		if !c.IsBlock() {
			if c.Value != "" {
				out = append(out, c.Value)
			}
			continue
		}
		for _, sub := range c.Children {
			if !sub.IsBlock() && sub.Value != "" {
				out = append(out, sub.Value)
			}
		}
	}
	return out
}

// Append adds children to a block, turning a leaf into a block if needed.
func (p *Property) Append(children ...*Property) {
	if p.Children == nil {
		p.Children = make([]*Property, 0, len(children))
		p.Value = ""
	}
	p.Children = append(p.Children, children...)
}

// Clone returns a deep copy of the node.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	out := &Property{Name: p.Name, Value: p.Value}
	if p.Children != nil {
		out.Children = make([]*Property, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// String renders the node back to the text format.
func (p *Property) String() string {
	var sb strings.Builder
	p.write(&sb, 0)
	return sb.String()
}

func (p *Property) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("\t", depth)
	if !p.IsBlock() {
		fmt.Fprintf(sb, "%s%s %s\n", indent, quote(p.Name), quote(p.Value))
		return
	}
	fmt.Fprintf(sb, "%s%s\n%s\t{\n", indent, quote(p.Name), indent)
	for _, c := range p.Children {
		c.write(sb, depth+1)
	}
	fmt.Fprintf(sb, "%s\t}\n", indent)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote escapes the two sequences the reader understands.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
