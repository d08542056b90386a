// Package fixture reads virtual DOM trees from YAML.
//
// A fixture is one node or a list of nodes (a root fragment):
//
//	tag: ul
//	props: {class: list}
//	children:
//	  - {tag: li, key: a, content: A}
//	  - {tag: li, key: b, content: B}
//	  - plain text
//	  - fragment: true
//	    children: [x, y]
//
// A bare string is a text node. content gives an element a text body
// instead of children.
package fixture

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/vdom"
)

// Node is one fixture node as written in YAML.
type Node struct {
	Tag      string         `yaml:"tag,omitempty"`
	Key      any            `yaml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Text     *string        `yaml:"text,omitempty"`
	Content  *string        `yaml:"content,omitempty"`
	Fragment bool           `yaml:"fragment,omitempty"`
	Children []*Node        `yaml:"children,omitempty"`

	// Line and Column locate the node in its source.
	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

var knownFields = map[string]bool{
	"tag": true, "key": true, "props": true, "text": true,
	"content": true, "fragment": true, "children": true,
}

// UnmarshalYAML records the node position and accepts a bare scalar as a
// text node.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	n.Line, n.Column = value.Line, value.Column

	if value.Kind == yaml.ScalarNode {
		text := value.Value
		n.Text = &text
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return &fieldError{line: value.Line, column: value.Column, msg: "expected a mapping or a string"}
	}
	for i := 0; i < len(value.Content); i += 2 {
		k := value.Content[i]
		if !knownFields[k.Value] {
			return &fieldError{line: k.Line, column: k.Column, msg: fmt.Sprintf("unknown field %q", k.Value)}
		}
	}

	type plain Node
	return value.Decode((*plain)(n))
}

type fieldError struct {
	line, column int
	msg          string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

// ParseFile reads and builds the fixture at path.
func ParseFile(path string) (*vdom.VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").WithDetail("cannot read " + path).Wrap(err)
	}
	return Parse(path, data)
}

// Parse builds a vnode tree from YAML. name is used in error locations.
func Parse(name string, data []byte) (*vdom.VNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E150").
			WithDetail(err.Error()).
			WithLocation(name, errorLine(err), 0)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("E150").WithDetail(name + " is empty")
	}
	root := doc.Content[0]

	var nodes []*Node
	if root.Kind == yaml.SequenceNode {
		err := root.Decode(&nodes)
		if err != nil {
			return nil, decodeError(name, err)
		}
	} else {
		n := &Node{}
		if err := root.Decode(n); err != nil {
			return nil, decodeError(name, err)
		}
		nodes = append(nodes, n)
	}

	if root.Kind == yaml.SequenceNode {
		children := make([]any, 0, len(nodes))
		for _, n := range nodes {
			v, err := n.build(name)
			if err != nil {
				return nil, err
			}
			children = append(children, v)
		}
		return vdom.Fragment(children...), nil
	}
	return nodes[0].build(name)
}

func decodeError(name string, err error) error {
	if fe, ok := err.(*fieldError); ok {
		return errors.New("E151").WithDetail(fe.msg).WithLocation(name, fe.line, fe.column)
	}
	return errors.New("E150").WithDetail(err.Error()).WithLocation(name, errorLine(err), 0)
}

// VNode builds the vnode tree for n.
func (n *Node) VNode() (*vdom.VNode, error) {
	return n.build("")
}

func (n *Node) build(name string) (*vdom.VNode, error) {
	if err := n.validate(); err != nil {
		e := errors.New("E151").WithDetail(err.Error())
		if name != "" {
			e = e.WithLocation(name, n.Line, n.Column)
		}
		return nil, e
	}

	switch {
	case n.Text != nil:
		v := vdom.Text(*n.Text)
		v.Key = n.Key
		return v, nil

	case n.Fragment:
		children, err := buildAll(name, n.Children)
		if err != nil {
			return nil, err
		}
		v := vdom.Fragment(children...)
		v.Key = n.Key
		return v, nil
	}

	args := make([]any, 0, len(n.Children)+2)
	if len(n.Props) > 0 {
		args = append(args, vdom.Props(n.Props))
	}
	if n.Key != nil {
		args = append(args, vdom.Key(n.Key))
	}
	if n.Content != nil {
		args = append(args, vdom.Content(*n.Content))
	}
	children, err := buildAll(name, n.Children)
	if err != nil {
		return nil, err
	}
	args = append(args, children...)

	return vdom.H(n.Tag, args...), nil
}

func buildAll(name string, nodes []*Node) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for _, c := range nodes {
		if c == nil {
			continue
		}
		v, err := c.build(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (n *Node) validate() error {
	switch {
	case n.Text != nil:
		if n.Tag != "" || n.Fragment || n.Content != nil || len(n.Children) > 0 || len(n.Props) > 0 {
			return fmt.Errorf("a text node has only text and key")
		}
	case n.Fragment:
		if n.Tag != "" || n.Content != nil || len(n.Props) > 0 {
			return fmt.Errorf("a fragment has only children and key")
		}
	case n.Tag == "":
		return fmt.Errorf("node needs a tag, text or fragment")
	case strings.ContainsAny(n.Tag, " <>/\"'="):
		return fmt.Errorf("invalid tag %q", n.Tag)
	case n.Content != nil && len(n.Children) > 0:
		return fmt.Errorf("<%s> has both content and children", n.Tag)
	case vdom.IsVoidElement(n.Tag) && (n.Content != nil || len(n.Children) > 0):
		return fmt.Errorf("<%s> cannot have children", n.Tag)
	}
	for k := range n.Props {
		if k == "key" {
			return fmt.Errorf("use the key field instead of a key prop")
		}
	}
	return nil
}

// errorLine extracts the line number from a yaml.v3 error message.
func errorLine(err error) int {
	var line int
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		fmt.Sscanf(msg[i:], "line %d", &line)
	}
	return line
}
