// Package yamltree reads and writes arbor trees as YAML documents.
//
// A scalar is a leaf, labeled by its value. A mapping with a single key is an
// inner node: the key is its label and the value, a sequence, holds its
// children in order. A key with a null value is a leaf too.
//
//	root:
//	  - a
//	  - b:
//	      - x
//	      - y
//	  - c
//
// Labels are stored as node.Text payloads.
package yamltree

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"

	"github.com/go-git/go-arbor"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/ioutil"
	"github.com/go-git/go-arbor/utils/trace"
)

var (
	// ErrEmptyDocument is returned when decoding a document without content.
	ErrEmptyDocument = errors.New("empty document")
	// ErrInvalidNode is returned for YAML nodes that do not describe a tree
	// node.
	ErrInvalidNode = errors.New("invalid tree node")
)

// Decode reads a YAML document from r and builds a tree with identities
// from gen.
func Decode(r io.Reader, gen id.Generator) (*arbor.Tree, error) {
	r, err := ioutil.NonEmptyReader(r)
	if err == ioutil.ErrEmptyReader {
		return nil, ErrEmptyDocument
	}

	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDocument
		}

		return nil, err
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, ErrEmptyDocument
		}

		root = doc.Content[0]
	}

	label, children, err := split(root)
	if err != nil {
		return nil, err
	}

	b, err := arbor.NewTreeBuilder(gen).Root(node.Text(label), func(b *arbor.NodeBuilder) error {
		return decodeChildren(b, children)
	})
	if err != nil {
		return nil, err
	}

	return b.Done()
}

func decodeChildren(b *arbor.NodeBuilder, children []*yaml.Node) error {
	for _, c := range children {
		label, grandchildren, err := split(c)
		if err != nil {
			return err
		}

		if err := b.Child(node.Text(label), func(b *arbor.NodeBuilder) error {
			return decodeChildren(b, grandchildren)
		}); err != nil {
			return err
		}
	}

	return nil
}

// split returns the label and the children of a YAML node.
func split(n *yaml.Node) (string, []*yaml.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil, nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return "", nil, invalid(n, "mapping with %d keys", len(n.Content)/2)
		}

		key, value := n.Content[0], n.Content[1]
		if key.Kind != yaml.ScalarNode {
			return "", nil, invalid(key, "non scalar label")
		}

		switch {
		case value.Kind == yaml.SequenceNode:
			return key.Value, value.Content, nil
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
			return key.Value, nil, nil
		default:
			return "", nil, invalid(value, "children of %q are not a sequence", key.Value)
		}
	default:
		return "", nil, invalid(n, "unexpected %s", kind(n.Kind))
	}
}

func invalid(n *yaml.Node, format string, args ...interface{}) error {
	trace.General.Printf("yamltree: line %d: "+format, append([]interface{}{n.Line}, args...)...)
	return fmt.Errorf("line %d column %d: %w: %s", n.Line, n.Column, ErrInvalidNode, fmt.Sprintf(format, args...))
}

func kind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}

// Encode writes the tree rooted at root to w as a YAML document.
func Encode(w io.Writer, root node.Handle) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(encode(root)); err != nil {
		return err
	}

	return enc.Close()
}

func encode(h node.Handle) *yaml.Node {
	label := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: Label(h)}

	children := h.Children()
	if len(children) == 0 {
		return label
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, c := range children {
		seq.Content = append(seq.Content, encode(c))
	}

	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{label, seq},
	}
}

// Label returns the text of the payload of h.
func Label(h node.Handle) string {
	switch d := h.Data().(type) {
	case nil:
		return ""
	case node.Text:
		return string(d)
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprint(d)
	}
}

// Load decodes the YAML document stored in filename.
func Load(fs billy.Filesystem, filename string, gen id.Generator) (t *arbor.Tree, err error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}

	defer ioutil.CheckClose(f, &err)

	t, err = Decode(f, gen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return t, nil
}

// Save encodes the tree rooted at root into filename.
func Save(fs billy.Filesystem, filename string, root node.Handle) (err error) {
	f, err := fs.Create(filename)
	if err != nil {
		return err
	}

	defer ioutil.CheckClose(f, &err)

	return Encode(f, root)
}
