package arbor

import (
	"errors"

	"github.com/go-git/go-arbor/id"
)

var (
	// ErrEmptyTree is returned when indexing a tree without root.
	ErrEmptyTree = errors.New("tree has no root")
	// ErrNotInTree is returned when mutating a node that is not part of
	// the tree, usually because it was detached by an earlier change.
	ErrNotInTree = errors.New("node is not in the tree")
)

// Options configure an IndexedTree.
type Options struct {
	// Generator provides the identities of the nodes materialized in the
	// tree. By default the generator the tree was built with. A tree built
	// without one gets a generator that cannot reuse the identities already
	// in the tree: an id.Sequence continuing past the greatest of them, or
	// id.UUID when they were not generated by a Sequence.
	Generator id.Generator
	// OnEvent, if set, is called after every structural change made
	// through the IndexedTree.
	OnEvent func(Event)
}

// Validate validates the fields and sets the default values.
func (o *Options) Validate() error {
	if o.Generator == nil {
		o.Generator = id.NewSequence()
	}

	return nil
}
