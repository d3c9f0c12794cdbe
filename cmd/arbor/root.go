package main

import (
	"bytes"
	"fmt"

	"github.com/go-git/go-arbor"
	"github.com/go-git/go-arbor/codec/yamltree"
	"github.com/go-git/go-arbor/diff"
	"github.com/go-git/go-arbor/id"
	itrace "github.com/go-git/go-arbor/internal/trace"
	"github.com/go-git/go-arbor/utils/trace"
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type app struct {
	fs billy.Filesystem
	// resolve turns a command line path into a path of fs. nil keeps the
	// path as is.
	resolve func(string) (string, error)

	configPath string
	config     *Config
	// gen is shared by every tree a command loads.
	gen id.Generator
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arbor",
		Short:         "Compare and patch trees stored as YAML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	cmd.AddCommand(newDiffCmd(a), newPatchCmd(a), newHashCmd(a))
	return cmd
}

func (a *app) setup() error {
	path := a.configPath
	if path != "" {
		var err error
		if path, err = a.path(path); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(a.fs, path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	a.config = cfg
	a.gen = cfg.NewGenerator()
	trace.SetTarget(itrace.Env() | itrace.Parse(cfg.Trace))
	return nil
}

func (a *app) path(name string) (string, error) {
	if a.resolve == nil {
		return name, nil
	}

	return a.resolve(name)
}

func (a *app) load(name string) (*arbor.Tree, error) {
	path, err := a.path(name)
	if err != nil {
		return nil, err
	}

	return yamltree.Load(a.fs, path, a.gen)
}

// loadPair loads both documents concurrently.
func (a *app) loadPair(destName, sourceName string) (dest, source *arbor.Tree, err error) {
	var g errgroup.Group
	g.Go(func() (err error) {
		dest, err = a.load(destName)
		return err
	})
	g.Go(func() (err error) {
		source, err = a.load(sourceName)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return dest, source, nil
}

func encode(t *arbor.Tree) (string, error) {
	var buf bytes.Buffer
	if err := yamltree.Encode(&buf, t.Root()); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// diffTrees computes the patch turning dest into source.
func diffTrees(dest, source *arbor.Tree) *diff.Patch {
	return diff.New(dest.Root(), source.Root()).Diff()
}
