package main

import (
	"fmt"

	"github.com/go-git/go-arbor/codec/yamltree"
	"github.com/go-git/go-arbor/hash"
	textdiff "github.com/go-git/go-arbor/utils/diff"
	"github.com/go-git/go-arbor/walker"
	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "diff DEST SOURCE",
		Short: "Print the operations turning DEST into SOURCE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, source, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, diffTrees(dest, source))

			if !cmd.Flags().Changed("text") {
				text = a.config.Text
			}

			if !text {
				return nil
			}

			src, err := encode(dest)
			if err != nil {
				return err
			}

			dst, err := encode(source)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "--- %s\n+++ %s\n", args[0], args[1])
			fmt.Fprint(out, textdiff.Unified(textdiff.Do(src, dst)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "also print a line diff of both documents")
	return cmd
}

func newPatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "patch DEST SOURCE",
		Short: "Patch DEST until it matches SOURCE and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, source, err := a.loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			t, err := dest.Index(nil)
			if err != nil {
				return err
			}

			if err := diffTrees(dest, source).PatchTree(t); err != nil {
				return err
			}

			return yamltree.Encode(cmd.OutOrStdout(), t.Root())
		},
	}
}

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash FILE",
		Short: "Print every node of FILE with its position and subtree hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return t.Walk().ForEach(func(item walker.Item) error {
				_, err := fmt.Fprintf(out, "%s %s %s %s\n",
					hash.Format(item.Node.SubtreeHash()),
					item.Node.ID(),
					item.Position,
					yamltree.Label(item.Node),
				)
				return err
			})
		},
	}
}
