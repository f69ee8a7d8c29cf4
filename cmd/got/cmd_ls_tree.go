package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/repo"
)

func newLsTreeCmd() *cobra.Command {
	var nameOnly bool
	cmd := &cobra.Command{
		Use:   "ls-tree <hex40>",
		Short: "List a Tree object's entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := object.Hash(args[0])
			if err := object.ValidateHash(h); err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			tree, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range tree.Entries {
				if nameOnly {
					fmt.Fprintln(out, e.Name)
					continue
				}
				kind := "blob"
				if e.Mode == object.TreeModeDir {
					kind = "tree"
				}
				fmt.Fprintf(out, "%s %s %s\t%s\n", zeroPadMode(e.Mode), kind, e.Hash, e.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "print only entry names")
	return cmd
}

func zeroPadMode(mode string) string {
	if len(mode) >= 6 {
		return mode
	}
	return strings.Repeat("0", 6-len(mode)) + mode
}
