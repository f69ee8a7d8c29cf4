package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/repo"
)

func newCommitTreeCmd() *cobra.Command {
	var parents []string
	var message string
	cmd := &cobra.Command{
		Use:   "commit-tree <hex40>",
		Short: "Write a Commit object pointing at a Tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			treeHash := object.Hash(args[0])
			if err := object.ValidateHash(treeHash); err != nil {
				return err
			}

			parentHashes := make([]object.Hash, 0, len(parents))
			for _, p := range parents {
				h := object.Hash(p)
				if err := object.ValidateHash(h); err != nil {
					return err
				}
				parentHashes = append(parentHashes, h)
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.WriteCommit(treeHash, parentHashes, message)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit digest (repeatable)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}
