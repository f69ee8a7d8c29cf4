package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/repo"
)

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url> <dir>",
		Short: "Clone a remote repository over Smart-HTTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, dest := args[0], args[1]

			if entries, err := os.ReadDir(dest); err == nil && len(entries) > 0 {
				return fmt.Errorf("%w: destination %s is not empty", object.ErrBadArguments, dest)
			}

			if _, err := repo.Clone(url, dest); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cloned %s into %s\n", url, dest)
			return nil
		},
	}
}
