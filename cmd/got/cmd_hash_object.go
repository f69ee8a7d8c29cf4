package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/repo"
)

func newHashObjectCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "hash-object <path>",
		Short: "Store a file as a Blob and print its digest (requires -w)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				return fmt.Errorf("%w: hash-object requires -w", object.ErrBadArguments)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("%w: read %s: %v", object.ErrFilesystemIO, args[0], err)
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.Store.WriteBlob(&object.Blob{Data: data})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object to the store")
	return cmd
}
