package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eklavyac/gogit/pkg/object"
	"github.com/eklavyac/gogit/pkg/repo"
)

func newCatFileCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "cat-file <hex40>",
		Short: "Print the payload of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !pretty {
				return fmt.Errorf("%w: cat-file requires -p", object.ErrBadArguments)
			}
			h := object.Hash(args[0])
			if err := object.ValidateHash(h); err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			_, payload, err := r.Store.Read(h)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "print object payload")
	return cmd
}
