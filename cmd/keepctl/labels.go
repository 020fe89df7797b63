package main

import (
	"fmt"

	"github.com/spf13/cobra"

	keep "github.com/keepclone/keep.go"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage labels",
	}
	cmd.AddCommand(
		newLabelsListCmd(),
		newLabelsCreateCmd(),
		newLabelsDeleteCmd(),
		newLabelsAttachCmd(),
		newLabelsDetachCmd(),
		newLabelsNotesCmd(),
	)
	return cmd
}

func newLabelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			labels, err := c.ListLabels(cmd.Context())
			if err != nil {
				return err
			}
			if len(labels) == 0 {
				fmt.Println("no labels")
				return nil
			}
			for _, l := range labels {
				fmt.Printf("%s  %s (%s)\n", l.ID, l.Name, l.Color)
			}
			return nil
		},
	}
}

func newLabelsCreateCmd() *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			label, err := c.CreateLabel(cmd.Context(), keep.CreateLabelRequest{Name: args[0], Color: color})
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", label.ID, label.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "palette token or #rrggbb")
	return cmd
}

func newLabelsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a label (notes keep existing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteLabel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func newLabelsAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <note-id> <label-id>",
		Short: "Attach a label to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.AttachLabel(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("attached")
			return nil
		},
	}
}

func newLabelsDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <note-id> <label-id>",
		Short: "Detach a label from a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DetachLabel(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("detached")
			return nil
		},
	}
}

func newLabelsNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes <label-id>",
		Short: "List the notes carrying a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			notes, err := c.ListNotesByLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		},
	}
}
