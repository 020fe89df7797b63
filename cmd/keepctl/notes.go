package main

import (
	"fmt"

	"github.com/spf13/cobra"

	keep "github.com/keepclone/keep.go"
	"github.com/keepclone/keep.go/pkg/models"
)

// printNote renders one note as a single line: id, flag markers, title.
func printNote(n *models.Note) {
	marker := ""
	if n.IsPinned {
		marker += "*"
	}
	if n.IsArchived {
		marker += "a"
	}
	if n.IsDeleted {
		marker += "d"
	}
	if marker != "" {
		marker = " [" + marker + "]"
	}
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s%s  %s\n", n.ID, marker, title)
}

func printNotes(notes []*models.Note) {
	if len(notes) == 0 {
		fmt.Println("no notes")
		return
	}
	for _, n := range notes {
		printNote(n)
	}
}

func newListCmd() *cobra.Command {
	var archived, trash, pinned bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes (active by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch {
			case pinned:
				notes, err := c.ListPinnedNotes(ctx)
				if err != nil {
					return err
				}
				printNotes(notes)
			case archived:
				notes, err := c.ListArchivedNotes(ctx)
				if err != nil {
					return err
				}
				printNotes(notes)
			case trash:
				notes, err := c.ListNotes(ctx, keep.ListNotesOptions{IncludeDeleted: true})
				if err != nil {
					return err
				}
				var trashed []*models.Note
				for _, n := range notes {
					if n.IsDeleted {
						trashed = append(trashed, n)
					}
				}
				printNotes(trashed)
			default:
				notes, err := c.ListNotes(ctx, keep.ListNotesOptions{})
				if err != nil {
					return err
				}
				printNotes(notes)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "list archived notes")
	cmd.Flags().BoolVar(&trash, "trash", false, "list trashed notes")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "list pinned notes")
	cmd.MarkFlagsMutuallyExclusive("archived", "trash", "pinned")
	return cmd
}

func newCreateCmd() *cobra.Command {
	var title, content, color string
	var pin bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			req := keep.CreateNoteRequest{Title: title, Content: content, Color: color}
			if pin {
				req.IsPinned = &pin
			}
			note, err := c.CreateNote(cmd.Context(), req)
			if err != nil {
				return err
			}
			printNote(note)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	cmd.Flags().StringVar(&color, "color", "", "palette token or #rrggbb")
	cmd.Flags().BoolVar(&pin, "pin", false, "create pinned")
	return cmd
}

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle a note's pinned flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			note, err := c.TogglePin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printNote(note)
			return nil
		},
	}
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Toggle a note's archived flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			note, err := c.ToggleArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printNote(note)
			return nil
		},
	}
}

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <id> <color>",
		Short: "Set a note's color to a palette token or #rrggbb value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			note, err := c.SetNoteColor(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", note.ID, note.Color)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var permanent bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a note to the trash, or remove it for good",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteNote(cmd.Context(), args[0], permanent); err != nil {
				return err
			}
			if permanent {
				fmt.Println("deleted permanently")
			} else {
				fmt.Println("moved to trash")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&permanent, "permanent", false, "delete permanently instead of trashing")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var limit, page int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search note titles and contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			notes, err := c.SearchNotes(cmd.Context(), args[0], limit, page)
			if err != nil {
				return err
			}
			printNotes(notes)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "results per page")
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page")
	return cmd
}
