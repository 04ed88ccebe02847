package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibespecs/vibespecs/internal/prd"
	"github.com/vibespecs/vibespecs/internal/store"
)

var (
	prdsOwner   string
	prdsProject string
)

var prdsCmd = &cobra.Command{
	Use:   "prds",
	Short: "Manage saved PRDs",
}

var prdsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved PRDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		filter := store.PRDFilter{OwnerID: prdsOwner}
		switch prdsProject {
		case "":
		case "none":
			filter.Unfiled = true
		default:
			filter.ProjectID = &prdsProject
		}

		prds, err := vibespecsApp.Store.ListSavedPRDs(cmd.Context(), filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPROJECT\tUPDATED")
		for _, p := range prds {
			project := "-"
			if p.ProjectID != nil {
				project = *p.ProjectID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, project, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var prdsSaveCmd = &cobra.Command{
	Use:   "save <prd.json>",
	Short: "Save a PRD file to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read PRD file: %w", err)
		}
		doc, err := prd.Decode(data)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = doc.ProjectSummary.WhatUserWants
		}
		idea, _ := cmd.Flags().GetString("idea")

		saved, err := vibespecsApp.Store.InsertSavedPRD(cmd.Context(), prdsOwner, title, idea, doc)
		if err != nil {
			return err
		}
		fmt.Printf("Saved PRD %s (%s)\n", saved.Title, saved.ID)
		return nil
	},
}

var prdsMoveCmd = &cobra.Command{
	Use:   "move <id> <project-id|none>",
	Short: "Move a saved PRD into a project, or unfile it with \"none\"",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		var projectID *string
		if args[1] != "none" {
			projectID = &args[1]
		}
		if err := vibespecsApp.Store.UpdateSavedPRDProject(cmd.Context(), prdsOwner, args[0], projectID); err != nil {
			return err
		}
		fmt.Println("PRD moved")
		return nil
	},
}

var prdsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved PRD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		if err := vibespecsApp.Store.DeleteSavedPRD(cmd.Context(), prdsOwner, args[0]); err != nil {
			return err
		}
		fmt.Println("PRD deleted")
		return nil
	},
}

func init() {
	prdsCmd.PersistentFlags().StringVar(&prdsOwner, "owner", "default", "Owner id")
	prdsListCmd.Flags().StringVar(&prdsProject, "project", "", "Filter by project id, or \"none\" for unfiled")
	prdsSaveCmd.Flags().String("title", "", "Title for the saved PRD")
	prdsSaveCmd.Flags().String("idea", "", "Original idea text")
	prdsCmd.AddCommand(prdsListCmd, prdsSaveCmd, prdsMoveCmd, prdsDeleteCmd)
	rootCmd.AddCommand(prdsCmd)
}
