package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectsOwner string

// requireStore guards store-backed commands.
func requireStore() error {
	if vibespecsApp.Store == nil {
		return errors.New("no database configured; set DATABASE_URL")
	}
	return nil
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage project folders for saved PRDs",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		projects, err := vibespecsApp.Store.ListProjects(cmd.Context(), projectsOwner)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tUPDATED")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Description, p.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		project, err := vibespecsApp.Store.InsertProject(cmd.Context(), projectsOwner, args[0], description)
		if err != nil {
			return err
		}
		fmt.Printf("Created project %s (%s)\n", project.Name, project.ID)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project folder (its PRDs are unfiled, not deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireStore(); err != nil {
			return err
		}

		if err := vibespecsApp.Store.DeleteProject(cmd.Context(), projectsOwner, args[0]); err != nil {
			return err
		}
		fmt.Println("Project deleted")
		return nil
	},
}

func init() {
	projectsCmd.PersistentFlags().StringVar(&projectsOwner, "owner", "default", "Owner id")
	projectsCreateCmd.Flags().String("description", "", "Project description")
	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
