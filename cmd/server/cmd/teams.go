package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aqtareen/Taqreeb/internal/config"
	"github.com/aqtareen/Taqreeb/internal/domain/teams"
	"github.com/aqtareen/Taqreeb/internal/storage/postgres"
	"github.com/spf13/cobra"
)

// teamStore is the part of the teams service the CLI drives.
type teamStore interface {
	List(ctx context.Context) ([]teams.Team, error)
	Create(ctx context.Context, in teams.Input) (teams.Team, error)
}

func newTeamsCommand() *cobra.Command {
	teamsCmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage the teams employees are assigned to",
		Long: `Employee registration assigns every new employee to a team picked at
random. Registration fails until at least one team exists; use
"server teams add" to seed them.`,
	}

	teamsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTeams(cmd.Context(), func(svc teamStore) error {
				return listTeams(cmd.Context(), cmd.OutOrStdout(), svc)
			})
		},
	})

	teamsCmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a team",
		Example: `  server teams add Logistics
  server teams add "Catering Crew"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTeams(cmd.Context(), func(svc teamStore) error {
				return addTeam(cmd.Context(), cmd.OutOrStdout(), svc, args[0])
			})
		},
	})

	return teamsCmd
}

func withTeams(ctx context.Context, fn func(teamStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)

	gw, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	repo, err := postgres.NewRepository(gw)
	if err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	return fn(teams.NewService(repo.Teams(), logger))
}

func listTeams(ctx context.Context, out io.Writer, svc teamStore) error {
	list, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No teams configured.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, t := range list {
		fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Name)
	}
	return w.Flush()
}

func addTeam(ctx context.Context, out io.Writer, svc teamStore, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("team name must not be empty")
	}
	team, err := svc.Create(ctx, teams.Input{Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created team %d: %s\n", team.ID, team.Name)
	return nil
}
