package postgres

import (
	"context"

	"github.com/aqtareen/Taqreeb/internal/domain/teams"
	"github.com/jackc/pgx/v5"
)

var _ teams.Repository = (*TeamRepository)(nil)

type TeamRepository struct {
	executor
}

func (r *TeamRepository) List(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	err := r.run(ctx, "list_teams", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `SELECT team_id, team_name FROM teams ORDER BY team_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByPos[teams.Team])
		return err
	})
	return out, err
}

func (r *TeamRepository) Create(ctx context.Context, name string) (teams.Team, error) {
	team := teams.Team{Name: name}
	err := r.run(ctx, "insert_team", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `INSERT INTO teams (team_name) VALUES ($1) RETURNING team_id`, name).Scan(&team.ID)
	})
	if err != nil {
		return teams.Team{}, err
	}
	return team, nil
}
