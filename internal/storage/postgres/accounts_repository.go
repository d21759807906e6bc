package postgres

import (
	"context"
	"errors"

	"github.com/aqtareen/Taqreeb/internal/domain/accounts"
	"github.com/jackc/pgx/v5"
)

var _ accounts.Repository = (*AccountsRepository)(nil)

type AccountsRepository struct {
	executor
}

func (r *AccountsRepository) CreateUser(ctx context.Context, user accounts.NewUser) (int64, error) {
	var id int64
	err := r.run(ctx, "insert_user", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `
INSERT INTO users (first_name, last_name, email, role, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING user_id`,
			user.FirstName, user.LastName, user.Email, string(user.Role), user.PasswordHash,
		).Scan(&id)
	})
	if isUniqueViolation(err) {
		return 0, accounts.ErrDuplicateEmail
	}
	return id, err
}

func (r *AccountsRepository) CreateClient(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.run(ctx, "insert_client", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `INSERT INTO clients (user_id) VALUES ($1) RETURNING client_id`, userID).Scan(&id)
	})
	return id, err
}

func (r *AccountsRepository) ListTeamIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.run(ctx, "list_team_ids", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `SELECT team_id FROM teams ORDER BY team_id`)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		return err
	})
	return ids, err
}

func (r *AccountsRepository) CreateEmployee(ctx context.Context, userID, teamID int64) (int64, error) {
	var id int64
	err := r.run(ctx, "insert_employee", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx,
			`INSERT INTO employees (user_id, team_id) VALUES ($1, $2) RETURNING employee_id`,
			userID, teamID,
		).Scan(&id)
	})
	return id, err
}

func (r *AccountsRepository) FindByEmail(ctx context.Context, email string) (accounts.Credentials, error) {
	var (
		creds accounts.Credentials
		role  string
	)
	err := r.run(ctx, "find_user_by_email", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `
SELECT user_id, first_name, last_name, email, role, password_hash
  FROM users
 WHERE email = $1`, email,
		).Scan(&creds.UserID, &creds.FirstName, &creds.LastName, &creds.Email, &role, &creds.PasswordHash)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return accounts.Credentials{}, accounts.ErrNotFound
	}
	if err != nil {
		return accounts.Credentials{}, err
	}
	creds.Role = accounts.Role(role)
	return creds, nil
}

// WithTx joins the bound transaction or opens a new one.
func (r *AccountsRepository) WithTx(ctx context.Context, fn func(context.Context, accounts.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}
	return r.gw.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &AccountsRepository{executor: executor{gw: r.gw, tx: tx}})
	})
}
