package postgres

import (
	"context"

	"github.com/aqtareen/Taqreeb/internal/domain/tasks"
	"github.com/jackc/pgx/v5"
)

var _ tasks.Repository = (*TaskRepository)(nil)

type TaskRepository struct {
	executor
}

const taskColumns = `task_id, task_name, event_id, team_id`

func scanTask(row pgx.Row) (tasks.Task, error) {
	var t tasks.Task
	err := row.Scan(&t.ID, &t.Name, &t.EventID, &t.TeamID)
	return t, err
}

func (r *TaskRepository) List(ctx context.Context) ([]tasks.Task, error) {
	var out []tasks.Task
	err := r.run(ctx, "list_tasks", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY task_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (tasks.Task, error) {
			return scanTask(row)
		})
		return err
	})
	return out, err
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (tasks.Task, error) {
	var task tasks.Task
	err := r.run(ctx, "get_task", func(ctx context.Context, q Querier) error {
		var err error
		task, err = scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`, id))
		return err
	})
	return task, notFound(err, tasks.ErrNotFound)
}

func (r *TaskRepository) Create(ctx context.Context, task tasks.Task) (tasks.Task, error) {
	var created tasks.Task
	err := r.run(ctx, "insert_task", func(ctx context.Context, q Querier) error {
		var err error
		created, err = scanTask(q.QueryRow(ctx, `
INSERT INTO tasks (task_name, event_id, team_id)
VALUES ($1, $2, $3)
RETURNING `+taskColumns,
			task.Name, nullableID(task.EventID), nullableID(task.TeamID)))
		return err
	})
	if isForeignKeyViolation(err) {
		return tasks.Task{}, tasks.ErrInvalidReference
	}
	return created, err
}

func (r *TaskRepository) Update(ctx context.Context, task tasks.Task) (tasks.Task, error) {
	var updated tasks.Task
	err := r.run(ctx, "update_task", func(ctx context.Context, q Querier) error {
		var err error
		updated, err = scanTask(q.QueryRow(ctx, `
UPDATE tasks
   SET task_name = $2, event_id = $3, team_id = $4
 WHERE task_id = $1
RETURNING `+taskColumns,
			task.ID, task.Name, nullableID(task.EventID), nullableID(task.TeamID)))
		return err
	})
	if isForeignKeyViolation(err) {
		return tasks.Task{}, tasks.ErrInvalidReference
	}
	return updated, notFound(err, tasks.ErrNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "delete_task", `DELETE FROM tasks WHERE task_id = $1`, id, tasks.ErrNotFound)
}
