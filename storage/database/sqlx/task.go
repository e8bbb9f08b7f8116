package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"studycoach/core/plan"
)

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) plan.Repository {
	return &taskRepository{db: db}
}

const taskColumns = `id, course_id, date, title, description, completed, source_ref, created_at, updated_at`

func (repo *taskRepository) GetCourseTasks(courseID string) ([]plan.Task, error) {
	var tasks []plan.Task
	err := repo.db.Select(&tasks,
		`SELECT `+taskColumns+` FROM study_task WHERE course_id = $1 ORDER BY date, title`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying course tasks")
	}
	return tasks, nil
}

func (repo *taskRepository) GetAllTasks() ([]plan.Task, error) {
	var tasks []plan.Task
	err := repo.db.Select(&tasks,
		`SELECT `+taskColumns+` FROM study_task ORDER BY date, title`)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return tasks, nil
}

func (repo *taskRepository) GetTaskByID(id string) (plan.Task, error) {
	var t plan.Task
	err := repo.db.Get(&t, `SELECT `+taskColumns+` FROM study_task WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return plan.Task{}, plan.ErrTaskNotFound
	}
	if err != nil {
		return plan.Task{}, errors.Wrap(err, "getting task")
	}
	return t, nil
}

// SaveTasks applies a generation delta in a single transaction so a failed
// regeneration leaves the previous task set untouched.
func (repo *taskRepository) SaveTasks(courseID string, inserted []plan.Task, deletedIDs []string) error {
	tx, err := repo.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if len(deletedIDs) > 0 {
		if _, err = tx.Exec(
			`DELETE FROM study_task WHERE course_id = $1 AND id = ANY($2)`,
			courseID, pq.Array(deletedIDs),
		); err != nil {
			return errors.Wrap(err, "deleting stale tasks")
		}
	}
	for _, t := range inserted {
		if _, err = tx.Exec(
			`INSERT INTO study_task (`+taskColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			t.ID, courseID, t.Date, t.Title, t.Description, t.Completed, t.SourceRef, t.CreatedAt, t.UpdatedAt,
		); err != nil {
			return errors.Wrap(err, "inserting task")
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

func (repo *taskRepository) SetTaskCompleted(id string, completed bool, updatedAt time.Time) (plan.Task, error) {
	res, err := repo.db.Exec(
		`UPDATE study_task SET completed = $2, updated_at = $3 WHERE id = $1`,
		id, completed, updatedAt,
	)
	if err != nil {
		return plan.Task{}, errors.Wrap(err, "updating task")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return plan.Task{}, plan.ErrTaskNotFound
	}
	return repo.GetTaskByID(id)
}

func (repo *taskRepository) DeleteCourseTasks(courseID string) error {
	_, err := repo.db.Exec(`DELETE FROM study_task WHERE course_id = $1`, courseID)
	return errors.Wrap(err, "deleting course tasks")
}

func (repo *taskRepository) DetachMaterialTasks(materialID string) error {
	// source_ref holds comma-joined "materialID#ordinal" refs
	_, err := repo.db.Exec(
		`UPDATE study_task SET source_ref = '' WHERE source_ref LIKE '%' || $1 || '%'`,
		materialID,
	)
	return errors.Wrap(err, "detaching material tasks")
}
