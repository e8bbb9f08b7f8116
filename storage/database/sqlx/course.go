package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"studycoach/core"
	"studycoach/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

// courseRow exists to map the nullable exam_date column.
type courseRow struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	TermStart core.Date    `db:"term_start"`
	TermEnd   core.Date    `db:"term_end"`
	ExamDate  sql.NullTime `db:"exam_date"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (r courseRow) course() course.Course {
	c := course.Course{
		ID:        r.ID,
		Name:      r.Name,
		TermStart: r.TermStart,
		TermEnd:   r.TermEnd,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ExamDate.Valid {
		d := core.DateOf(r.ExamDate.Time)
		c.ExamDate = &d
	}
	return c
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	var examDate interface{}
	if c.ExamDate != nil {
		examDate = *c.ExamDate
	}
	_, err := repo.db.Exec(
		`INSERT INTO course (id, name, term_start, term_end, exam_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.TermStart, c.TermEnd, examDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	var rows []courseRow
	err := repo.db.Select(&rows,
		`SELECT id, name, term_start, term_end, exam_date, created_at, updated_at
		 FROM course ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.course())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	var row courseRow
	err := repo.db.Get(&row,
		`SELECT id, name, term_start, term_end, exam_date, created_at, updated_at
		 FROM course WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return course.Course{}, course.ErrNotFound
	}
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return row.course(), nil
}

func (repo *courseRepository) DeleteCourse(id string) error {
	res, err := repo.db.Exec(`DELETE FROM course WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.ErrNotFound
	}
	return nil
}
