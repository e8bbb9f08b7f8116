package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"studycoach/core/material"
)

type materialRepository struct {
	db *sqlx.DB
}

func NewMaterialRepository(db *sqlx.DB) material.Repository {
	return &materialRepository{db: db}
}

type materialRow struct {
	ID        string         `db:"id"`
	CourseID  string         `db:"course_id"`
	Title     string         `db:"title"`
	FilePath  string         `db:"file_path"`
	Metadata  sql.NullString `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r materialRow) material() material.Material {
	return material.Material{
		ID:        r.ID,
		CourseID:  r.CourseID,
		Title:     r.Title,
		FilePath:  r.FilePath,
		Metadata:  r.Metadata.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (repo *materialRepository) CreateMaterial(m material.Material) (material.Material, error) {
	var metadata interface{}
	if m.Metadata != "" {
		metadata = m.Metadata
	}
	_, err := repo.db.Exec(
		`INSERT INTO material (id, course_id, title, file_path, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.CourseID, m.Title, m.FilePath, metadata, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return material.Material{}, errors.Wrap(err, "inserting material")
	}
	return m, nil
}

func (repo *materialRepository) QueryCourseMaterials(courseID string) ([]material.Material, error) {
	var rows []materialRow
	err := repo.db.Select(&rows,
		`SELECT id, course_id, title, file_path, metadata, created_at, updated_at
		 FROM material WHERE course_id = $1 ORDER BY created_at DESC, id`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying materials")
	}
	mats := make([]material.Material, 0, len(rows))
	for _, r := range rows {
		mats = append(mats, r.material())
	}
	return mats, nil
}

func (repo *materialRepository) GetMaterialByID(id string) (material.Material, error) {
	var row materialRow
	err := repo.db.Get(&row,
		`SELECT id, course_id, title, file_path, metadata, created_at, updated_at
		 FROM material WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return material.Material{}, material.ErrNotFound
	}
	if err != nil {
		return material.Material{}, errors.Wrap(err, "getting material")
	}
	return row.material(), nil
}

func (repo *materialRepository) DeleteMaterial(id string) error {
	res, err := repo.db.Exec(`DELETE FROM material WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting material")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return material.ErrNotFound
	}
	return nil
}
