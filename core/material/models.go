package material

import (
	"fmt"
	"time"
)

// Material is one uploaded document attached to a course. Metadata holds the
// structured outline (sections, page numbers, word counts) captured by the
// external PDF analyzer at upload time; it may be empty.
type Material struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	FilePath  string    `json:"filePath" db:"file_path"`
	Metadata  string    `json:"-" db:"metadata"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// ContentUnit is one schedulable chunk of material: a section or page range
// with a relative effort weight. Units are produced by the extractor in a
// stable order and are treated as immutable input for one generation run.
type ContentUnit struct {
	// Ref identifies the unit across generation runs; tasks carry it so a
	// regeneration can tell whether their source content still exists.
	Ref           string
	MaterialID    string
	MaterialTitle string
	Title         string
	Order         int // position within the material's extraction order
	PageStart     int // 0 when unknown
	PageEnd       int
	Weight        float64
}

// UnitRef builds the stable reference for the unit at position ord within a
// material. The format is fixed; persisted tasks depend on it.
func UnitRef(materialID string, ord int) string {
	return fmt.Sprintf("%s#%d", materialID, ord)
}

func (u ContentUnit) HasPages() bool {
	return u.PageStart > 0
}
