package material

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"studycoach/core"
)

var ErrNotFound = core.NewNotFoundError("material")

type (
	Repository interface {
		CreateMaterial(m Material) (Material, error)
		// QueryCourseMaterials returns materials in descending creation order.
		QueryCourseMaterials(courseID string) ([]Material, error)
		GetMaterialByID(id string) (Material, error)
		DeleteMaterial(id string) error
	}

	// TaskDetacher clears the source linkage of study tasks that reference a
	// material being deleted; the next regeneration then treats them as stale.
	TaskDetacher interface {
		DetachMaterial(materialID string) error
	}

	Service struct {
		repo      Repository
		tasks     TaskDetacher
		uploadDir string
	}
)

func NewService(repo Repository, tasks TaskDetacher, uploadDir string) *Service {
	return &Service{repo: repo, tasks: tasks, uploadDir: uploadDir}
}

// Upload stores the file under the uploads dir and creates the material
// record. metadata is the analyzer's JSON outline and may be empty.
func (svc *Service) Upload(courseID, title, filename string, src io.Reader, metadata string) (Material, error) {
	id := uuid.NewString()
	storedName := id + "_" + sanitizeFilename(filename)

	if err := os.MkdirAll(svc.uploadDir, 0o755); err != nil {
		return Material{}, errors.Wrap(err, "creating uploads dir")
	}
	dst, err := os.Create(filepath.Join(svc.uploadDir, storedName))
	if err != nil {
		return Material{}, errors.Wrap(err, "creating upload file")
	}
	defer func() { _ = dst.Close() }()
	if _, err = io.Copy(dst, src); err != nil {
		return Material{}, errors.Wrap(err, "writing upload file")
	}

	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	now := time.Now().UTC()
	m := Material{
		ID:        id,
		CourseID:  courseID,
		Title:     core.CleanString(title),
		FilePath:  storedName,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateMaterial(m)
}

func (svc *Service) QueryByCourse(courseID string) ([]Material, error) {
	return svc.repo.QueryCourseMaterials(courseID)
}

func (svc *Service) GetByID(id string) (Material, error) {
	return svc.repo.GetMaterialByID(id)
}

// Delete removes the stored file, deletes the record and detaches the
// material from any study tasks that reference it.
func (svc *Service) Delete(id string) error {
	m, err := svc.repo.GetMaterialByID(id)
	if err != nil {
		return err
	}
	svc.removeFile(m)
	if err = svc.repo.DeleteMaterial(id); err != nil {
		return err
	}
	return svc.tasks.DetachMaterial(id)
}

// DeleteCourseMaterials removes all of a course's materials and their files.
// Task cleanup is the caller's concern (course deletion drops tasks wholesale).
func (svc *Service) DeleteCourseMaterials(courseID string) error {
	mats, err := svc.repo.QueryCourseMaterials(courseID)
	if err != nil {
		return err
	}
	for _, m := range mats {
		svc.removeFile(m)
		if err = svc.repo.DeleteMaterial(m.ID); err != nil {
			return err
		}
	}
	return nil
}

func (svc *Service) removeFile(m Material) {
	if m.FilePath == "" {
		return
	}
	// a missing file is not an error; the record is authoritative
	_ = os.Remove(filepath.Join(svc.uploadDir, m.FilePath))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(core.CleanString(name))
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
