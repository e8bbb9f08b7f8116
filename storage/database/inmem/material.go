package inmemdb

import (
	"sort"

	"studycoach/core/material"
)

type materialRepository struct {
	db *DB
}

func NewMaterialRepository(db *DB) material.Repository {
	return &materialRepository{db: db}
}

func (repo *materialRepository) CreateMaterial(m material.Material) (material.Material, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.materials[m.ID] = &m
	return m, nil
}

func (repo *materialRepository) QueryCourseMaterials(courseID string) ([]material.Material, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	mats := make([]material.Material, 0)
	for _, m := range repo.db.materials {
		if m.CourseID == courseID {
			mats = append(mats, *m)
		}
	}
	sort.SliceStable(mats, func(i, j int) bool {
		if !mats[i].CreatedAt.Equal(mats[j].CreatedAt) {
			return mats[i].CreatedAt.After(mats[j].CreatedAt)
		}
		return mats[i].ID < mats[j].ID
	})
	return mats, nil
}

func (repo *materialRepository) GetMaterialByID(id string) (material.Material, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.materials[id]; ok {
		return *m, nil
	}
	return material.Material{}, material.ErrNotFound
}

func (repo *materialRepository) DeleteMaterial(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.materials[id]; !ok {
		return material.ErrNotFound
	}
	delete(repo.db.materials, id)
	return nil
}
