package inmemdb

import (
	"sort"
	"time"

	"studycoach/core/plan"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) plan.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) query(courseID string) []plan.Task {
	tasks := make([]plan.Task, 0)
	for _, t := range repo.db.tasks {
		if courseID == "" || t.CourseID == courseID {
			tasks = append(tasks, *t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Date != tasks[j].Date {
			return tasks[i].Date.Before(tasks[j].Date)
		}
		return tasks[i].Title < tasks[j].Title
	})
	return tasks
}

func (repo *taskRepository) GetCourseTasks(courseID string) ([]plan.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(courseID), nil
}

func (repo *taskRepository) GetAllTasks() ([]plan.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(""), nil
}

func (repo *taskRepository) GetTaskByID(id string) (plan.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tasks[id]; ok {
		return *t, nil
	}
	return plan.Task{}, plan.ErrTaskNotFound
}

func (repo *taskRepository) SaveTasks(courseID string, inserted []plan.Task, deletedIDs []string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range deletedIDs {
		delete(repo.db.tasks, id)
	}
	for _, t := range inserted {
		t := t
		t.CourseID = courseID
		repo.db.tasks[t.ID] = &t
	}
	return nil
}

func (repo *taskRepository) SetTaskCompleted(id string, completed bool, updatedAt time.Time) (plan.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t, ok := repo.db.tasks[id]
	if !ok {
		return plan.Task{}, plan.ErrTaskNotFound
	}
	t.Completed = completed
	t.UpdatedAt = updatedAt
	return *t, nil
}

func (repo *taskRepository) DeleteCourseTasks(courseID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, t := range repo.db.tasks {
		if t.CourseID == courseID {
			delete(repo.db.tasks, id)
		}
	}
	return nil
}

func (repo *taskRepository) DetachMaterialTasks(materialID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, t := range repo.db.tasks {
		for _, ref := range t.SourceRefs() {
			if refMaterial(ref) == materialID {
				t.SourceRef = ""
				break
			}
		}
	}
	return nil
}

func refMaterial(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '#' {
			return ref[:i]
		}
	}
	return ref
}
