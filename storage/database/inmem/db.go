// Package inmemdb provides in-memory repository implementations, used as
// test doubles and for running the API without a database.
package inmemdb

import (
	"sync"

	"studycoach/core/course"
	"studycoach/core/material"
	"studycoach/core/plan"
)

type DB struct {
	mutex     sync.RWMutex
	courses   map[string]*course.Course
	materials map[string]*material.Material
	tasks     map[string]*plan.Task
}

func Open() *DB {
	return &DB{
		courses:   make(map[string]*course.Course),
		materials: make(map[string]*material.Material),
		tasks:     make(map[string]*plan.Task),
	}
}
