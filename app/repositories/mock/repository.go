package mock

import (
	"sort"
	"sync"

	"dummyapi/app/models"
	"dummyapi/app/repositories"
)

type RunRepository struct {
	runs   map[int]*models.Run
	nextID int
	mutex  sync.RWMutex
}

func NewRunRepository() *RunRepository {
	return &RunRepository{
		runs:   make(map[int]*models.Run),
		nextID: 1,
	}
}

func (m *RunRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.runs = make(map[int]*models.Run)
	m.nextID = 1
}

// RunRepository implementation
func (m *RunRepository) Create(run *models.Run) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	run.ID = m.nextID
	m.nextID++
	m.runs[run.ID] = run
	return nil
}

func (m *RunRepository) GetByID(id int) (*models.Run, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return run, nil
}

func (m *RunRepository) List(limit, offset int) ([]*models.Run, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	ids := make([]int, 0, len(m.runs))
	for id := range m.runs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var runs []*models.Run
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(runs) >= limit {
			break
		}
		runs = append(runs, m.runs[id])
	}
	return runs, nil
}

func (m *RunRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.runs[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.runs, id)
	return nil
}
