package task

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager keeps track of the tasks a host has run
type Manager struct {
	tasks map[uuid.UUID]*Task
	mu    sync.RWMutex
}

var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{tasks: make(map[uuid.UUID]*Task)}
}

// GetManager returns the global task manager singleton
func GetManager() *Manager {
	globalManagerOnce.Do(func() {
		globalManager = NewManager()
	})
	return globalManager
}

// CreateTask creates a new task and adds it to the manager
func (m *Manager) CreateTask() *Task {
	t := NewTask()

	m.mu.Lock()
	m.tasks[t.ID] = t
	m.mu.Unlock()

	return t
}

// GetTask retrieves a task by ID
func (m *Manager) GetTask(id uuid.UUID) *Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tasks[id]
}

// RemoveTask removes a task from the manager
func (m *Manager) RemoveTask(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
}

// GetAllTasks returns all tasks ordered by start time
func (m *Manager) GetAllTasks() []*Task {
	m.mu.RLock()
	tasks := make([]*Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	m.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartTime.Before(tasks[j].StartTime)
	})
	return tasks
}

// CleanupCompletedTasks drops every task that is no longer running
func (m *Manager) CleanupCompletedTasks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tasks {
		if s := t.GetState(); s != TaskCreated && s != TaskRunning {
			delete(m.tasks, id)
		}
	}
}
