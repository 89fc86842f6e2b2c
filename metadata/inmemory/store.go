package inmemorymetadata

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumengive/stellar-sdk/metadata"
)

type store struct {
	projects map[string]metadata.Project
	lock     *sync.RWMutex
}

func NewStore() metadata.Store {
	return &store{
		projects: make(map[string]metadata.Project),
		lock:     &sync.RWMutex{},
	}
}

func (s *store) CreateProject(_ context.Context, project metadata.Project) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.projects[project.ID]; ok {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	s.projects[project.ID] = project
	return nil
}

func (s *store) UpdateProject(_ context.Context, project metadata.Project) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return fmt.Errorf("project %s not found", project.ID)
	}
	s.projects[project.ID] = project
	return nil
}

func (s *store) GetProject(
	_ context.Context, id string,
) (*metadata.Project, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (s *store) Close(_ context.Context) error { return nil }
