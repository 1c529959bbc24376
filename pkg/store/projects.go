package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/today/pkg/model"
)

// Projects returns all projects most-recently-updated first.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.Project(nil), s.projects...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ModifiedAt().After(out[j].ModifiedAt())
	})
	return out
}

func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (s *Store) AddProject(name string) (model.Project, error) {
	s.mu.Lock()
	now := model.Timestamp{Time: s.now()}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled Project"
	}
	p := model.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.projects = append(s.projects, p)
	err := s.saveProjects()
	s.mu.Unlock()
	if err != nil {
		return model.Project{}, err
	}
	stored := p
	s.notify(Change{Type: ChangeUpsert, Collection: Projects, ID: p.ID, Project: &stored})
	return p, nil
}

func (s *Store) UpdateProject(id string, patch ProjectPatch) (model.Project, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Project{}, ErrNotFound
	}
	p := &s.projects[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	p.UpdatedAt = model.Timestamp{Time: s.now()}
	updated := *p
	err := s.saveProjects()
	s.mu.Unlock()
	if err != nil {
		return model.Project{}, err
	}
	s.notify(Change{Type: ChangeUpsert, Collection: Projects, ID: id, Project: &updated})
	return updated, nil
}

// SaveProjectContent replaces just the notes document of a project.
func (s *Store) SaveProjectContent(id, content string) (model.Project, error) {
	return s.UpdateProject(id, ProjectPatch{Content: &content})
}

func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	kept := s.projects[:0]
	found := false
	for _, p := range s.projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.projects = kept
	err := s.saveProjects()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(Change{Type: ChangeDelete, Collection: Projects, ID: id})
	return nil
}

// PutProject and RemoveProject are the remote-origin application paths;
// no observers fire.
func (s *Store) PutProject(p model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			return s.saveProjects()
		}
	}
	s.projects = append(s.projects, p)
	return s.saveProjects()
}

func (s *Store) RemoveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	return s.saveProjects()
}
