package store

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the YAML shape of a board fixture. Due dates and
// creation times are expressed as day offsets relative to load time so
// the fixture stays meaningful regardless of when it is loaded.
type SeedData struct {
	Projects []SeedProject `yaml:"projects"`
	Members  []SeedMember  `yaml:"members"`
	Tasks    []SeedTask    `yaml:"tasks"`
}

// SeedProject describes one seeded project.
type SeedProject struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SeedMember describes one seeded member.
type SeedMember struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	AvatarURL string `yaml:"avatar_url"`
	Token     string `yaml:"token"`
	Role      string `yaml:"role"`
}

// SeedTask describes one seeded task.
type SeedTask struct {
	ID          string `yaml:"id"`
	Project     string `yaml:"project"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Assignee    string `yaml:"assignee"`
	DueInDays   *int   `yaml:"due_in_days"`
	AgeDays     int    `yaml:"age_days"`
}

// ParseSeed decodes a YAML fixture.
func ParseSeed(data []byte) (*SeedData, error) {
	var sd SeedData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &sd, nil
}

// LoadSeedFile reads and decodes a YAML fixture from disk, or the
// embedded default fixture when path is empty.
func LoadSeedFile(path string) (*SeedData, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return ParseSeed(data)
}

// ApplySeed populates the store from a fixture, anchored at now. Each
// seeded task gets a system "created" activity entry so its audit
// trail starts consistently.
func (s *Store) ApplySeed(sd *SeedData, rec *activity.Recorder, now time.Time) error {
	for _, p := range sd.Projects {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.putProject(&domain.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   now,
		})
	}

	for _, m := range sd.Members {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		role := domain.MemberRole(m.Role)
		if role == "" {
			role = domain.MemberRoleMember
		}
		if !role.IsValid() {
			return fmt.Errorf("seed member %q: invalid role %q", m.Name, m.Role)
		}
		s.putMember(&domain.Member{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			AvatarURL: m.AvatarURL,
			Token:     m.Token,
			Role:      role,
			CreatedAt: now,
		})
	}

	for _, t := range sd.Tasks {
		status := domain.TaskStatus(t.Status)
		if status == "" {
			status = domain.TaskStatusTodo
		}
		if !status.IsValid() {
			return fmt.Errorf("seed task %q: %w", t.Title, domain.ErrInvalidStatus)
		}

		priority := domain.TaskPriority(t.Priority)
		if priority == "" {
			priority = domain.TaskPriorityMedium
		}
		if !priority.IsValid() {
			return fmt.Errorf("seed task %q: %w", t.Title, domain.ErrInvalidPriority)
		}

		task := &domain.Task{
			ID:          t.ID,
			ProjectID:   t.Project,
			Title:       t.Title,
			Description: t.Description,
			Status:      status,
			Priority:    priority,
			CreatedAt:   now.AddDate(0, 0, -t.AgeDays),
			UpdatedAt:   now.AddDate(0, 0, -t.AgeDays),
		}
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		if t.Assignee != "" {
			assignee := t.Assignee
			task.AssigneeID = &assignee
		}
		if t.DueInDays != nil {
			due := domain.StartOfDay(now).AddDate(0, 0, *t.DueInDays)
			task.DueDate = &due
		}

		entry := rec.Created(task.ID, task.Title, activity.Actor{})
		s.putTask(task, entry)
	}

	return nil
}
