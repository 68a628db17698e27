// Package bootstrap loads development fixtures from a YAML file and applies
// them to the stores. It exists so a fresh memory-backed server (or an empty
// database) starts with enough data to exercise the API by hand.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/wolfeidau/studiodesk/internal/models"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// Seed is the root of the fixture file. Records reference each other by name
// and email rather than IDs; IDs are minted at apply time.
type Seed struct {
	Organizations []SeedOrganization `yaml:"organizations"`
	Users         []SeedUser         `yaml:"users"`
	Projects      []SeedProject      `yaml:"projects"`
}

type SeedOrganization struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"` // User emails
}

type SeedUser struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
}

type SeedProject struct {
	Organization string     `yaml:"organization"` // Organization name
	Name         string     `yaml:"name"`
	Status       string     `yaml:"status"`
	Assignee     string     `yaml:"assignee"` // User email, optional
	Tasks        []SeedTask `yaml:"tasks"`
	Plan         *SeedPlan  `yaml:"plan"`
}

type SeedTask struct {
	Title  string `yaml:"title"`
	Status string `yaml:"status"`
}

type SeedPlan struct {
	Tier          string `yaml:"tier"`
	HoursIncluded int32  `yaml:"hours_included"`
	HoursUsed     int32  `yaml:"hours_used"`
}

// findProjectByName resolves a previously seeded project within an
// organization. Returns nil without error when no project has that name.
func findProjectByName(ctx context.Context, projects store.ProjectStore, orgID uuid.UUID, name string) (*models.Project, error) {
	existing, err := projects.ListFiltered(ctx, store.AccessFilter{OrgIDs: []uuid.UUID{orgID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for organization: %w", err)
	}

	for _, project := range existing {
		if project.Name == name {
			return project, nil
		}
	}

	return nil, nil
}

// Load parses a seed file.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}

// Apply writes the fixtures to the stores. Every record is resolved by its
// natural key first (users by email, organizations and projects by name,
// tasks by title within their project) and only created when missing, so
// applying the same seed to a persistent database on every start is safe.
func Apply(ctx context.Context, seed *Seed, stores store.Stores) error {
	now := time.Now()

	users := make(map[string]*models.User, len(seed.Users))
	for _, su := range seed.Users {
		user := &models.User{
			UserID:    uuid.Must(uuid.NewV7()),
			Email:     su.Email,
			Name:      su.Name,
			Role:      models.Role(su.Role),
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := stores.Users.Create(ctx, user); err != nil {
			if !errors.Is(err, store.ErrUserAlreadyExists) {
				return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
			}
			existing, err := stores.Users.GetByEmail(ctx, su.Email)
			if err != nil {
				return fmt.Errorf("failed to load existing user %s: %w", su.Email, err)
			}
			user = existing
		}
		users[user.Email] = user
	}

	orgs := make(map[string]*models.Organization, len(seed.Organizations))
	for _, so := range seed.Organizations {
		org, err := stores.Organizations.GetByName(ctx, so.Name)
		if err != nil {
			if !errors.Is(err, store.ErrOrganizationNotFound) {
				return fmt.Errorf("failed to resolve organization %s: %w", so.Name, err)
			}
			org = &models.Organization{
				OrgID:     uuid.Must(uuid.NewV7()),
				Name:      so.Name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := stores.Organizations.Create(ctx, org); err != nil {
				return fmt.Errorf("failed to seed organization %s: %w", so.Name, err)
			}
		}
		orgs[org.Name] = org

		for _, email := range so.Members {
			user, ok := users[email]
			if !ok {
				return fmt.Errorf("organization %s references unknown user %s", so.Name, email)
			}

			member := &models.OrganizationMember{
				OrgID:    org.OrgID,
				UserID:   user.UserID,
				Email:    user.Email,
				Role:     user.Role,
				JoinedAt: now,
			}
			if err := stores.Organizations.AddMember(ctx, member); err != nil && !errors.Is(err, store.ErrMemberAlreadyExists) {
				return fmt.Errorf("failed to seed membership %s/%s: %w", so.Name, email, err)
			}
		}
	}

	for _, sp := range seed.Projects {
		org, ok := orgs[sp.Organization]
		if !ok {
			return fmt.Errorf("project %s references unknown organization %s", sp.Name, sp.Organization)
		}

		project, err := findProjectByName(ctx, stores.Projects, org.OrgID, sp.Name)
		if err != nil {
			return err
		}

		if project == nil {
			status := models.ProjectStatus(sp.Status)
			if status == "" {
				status = models.ProjectStatusActive
			}

			project = &models.Project{
				ProjectID: uuid.Must(uuid.NewV7()),
				OrgID:     org.OrgID,
				Name:      sp.Name,
				Status:    status,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if sp.Assignee != "" {
				assignee, ok := users[sp.Assignee]
				if !ok {
					return fmt.Errorf("project %s references unknown assignee %s", sp.Name, sp.Assignee)
				}
				project.AssigneeID = &assignee.UserID
			}

			if err := stores.Projects.Create(ctx, project); err != nil {
				return fmt.Errorf("failed to seed project %s: %w", sp.Name, err)
			}
		}

		existingTasks, err := stores.Tasks.ListByProject(ctx, project.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to list tasks for project %s: %w", sp.Name, err)
		}
		seededTitles := make(map[string]struct{}, len(existingTasks))
		for _, task := range existingTasks {
			seededTitles[task.Title] = struct{}{}
		}

		for _, st := range sp.Tasks {
			if _, exists := seededTitles[st.Title]; exists {
				continue
			}

			taskStatus := models.TaskStatus(st.Status)
			if taskStatus == "" {
				taskStatus = models.TaskStatusOpen
			}

			task := &models.Task{
				TaskID:    uuid.Must(uuid.NewV7()),
				ProjectID: project.ProjectID,
				Title:     st.Title,
				Status:    taskStatus,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := stores.Tasks.Create(ctx, task); err != nil {
				return fmt.Errorf("failed to seed task %s: %w", st.Title, err)
			}
		}

		if sp.Plan != nil {
			plan := &models.MaintenancePlan{
				PlanID:        uuid.Must(uuid.NewV7()),
				ProjectID:     project.ProjectID,
				Tier:          sp.Plan.Tier,
				HoursIncluded: sp.Plan.HoursIncluded,
				HoursUsed:     sp.Plan.HoursUsed,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := stores.Plans.Create(ctx, plan); err != nil && !errors.Is(err, store.ErrPlanAlreadyExists) {
				return fmt.Errorf("failed to seed plan for project %s: %w", sp.Name, err)
			}
		}
	}

	log.Info().
		Int("organizations", len(seed.Organizations)).
		Int("users", len(seed.Users)).
		Int("projects", len(seed.Projects)).
		Msg("Applied seed data")

	return nil
}
