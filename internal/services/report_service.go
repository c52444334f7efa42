package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

var ErrInvalidGroupBy = errors.New("groupBy must be one of team, owners, project")

// ReportService runs read-only aggregates over tasks.
type ReportService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, teamRepo repository.TeamRepository, projectRepo repository.ProjectRepository) *ReportService {
	return &ReportService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		now:         utcNow,
	}
}

// ClosedGroup is the number of completed tasks sharing one team, project or
// owner. Exactly one of Team, Project and Owner is set when the grouped
// record still exists.
type ClosedGroup struct {
	GroupID string
	Total   int64
	Team    *models.Team
	Project *models.Project
	Owner   *models.User
}

// CompletedLastWeek returns completed tasks last updated within the trailing week.
func (s *ReportService) CompletedLastWeek() ([]models.Task, error) {
	since := s.now().Add(-constants.CompletedReportWindow)
	tasks, err := s.taskRepo.ListCompletedSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	return tasks, nil
}

// PendingWorkTotal sums timeToComplete over tasks that are not completed.
func (s *ReportService) PendingWorkTotal() (int64, error) {
	total, err := s.taskRepo.SumPendingTimeToComplete()
	if err != nil {
		return 0, fmt.Errorf("failed to total pending work: %w", err)
	}
	return total, nil
}

// ClosedByGroup counts completed tasks per team, project or owner.
func (s *ReportService) ClosedByGroup(groupBy string) ([]ClosedGroup, error) {
	dimension := repository.GroupDimension(groupBy)
	switch dimension {
	case repository.GroupByTeam, repository.GroupByOwners, repository.GroupByProject:
	default:
		return nil, ErrInvalidGroupBy
	}

	counts, err := s.taskRepo.CountCompletedBy(dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to count closed tasks: %w", err)
	}

	ids := make([]string, len(counts))
	groups := make([]ClosedGroup, len(counts))
	for i, count := range counts {
		ids[i] = count.GroupID
		groups[i] = ClosedGroup{GroupID: count.GroupID, Total: count.Total}
	}

	if err := s.attachDetails(dimension, ids, groups); err != nil {
		return nil, fmt.Errorf("failed to load group details: %w", err)
	}
	return groups, nil
}

func (s *ReportService) attachDetails(dimension repository.GroupDimension, ids []string, groups []ClosedGroup) error {
	switch dimension {
	case repository.GroupByTeam:
		teams, err := s.teamRepo.FindByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*models.Team, len(teams))
		for i := range teams {
			byID[teams[i].ID] = &teams[i]
		}
		for i := range groups {
			groups[i].Team = byID[groups[i].GroupID]
		}
	case repository.GroupByProject:
		projects, err := s.projectRepo.FindByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*models.Project, len(projects))
		for i := range projects {
			byID[projects[i].ID] = &projects[i]
		}
		for i := range groups {
			groups[i].Project = byID[groups[i].GroupID]
		}
	case repository.GroupByOwners:
		users, err := s.userRepo.FindByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*models.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		for i := range groups {
			groups[i].Owner = byID[groups[i].GroupID]
		}
	}
	return nil
}
