package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	academyRepo "pkfit.com.br/pkfitsystem/internal/modules/academy/repository"
	"pkfit.com.br/pkfitsystem/internal/modules/dashboard/dto"
	requestRepo "pkfit.com.br/pkfitsystem/internal/modules/request/repository"
	userRepo "pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	workoutRepo "pkfit.com.br/pkfitsystem/internal/modules/workout/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
	"pkfit.com.br/pkfitsystem/pkg/storage"
)

const (
	statsCacheTTL = 30 * time.Second
	activityLimit = 10
	logoFolder    = "academy_logos"
)

// DashboardService is the academy admin's view of its own tenant. Every
// operation takes the academy id resolved from the caller's token, and every
// lookup is filtered by it, so ids belonging to another academy are
// indistinguishable from ids that do not exist.
type DashboardService interface {
	Stats(ctx context.Context, academyID uuid.UUID) (*dto.Stats, error)
	RecentActivity(ctx context.Context, academyID uuid.UUID) (*dto.Activity, error)

	ListMembers(ctx context.Context, academyID uuid.UUID, filter userRepo.MemberFilter) ([]*entity.User, error)
	CreateMember(ctx context.Context, academyID uuid.UUID, input dto.CreateMemberInput) (*entity.User, error)
	UpdateMember(ctx context.Context, academyID, userID uuid.UUID, input dto.UpdateMemberInput) (*entity.User, error)
	DeleteMember(ctx context.Context, academyID, userID uuid.UUID) error
	ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error)

	ListWorkouts(ctx context.Context, academyID uuid.UUID, filter workoutRepo.Filter) ([]*entity.Workout, error)
	CreateWorkout(ctx context.Context, academyID uuid.UUID, input dto.CreateWorkoutInput) (*entity.Workout, error)
	UpdateWorkout(ctx context.Context, academyID, workoutID uuid.UUID, input dto.UpdateWorkoutInput) (*entity.Workout, error)
	DeleteWorkout(ctx context.Context, academyID, workoutID uuid.UUID) error

	ListRequests(ctx context.Context, academyID uuid.UUID, status string) ([]*entity.WorkoutRequest, error)
	ProcessRequest(ctx context.Context, academyID, requestID uuid.UUID, input dto.ProcessRequestInput) (*entity.WorkoutRequest, error)

	GetAcademy(ctx context.Context, academyID uuid.UUID) (*entity.Academy, error)
	UpdateAcademy(ctx context.Context, academyID uuid.UUID, input dto.UpdateAcademyInput) (*entity.Academy, error)
	UploadLogo(ctx context.Context, academyID uuid.UUID, file io.Reader, fileName string) (*entity.Academy, error)
}

type dashboardService struct {
	users       userRepo.UserRepository
	academies   academyRepo.AcademyRepository
	workouts    workoutRepo.WorkoutRepository
	requests    requestRepo.RequestRepository
	redisClient *redis.Client
	logoStorage storage.ImageStorage
}

func NewDashboardService(
	users userRepo.UserRepository,
	academies academyRepo.AcademyRepository,
	workouts workoutRepo.WorkoutRepository,
	requests requestRepo.RequestRepository,
	redisClient *redis.Client,
	logoStorage storage.ImageStorage,
) DashboardService {
	return &dashboardService{
		users:       users,
		academies:   academies,
		workouts:    workouts,
		requests:    requests,
		redisClient: redisClient,
		logoStorage: logoStorage,
	}
}

func (s *dashboardService) Stats(ctx context.Context, academyID uuid.UUID) (*dto.Stats, error) {
	cacheKey := fmt.Sprintf("academy:stats:%s", academyID)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var stats dto.Stats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats := &dto.Stats{}
	var err error

	if stats.Students, err = s.users.CountByRole(ctx, academyID, entity.RoleAluno, entity.StatusActive); err != nil {
		return nil, err
	}
	if stats.Professors, err = s.users.CountByRole(ctx, academyID, entity.RoleProfessor, entity.StatusActive); err != nil {
		return nil, err
	}
	if stats.Personals, err = s.users.CountByRole(ctx, academyID, entity.RolePersonal, entity.StatusActive); err != nil {
		return nil, err
	}
	if stats.Workouts, err = s.workouts.CountActive(ctx, academyID); err != nil {
		return nil, err
	}
	if stats.PendingRequests, err = s.requests.CountPending(ctx, academyID); err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.redisClient.Set(ctx, cacheKey, payload, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *dashboardService) RecentActivity(ctx context.Context, academyID uuid.UUID) (*dto.Activity, error) {
	users, err := s.users.RecentByAcademy(ctx, academyID, activityLimit)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workouts.RecentByAcademy(ctx, academyID, activityLimit)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.RecentByAcademy(ctx, academyID, activityLimit)
	if err != nil {
		return nil, err
	}

	return &dto.Activity{
		RecentUsers:    users,
		RecentWorkouts: workouts,
		RecentRequests: requests,
	}, nil
}

func (s *dashboardService) ListMembers(ctx context.Context, academyID uuid.UUID, filter userRepo.MemberFilter) ([]*entity.User, error) {
	return s.users.ListByAcademy(ctx, academyID, filter)
}

func (s *dashboardService) CreateMember(ctx context.Context, academyID uuid.UUID, input dto.CreateMemberInput) (*entity.User, error) {
	switch input.Role {
	case entity.RoleProfessor, entity.RolePersonal, entity.RoleAluno:
	default:
		return nil, apperror.BadRequest("role not allowed for academy members")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := s.users.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("email already registered")
	}

	specialty := input.Specialty
	if input.Role == entity.RoleAluno {
		specialty = nil
	}

	status := input.Status
	if status == "" {
		status = entity.StatusActive
	}

	user := &entity.User{
		Name:        input.Name,
		Email:       email,
		Role:        input.Role,
		AcademyID:   &academyID,
		Specialty:   specialty,
		Status:      status,
		FirstAccess: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *dashboardService) UpdateMember(ctx context.Context, academyID, userID uuid.UUID, input dto.UpdateMemberInput) (*entity.User, error) {
	user, err := s.users.FindInAcademy(ctx, userID, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if user.Role == entity.RoleAdminAcademia {
		return nil, apperror.Forbidden("the academy administrator cannot be modified")
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			taken, err := s.users.EmailTaken(ctx, email, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.Conflict("email already in use")
			}
			user.Email = email
		}
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Specialty != nil {
		user.Specialty = input.Specialty
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *dashboardService) DeleteMember(ctx context.Context, academyID, userID uuid.UUID) error {
	user, err := s.users.FindInAcademy(ctx, userID, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	if user.Role == entity.RoleAdminAcademia {
		return apperror.Forbidden("the academy administrator cannot be removed")
	}

	return s.users.Delete(ctx, userID)
}

func (s *dashboardService) ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error) {
	return s.users.ListProfessors(ctx, academyID)
}

func (s *dashboardService) ListWorkouts(ctx context.Context, academyID uuid.UUID, filter workoutRepo.Filter) ([]*entity.Workout, error) {
	return s.workouts.ListByAcademy(ctx, academyID, filter)
}

func (s *dashboardService) CreateWorkout(ctx context.Context, academyID uuid.UUID, input dto.CreateWorkoutInput) (*entity.Workout, error) {
	if _, err := s.users.FindInAcademy(ctx, input.StudentID, academyID, entity.RoleAluno); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("student not found in this academy")
		}
		return nil, err
	}

	if input.ProfessorID != nil {
		if err := s.checkProfessor(ctx, *input.ProfessorID, academyID); err != nil {
			return nil, err
		}
	}

	workout := &entity.Workout{
		AcademyID:   academyID,
		StudentID:   input.StudentID,
		ProfessorID: input.ProfessorID,
		Name:        input.Name,
		Description: input.Description,
		ModelType:   input.ModelType,
		Objective:   input.Objective,
		WeeklySplit: rawToText(input.WeeklySplit),
		Status:      entity.StatusActive,
	}

	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}

	return s.workouts.FindInAcademy(ctx, workout.ID, academyID)
}

func (s *dashboardService) UpdateWorkout(ctx context.Context, academyID, workoutID uuid.UUID, input dto.UpdateWorkoutInput) (*entity.Workout, error) {
	workout, err := s.workouts.FindInAcademy(ctx, workoutID, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("workout not found")
		}
		return nil, err
	}

	if input.ProfessorID != nil {
		if err := s.checkProfessor(ctx, *input.ProfessorID, academyID); err != nil {
			return nil, err
		}
		workout.ProfessorID = input.ProfessorID
	}
	if input.Name != nil {
		workout.Name = *input.Name
	}
	if input.Description != nil {
		workout.Description = *input.Description
	}
	if input.ModelType != nil {
		workout.ModelType = *input.ModelType
	}
	if input.Objective != nil {
		workout.Objective = *input.Objective
	}
	if input.Status != nil {
		workout.Status = *input.Status
	}
	if input.WeeklySplit != nil {
		workout.WeeklySplit = rawToText(input.WeeklySplit)
	}

	workout.Student = nil
	workout.Professor = nil
	if err := s.workouts.Update(ctx, workout); err != nil {
		return nil, err
	}

	return s.workouts.FindInAcademy(ctx, workoutID, academyID)
}

func (s *dashboardService) DeleteWorkout(ctx context.Context, academyID, workoutID uuid.UUID) error {
	if _, err := s.workouts.FindInAcademy(ctx, workoutID, academyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("workout not found")
		}
		return err
	}

	return s.workouts.Delete(ctx, workoutID)
}

func (s *dashboardService) ListRequests(ctx context.Context, academyID uuid.UUID, status string) ([]*entity.WorkoutRequest, error) {
	return s.requests.ListByAcademy(ctx, academyID, status)
}

func (s *dashboardService) ProcessRequest(ctx context.Context, academyID, requestID uuid.UUID, input dto.ProcessRequestInput) (*entity.WorkoutRequest, error) {
	request, err := s.requests.FindInAcademy(ctx, requestID, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("request not found")
		}
		return nil, err
	}

	if input.AssignedTo != nil {
		if err := s.checkProfessor(ctx, *input.AssignedTo, academyID); err != nil {
			return nil, err
		}
	}

	request.Status = input.Status
	request.Response = input.Response
	request.AssignedTo = input.AssignedTo

	request.Student = nil
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	return s.requests.FindInAcademy(ctx, requestID, academyID)
}

func (s *dashboardService) GetAcademy(ctx context.Context, academyID uuid.UUID) (*entity.Academy, error) {
	academy, err := s.academies.FindByID(ctx, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("academy not found")
		}
		return nil, err
	}

	academy.Users = nil
	return academy, nil
}

func (s *dashboardService) UpdateAcademy(ctx context.Context, academyID uuid.UUID, input dto.UpdateAcademyInput) (*entity.Academy, error) {
	academy, err := s.academies.FindByID(ctx, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("academy not found")
		}
		return nil, err
	}

	if input.Name != nil {
		academy.Name = *input.Name
	}
	if input.ResponsibleName != nil {
		academy.ResponsibleName = *input.ResponsibleName
	}
	if input.Phone != nil {
		academy.Phone = *input.Phone
	}
	if input.LogoURL != nil {
		academy.LogoURL = input.LogoURL
	}

	academy.Users = nil
	if err := s.academies.Update(ctx, academy); err != nil {
		return nil, err
	}

	return academy, nil
}

func (s *dashboardService) UploadLogo(ctx context.Context, academyID uuid.UUID, file io.Reader, fileName string) (*entity.Academy, error) {
	if s.logoStorage == nil {
		return nil, apperror.BadRequest("logo storage is not configured")
	}

	academy, err := s.academies.FindByID(ctx, academyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("academy not found")
		}
		return nil, err
	}

	logoURL, err := s.logoStorage.UploadImage(ctx, file, logoFolder, fileName)
	if err != nil {
		return nil, err
	}

	if academy.LogoURL != nil && *academy.LogoURL != "" {
		if err := s.logoStorage.DeleteImage(ctx, *academy.LogoURL); err != nil {
			log.Printf("failed to delete previous logo for academy %s: %v", academyID, err)
		}
	}

	academy.LogoURL = &logoURL
	academy.Users = nil
	if err := s.academies.Update(ctx, academy); err != nil {
		return nil, err
	}

	return academy, nil
}

func (s *dashboardService) checkProfessor(ctx context.Context, professorID, academyID uuid.UUID) error {
	_, err := s.users.FindInAcademy(ctx, professorID, academyID, entity.RoleProfessor, entity.RolePersonal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("professor not found in this academy")
		}
		return err
	}

	return nil
}

func rawToText(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	text := string(raw)
	return &text
}
