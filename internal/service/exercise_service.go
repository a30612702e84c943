package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
	"gymwell/gym-app/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// How often Create retries after losing an id race with a concurrent insert.
const maxIDAttempts = 3

var errExerciseNotFound = apperror.NotFound("exercise not found")

// ExerciseInput is a new catalog entry. A nil ID lets the service pick the next one.
type ExerciseInput struct {
	ID          *int64
	Name        string
	Type        string
	Description string
	Duration    *int
	Difficulty  *int
	Videos      []string
}

// VideoUpload describes a presigned upload slot for an exercise video.
type VideoUpload struct {
	UploadURL string
	VideoURL  string
	ObjectKey string
	ExpiresAt time.Time
}

type ExerciseService interface {
	List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
	Create(ctx context.Context, caller domain.Caller, input ExerciseInput) (*domain.Exercise, error)
	Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error)
	Delete(ctx context.Context, id int64) error
	RequestVideoUpload(ctx context.Context, id int64, fileName, contentType string) (*VideoUpload, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage // nil when video storage is not configured
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService. fileStorage may be nil.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
		now:          time.Now,
	}
}

func (s *exerciseService) List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list exercises", err)
	}
	return exercises, nil
}

func (s *exerciseService) Create(ctx context.Context, caller domain.Caller, input ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if input.Type == "" {
		return nil, apperror.Validation("type is required")
	}
	exType := domain.ExerciseType(input.Type)
	if !exType.Valid() {
		return nil, apperror.Validation("type must be one of cardio, strength, mobility")
	}
	if input.Difficulty == nil {
		return nil, apperror.Validation("difficulty is required")
	}
	if !domain.ValidDifficulty(*input.Difficulty) {
		return nil, apperror.Validation("difficulty must be 1, 2 or 3")
	}
	if input.Duration != nil && *input.Duration < 0 {
		return nil, apperror.Validation("duration must be >= 0")
	}
	if input.ID != nil && *input.ID <= 0 {
		return nil, apperror.Validation("id must be a positive integer")
	}

	exercise := &domain.Exercise{
		Name:        name,
		Type:        exType,
		Description: strings.TrimSpace(input.Description),
		Duration:    input.Duration,
		Difficulty:  *input.Difficulty,
		Videos:      normalizeVideos(input.Videos),
		CreatedBy:   caller.ID,
	}

	if input.ID != nil {
		exercise.ID = *input.ID
		if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, apperror.Conflict("an exercise with this id already exists", err)
			}
			return nil, storeError("create exercise", err)
		}
		return exercise, nil
	}

	for attempt := 1; ; attempt++ {
		maxID, err := s.exerciseRepo.MaxID(ctx)
		if err != nil {
			return nil, storeError("max exercise id", err)
		}
		exercise.ID = maxID + 1

		err = s.exerciseRepo.Create(ctx, exercise)
		if err == nil {
			return exercise, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, storeError("create exercise", err)
		}
		if attempt == maxIDAttempts {
			return nil, apperror.Conflict("could not allocate an exercise id, please retry", err)
		}
		log.Debugf("exercise id %d taken concurrently, retrying", exercise.ID)
	}
}

func (s *exerciseService) Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	if update.Empty() {
		return nil, apperror.Validation("no updatable fields provided")
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		update.Name = &name
	}
	if update.Type != nil && !update.Type.Valid() {
		return nil, apperror.Validation("type must be one of cardio, strength, mobility")
	}
	if update.Difficulty != nil && !domain.ValidDifficulty(*update.Difficulty) {
		return nil, apperror.Validation("difficulty must be 1, 2 or 3")
	}
	if update.Duration != nil && *update.Duration < 0 {
		return nil, apperror.Validation("duration must be >= 0")
	}
	if update.Videos != nil {
		videos := normalizeVideos(*update.Videos)
		update.Videos = &videos
	}

	exercise, err := s.exerciseRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errExerciseNotFound
		}
		return nil, storeError("update exercise", err)
	}
	return exercise, nil
}

// Delete removes the exercise. Videos hosted in our bucket are removed on a
// best-effort basis; routines and logs that reference the id are left as is.
func (s *exerciseService) Delete(ctx context.Context, id int64) error {
	exercise, err := s.exerciseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errExerciseNotFound
		}
		return storeError("delete exercise", err)
	}

	if s.fileStorage == nil {
		return nil
	}
	for _, video := range exercise.Videos {
		key, ok := s.fileStorage.KeyFromURL(video)
		if !ok {
			continue
		}
		if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
			log.Warnf("delete video %s of exercise %d: %v", key, id, err)
		}
	}
	return nil
}

func (s *exerciseService) RequestVideoUpload(ctx context.Context, id int64, fileName, contentType string) (*VideoUpload, error) {
	if s.fileStorage == nil {
		return nil, apperror.New(apperror.ErrNotFound, "video uploads are not enabled", nil)
	}
	if !strings.HasPrefix(contentType, "video/") {
		return nil, apperror.Validation("contentType must be a video/* media type")
	}
	if _, err := s.exerciseRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errExerciseNotFound
		}
		return nil, storeError("get exercise", err)
	}

	key := videoObjectKey(id, fileName)
	expires := storage.DefaultPresignedURLExpiry
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, expires)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &VideoUpload{
		UploadURL: uploadURL,
		VideoURL:  s.fileStorage.ObjectURL(key),
		ObjectKey: key,
		ExpiresAt: s.now().Add(expires).UTC(),
	}, nil
}

// videoObjectKey builds exercises/<id>/<uuid><ext>. Only the extension of the
// client file name is kept.
func videoObjectKey(exerciseID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return "exercises/" + formatID(exerciseID) + "/" + uuid.NewString() + ext
}

// normalizeVideos trims entries and drops blanks.
func normalizeVideos(videos []string) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
