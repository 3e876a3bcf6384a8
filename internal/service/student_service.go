package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]dto.StudentDTO, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	out := make([]dto.StudentDTO, 0, len(students))
	for _, st := range students {
		out = append(out, dto.StudentFromModel(st))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return out, pagination, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	out := dto.StudentFromModel(*student)
	return &out, nil
}

// Create registers a new student; the student code is backend-assigned.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if req.DateOfBirth.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateOfBirth is required")
	}
	student := &models.Student{
		Ho:                req.Ho,
		Ten:               req.Ten,
		DateOfBirth:       req.DateOfBirth.Time(),
		Hometown:          req.Hometown,
		ResidenceProvince: req.ResidenceProvince,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	out := dto.StudentFromModel(*student)
	return &out, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student.Ho = req.Ho
	student.Ten = req.Ten
	student.DateOfBirth = req.DateOfBirth.Time()
	student.Hometown = req.Hometown
	student.ResidenceProvince = req.ResidenceProvince
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	out := dto.StudentFromModel(*student)
	return &out, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// ExportCSV renders the current roster as CSV rows. The export walks every
// page of the filtered roster so the file always holds the full result set.
func (s *StudentService) ExportCSV(ctx context.Context, filter models.StudentFilter) ([]dto.StudentDTO, error) {
	filter.Page = 1
	filter.PageSize = 100
	var out []dto.StudentDTO
	for {
		students, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export students")
		}
		for _, st := range students {
			out = append(out, dto.StudentFromModel(st))
		}
		if len(out) >= total || len(students) == 0 {
			return out, nil
		}
		filter.Page++
	}
}
