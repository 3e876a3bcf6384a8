package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ngocminh-dev/tcms-api/internal/dto"
	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
	"github.com/ngocminh-dev/tcms-api/pkg/export"
)

type enrollmentDetailReader interface {
	FindDetailByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
}

type certificateRenderer interface {
	Render(cert export.Certificate) ([]byte, error)
}

// CertificateService renders completion-certificate documents for
// enrollments whose status is PASS.
type CertificateService struct {
	enrollments enrollmentDetailReader
	courses     courseReader
	renderer    certificateRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(enrollments enrollmentDetailReader, courses courseReader, renderer certificateRenderer, logger *zap.Logger) *CertificateService {
	if renderer == nil {
		renderer = export.NewCertificatePDF()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{enrollments: enrollments, courses: courses, renderer: renderer, logger: logger, now: time.Now}
}

// RenderPDF produces the certificate document for a PASS enrollment.
func (s *CertificateService) RenderPDF(ctx context.Context, enrollmentID int64) ([]byte, error) {
	detail, err := s.enrollments.FindDetailByID(ctx, enrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if detail.Status != models.CertificatePass {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "certificate requires PASS status")
	}

	course, err := s.courses.FindByID(ctx, detail.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	cert := export.Certificate{
		Serial:      uuid.NewString(),
		StudentName: detail.StudentFullName(),
		StudentCode: detail.StudentMSV,
		CourseCode:  course.CourseCode,
		CourseStart: dto.DateTime(course.StartDate).String(),
		CourseEnd:   dto.DateTime(course.EndDate).String(),
		IssuedOn:    s.now().Format(dto.DateLayout),
	}

	pdf, err := s.renderer.Render(cert)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}
	s.logger.Info("certificate rendered",
		zap.Int64("enrollment_id", enrollmentID),
		zap.String("serial", cert.Serial))
	return pdf, nil
}
