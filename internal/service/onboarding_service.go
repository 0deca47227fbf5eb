package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/model"
)

// OnboardingService pairs a freshly signed-up student with a teacher and
// opens the access request on their behalf.
type OnboardingService struct {
	directory     *TeacherDirectory
	requests      *RequestWorkflow
	notifications *NotificationService
	logger        *zap.Logger
}

func NewOnboardingService(
	directory *TeacherDirectory,
	requests *RequestWorkflow,
	notifications *NotificationService,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		directory:     directory,
		requests:      requests,
		notifications: notifications,
		logger:        logger,
	}
}

// AutoMatch scores the directory against the student's preferences, creates
// an access request to the winner and notifies them. Returns the matched
// teacher, or nil when the directory is empty.
func (s *OnboardingService) AutoMatch(ctx context.Context, studentID string, prefs model.Preferences, intro string) (*model.Teacher, error) {
	teachers, err := s.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto match: %w", err)
	}

	best := FindBestMatch(teachers, prefs)
	if best == nil {
		return nil, nil
	}

	if _, err := s.requests.Create(ctx, studentID, best.ID, intro); err != nil {
		return nil, fmt.Errorf("auto match: %w", err)
	}

	body := fmt.Sprintf("A new student is asking to join your classroom (level: %s, goal: %s).", prefs.Level, prefs.Goal)
	if _, err := s.notifications.Create(ctx, best.ID, "New student request", body, "access-request", "/requests"); err != nil {
		return nil, fmt.Errorf("auto match: %w", err)
	}

	s.logger.Info("student matched",
		zap.String("student_id", studentID),
		zap.String("teacher_id", best.ID))

	return best, nil
}
