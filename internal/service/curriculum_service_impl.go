package service

import (
	"context"

	"github.com/mgrinnell/lectern/internal/domain"
)

type curriculumService struct {
	client CurriculumAPI
}

func NewCurriculumService(client CurriculumAPI) CurriculumService {
	return &curriculumService{client: client}
}

func (s *curriculumService) Status(ctx context.Context) (*domain.CurriculumStatus, error) {
	return s.client.CurriculumStatus(ctx)
}

func (s *curriculumService) Subjects(ctx context.Context) ([]string, error) {
	return s.client.Subjects(ctx)
}

func (s *curriculumService) Grades(ctx context.Context, subject string) ([]string, error) {
	return s.client.Grades(ctx, subject)
}

func (s *curriculumService) Browse(ctx context.Context, subject, grade string) ([]domain.Curriculum, error) {
	return s.client.BrowseCurriculum(ctx, subject, grade)
}

func (s *curriculumService) SubskillContext(ctx context.Context, subskillID string) (*domain.SubskillContext, error) {
	return s.client.SubskillContext(ctx, subskillID)
}

// PrefillRequest builds a curriculum-mode generation request for a
// subskill, ready to submit after the user tweaks it.
func (s *curriculumService) PrefillRequest(ctx context.Context, subskillID string) (*domain.EnhancedGenerationRequest, error) {
	sc, err := s.client.SubskillContext(ctx, subskillID)
	if err != nil {
		return nil, err
	}
	return &domain.EnhancedGenerationRequest{
		Mode: domain.ModeCurriculum,
		CurriculumRequest: &domain.CurriculumReferenceRequest{
			SubskillID:   sc.SubskillID,
			AutoPopulate: true,
		},
		ContentTypes: append([]domain.ComponentType(nil), domain.AllComponentTypes...),
	}, nil
}
