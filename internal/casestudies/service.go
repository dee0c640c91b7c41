package casestudies

import (
	"context"
	"encoding/json"
	"strings"
)

var emptyJSONArray = json.RawMessage("[]")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]CaseStudy, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (CaseStudy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (CaseStudy, error) {
	item := CaseStudy{
		Title:      strings.TrimSpace(req.Title),
		Client:     strings.TrimSpace(req.Client),
		Date:       strings.TrimSpace(req.Date),
		Duration:   strings.TrimSpace(req.Duration),
		Industry:   strings.TrimSpace(req.Industry),
		Category:   strings.TrimSpace(req.Category),
		Image:      strings.TrimSpace(req.Image),
		SideImages: req.SideImages,
		Content:    req.Content,
	}
	if item.SideImages == nil {
		item.SideImages = []string{}
	}
	if len(item.Content) == 0 {
		item.Content = emptyJSONArray
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (CaseStudy, error) {
	patch := Patch{
		Title:      trimmed(req.Title),
		Client:     trimmed(req.Client),
		Date:       trimmed(req.Date),
		Duration:   trimmed(req.Duration),
		Industry:   trimmed(req.Industry),
		Category:   trimmed(req.Category),
		Image:      trimmed(req.Image),
		SideImages: req.SideImages,
		Content:    req.Content,
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
