package product

import "time"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter) ([]Product, int, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) ListFeatured(limit int) ([]Product, error) {
	return s.repo.ListFeatured(limit)
}

// Related returns other active products from the same category, used on the
// product detail page.
func (s *Service) Related(p Product, limit int) ([]Product, error) {
	if p.CategoryID == nil {
		return []Product{}, nil
	}
	listed, _, err := s.repo.List(Filter{CategoryID: *p.CategoryID, Limit: limit + 1})
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, limit)
	for _, candidate := range listed {
		if candidate.ID == p.ID {
			continue
		}
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Service) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
