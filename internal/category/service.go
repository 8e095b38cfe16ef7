package category

import (
	"errors"
	"strings"
	"time"

	"github.com/sirawit-dev/storefront-backend/internal/product"
)

var ErrHasProducts = errors.New("category still has products")

type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (Category, error) {
	return s.repo.GetBySlug(slug)
}

// Tree returns the categories as a forest of root nodes with children
// attached. Orphans whose parent is missing surface as roots.
func (s *Service) Tree() ([]Node, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	children := make(map[int][]Category)
	byID := make(map[int]bool, len(all))
	for _, cat := range all {
		byID[cat.ID] = true
	}
	roots := make([]Category, 0)
	for _, cat := range all {
		if cat.ParentID != nil && byID[*cat.ParentID] {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat)
		} else {
			roots = append(roots, cat)
		}
	}

	nodes := make([]Node, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, buildNode(root, children))
	}
	return nodes, nil
}

func buildNode(cat Category, children map[int][]Category) Node {
	node := Node{Category: cat, Children: []Node{}}
	for _, child := range children[cat.ID] {
		node.Children = append(node.Children, buildNode(child, children))
	}
	return node
}

func (s *Service) Create(cat Category) (Category, error) {
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}
	if cat.Status == "" {
		cat.Status = StatusActive
	}
	now := time.Now().Format(time.RFC3339)
	cat.CreatedAt = now
	cat.UpdatedAt = now
	return s.repo.Create(cat)
}

func (s *Service) Update(cat Category) (Category, error) {
	current, err := s.repo.GetByID(cat.ID)
	if err != nil {
		return Category{}, err
	}
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}
	cat.CreatedAt = current.CreatedAt
	cat.UpdatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Update(cat)
}

// Delete refuses to remove a category that still has products assigned.
func (s *Service) Delete(id int) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	count, err := s.products.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasProducts
	}
	return s.repo.Delete(id)
}

// Slugify lowercases the name and collapses runs of non-alphanumerics
// into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
