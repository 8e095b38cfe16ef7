package review

import (
	"math"
	"time"

	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

type Service struct {
	repo     Repository
	products product.Repository
	users    user.Repository
}

func NewService(repo Repository, products product.Repository, users user.Repository) *Service {
	return &Service{repo: repo, products: products, users: users}
}

// Create records the review under the reviewer's display name and writes
// the recomputed average back onto the product.
func (s *Service) Create(userID, productID, rating int, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if _, err := s.products.GetByID(productID); err != nil {
		return Review{}, err
	}
	u, err := s.users.GetByID(userID)
	if err != nil {
		return Review{}, err
	}

	created, err := s.repo.Create(Review{
		ProductID: productID,
		UserID:    userID,
		Name:      u.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Review{}, err
	}

	if err := s.refreshAggregate(productID); err != nil {
		return Review{}, err
	}
	return created, nil
}

// ListByProduct returns the reviews with the aggregate the storefront
// shows on the detail page.
func (s *Service) ListByProduct(productID int) (Summary, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return Summary{}, err
	}
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Reviews:      reviews,
		NumOfReviews: len(reviews),
		Ratings:      average(reviews),
	}, nil
}

func (s *Service) refreshAggregate(productID int) error {
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return err
	}
	return s.products.UpdateRating(productID, average(reviews), len(reviews))
}

func average(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*100) / 100
}
