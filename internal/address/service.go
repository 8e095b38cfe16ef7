package address

import (
	"errors"
	"time"
)

var ErrNotAuthorized = errors.New("address belongs to another user")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(a Address) (Address, error) {
	now := time.Now().Format(time.RFC3339)
	a.CreatedAt = now
	a.UpdatedAt = now

	existing, err := s.repo.ListByUser(a.UserID)
	if err != nil {
		return Address{}, err
	}
	// first address becomes the default automatically
	if len(existing) == 0 {
		a.IsDefault = true
	} else if a.IsDefault {
		if err := s.repo.ClearDefault(a.UserID); err != nil {
			return Address{}, err
		}
	}
	return s.repo.Create(a)
}

func (s *Service) Update(id, userID int, a Address) (Address, error) {
	current, err := s.owned(id, userID)
	if err != nil {
		return Address{}, err
	}

	if a.IsDefault && !current.IsDefault {
		if err := s.repo.ClearDefault(userID); err != nil {
			return Address{}, err
		}
	}
	a.ID = current.ID
	a.UserID = current.UserID
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Update(a)
}

// SetDefault makes the address the user's sole default.
func (s *Service) SetDefault(id, userID int) (Address, error) {
	current, err := s.owned(id, userID)
	if err != nil {
		return Address{}, err
	}
	if current.IsDefault {
		return current, nil
	}
	if err := s.repo.ClearDefault(userID); err != nil {
		return Address{}, err
	}
	current.IsDefault = true
	current.UpdatedAt = time.Now().Format(time.RFC3339)
	return s.repo.Update(current)
}

func (s *Service) Delete(id, userID int) error {
	current, err := s.owned(id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	// promote another address so the user keeps a default
	if current.IsDefault {
		remaining, err := s.repo.ListByUser(userID)
		if err != nil || len(remaining) == 0 {
			return err
		}
		next := remaining[0]
		next.IsDefault = true
		next.UpdatedAt = time.Now().Format(time.RFC3339)
		_, err = s.repo.Update(next)
		return err
	}
	return nil
}

func (s *Service) owned(id, userID int) (Address, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return Address{}, err
	}
	if a.UserID != userID {
		return Address{}, ErrNotAuthorized
	}
	return a, nil
}
