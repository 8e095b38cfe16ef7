package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrCannotDeleteAdmin = errors.New("cannot delete admin user")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(role, search string, page, limit int) ([]User, int, error) {
	return s.repo.List(role, search, page, limit)
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile applies partial profile changes; empty fields keep their
// current value so PATCH-style payloads work.
func (s *Service) UpdateProfile(id int, name, phone, avatar string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := s.repo.Update(id, u)
	if err != nil {
		return User{}, err
	}
	return sanitizeUser(updated), nil
}

func (s *Service) UpdatePassword(id int, current, next string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	_, err = s.repo.Update(id, u)
	return err
}

func (s *Service) UpdateRole(id int, role string) (User, error) {
	return s.repo.UpdateRole(id, role)
}

// Delete refuses to remove admin accounts.
func (s *Service) Delete(id int) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if u.Role == RoleAdmin {
		return ErrCannotDeleteAdmin
	}
	return s.repo.Delete(id)
}
