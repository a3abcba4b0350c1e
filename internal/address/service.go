package address

import "errors"

var ErrMissingFields = errors.New("recipient name, phone, postal code and address are required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Get(userID, addressID int) (Address, error) {
	return s.repo.Get(userID, addressID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if err := validateAddress(a); err != nil {
		return Address{}, err
	}
	a.UserID = userID
	if a.IsDefault {
		if err := s.repo.ClearDefault(userID); err != nil {
			return Address{}, err
		}
	}
	return s.repo.Create(a)
}

func (s *Service) Update(userID, addressID int, a Address) (Address, error) {
	if err := validateAddress(a); err != nil {
		return Address{}, err
	}
	if a.IsDefault {
		if err := s.repo.ClearDefault(userID); err != nil {
			return Address{}, err
		}
	}
	return s.repo.Update(userID, addressID, a)
}

func (s *Service) Delete(userID, addressID int) error {
	return s.repo.Delete(userID, addressID)
}

func validateAddress(a Address) error {
	if a.RecipientName == "" || a.RecipientPhone == "" || a.PostalCode == "" || a.Address == "" {
		return ErrMissingFields
	}
	return nil
}
