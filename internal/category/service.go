package category

// Service orchestrates category reads and the admin write path.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	if id <= 0 {
		return Category{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// IDsWithChildren expands a category filter to the category itself plus its
// direct children. Nesting deeper than one level is not expanded.
func (s *Service) IDsWithChildren(id int) ([]int, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}

	children, err := s.repo.ChildIDs(id)
	if err != nil {
		return nil, err
	}
	return append([]int{id}, children...), nil
}

func (s *Service) Create(c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, ErrMissingName
	}
	if c.ParentID != nil {
		if _, err := s.repo.GetByID(*c.ParentID); err != nil {
			return Category{}, err
		}
	}
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, ErrMissingName
	}
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
