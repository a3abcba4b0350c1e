package dashboard

const recentOrderLimit = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Stats() (Stats, error) {
	revenue, err := s.repo.Revenue()
	if err != nil {
		return Stats{}, err
	}
	counts, err := s.repo.OrderCountsByStatus()
	if err != nil {
		return Stats{}, err
	}
	users, err := s.repo.UserCount()
	if err != nil {
		return Stats{}, err
	}
	products, err := s.repo.ProductCount()
	if err != nil {
		return Stats{}, err
	}
	recent, err := s.repo.RecentOrders(recentOrderLimit)
	if err != nil {
		return Stats{}, err
	}

	totalOrders := 0
	for _, n := range counts {
		totalOrders += n
	}

	return Stats{
		TotalRevenue:   revenue,
		TotalOrders:    totalOrders,
		TotalUsers:     users,
		TotalProducts:  products,
		OrdersByStatus: counts,
		RecentOrders:   recent,
	}, nil
}
