package history

// HistoryService implements the Service interface on top of a Repo
type HistoryService struct {
	repo Repo
}

// NewService returns a new HistoryService
func NewService(repo Repo) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns all recorded releases, newest first
func (s *HistoryService) List() ([]*Release, error) {
	return s.repo.GetAll()
}

// Latest returns the most recently recorded release
func (s *HistoryService) Latest() (*Release, error) {
	return s.repo.Latest()
}

// Record stores a release record
func (s *HistoryService) Record(release *Release) error {
	_, err := s.repo.Add(release)

	return err
}
