package service

import (
	"errors"

	"github.com/sirupsen/logrus"

	"paypulse/internal/domain"
)

type EmployeeService struct {
	Repo domain.EmployeeRepo
	Log  logrus.FieldLogger
}

func NewEmployeeService(repo domain.EmployeeRepo, log logrus.FieldLogger) *EmployeeService {
	return &EmployeeService{Repo: repo, Log: log}
}

// EnsureEmployee registers e on first contact and leaves known employees
// untouched.
func (s *EmployeeService) EnsureEmployee(e domain.Employee) error {
	_, err := s.Repo.GetEmployeeByID(e.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.Repo.CreateOrUpdateEmployee(e); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{"employee_id": e.ID, "name": e.Name}).Info("employee registered")
	return nil
}

func (s *EmployeeService) CreateOrUpdateEmployee(e domain.Employee) error {
	return s.Repo.CreateOrUpdateEmployee(e)
}

func (s *EmployeeService) GetAllEmployees() ([]domain.Employee, error) {
	return s.Repo.GetAllEmployees()
}

func (s *EmployeeService) GetEmployeeByID(id int) (domain.Employee, error) {
	return s.Repo.GetEmployeeByID(id)
}
