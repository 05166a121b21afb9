package domain

type EmployeeRepo interface {
	GetAllEmployees() ([]Employee, error)
	GetEmployeeByID(id int) (Employee, error)
	CreateOrUpdateEmployee(e Employee) error
}

type Employee struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	ChatID int64  `json:"chat_id"`
	Role   string `json:"role"`
}
