package sqlite

import (
	"database/sql"
	"fmt"

	"paypulse/internal/domain"
)

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

// CreateOrUpdateEmployee keys employees by their Telegram user id.
func (r *SqliteEmployeeRepo) CreateOrUpdateEmployee(e domain.Employee) error {
	_, err := r.db.Exec(
		`INSERT INTO employees (id, name, chat_id, role) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, chat_id = excluded.chat_id, role = excluded.role`,
		e.ID, e.Name, e.ChatID, e.Role,
	)
	if err != nil {
		return fmt.Errorf("upsert employee %d: %w", e.ID, err)
	}
	return nil
}

func (r *SqliteEmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	rows, err := r.db.Query(`SELECT id, name, chat_id, role FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.ChatID, &e.Role); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *SqliteEmployeeRepo) GetEmployeeByID(id int) (domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRow(`SELECT id, name, chat_id, role FROM employees WHERE id = ?`, id).Scan(&e.ID, &e.Name, &e.ChatID, &e.Role)
	if isNoRows(err) {
		return domain.Employee{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("get employee %d: %w", id, err)
	}
	return e, nil
}
