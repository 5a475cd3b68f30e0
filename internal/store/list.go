package store

import (
	"database/sql"
	"fmt"

	"github.com/jrfournier/carttally/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	var budget sql.NullFloat64
	err := scanner.Scan(&l.ID, &l.Name, &budget, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if budget.Valid {
		l.Budget = &budget.Float64
	}
	return &l, nil
}

const listCols = `id, name, budget, created_at`

func (s *ListStore) Create(name string, budget *float64) (*model.List, error) {
	var b sql.NullFloat64
	if budget != nil {
		b = sql.NullFloat64{Float64: *budget, Valid: true}
	}

	result, err := s.db.Exec(`INSERT INTO lists (name, budget) VALUES (?, ?)`, name, b)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) List() ([]model.List, error) {
	rows, err := s.db.Query(`SELECT ` + listCols + ` FROM lists ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

func (s *ListStore) Update(id int64, name string, budget *float64) (*model.List, error) {
	var b sql.NullFloat64
	if budget != nil {
		b = sql.NullFloat64{Float64: *budget, Valid: true}
	}

	_, err := s.db.Exec(`UPDATE lists SET name = ?, budget = ? WHERE id = ?`, name, b, id)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a list. Its items go with it via the foreign key cascade.
func (s *ListStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}
