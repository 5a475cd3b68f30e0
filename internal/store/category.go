package store

import (
	"database/sql"
	"fmt"

	"github.com/jrfournier/carttally/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	var taxable int
	err := scanner.Scan(&c.ID, &c.Name, &taxable, &c.Color, &c.Icon, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Taxable = taxable != 0
	return &c, nil
}

const categoryCols = `id, name, taxable, color, icon, created_at`

func (s *CategoryStore) List() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) GetByID(id int64) (*model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) GetByName(name string) (*model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE name = ?`, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) Create(name string, taxable bool, color, icon string) (*model.Category, error) {
	t := 0
	if taxable {
		t = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO categories (name, taxable, color, icon) VALUES (?, ?, ?, ?)`,
		name, t, color, icon,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CategoryStore) Update(id int64, name string, taxable bool, color, icon string) (*model.Category, error) {
	t := 0
	if taxable {
		t = 1
	}

	_, err := s.db.Exec(
		`UPDATE categories SET name = ?, taxable = ?, color = ?, icon = ? WHERE id = ?`,
		name, t, color, icon, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a category. Items keep their category-name snapshot, so no
// re-tagging is required.
func (s *CategoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
