package store

import (
	"database/sql"
	"fmt"

	"github.com/jrfournier/carttally/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var category sql.NullString
	var purchased int

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &item.UnitPrice, &item.Quantity,
		&category, &purchased, &item.Note, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Purchased = purchased != 0
	if category.Valid {
		item.Category = &category.String
	}
	return &item, nil
}

const itemCols = `id, list_id, name, unit_price, quantity, category, purchased, note, created_at`

func (s *ItemStore) GetByID(id int64) (*model.Item, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) Create(listID int64, name string, unitPrice float64, quantity int, category *string, note string) (*model.Item, error) {
	var cat sql.NullString
	if category != nil {
		cat = sql.NullString{String: *category, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO items (list_id, name, unit_price, quantity, category, note) VALUES (?, ?, ?, ?, ?, ?)`,
		listID, name, unitPrice, quantity, cat, note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// ListByList returns a list's items grouped by category for display. The
// summary fold is order-independent, so the ordering here is presentation
// only.
func (s *ItemStore) ListByList(listID int64) ([]model.Item, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM items WHERE list_id = ? ORDER BY purchased ASC, category ASC, created_at ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(id int64, name string, unitPrice float64, quantity int, category *string, note string) (*model.Item, error) {
	var cat sql.NullString
	if category != nil {
		cat = sql.NullString{String: *category, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE items SET name = ?, unit_price = ?, quantity = ?, category = ?, note = ? WHERE id = ?`,
		name, unitPrice, quantity, cat, note, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// TogglePurchased flips an item's purchased flag. Returns nil for a missing item.
func (s *ItemStore) TogglePurchased(id int64) (*model.Item, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	next := 0
	if !item.Purchased {
		next = 1
	}
	_, err = s.db.Exec(`UPDATE items SET purchased = ? WHERE id = ?`, next, id)
	if err != nil {
		return nil, fmt.Errorf("toggle purchased: %w", err)
	}
	return s.GetByID(id)
}

// ClearPurchased deletes all purchased items from a list and returns how many
// were removed.
func (s *ItemStore) ClearPurchased(listID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM items WHERE list_id = ? AND purchased = 1`, listID)
	if err != nil {
		return 0, fmt.Errorf("clear purchased: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
