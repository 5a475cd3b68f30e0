package store

import "testing"

func TestCategorySeedData(t *testing.T) {
	_, _, cs, _ := setupTestDB(t)

	categories, err := cs.List()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("expected 6 seed categories, got %d", len(categories))
	}

	expected := []string{"Cleaning", "Food", "Household", "Medication", "Other", "Personal Care"}
	for i, name := range expected {
		if categories[i].Name != name {
			t.Errorf("category[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}

	// The seed marks Food and Medication non-taxable for display grouping.
	byName := make(map[string]bool, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.Taxable
	}
	if byName["Food"] || byName["Medication"] {
		t.Error("Food and Medication seeds should be non-taxable")
	}
	if !byName["Cleaning"] || !byName["Household"] {
		t.Error("Cleaning and Household seeds should be taxable")
	}
}

func TestCategoryCRUD(t *testing.T) {
	_, _, cs, _ := setupTestDB(t)

	category, err := cs.Create("Electronics", true, "#607D8B", "plug")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Name != "Electronics" {
		t.Errorf("name = %q, want %q", category.Name, "Electronics")
	}
	if !category.Taxable {
		t.Error("expected taxable")
	}

	got, err := cs.GetByName("Electronics")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got == nil || got.ID != category.ID {
		t.Fatalf("get by name = %+v, want id %d", got, category.ID)
	}

	updated, err := cs.Update(category.ID, "Tech", false, "#000000", "chip")
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Name != "Tech" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Tech")
	}
	if updated.Taxable {
		t.Error("expected not taxable after update")
	}

	if err := cs.Delete(category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err = cs.GetByID(category.ID)
	if err != nil {
		t.Fatalf("get deleted category: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestCategoryGetByNameMissing(t *testing.T) {
	_, _, cs, _ := setupTestDB(t)

	got, err := cs.GetByName("Nonexistent")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestCategoryDeleteLeavesItemSnapshot(t *testing.T) {
	ls, is, cs, _ := setupTestDB(t)

	list, _ := ls.Create("Weekly shop", nil)
	food, err := cs.GetByName("Food")
	if err != nil || food == nil {
		t.Fatalf("get Food seed: %v", err)
	}

	cat := food.Name
	item, _ := is.Create(list.ID, "Apples", 4.99, 1, &cat, "")

	if err := cs.Delete(food.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := is.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Category == nil || *got.Category != "Food" {
		t.Errorf("item lost its category snapshot: %v", got.Category)
	}
}
