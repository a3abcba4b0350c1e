package category

import (
	"errors"
	"testing"
)

type fakeRepo struct {
	categories []Category
	nextID     int
}

func newFakeRepo(seed []Category) *fakeRepo {
	next := 1
	for _, c := range seed {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return &fakeRepo{categories: seed, nextID: next}
}

func (f *fakeRepo) List() ([]Category, error) { return f.categories, nil }

func (f *fakeRepo) GetByID(id int) (Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (f *fakeRepo) ChildIDs(id int) ([]int, error) {
	ids := make([]int, 0)
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == id {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) Create(c Category) (Category, error) {
	c.ID = f.nextID
	f.nextID++
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeRepo) Update(id int, c Category) (Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c.ID = id
			f.categories[i] = c
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (f *fakeRepo) Delete(id int) error {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func intPtr(v int) *int { return &v }

func seedTree() []Category {
	return []Category{
		{ID: 1, Name: "Outerwear"},
		{ID: 2, Name: "Coats", ParentID: intPtr(1)},
		{ID: 3, Name: "Jackets", ParentID: intPtr(1)},
		{ID: 4, Name: "Tops"},
	}
}

func TestIDsWithChildren(t *testing.T) {
	service := NewService(newFakeRepo(seedTree()))

	ids, err := service.IDsWithChildren(1)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}

	// leaf category expands to just itself
	leaf, err := service.IDsWithChildren(4)
	if err != nil {
		t.Fatalf("expand leaf: %v", err)
	}
	if len(leaf) != 1 || leaf[0] != 4 {
		t.Fatalf("expected [4], got %v", leaf)
	}

	if _, err := service.IDsWithChildren(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown category, got %v", err)
	}
}

func TestCreate_ValidatesNameAndParent(t *testing.T) {
	service := NewService(newFakeRepo(seedTree()))

	if _, err := service.Create(Category{Name: ""}); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if _, err := service.Create(Category{Name: "Knitwear", ParentID: intPtr(99)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bogus parent, got %v", err)
	}

	created, err := service.Create(Category{Name: "Knitwear", ParentID: intPtr(1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ids, _ := service.IDsWithChildren(1)
	found := false
	for _, id := range ids {
		if id == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("new child %d missing from expansion %v", created.ID, ids)
	}
}
