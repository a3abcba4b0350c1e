package address

import (
	"errors"
	"testing"
)

type fakeRepo struct {
	addresses []Address
	nextID    int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{nextID: 1} }

func (f *fakeRepo) ListByUser(userID int) ([]Address, error) {
	out := make([]Address, 0)
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(userID, addressID int) (Address, error) {
	for _, a := range f.addresses {
		if a.AddressID == addressID && a.UserID == userID {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (f *fakeRepo) Create(a Address) (Address, error) {
	a.AddressID = f.nextID
	f.nextID++
	f.addresses = append(f.addresses, a)
	return a, nil
}

func (f *fakeRepo) Update(userID, addressID int, a Address) (Address, error) {
	for i := range f.addresses {
		if f.addresses[i].AddressID == addressID && f.addresses[i].UserID == userID {
			a.AddressID = addressID
			a.UserID = userID
			f.addresses[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (f *fakeRepo) Delete(userID, addressID int) error {
	for i := range f.addresses {
		if f.addresses[i].AddressID == addressID && f.addresses[i].UserID == userID {
			f.addresses = append(f.addresses[:i], f.addresses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) ClearDefault(userID int) error {
	for i := range f.addresses {
		if f.addresses[i].UserID == userID {
			f.addresses[i].IsDefault = false
		}
	}
	return nil
}

func validAddress() Address {
	return Address{
		RecipientName:  "Kim Jiwoo",
		RecipientPhone: "010-1234-5678",
		PostalCode:     "06236",
		Address:        "Seoul, Gangnam-gu",
	}
}

func TestCreateAddress_Validation(t *testing.T) {
	service := NewService(newFakeRepo())

	a := validAddress()
	a.PostalCode = ""
	if _, err := service.Create(42, a); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	created, err := service.Create(42, validAddress())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != 42 {
		t.Fatalf("expected owner set, got %d", created.UserID)
	}
}

func TestCreateAddress_DefaultClearsPrevious(t *testing.T) {
	service := NewService(newFakeRepo())

	first := validAddress()
	first.IsDefault = true
	if _, err := service.Create(42, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := validAddress()
	second.Address = "Busan, Haeundae-gu"
	second.IsDefault = true
	if _, err := service.Create(42, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	all, _ := service.List(42)
	defaults := 0
	for _, a := range all {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}
}

func TestAddressOwnershipScoping(t *testing.T) {
	service := NewService(newFakeRepo())

	created, err := service.Create(42, validAddress())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.Update(7, created.AddressID, validAddress()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected foreign update to miss, got %v", err)
	}
	if err := service.Delete(7, created.AddressID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected foreign delete to miss, got %v", err)
	}
	if err := service.Delete(42, created.AddressID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
