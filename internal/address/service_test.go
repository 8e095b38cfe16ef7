package address

import "testing"

func seedAddress(fullName string, isDefault bool) Address {
	return Address{
		FullName: fullName,
		Address:  "1 Main St",
		City:     "Bangkok",
		ZipCode:  "10100",
		Country:  "TH",
		IsDefault: isDefault,
	}
}

func defaultCount(t *testing.T, svc *Service, userID int) int {
	t.Helper()
	all, err := svc.ListByUser(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	n := 0
	for _, a := range all {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestCreate_FirstAddressBecomesDefault(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	first, err := svc.Create(Address{UserID: 7, FullName: "A", Address: "1 Main St", City: "Bangkok", ZipCode: "10100", Country: "TH"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !first.IsDefault {
		t.Fatalf("expected first address to be default")
	}
}

func TestSingleDefaultInvariant(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	a := seedAddress("A", false)
	a.UserID = 7
	if _, err := svc.Create(a); err != nil {
		t.Fatalf("create first: %v", err)
	}

	b := seedAddress("B", true)
	b.UserID = 7
	created, err := svc.Create(b)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if !created.IsDefault {
		t.Fatalf("expected second address to take the default")
	}
	if n := defaultCount(t, svc, 7); n != 1 {
		t.Fatalf("expected exactly one default, got %d", n)
	}

	all, _ := svc.ListByUser(7)
	other := all[1]
	if _, err := svc.SetDefault(other.ID, 7); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if n := defaultCount(t, svc, 7); n != 1 {
		t.Fatalf("expected exactly one default after switch, got %d", n)
	}
}

func TestDelete_PromotesNewDefault(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	a := seedAddress("A", false)
	a.UserID = 7
	if _, err := svc.Create(a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	b := seedAddress("B", false)
	b.UserID = 7
	if _, err := svc.Create(b); err != nil {
		t.Fatalf("create b: %v", err)
	}

	all, _ := svc.ListByUser(7)
	var current Address
	for _, addr := range all {
		if addr.IsDefault {
			current = addr
		}
	}
	if err := svc.Delete(current.ID, 7); err != nil {
		t.Fatalf("delete default: %v", err)
	}
	if n := defaultCount(t, svc, 7); n != 1 {
		t.Fatalf("expected promotion to keep one default, got %d", n)
	}
}

func TestOwnership(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	a := seedAddress("A", false)
	a.UserID = 7
	created, err := svc.Create(a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetDefault(created.ID, 8); err != ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := svc.Delete(created.ID, 8); err != ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized on delete, got %v", err)
	}
	if err := svc.Delete(999, 7); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
