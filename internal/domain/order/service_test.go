package order

import (
	"context"
	"sort"
	"testing"
	"time"
)

type mockRepo struct {
	orders map[int64]*Order
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: make(map[int64]*Order), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, o *Order) error {
	o.ID = m.nextID
	m.nextID++
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, o *Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Order, int, error) {
	var result []*Order
	for _, o := range m.orders {
		cp := *o
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

var testDOB = time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	svc := newTestService()

	o, err := svc.Create(context.Background(), &CreateRequest{
		FirstName: "John", LastName: "Smith", DateOfBirth: testDOB,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ID == 0 {
		t.Error("expected assigned id")
	}
	if o.FirstName != "John" || o.LastName != "Smith" {
		t.Errorf("got %q %q", o.FirstName, o.LastName)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing first name", CreateRequest{LastName: "Smith", DateOfBirth: testDOB}},
		{"missing last name", CreateRequest{FirstName: "John", DateOfBirth: testDOB}},
		{"missing dob", CreateRequest{FirstName: "John", LastName: "Smith"}},
		{"first name too long", CreateRequest{FirstName: string(long), LastName: "Smith", DateOfBirth: testDOB}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), &tc.req); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), 42); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestService_Update_Partial(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	o, err := svc.Create(context.Background(), &CreateRequest{
		FirstName: "John", LastName: "Smith", DateOfBirth: testDOB,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Backdate so the updated_at change is observable.
	repo.orders[o.ID].UpdatedAt = time.Now().Add(-time.Hour)
	before := repo.orders[o.ID].UpdatedAt

	newLast := "Doe"
	got, err := svc.Update(context.Background(), o.ID, &UpdateRequest{LastName: &newLast})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FirstName != "John" {
		t.Errorf("first name changed to %q on partial update", got.FirstName)
	}
	if got.LastName != "Doe" {
		t.Errorf("got last name %q, want Doe", got.LastName)
	}
	if !got.DateOfBirth.Equal(testDOB) {
		t.Errorf("dob changed to %v on partial update", got.DateOfBirth)
	}
	if !got.UpdatedAt.After(before) {
		t.Error("updated_at not refreshed")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService()
	first := "Jane"
	if _, err := svc.Update(context.Background(), 42, &UpdateRequest{FirstName: &first}); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestService_Update_Validation(t *testing.T) {
	svc := newTestService()
	o, _ := svc.Create(context.Background(), &CreateRequest{
		FirstName: "John", LastName: "Smith", DateOfBirth: testDOB,
	})

	empty := ""
	if _, err := svc.Update(context.Background(), o.ID, &UpdateRequest{FirstName: &empty}); err == nil {
		t.Error("expected validation error for empty first name")
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	o, _ := svc.Create(context.Background(), &CreateRequest{
		FirstName: "John", LastName: "Smith", DateOfBirth: testDOB,
	})

	if err := svc.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), o.ID); err != ErrNotFound {
		t.Errorf("got %v after delete, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), o.ID); err != ErrNotFound {
		t.Errorf("second delete got %v, want ErrNotFound", err)
	}
}

func TestService_List_Pagination(t *testing.T) {
	svc := newTestService()
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), &CreateRequest{
			FirstName: "John", LastName: "Smith", DateOfBirth: testDOB,
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	orders, total, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("got total %d, want 5", total)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	if orders[0].ID != 3 || orders[1].ID != 4 {
		t.Errorf("got ids %d, %d, want 3, 4", orders[0].ID, orders[1].ID)
	}
}
