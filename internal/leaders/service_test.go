package leaders

import (
	"context"
	"errors"
	"testing"
)

func TestCreateDefaultsOptInTrue(t *testing.T) {
	service, _ := newTestService(t, []string{"ldr-1"})

	created, err := service.Create(context.Background(), mustChangeRequest(t, "", "Marcos", "+5511999990001", []string{"Música"}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "ldr-1" {
		t.Fatalf("expected generated id ldr-1, got %s", created.ID)
	}
	if !created.OptIn {
		t.Fatal("expected omitted optIn to default to true")
	}
}

func TestCreateHonorsExplicitOptOut(t *testing.T) {
	service, _ := newTestService(t, []string{"ldr-1"})

	created, err := service.Create(context.Background(), mustChangeRequest(t, "", "Ana", "+5511999990002", nil, boolPtr(false)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OptIn {
		t.Fatal("expected explicit optIn false to persist")
	}
}

func TestListSortsByName(t *testing.T) {
	service, _ := newTestService(t, []string{"ldr-1", "ldr-2", "ldr-3"})
	ctx := context.Background()

	for _, name := range []string{"Zilda", "Ana", "Marcos"} {
		if _, err := service.Create(ctx, mustChangeRequest(t, "", name, "+5511999990000", nil, nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	list, err := service.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected three leaders, got %d", len(list))
	}
	if list[0].Name != "Ana" || list[1].Name != "Marcos" || list[2].Name != "Zilda" {
		t.Fatalf("unexpected order: %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}
}

func TestUpdateCoalescesOmittedOptIn(t *testing.T) {
	service, _ := newTestService(t, []string{"ldr-1"})
	ctx := context.Background()

	created, err := service.Create(ctx, mustChangeRequest(t, "", "Marcos", "+5511999990001", nil, boolPtr(false)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.Update(ctx, mustChangeRequest(t, created.ID, "Marcos Silva", "+5511999990099", []string{"Jovens"}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.OptIn {
		t.Fatal("omitted optIn must keep the stored false")
	}
	if updated.Name != "Marcos Silva" || updated.Phone != "+5511999990099" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if len(updated.Ministries) != 1 || updated.Ministries[0] != "Jovens" {
		t.Fatalf("ministries not replaced: %v", updated.Ministries)
	}
}

func TestUpdateUnknownLeaderFails(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.Update(context.Background(), mustChangeRequest(t, "ghost", "X", "+5511999990000", nil, nil))
	if !errors.Is(err, ErrLeaderNotFound) {
		t.Fatalf("expected ErrLeaderNotFound, got %v", err)
	}
}

func TestDeleteRemovesLeader(t *testing.T) {
	service, _ := newTestService(t, []string{"ldr-1"})
	ctx := context.Background()

	created, err := service.Create(ctx, mustChangeRequest(t, "", "Marcos", "+5511999990001", nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.Delete(ctx, mustLeaderID(t, created.ID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := service.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d leaders", len(list))
	}
}

func TestChangeRequestRejectsBlankFields(t *testing.T) {
	if _, err := NewChangeRequest("", "  ", "+5511999990000", nil, nil); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := NewChangeRequest("", "Marcos", "  ", nil, nil); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}
