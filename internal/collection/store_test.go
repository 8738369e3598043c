package collection

import (
	"reflect"
	"testing"

	"tdo/internal/models"
)

func taskStore() *Store[models.Task] {
	return New(func(t models.Task) string { return t.ID })
}

func TestReplaceAllAndOrder(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want)
		}
	}
}

func TestInsertAppends(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a"}})
	s.Insert(models.Task{ID: "b"})

	items := s.Items()
	if len(items) != 2 || items[1].ID != "b" {
		t.Errorf("insert did not append: %v", items)
	}
}

func TestReplaceOne(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a", Title: "old"}, {ID: "b"}})
	s.ReplaceOne("a", models.Task{ID: "a", Title: "new", IsCompleted: true})

	got, ok := s.Get("a")
	if !ok || got.Title != "new" || !got.IsCompleted {
		t.Errorf("ReplaceOne did not take: %+v", got)
	}
}

func TestReplaceOneMissingIsNoop(t *testing.T) {
	s := taskStore()
	before := []models.Task{{ID: "a", Title: "keep"}}
	s.ReplaceAll(before)

	s.ReplaceOne("ghost", models.Task{ID: "ghost"})

	after := s.Items()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed: %v -> %v", before, after)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestRemoveOne(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	s.RemoveOne("b")

	items := s.Items()
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "c" {
		t.Errorf("remove broke order: %v", items)
	}

	// Removing again is a no-op.
	s.RemoveOne("b")
	if s.Len() != 2 {
		t.Errorf("double remove changed len: %d", s.Len())
	}
}

func TestFailedMutationLeavesStoreUntouched(t *testing.T) {
	// The caller pattern for every mutation: only apply on success. A
	// failed call means no store method is invoked at all, so the prior
	// state must survive verbatim.
	s := taskStore()
	prior := []models.Task{{ID: "a", Title: "original", Deadline: "2026-09-02T00:00:00Z"}}
	s.ReplaceAll(prior)

	// Simulated rejected update: nothing applied.
	got, _ := s.Get("a")
	if !reflect.DeepEqual(got, prior[0]) {
		t.Errorf("state diverged: %+v", got)
	}
}

func TestCloseDropsLateMutations(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a"}})
	s.Close()

	// A response arriving after the view is gone must not resurrect state.
	s.Insert(models.Task{ID: "late"})
	s.ReplaceAll([]models.Task{{ID: "late"}})
	s.ReplaceOne("a", models.Task{ID: "a"})

	if s.Len() != 0 {
		t.Errorf("closed store holds %d items", s.Len())
	}
	if !s.Closed() {
		t.Error("Closed() = false")
	}
}

func TestClearKeepsStoreUsable(t *testing.T) {
	s := taskStore()
	s.ReplaceAll([]models.Task{{ID: "a"}})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len after clear = %d", s.Len())
	}
	s.Insert(models.Task{ID: "b"})
	if s.Len() != 1 {
		t.Error("store unusable after Clear")
	}
}

func TestLabelStore(t *testing.T) {
	s := New(func(l models.Label) string { return l.ID })
	s.ReplaceAll([]models.Label{{ID: "l1", Name: "Work"}})
	s.ReplaceOne("l1", models.Label{ID: "l1", Name: "Office"})
	got, ok := s.Get("l1")
	if !ok || got.Name != "Office" {
		t.Errorf("label replace failed: %+v", got)
	}
}
