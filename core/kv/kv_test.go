package kv

import "testing"

func TestMemory_SetGet(t *testing.T) {
	s := NewMemory()
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}
}

func TestMemory_GetMissing(t *testing.T) {
	s := NewMemory()
	_, ok, err := s.Get("absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get missing key: want found=false")
	}
}

func TestMemory_Delete(t *testing.T) {
	s := NewMemory()
	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestMemory_Overwrite(t *testing.T) {
	s := NewMemory()
	s.Set("k", "old")
	s.Set("k", "new")
	got, _, _ := s.Get("k")
	if got != "new" {
		t.Errorf("Get after overwrite = %q, want new", got)
	}
}
