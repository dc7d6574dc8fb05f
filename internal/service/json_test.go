package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSONObject_MarshalPreservesInsertionOrder(t *testing.T) {
	obj := NewJSONObject()
	obj.Set("zebra", 1)
	obj.Set("alpha", "two")
	obj.Set("mid", nil)

	got := mustJSON(t, obj)
	want := `{"zebra":1,"alpha":"two","mid":null}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONObject_OverwriteKeepsPosition(t *testing.T) {
	obj := NewJSONObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 3)

	got := mustJSON(t, obj)
	want := `{"a":3,"b":2}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONObject_NestedMarshal(t *testing.T) {
	inner := NewJSONObject()
	inner.Set("x", []any{1, 2})
	obj := NewJSONObject()
	obj.Set("inner", inner)

	got := mustJSON(t, obj)
	want := `{"inner":{"x":[1,2]}}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONObject_Get(t *testing.T) {
	obj := NewJSONObject()
	obj.Set("present", 42)

	if v, ok := obj.Get("present"); !ok || v != 42 {
		t.Fatalf("Get(present) = %v, %v; want 42, true", v, ok)
	}
	if _, ok := obj.Get("absent"); ok {
		t.Fatal("Get(absent) reported found")
	}
}
