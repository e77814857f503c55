package overlay

import "testing"

func TestResolveFieldKey(t *testing.T) {
	k, err := resolveFieldKey("COMID", "12345")
	if err != nil {
		t.Fatalf("resolveFieldKey: %v", err)
	}
	if k.kind != intField {
		t.Errorf("kind = %v, want intField", k.kind)
	}

	k, err = resolveFieldKey("COMID", "12345.0")
	if err != nil {
		t.Fatalf("resolveFieldKey: %v", err)
	}
	if k.kind != floatField {
		t.Errorf("kind = %v, want floatField", k.kind)
	}

	if _, err = resolveFieldKey("NAME", "upper brook"); err == nil {
		t.Error("non-numeric id field must be rejected at resolution time")
	}
}

func TestFieldKey_Parse(t *testing.T) {
	// dbf values arrive null-padded; the resolved kind is applied without
	// re-inspecting the schema per row.
	ki := fieldKey{"COMID", intField}
	if v, err := ki.parse("\x00\x00 42 "); err != nil || v != 42 {
		t.Errorf("parse int = %d, %v; want 42", v, err)
	}
	kf := fieldKey{"COMID", floatField}
	if v, err := kf.parse("42.0"); err != nil || v != 42 {
		t.Errorf("parse float = %d, %v; want 42", v, err)
	}
	if _, err := ki.parse("x"); err == nil {
		t.Error("want parse error")
	}
}
