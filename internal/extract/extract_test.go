package extract

import "testing"

const sample = `{"page":2,"per_page":10,"total":30,"total_pages":3,"data":[{"id":1,"userName":"John Oliver","vitals":{"bloodPressureDiastole":74}},{"id":2,"userName":"Bob Martin"}]}`

func TestInt(t *testing.T) {
	got, ok := Int("total_pages", sample)
	if !ok || got != "3" {
		t.Errorf("Int(total_pages) = %q, %v; want 3, true", got, ok)
	}

	// "page" must not match inside "per_page" or "total_pages" because the quote is part of the pattern
	got, ok = Int("page", sample)
	if !ok || got != "2" {
		t.Errorf("Int(page) = %q, %v; want 2, true", got, ok)
	}

	if _, ok := Int("missing", sample); ok {
		t.Error("expected missing key to be absent")
	}
	if _, ok := Int("userName", sample); ok {
		t.Error("expected string value not to match an int pattern")
	}
}

func TestLastInt(t *testing.T) {
	got, ok := LastInt("id", sample)
	if !ok || got != "2" {
		t.Errorf("LastInt(id) = %q, %v; want 2, true", got, ok)
	}
	first, _ := Int("id", sample)
	if first != "1" {
		t.Errorf("Int(id) = %q, want 1", first)
	}
	if _, ok := LastInt("missing", sample); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestString(t *testing.T) {
	got, ok := String("userName", sample)
	if !ok || got != "John Oliver" {
		t.Errorf("String(userName) = %q, %v; want John Oliver, true", got, ok)
	}
	if _, ok := String("total", sample); ok {
		t.Error("expected numeric value not to match a string pattern")
	}
}

func TestArray(t *testing.T) {
	got, ok := Array("data", `{"data":[1,2,3]}`)
	if !ok || got != "[1,2,3]}" {
		t.Errorf("Array(data) = %q, %v", got, ok)
	}
}

func TestField_QuotesKey(t *testing.T) {
	if _, ok := Int("a.b", `{"axb":1}`); ok {
		t.Error("expected regexp metacharacters in key to be literal")
	}
	got, ok := Int("a.b", `{"a.b":7}`)
	if !ok || got != "7" {
		t.Errorf("Int(a.b) = %q, %v; want 7, true", got, ok)
	}
}
