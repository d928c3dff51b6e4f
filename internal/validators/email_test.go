package validators

import "testing"

func TestIsEmailFormatValid(t *testing.T) {
	valid := []string{"ana@example.com", "rui.costa+clinic@mail.example.org"}
	invalid := []string{"", "ana", "ana@", "@example.com", "Ana <ana@example.com>", "ana@localhost", "ana example@x.com"}

	for _, e := range valid {
		if !IsEmailFormatValid(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsEmailFormatValid(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestIsPasswordStrong(t *testing.T) {
	if IsPasswordStrong("1234567") || !IsPasswordStrong("12345678") {
		t.Fatal("expected an 8 character minimum")
	}
}
