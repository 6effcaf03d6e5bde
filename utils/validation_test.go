package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+919812345678", "9812345678", "98123-45678", "(981) 234-5678"}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Fatalf("expected %q to be valid", phone)
		}
	}

	invalid := []string{"", "abc", "0123456789x", "+"}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Fatalf("expected %q to be invalid", phone)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+919812345678":  "919812345678",
		"98123-45678":    "9812345678",
		"(981) 234 5678": "9812345678",
		"9812345678":     "9812345678",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
