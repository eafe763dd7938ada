package auth

import "testing"

func TestGenerateLoginCodeShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateLoginCode()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != LoginCodeLength {
			t.Fatalf("expected %d digits, got %q", LoginCodeLength, code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}

func TestHashAndCheckLoginCode(t *testing.T) {
	code, err := GenerateLoginCode()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	hash, err := HashLoginCode(code)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == code {
		t.Fatal("code stored in the clear")
	}
	if !CheckLoginCode(hash, code) {
		t.Fatal("correct code rejected")
	}
	if CheckLoginCode(hash, "000000") && code != "000000" {
		t.Fatal("wrong code accepted")
	}
}
