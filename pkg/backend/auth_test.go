package backend

import (
	"strings"
	"testing"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "" || hash == "hunter2" {
		t.Fatalf("suspicious hash %q", hash)
	}
	if !VerifyPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("hunter3", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", hash) {
		t.Error("empty password accepted")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	a, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}

func TestGenerateToken(t *testing.T) {
	token := GenerateToken()
	if !strings.HasPrefix(token, "cv_") {
		t.Fatalf("token %q missing cv_ prefix", token)
	}
	if len(token) != len("cv_")+40 {
		t.Fatalf("token %q has unexpected length", token)
	}
	if GenerateToken() == token {
		t.Error("tokens must be unique")
	}
}
