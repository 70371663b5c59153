package utils

import "testing"

const testCost = 4 // minimum bcrypt cost keeps the tests fast

func TestHashAndVerify_Success(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := VerifyPassword(hash, "pw123")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword(hash, "wrong")
	if err != nil {
		t.Fatalf("a wrong password must not be an error, got: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
	for _, h := range []string{h1, h2} {
		ok, err := VerifyPassword(h, "same")
		if err != nil || !ok {
			t.Fatalf("hash %q did not verify: ok=%v err=%v", h, ok, err)
		}
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("not-a-bcrypt-hash", "anything")
	if err == nil {
		t.Fatal("expected an error for a corrupted stored hash")
	}
	if ok {
		t.Fatal("malformed hash must not verify")
	}
}
