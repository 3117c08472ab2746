package security_test

import (
	"encoding/base64"
	"testing"

	"github.com/tempohq/tempo/internal/security"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestEncryptor_EncryptDecrypt(t *testing.T) {
	encryptor, err := security.NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"short", "hello"},
		{"api key", "tmprl-cloud-api-key-0123456789abcdef"},
		{"long", "this is a much longer string that contains more data and should still work correctly with the encryption and decryption process"},
		{"special", "special chars: !@#$%^&*()_+-=[]{}|;':\",./<>?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := encryptor.Encrypt([]byte(tt.plaintext))
			if err != nil {
				t.Fatalf("encrypt failed: %v", err)
			}

			decrypted, err := encryptor.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("decrypt failed: %v", err)
			}

			if string(decrypted) != tt.plaintext {
				t.Errorf("decrypted text does not match: got %q, want %q", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncryptor_NonDeterministic(t *testing.T) {
	encryptor, err := security.NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	a, err := encryptor.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	b, err := encryptor.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	if string(a) == string(b) {
		t.Error("two encryptions of the same plaintext must differ")
	}
}

func TestEncryptor_TamperedCiphertext(t *testing.T) {
	encryptor, err := security.NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	ciphertext, err := encryptor.Encrypt([]byte("sensitive"))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	ciphertext[len(ciphertext)-1] ^= 0xff
	if _, err := encryptor.Decrypt(ciphertext); err == nil {
		t.Error("expected decryption of tampered ciphertext to fail")
	}
}

func TestEncryptor_InvalidKeySize(t *testing.T) {
	if _, err := security.NewEncryptor(make([]byte, 15)); err == nil {
		t.Error("expected an error for a 15-byte key")
	}
}

func TestNewEncryptorFromBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(testKey())

	encryptor, err := security.NewEncryptorFromBase64(encoded)
	if err != nil {
		t.Fatalf("failed to create encryptor from base64: %v", err)
	}

	ciphertext, err := encryptor.EncryptString("hello")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	plaintext, err := encryptor.DecryptString(ciphertext)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}

	if plaintext != "hello" {
		t.Errorf("round trip mismatch: got %q", plaintext)
	}

	if _, err := security.NewEncryptorFromBase64("not-base64!!"); err == nil {
		t.Error("expected an error for invalid base64")
	}
}
