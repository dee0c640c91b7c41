package auth

import "testing"

func TestVerifyPlaintext(t *testing.T) {
	creds := AdminCredentials{Username: "admin", Password: "s3cret"}

	if !creds.Verify("admin", "s3cret") {
		t.Fatalf("exact match should verify")
	}
	mismatches := [][2]string{
		{"admin", "wrong"},
		{"Admin", "s3cret"},
		{"admin", "S3cret"},
		{"", ""},
	}
	for _, m := range mismatches {
		if creds.Verify(m[0], m[1]) {
			t.Fatalf("expected %q/%q to fail", m[0], m[1])
		}
	}
}

func TestVerifyHashTakesPrecedence(t *testing.T) {
	hash, err := HashPassword("real-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	creds := AdminCredentials{Username: "admin", Password: "stale-plaintext", PasswordHash: hash}

	if !creds.Verify("admin", "real-password") {
		t.Fatalf("hash match should verify")
	}
	if creds.Verify("admin", "stale-plaintext") {
		t.Fatalf("plaintext must be ignored when a hash is configured")
	}
}

func TestVerifyUnconfigured(t *testing.T) {
	if (AdminCredentials{}).Verify("", "") {
		t.Fatalf("unconfigured credentials must never verify")
	}
	if (AdminCredentials{Username: "admin"}).Verify("admin", "") {
		t.Fatalf("missing password must never verify")
	}
}
