package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func testSigner(t *testing.T) ssh.Signer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	signer, err := ssh.NewSignerFromSigner(priv)
	if err != nil {
		t.Fatalf("NewSignerFromSigner: %v", err)
	}
	return signer
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer := testSigner(t)
	payload := []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

	encoded, err := signCommitPayload(signer, payload)
	if err != nil {
		t.Fatalf("signCommitPayload: %v", err)
	}
	if !strings.HasPrefix(encoded, commitSignaturePrefix+":") {
		t.Errorf("signature missing prefix: %q", encoded)
	}

	pub, err := verifyCommitSignature(encoded, payload)
	if err != nil {
		t.Fatalf("verifyCommitSignature: %v", err)
	}
	if pub.Type() != signer.PublicKey().Type() {
		t.Errorf("public key type: got %q, want %q", pub.Type(), signer.PublicKey().Type())
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	signer := testSigner(t)
	payload := []byte("original payload")

	encoded, err := signCommitPayload(signer, payload)
	if err != nil {
		t.Fatalf("signCommitPayload: %v", err)
	}

	if _, err := verifyCommitSignature(encoded, []byte("tampered payload")); err == nil {
		t.Error("verification succeeded on tampered payload")
	}
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	if _, err := verifyCommitSignature("not-a-signature", []byte("x")); err == nil {
		t.Error("verification succeeded on malformed signature")
	}
	if _, err := verifyCommitSignature("sshsig-v1:ssh-ed25519:!!!:!!!", []byte("x")); err == nil {
		t.Error("verification succeeded on undecodable signature")
	}
}
