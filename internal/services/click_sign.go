package services

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SignFields are the request values covered by a Click sign_string, as they
// arrived on the wire. PrepareID is only set for complete requests.
type SignFields struct {
	ClickTransID    string
	ServiceID       string
	MerchantTransID string
	PrepareID       string
	Amount          string
	Action          string
	SignTime        string
}

// ClickSigner computes and checks Click request signatures with a fixed secret key.
type ClickSigner struct {
	secretKey string
}

func NewClickSigner(secretKey string) *ClickSigner {
	return &ClickSigner{secretKey: secretKey}
}

// Sign returns the lowercase hex MD5 of the concatenated fields.
func (s *ClickSigner) Sign(f SignFields) string {
	var b strings.Builder
	b.WriteString(f.ClickTransID)
	b.WriteString(f.ServiceID)
	b.WriteString(s.secretKey)
	b.WriteString(f.MerchantTransID)
	b.WriteString(f.PrepareID)
	b.WriteString(f.Amount)
	b.WriteString(f.Action)
	b.WriteString(f.SignTime)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether sign matches the signature of f exactly.
func (s *ClickSigner) Verify(f SignFields, sign string) bool {
	return subtle.ConstantTimeCompare([]byte(s.Sign(f)), []byte(sign)) == 1
}
