package services

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestClickSigner_PrepareFieldOrder(t *testing.T) {
	signer := NewClickSigner("secret")
	f := SignFields{
		ClickTransID:    "111",
		ServiceID:       "22",
		MerchantTransID: "order-1",
		Amount:          "5000",
		Action:          "0",
		SignTime:        "2024-01-01 10:00:00",
	}

	want := md5Hex("11122secretorder-150000" + "2024-01-01 10:00:00")
	require.Equal(t, want, signer.Sign(f))
	require.True(t, signer.Verify(f, want))
}

func TestClickSigner_CompleteIncludesPrepareID(t *testing.T) {
	signer := NewClickSigner("secret")
	f := SignFields{
		ClickTransID:    "111",
		ServiceID:       "22",
		MerchantTransID: "order-1",
		PrepareID:       "1700000000000",
		Amount:          "5000",
		Action:          "1",
		SignTime:        "2024-01-01 10:00:00",
	}

	want := md5Hex("11122secretorder-1170000000000050001" + "2024-01-01 10:00:00")
	require.Equal(t, want, signer.Sign(f))
}

func TestClickSigner_VerifyRejects(t *testing.T) {
	signer := NewClickSigner("secret")
	f := SignFields{ClickTransID: "1", ServiceID: "2", MerchantTransID: "3", Amount: "4", Action: "0", SignTime: "t"}
	good := signer.Sign(f)

	require.False(t, signer.Verify(f, ""))
	require.False(t, signer.Verify(f, good[:len(good)-1]+"x"))
	require.False(t, NewClickSigner("other").Verify(f, good))

	f.Amount = "5"
	require.False(t, signer.Verify(f, good))
}
