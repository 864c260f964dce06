package imagekit_test

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/maslima80/hatchy-sub001/internal/imagekit"
)

func TestSign(t *testing.T) {
	c := qt.New(t)

	mac := hmac.New(sha1.New, []byte("private_key"))
	mac.Write([]byte("tok1700000000"))
	want := hex.EncodeToString(mac.Sum(nil))

	c.Assert(imagekit.Sign("private_key", "tok", 1700000000), qt.Equals, want)
}

func TestSignDependsOnKeyAndExpiry(t *testing.T) {
	c := qt.New(t)
	base := imagekit.Sign("k1", "tok", 100)
	c.Assert(imagekit.Sign("k2", "tok", 100), qt.Not(qt.Equals), base)
	c.Assert(imagekit.Sign("k1", "tok", 101), qt.Not(qt.Equals), base)
	c.Assert(imagekit.Sign("k1", "other", 100), qt.Not(qt.Equals), base)
}

func TestNewUploadAuth(t *testing.T) {
	c := qt.New(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := imagekit.NewUploadAuth("private_key", now, imagekit.DefaultTTL)
	c.Assert(a.Token, qt.Not(qt.Equals), "")
	c.Assert(a.Expire, qt.Equals, now.Add(30*time.Minute).Unix())
	c.Assert(a.Signature, qt.Equals, imagekit.Sign("private_key", a.Token, a.Expire))

	// Tokens are single-use nonces.
	b := imagekit.NewUploadAuth("private_key", now, imagekit.DefaultTTL)
	c.Assert(b.Token, qt.Not(qt.Equals), a.Token)
}
