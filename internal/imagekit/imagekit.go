// internal/imagekit/imagekit.go
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// UploadAuth is the short-lived parameter set a browser needs for a direct
// upload: the signature is HMAC-SHA1 of token+expire under the private key,
// which never leaves the server.
type UploadAuth struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// DefaultTTL is how long generated upload parameters stay valid.
const DefaultTTL = 30 * time.Minute

// NewUploadAuth generates signed upload parameters.
func NewUploadAuth(privateKey string, now time.Time, ttl time.Duration) UploadAuth {
	token := uuid.NewString()
	expire := now.Add(ttl).Unix()
	return UploadAuth{
		Token:     token,
		Expire:    expire,
		Signature: Sign(privateKey, token, expire),
	}
}

// Sign computes the upload signature for a token and expiry.
func Sign(privateKey, token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
