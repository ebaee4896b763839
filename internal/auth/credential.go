// Package auth derives the per-request Berdu API credential.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// Credential builds the Authorization header value for the given application
// credentials at the given time. The format is
// "{app_id}.{timestamp}.{signature}" where signature is the base64 encoding
// of an HMAC-SHA256 digest over "{app_id}:{timestamp}:{app_secret}", keyed by
// the app secret. Deterministic for a fixed timestamp.
func Credential(appID, appSecret string, ts time.Time) string {
	unix := ts.Unix()
	message := fmt.Sprintf("%s:%d:%s", appID, unix, appSecret)

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(message))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("%s.%d.%s", appID, unix, signature)
}

// CredentialNow builds a credential for the current time.
func CredentialNow(appID, appSecret string) string {
	return Credential(appID, appSecret, time.Now())
}
