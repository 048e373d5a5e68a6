package ngeniuswebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
)

// Verifier authenticates notifications with an HMAC-SHA256 of the raw body.
// When enforce is false (sandbox) a mismatched signature is tolerated with a
// warning; a missing header is rejected in every mode.
type Verifier struct {
	secret  string
	enforce bool
	logg    *logger.Logger
}

func NewVerifier(secret string, enforce bool, logg *logger.Logger) *Verifier {
	return &Verifier{secret: secret, enforce: enforce, logg: logg}
}

// Verify checks the claimed signature against the exact raw byte sequence of
// the notification body.
func (v *Verifier) Verify(ctx context.Context, payload []byte, header string) error {
	if header == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "signature header missing")
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if hmac.Equal([]byte(expected), []byte(header)) {
		return nil
	}

	if !v.enforce {
		if v.logg != nil {
			v.logg.Warn(ctx, "webhook signature mismatch tolerated outside production")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "signature mismatch")
}
