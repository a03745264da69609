package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"media-review/internal/data/entity"
)

// CodeGenerator issues and verifies the confirmation codes sent by email
// during signup. Codes are never stored: a code is an HMAC over the user's
// identity, their last-login marker and the issue timestamp, so it can be
// verified by recomputation alone. Moving last_login_at (token issuance does
// this) invalidates every code issued before it.
type CodeGenerator struct {
	secret []byte
	ttl    time.Duration
}

func NewCodeGenerator(secret string, ttl time.Duration) *CodeGenerator {
	return &CodeGenerator{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate creates a fresh confirmation code for the user.
func (g *CodeGenerator) Generate(user *entity.User) string {
	return g.generateAt(user, time.Now())
}

// Verify reports whether code is a valid, unexpired code for the user's
// current state.
func (g *CodeGenerator) Verify(user *entity.User, code string) bool {
	tsPart, sig, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}

	issued, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	issuedAt := time.Unix(issued, 0)
	now := time.Now()
	// Small allowance for clock skew on the future side.
	if issuedAt.After(now.Add(time.Minute)) {
		return false
	}
	if now.Sub(issuedAt) > g.ttl {
		return false
	}

	return hmac.Equal([]byte(sig), []byte(g.signature(user, issued)))
}

func (g *CodeGenerator) generateAt(user *entity.User, ts time.Time) string {
	issued := ts.Unix()
	return strconv.FormatInt(issued, 36) + "-" + g.signature(user, issued)
}

func (g *CodeGenerator) signature(user *entity.User, issued int64) string {
	var lastLogin int64
	if user.LastLoginAt != nil {
		lastLogin = user.LastLoginAt.Unix()
	}

	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%s|%d|%d", user.ID.String(), user.Email, lastLogin, issued)
	return hex.EncodeToString(mac.Sum(nil))[:20]
}
