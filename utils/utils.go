package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

const applicationNumberPrefix = "ACE/SPED"

// GenerateApplicationNumber builds a human-readable application number:
// prefix, session entry year, random uppercase suffix. Uniqueness is enforced
// by the caller against the applicant tables.
func GenerateApplicationNumber(session string) string {
	year := session
	if idx := strings.Index(session, "/"); idx > 0 {
		year = session[:idx]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s/%s/%s", applicationNumberPrefix, year, suffix)
}
