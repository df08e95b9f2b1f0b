package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	ReferencePrefix       = "DON"
	referenceSuffixLength = 6
	referralStemLength    = 15
	referralSuffixLength  = 4
	referralFallbackStem  = "REF"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// GenerateReferenceNumber builds DON-<base36 unix millis>-<6 random chars>.
// Uniqueness relies on the timestamp plus randomness; callers do not retry.
func GenerateReferenceNumber(now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return ReferencePrefix + "-" + stamp + "-" + RandomString(referenceSuffixLength)
}

// ReferralStem is the deterministic part of a referral code derived from a name.
func ReferralStem(name string) string {
	stem := nonAlphanumeric.ReplaceAllString(name, "")
	stem = whitespaceRun.ReplaceAllString(strings.TrimSpace(stem), "-")
	stem = strings.ToUpper(stem)
	if len(stem) > referralStemLength {
		stem = strings.TrimRight(stem[:referralStemLength], "-")
	}
	if stem == "" {
		return referralFallbackStem
	}
	return stem
}

// GenerateReferralCode returns the name stem plus a short random suffix.
func GenerateReferralCode(name string) string {
	return ReferralStem(name) + "-" + RandomString(referralSuffixLength)
}
