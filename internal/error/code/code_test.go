package code

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/text/language"
)

func TestEveryCodeHasMessagesAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		if _, ok := codeMessageMapEN[c]; !ok {
			t.Errorf("code %d has no English message", c)
		}
		if _, ok := codeStatusMap[c]; !ok {
			t.Errorf("code %d has no HTTP status", c)
		}
	}
	if len(codeMessageMap) != len(codeMessageMapEN) {
		t.Errorf("message maps differ in size: %d vs %d", len(codeMessageMap), len(codeMessageMapEN))
	}
}

func TestGetStatus(t *testing.T) {
	cases := map[int]int{
		ErrDonationAmountInvalid: 400,
		ErrAdminCredentials:      401,
		ErrAdminInactive:         403,
		ErrReferralNotFound:      404,
		ErrReferralCodeExists:    409,
		ErrTooManyRequests:       429,
		ErrDatabase:              500,
		999999:                   500,
	}
	for c, want := range cases {
		if got := GetStatus(c); got != want {
			t.Errorf("GetStatus(%d) = %d, want %d", c, got, want)
		}
	}
}

func TestLocale(t *testing.T) {
	cases := map[string]language.Tag{
		"":                   language.Spanish,
		"es-ES,es;q=0.9":     language.Spanish,
		"en-US,en;q=0.9":     language.English,
		"fr-FR":              language.Spanish,
		"de;q=0.8,en;q=0.5":  language.English,
		"not a valid header": language.Spanish,
	}
	for header, want := range cases {
		if got := Locale(header); got != want {
			t.Errorf("Locale(%q) = %v, want %v", header, got, want)
		}
	}
}

func TestGetLocalizedMessage(t *testing.T) {
	if got := GetLocalizedMessage(ErrDonationNotFound, language.English); got != "Donation not found" {
		t.Errorf("english message = %q", got)
	}
	if got := GetMessage(ErrDonationNotFound); got != "Donación no encontrada" {
		t.Errorf("spanish message = %q", got)
	}
	if got := GetMessage(424242); got != "Error interno del servidor" {
		t.Errorf("unknown code message = %q", got)
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create donation: %w", Wrap(ErrDatabase, cause))

	e, ok := As(err)
	if !ok || e.Code != ErrDatabase {
		t.Fatalf("As did not find the code error: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through errors.Is")
	}
	if !errors.Is(err, New(ErrDatabase)) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, New(ErrReferralNotFound)) {
		t.Error("errors.Is must not match a different code")
	}
	if CodeOf(errors.New("plain")) != ErrUnknown {
		t.Error("plain errors map to ErrUnknown")
	}
	if e.Status() != 500 {
		t.Errorf("status = %d", e.Status())
	}
}
