package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
)

var referencePattern = regexp.MustCompile(`^DON-[0-9A-Z]+-[0-9A-Z]{6}$`)

func newDonationService(t *testing.T) (InterfaceDonationService, *DonationService) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewDonationService(db, cfg, NewContentService(db, cfg))
	return svc, svc.(*DonationService)
}

func TestCreateDonation(t *testing.T) {
	svc, impl := newDonationService(t)
	referral := seedReferral(t, impl.DB, "ANA-7F2K", "Ana", true)

	result, err := svc.CreateDonation(context.Background(), CreateDonationInput{
		DonorName:    str("  Ana García "),
		DonorEmail:   str("ana@example.org"),
		DonorCountry: str("Argentina"),
		Amount:       dec(t, "25.50"),
		ReferralCode: " ana-7f2k ",
		UTMSource:    str("facebook"),
	})
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}

	if !referencePattern.MatchString(result.Donation.ReferenceNumber) {
		t.Errorf("reference %q does not match pattern", result.Donation.ReferenceNumber)
	}
	if result.Donation.Status != models.DonationStatusPending || result.Donation.Amount != 25.5 {
		t.Errorf("unexpected donation %+v", result.Donation)
	}
	if !strings.Contains(result.BankTransferInfo, result.Donation.ReferenceNumber) ||
		strings.Contains(result.BankTransferInfo, ReferencePlaceholder) {
		t.Errorf("bank info placeholder not replaced: %q", result.BankTransferInfo)
	}
	if result.Message == "" {
		t.Error("empty message")
	}

	stored := reloadDonation(t, impl.DB, result.Donation.ID)
	if stored.ReferralID == nil || *stored.ReferralID != referral.ID {
		t.Errorf("referral not attributed: %v", stored.ReferralID)
	}
	if stored.DonorName == nil || *stored.DonorName != "Ana García" {
		t.Errorf("donor name = %v", stored.DonorName)
	}
	if stored.Currency != "EUR" || stored.UTMSource == nil || *stored.UTMSource != "facebook" {
		t.Errorf("stored donation = %+v", stored)
	}
}

func TestCreateDonationAnonymousDropsIdentity(t *testing.T) {
	svc, impl := newDonationService(t)

	result, err := svc.CreateDonation(context.Background(), CreateDonationInput{
		DonorName:    str("Luis"),
		DonorEmail:   str("luis@example.org"),
		DonorPhone:   str("+34 600 000 000"),
		DonorCountry: str("México"),
		Amount:       dec(t, "10"),
		IsAnonymous:  true,
	})
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}

	stored := reloadDonation(t, impl.DB, result.Donation.ID)
	if stored.DonorName != nil || stored.DonorEmail != nil || stored.DonorPhone != nil {
		t.Errorf("anonymous donation kept identity: %+v", stored)
	}
	if stored.DonorCountry == nil || *stored.DonorCountry != "México" {
		t.Errorf("country should be kept, got %v", stored.DonorCountry)
	}
}

func TestCreateDonationUnknownOrInactiveReferral(t *testing.T) {
	svc, impl := newDonationService(t)
	seedReferral(t, impl.DB, "OLD-0000", "Old", false)

	for _, referralCode := range []string{"NOPE-1234", "OLD-0000"} {
		result, err := svc.CreateDonation(context.Background(), CreateDonationInput{
			Amount:       dec(t, "5"),
			ReferralCode: referralCode,
		})
		if err != nil {
			t.Fatalf("CreateDonation(%s): %v", referralCode, err)
		}
		if stored := reloadDonation(t, impl.DB, result.Donation.ID); stored.ReferralID != nil {
			t.Errorf("%s: referral should be ignored", referralCode)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount string
		ok     bool
	}{
		{"0.01", true},
		{"25.5", true},
		{"100000", true},
		{"100000.00", true},
		{"0", false},
		{"-5", false},
		{"0.009", false},
		{"10.555", false},
		{"100000.01", false},
	}
	for _, tc := range cases {
		err := ValidateAmount(dec(t, tc.amount))
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.amount, err)
		}
		if !tc.ok && code.CodeOf(err) != code.ErrDonationAmountInvalid {
			t.Errorf("%s: expected amount error, got %v", tc.amount, err)
		}
	}
}

func TestCreateDonationRejectsInvalidAmount(t *testing.T) {
	svc, impl := newDonationService(t)

	_, err := svc.CreateDonation(context.Background(), CreateDonationInput{Amount: dec(t, "0")})
	assertCode(t, err, code.ErrDonationAmountInvalid)

	var n int64
	impl.DB.Model(&models.Donation{}).Count(&n)
	if n != 0 {
		t.Errorf("invalid donation was stored")
	}
}

func TestGetByReference(t *testing.T) {
	svc, impl := newDonationService(t)
	d := seedDonation(t, impl.DB, donationSeed{Name: "Secreto", Email: "s@example.org", Amount: "40", Anonymous: true})

	view, err := svc.GetByReference(context.Background(), d.ReferenceNumber)
	if err != nil {
		t.Fatalf("GetByReference: %v", err)
	}
	if view.DonorName != nil || !view.IsAnonymous || view.Amount != 40 {
		t.Errorf("view = %+v", view)
	}

	_, err = svc.GetByReference(context.Background(), "DON-MISSING-000000")
	assertCode(t, err, code.ErrDonationNotFound)
}

func TestGetStats(t *testing.T) {
	svc, impl := newDonationService(t)
	db := impl.DB
	base := time.Now().Add(-time.Hour)

	seedDonation(t, db, donationSeed{Name: "A", Country: "España", Amount: "10.00", Status: models.DonationStatusConfirmed, CreatedAt: base})
	seedDonation(t, db, donationSeed{Name: "B", Country: "Argentina", Amount: "50.00", Status: models.DonationStatusConfirmed, Anonymous: true, CreatedAt: base.Add(time.Minute)})
	seedDonation(t, db, donationSeed{Name: "C", Amount: "999", Status: models.DonationStatusPending})
	seedDonation(t, db, donationSeed{Name: "D", Amount: "999", Status: models.DonationStatusRejected})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalAmount != 60 || stats.TotalDonations != 2 || stats.AverageDonation != 30 {
		t.Errorf("totals = %v / %d / %v", stats.TotalAmount, stats.TotalDonations, stats.AverageDonation)
	}
	if len(stats.RecentDonations) != 2 {
		t.Fatalf("recent donations = %d, want 2", len(stats.RecentDonations))
	}
	// newest first, and the anonymous donor stays hidden
	if stats.RecentDonations[0].Amount != 50 || stats.RecentDonations[0].DonorName != nil {
		t.Errorf("first recent donation = %+v", stats.RecentDonations[0])
	}
	if len(stats.TopCountries) != 2 || stats.TopCountries[0].Country != "Argentina" {
		t.Fatalf("top countries = %+v", stats.TopCountries)
	}
	if top := stats.TopCountries[0]; top.Count != 1 || top.Amount != 50 {
		t.Errorf("top country = %+v", top)
	}

	raw, err := json.Marshal(stats.TopCountries[0])
	if err != nil {
		t.Fatalf("marshal country: %v", err)
	}
	var wire map[string]interface{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal country: %v", err)
	}
	if len(wire) != 3 || wire["country"] != "Argentina" || wire["count"] != float64(1) || wire["amount"] != float64(50) {
		t.Errorf("country entry on the wire = %s", raw)
	}
	if stats.GoalProgress != 0 {
		t.Errorf("goal progress without goal = %v", stats.GoalProgress)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	svc, _ := newDonationService(t)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalAmount != 0 || stats.TotalDonations != 0 || stats.AverageDonation != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.RecentDonations == nil || stats.TopCountries == nil {
		t.Error("lists should be empty, not nil")
	}
}
