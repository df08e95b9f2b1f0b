package services

import (
	"context"
	"testing"
	"time"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/pkg/utils"
	"gorm.io/gorm"
)

func reviewer() Actor {
	id := uint(1)
	return Actor{AdminID: &id, Username: "revisor", IP: "127.0.0.1"}
}

func newAdminService(t *testing.T) (InterfaceAdminService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAdminService(db, testConfig()), db
}

func TestSetDonationStatusConfirmUpdatesReferral(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "ANA-7F2K", "Ana", true)
	donation := seedDonation(t, db, donationSeed{Name: "Pedro", Amount: "25.50", Referral: referral})

	result, err := svc.SetDonationStatus(context.Background(), donation.ID, models.DonationStatusConfirmed, reviewer())
	if err != nil {
		t.Fatalf("SetDonationStatus: %v", err)
	}
	if result.Message != "Donación confirmada exitosamente" {
		t.Errorf("message = %q", result.Message)
	}
	if result.Donation.Status != models.DonationStatusConfirmed || result.Donation.ConfirmedAt == nil {
		t.Errorf("donation = %+v", result.Donation)
	}
	if result.Donation.ConfirmedBy == nil || *result.Donation.ConfirmedBy != "revisor" {
		t.Errorf("confirmed_by = %v", result.Donation.ConfirmedBy)
	}
	if result.Donation.ReferralCode == nil || *result.Donation.ReferralCode != "ANA-7F2K" {
		t.Errorf("referral code = %v", result.Donation.ReferralCode)
	}

	r := reloadReferral(t, db, referral.ID)
	if r.TotalDonations != 1 || !r.TotalAmount.Equal(dec(t, "25.50")) {
		t.Errorf("referral totals = %d / %s", r.TotalDonations, r.TotalAmount)
	}
	if n := countAudit(t, db, models.AuditDonationStatus); n != 1 {
		t.Errorf("audit entries = %d", n)
	}
}

func TestSetDonationStatusAccumulatesReferralTotals(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "LUIS-AB12", "Luis", true)
	first := seedDonation(t, db, donationSeed{Amount: "10.00", Referral: referral})
	second := seedDonation(t, db, donationSeed{Amount: "50.00", Referral: referral})

	for _, d := range []*models.Donation{first, second} {
		if _, err := svc.SetDonationStatus(context.Background(), d.ID, models.DonationStatusConfirmed, reviewer()); err != nil {
			t.Fatalf("confirm %d: %v", d.ID, err)
		}
	}

	r := reloadReferral(t, db, referral.ID)
	if r.TotalDonations != 2 || !r.TotalAmount.Equal(dec(t, "60.00")) {
		t.Errorf("referral totals = %d / %s, want 2 / 60.00", r.TotalDonations, r.TotalAmount)
	}
}

func TestSetDonationStatusRepeatedConfirmCountsTwice(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "EVA-0001", "Eva", true)
	d := seedDonation(t, db, donationSeed{Amount: "20", Referral: referral})

	for i := 0; i < 2; i++ {
		if _, err := svc.SetDonationStatus(context.Background(), d.ID, models.DonationStatusConfirmed, reviewer()); err != nil {
			t.Fatalf("confirm #%d: %v", i+1, err)
		}
	}

	r := reloadReferral(t, db, referral.ID)
	if r.TotalDonations != 2 || !r.TotalAmount.Equal(dec(t, "40")) {
		t.Errorf("referral totals = %d / %s, want 2 / 40", r.TotalDonations, r.TotalAmount)
	}
}

func TestSetDonationStatusRejectKeepsReferralTotals(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "EVA-0002", "Eva", true)
	d := seedDonation(t, db, donationSeed{Amount: "15", Referral: referral})
	ctx := context.Background()

	if _, err := svc.SetDonationStatus(ctx, d.ID, models.DonationStatusConfirmed, reviewer()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	result, err := svc.SetDonationStatus(ctx, d.ID, models.DonationStatusRejected, reviewer())
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if result.Donation.Status != models.DonationStatusRejected || result.Message != "Donación rechazada exitosamente" {
		t.Errorf("result = %+v", result)
	}

	r := reloadReferral(t, db, referral.ID)
	if r.TotalDonations != 1 || !r.TotalAmount.Equal(dec(t, "15")) {
		t.Errorf("referral totals = %d / %s, want 1 / 15", r.TotalDonations, r.TotalAmount)
	}
}

func TestSetDonationStatusRejectWithoutConfirmation(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "EVA-0003", "Eva", true)
	d := seedDonation(t, db, donationSeed{Amount: "15", Referral: referral})

	if _, err := svc.SetDonationStatus(context.Background(), d.ID, models.DonationStatusRejected, reviewer()); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored := reloadDonation(t, db, d.ID)
	if stored.ConfirmedAt != nil {
		t.Error("rejected donation should not get confirmed_at")
	}
	if stored.ConfirmedBy == nil || *stored.ConfirmedBy != "revisor" {
		t.Errorf("confirmed_by = %v", stored.ConfirmedBy)
	}
	if r := reloadReferral(t, db, referral.ID); r.TotalDonations != 0 {
		t.Errorf("rejection changed referral totals: %d", r.TotalDonations)
	}
}

func TestSetDonationStatusErrors(t *testing.T) {
	svc, db := newAdminService(t)
	d := seedDonation(t, db, donationSeed{Amount: "15"})

	_, err := svc.SetDonationStatus(context.Background(), d.ID, models.DonationStatusPending, reviewer())
	assertCode(t, err, code.ErrDonationStatusInvalid)

	_, err = svc.SetDonationStatus(context.Background(), d.ID, "archived", reviewer())
	assertCode(t, err, code.ErrDonationStatusInvalid)

	_, err = svc.SetDonationStatus(context.Background(), 9999, models.DonationStatusConfirmed, reviewer())
	assertCode(t, err, code.ErrDonationNotFound)
}

func TestSetDonationStatusRollsBackOnReferralFailure(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "EVA-0004", "Eva", true)
	d := seedDonation(t, db, donationSeed{Amount: "15", Referral: referral})
	failOnTable(t, db, "referrals")

	_, err := svc.SetDonationStatus(context.Background(), d.ID, models.DonationStatusConfirmed, reviewer())
	assertCode(t, err, code.ErrDatabase)

	if stored := reloadDonation(t, db, d.ID); stored.Status != models.DonationStatusPending {
		t.Errorf("status = %s, want pending after rollback", stored.Status)
	}
}

func TestListDonations(t *testing.T) {
	svc, db := newAdminService(t)
	referral := seedReferral(t, db, "ANA-7F2K", "Ana", true)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		status := models.DonationStatusPending
		if i%5 == 0 {
			status = models.DonationStatusConfirmed
		}
		seedDonation(t, db, donationSeed{
			Name:      "Donante",
			Email:     "d@example.org",
			Amount:    "10",
			Status:    status,
			Anonymous: i == 24,
			Referral:  referral,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	ctx := context.Background()

	page, err := svc.ListDonations(ctx, models.PaginationQuery{}, "")
	if err != nil {
		t.Fatalf("ListDonations: %v", err)
	}
	if len(page.Donations) != 20 || page.Pagination.Total != 25 || page.Pagination.TotalPages != 2 || !page.Pagination.HasNext || page.Pagination.HasPrev {
		t.Errorf("first page = %d items, pagination %+v", len(page.Donations), page.Pagination)
	}
	newest := page.Donations[0]
	if !newest.IsAnonymous || newest.DonorName != nil || newest.DonorEmail != nil {
		t.Errorf("newest donation should be anonymous and hidden: %+v", newest)
	}
	if newest.ReferralName == nil || *newest.ReferralName != "Ana" {
		t.Errorf("referral name = %v", newest.ReferralName)
	}

	page, err = svc.ListDonations(ctx, models.PaginationQuery{Page: 2, Limit: 20}, "")
	if err != nil {
		t.Fatalf("ListDonations page 2: %v", err)
	}
	if len(page.Donations) != 5 || page.Pagination.HasNext || !page.Pagination.HasPrev {
		t.Errorf("second page = %d items, pagination %+v", len(page.Donations), page.Pagination)
	}

	page, err = svc.ListDonations(ctx, models.PaginationQuery{Limit: 500}, "confirmed")
	if err != nil {
		t.Fatalf("ListDonations confirmed: %v", err)
	}
	if page.Pagination.Limit != 100 || page.Pagination.Total != 5 {
		t.Errorf("confirmed pagination = %+v", page.Pagination)
	}

	_, err = svc.ListDonations(ctx, models.PaginationQuery{}, "archived")
	assertCode(t, err, code.ErrDonationStatusFilterInvalid)
}

func TestGetDashboard(t *testing.T) {
	svc, db := newAdminService(t)
	top := seedReferral(t, db, "TOP-0001", "Top", true)
	db.Model(top).Updates(map[string]interface{}{"total_donations": 3, "total_amount": "300"})
	seedReferral(t, db, "LOW-0001", "Low", true)

	seedDonation(t, db, donationSeed{Country: "España", Amount: "100", Status: models.DonationStatusConfirmed})
	seedDonation(t, db, donationSeed{Country: "España", Amount: "20", Status: models.DonationStatusConfirmed})
	seedDonation(t, db, donationSeed{Country: "Cuba", Amount: "30", Status: models.DonationStatusConfirmed})
	seedDonation(t, db, donationSeed{Amount: "5"})
	seedDonation(t, db, donationSeed{Amount: "7", Status: models.DonationStatusRejected})

	dashboard, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	want := DashboardStats{
		PendingDonations:     1,
		ConfirmedDonations:   3,
		RejectedDonations:    1,
		TotalConfirmedAmount: 150,
		UniqueCountries:      2,
	}
	if dashboard.Stats != want {
		t.Errorf("stats = %+v, want %+v", dashboard.Stats, want)
	}
	if len(dashboard.RecentDonations) != 5 {
		t.Errorf("recent donations = %d", len(dashboard.RecentDonations))
	}
	if len(dashboard.TopReferrals) != 2 || dashboard.TopReferrals[0].Code != "TOP-0001" {
		t.Errorf("top referrals = %+v", dashboard.TopReferrals)
	}
}

func TestGetActiveAdmin(t *testing.T) {
	svc, db := newAdminService(t)
	hash, _ := utils.HashPassword("pw")
	active := models.AdminUser{Username: "a", Email: "a@example.org", PasswordHash: hash, Role: models.RoleAdmin, IsActive: true}
	inactive := models.AdminUser{Username: "b", Email: "b@example.org", PasswordHash: hash, Role: models.RoleAdmin, IsActive: false}
	db.Create(&active)
	db.Create(&inactive)

	got, err := svc.GetActiveAdmin(context.Background(), active.ID)
	if err != nil || got.Username != "a" {
		t.Fatalf("GetActiveAdmin(active) = %v, %v", got, err)
	}

	_, err = svc.GetActiveAdmin(context.Background(), inactive.ID)
	assertCode(t, err, code.ErrAdminInactive)

	_, err = svc.GetActiveAdmin(context.Background(), 4242)
	assertCode(t, err, code.ErrTokenInvalid)
}
