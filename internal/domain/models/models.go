package models

// All returns every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&AdminUser{},
		&Referral{},
		&Donation{},
		&EventContent{},
		&DonationGoal{},
		&AuditLog{},
	}
}
