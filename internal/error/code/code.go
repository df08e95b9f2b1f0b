package code

// HTTP status codes.
const (
	// StatusOK - 200: OK.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: malformed or invalid input.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: missing or invalid credentials.
	StatusUnauthorized = 401
	// StatusForbidden - 403: authenticated but not allowed.
	StatusForbidden = 403
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusConflict - 409: unique constraint violation.
	StatusConflict = 409
	// StatusTooManyRequests - 429: rate limit exceeded.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: unexpected failure.
	StatusInternalServerError = 500
)

// General error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unexpected error.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request failed validation.
	ErrValidation
	// ErrTokenMissing - 401: no bearer token.
	ErrTokenMissing
	// ErrTokenInvalid - 401: token invalid or expired.
	ErrTokenInvalid
	// ErrForbidden - 403: access denied.
	ErrForbidden
	// ErrTooManyRequests - 429: rate limit exceeded.
	ErrTooManyRequests
	// ErrRouteNotFound - 404: no such endpoint.
	ErrRouteNotFound
	// ErrDonationTooManyRequests - 429: donation attempts exceeded.
	ErrDonationTooManyRequests
	// ErrLoginTooManyRequests - 429: login attempts exceeded.
	ErrLoginTooManyRequests
	// ErrSuspiciousRequest - 400: query carries script injection patterns.
	ErrSuspiciousRequest
)

// Admin error codes (101xxx).
const (
	// ErrAdminCredentials - 401: unknown user, inactive user or wrong password.
	ErrAdminCredentials int = iota + 101000
	// ErrAdminInactive - 403: token belongs to a deactivated admin.
	ErrAdminInactive
	// ErrAdminCredentialsRequired - 400: username or password missing.
	ErrAdminCredentialsRequired
)

// Donation error codes (102xxx).
const (
	// ErrDonationNotFound - 404: no donation matches.
	ErrDonationNotFound int = iota + 102000
	// ErrDonationAmountInvalid - 400: amount out of range or precision.
	ErrDonationAmountInvalid
	// ErrDonationStatusInvalid - 400: target status not confirmed/rejected.
	ErrDonationStatusInvalid
	// ErrDonationStatusFilterInvalid - 400: unknown status filter.
	ErrDonationStatusFilterInvalid
	// ErrDonationIDInvalid - 400: id is not a positive integer.
	ErrDonationIDInvalid
)

// Referral error codes (103xxx).
const (
	// ErrReferralNotFound - 404: code absent or inactive.
	ErrReferralNotFound int = iota + 103000
	// ErrReferralNameInvalid - 400: name shorter than two characters.
	ErrReferralNameInvalid
	// ErrReferralCodeExists - 409: generated code collided.
	ErrReferralCodeExists
)

// Content error codes (104xxx).
const (
	// ErrContentSectionNotFound - 404: section absent or unpublished.
	ErrContentSectionNotFound int = iota + 104000
	// ErrContentInvalid - 400: section, title or content missing.
	ErrContentInvalid
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 500: store failure.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record not found.
	ErrRecordNotFound
)

// Privacy error codes (106xxx).
const (
	// ErrPrivacyEmailInvalid - 400: email missing or malformed.
	ErrPrivacyEmailInvalid int = iota + 106000
	// ErrPrivacyRequestTypeInvalid - 400: request type not export/delete.
	ErrPrivacyRequestTypeInvalid
	// ErrPrivacyEraseFailed - 500: erase transaction rolled back.
	ErrPrivacyEraseFailed
)
