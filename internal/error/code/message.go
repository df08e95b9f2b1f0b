package code

import "golang.org/x/text/language"

// Supported response locales, Spanish first as the default.
var supportedLocales = []language.Tag{
	language.Spanish,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale picks the best supported locale for an Accept-Language header
func Locale(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Spanish
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return language.Spanish
	}
	return supportedLocales[idx]
}

// Spanish messages
var codeMessageMap = map[int]string{
	ErrSuccess:         "Operación exitosa",
	ErrUnknown:         "Error interno del servidor",
	ErrBind:            "Datos de entrada inválidos",
	ErrValidation:      "Datos de entrada inválidos",
	ErrTokenMissing:    "Token de acceso requerido",
	ErrTokenInvalid:    "Token inválido o expirado",
	ErrForbidden:       "Acceso denegado",
	ErrTooManyRequests: "Demasiadas solicitudes. Inténtalo de nuevo más tarde.",
	ErrRouteNotFound:   "Endpoint no encontrado",

	ErrDonationTooManyRequests: "Demasiados intentos de donación. Inténtalo de nuevo en 15 minutos.",
	ErrLoginTooManyRequests:    "Demasiados intentos de inicio de sesión. Inténtalo de nuevo en 15 minutos.",
	ErrSuspiciousRequest:       "Solicitud inválida",

	ErrAdminCredentials:         "Credenciales inválidas",
	ErrAdminInactive:            "Usuario inactivo",
	ErrAdminCredentialsRequired: "Usuario y contraseña requeridos",

	ErrDonationNotFound:            "Donación no encontrada",
	ErrDonationAmountInvalid:       "El monto debe estar entre 0,01 € y 100.000 € con máximo dos decimales",
	ErrDonationStatusInvalid:       "Estado inválido",
	ErrDonationStatusFilterInvalid: "Filtro de estado inválido",
	ErrDonationIDInvalid:           "Identificador de donación inválido",

	ErrReferralNotFound:    "Código de referencia no encontrado o inactivo",
	ErrReferralNameInvalid: "El nombre debe tener al menos 2 caracteres",
	ErrReferralCodeExists:  "Ya existe un código similar. Intenta con otro nombre.",

	ErrContentSectionNotFound: "Sección no encontrada",
	ErrContentInvalid:         "Sección, título y contenido son requeridos",

	ErrDatabase:       "Error interno del servidor",
	ErrRecordNotFound: "Registro no encontrado",

	ErrPrivacyEmailInvalid:       "Email válido requerido",
	ErrPrivacyRequestTypeInvalid: "Tipo de solicitud inválido",
	ErrPrivacyEraseFailed:        "Error al eliminar los datos. Contacta con soporte.",
}

// English messages
var codeMessageMapEN = map[int]string{
	ErrSuccess:         "Success",
	ErrUnknown:         "Internal server error",
	ErrBind:            "Invalid input data",
	ErrValidation:      "Invalid input data",
	ErrTokenMissing:    "Access token required",
	ErrTokenInvalid:    "Invalid or expired token",
	ErrForbidden:       "Access denied",
	ErrTooManyRequests: "Too many requests. Please try again later.",
	ErrRouteNotFound:   "Endpoint not found",

	ErrDonationTooManyRequests: "Too many donation attempts. Please try again in 15 minutes.",
	ErrLoginTooManyRequests:    "Too many login attempts. Please try again in 15 minutes.",
	ErrSuspiciousRequest:       "Invalid request",

	ErrAdminCredentials:         "Invalid credentials",
	ErrAdminInactive:            "Inactive user",
	ErrAdminCredentialsRequired: "Username and password are required",

	ErrDonationNotFound:            "Donation not found",
	ErrDonationAmountInvalid:       "Amount must be between €0.01 and €100,000 with at most two decimals",
	ErrDonationStatusInvalid:       "Invalid status",
	ErrDonationStatusFilterInvalid: "Invalid status filter",
	ErrDonationIDInvalid:           "Invalid donation id",

	ErrReferralNotFound:    "Referral code not found or inactive",
	ErrReferralNameInvalid: "Name must be at least 2 characters long",
	ErrReferralCodeExists:  "A similar code already exists. Try a different name.",

	ErrContentSectionNotFound: "Section not found",
	ErrContentInvalid:         "Section, title and content are required",

	ErrDatabase:       "Internal server error",
	ErrRecordNotFound: "Record not found",

	ErrPrivacyEmailInvalid:       "A valid email is required",
	ErrPrivacyRequestTypeInvalid: "Invalid request type",
	ErrPrivacyEraseFailed:        "Could not erase the data. Please contact support.",
}

// HTTP status per code
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenMissing:    StatusUnauthorized,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrForbidden:       StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrRouteNotFound:   StatusNotFound,

	ErrDonationTooManyRequests: StatusTooManyRequests,
	ErrLoginTooManyRequests:    StatusTooManyRequests,
	ErrSuspiciousRequest:       StatusBadRequest,

	ErrAdminCredentials:         StatusUnauthorized,
	ErrAdminInactive:            StatusForbidden,
	ErrAdminCredentialsRequired: StatusBadRequest,

	ErrDonationNotFound:            StatusNotFound,
	ErrDonationAmountInvalid:       StatusBadRequest,
	ErrDonationStatusInvalid:       StatusBadRequest,
	ErrDonationStatusFilterInvalid: StatusBadRequest,
	ErrDonationIDInvalid:           StatusBadRequest,

	ErrReferralNotFound:    StatusNotFound,
	ErrReferralNameInvalid: StatusBadRequest,
	ErrReferralCodeExists:  StatusConflict,

	ErrContentSectionNotFound: StatusNotFound,
	ErrContentInvalid:         StatusBadRequest,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	ErrPrivacyEmailInvalid:       StatusBadRequest,
	ErrPrivacyRequestTypeInvalid: StatusBadRequest,
	ErrPrivacyEraseFailed:        StatusInternalServerError,
}

// GetMessage returns the Spanish message for a code
func GetMessage(errorCode int) string {
	return GetLocalizedMessage(errorCode, language.Spanish)
}

// GetLocalizedMessage returns the message for a code in the given locale
func GetLocalizedMessage(errorCode int, locale language.Tag) string {
	messages := codeMessageMap
	if locale == language.English {
		messages = codeMessageMapEN
	}
	if msg, ok := messages[errorCode]; ok {
		return msg
	}
	return messages[ErrUnknown]
}

// GetStatus returns the HTTP status for a code
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
