package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

const (
	// ErasedMessage replaces the message of erased donations
	ErasedMessage = "[Datos eliminados por solicitud del usuario]"
	exportNote    = "Este es un extracto completo de todos los datos personales almacenados en nuestro sistema."
	policyDate    = "2025-08-09"
	policyVersion = "1.0"
)

// InterfacePrivacyService defines data-subject request handling
type InterfacePrivacyService interface {
	ExportData(ctx context.Context, email string, actor Actor) (*DataExport, error)
	EraseData(ctx context.Context, email string, actor Actor) error
	Policy() PrivacyPolicy
	CookiePolicy() CookiePolicy
}

type ExportedDonation struct {
	ReferenceNumber string    `json:"reference_number"`
	DonorName       *string   `json:"donor_name"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
	Message         *string   `json:"message"`
	IsAnonymous     bool      `json:"is_anonymous"`
}

type ExportedReferral struct {
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	TotalDonations int64     `json:"total_donations"`
	TotalAmount    float64   `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// DataExport is everything stored about one email address
type DataExport struct {
	ExportDate time.Time          `json:"exportDate"`
	Email      string             `json:"email"`
	Donations  []ExportedDonation `json:"donations"`
	Referrals  []ExportedReferral `json:"referrals"`
	Note       string             `json:"gdprNote"`
}

// PrivacyService implements the access and erasure rights of donors and sponsors
type PrivacyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPrivacyService creates a new privacy service
func NewPrivacyService(db *gorm.DB, cfg *config.Config) InterfacePrivacyService {
	return &PrivacyService{
		DB:     db,
		Config: cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// 1 ExportData collects the donations and referrals registered under email
func (s *PrivacyService) ExportData(ctx context.Context, email string, actor Actor) (*DataExport, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, code.New(code.ErrPrivacyEmailInvalid)
	}
	db := s.DB.WithContext(ctx)

	var donations []models.Donation
	if err := db.Where("LOWER(donor_email) = ?", email).
		Order("created_at DESC, id DESC").
		Find(&donations).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	var referrals []models.Referral
	if err := db.Where("LOWER(email) = ?", email).
		Order("created_at DESC, id DESC").
		Find(&referrals).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	export := &DataExport{
		ExportDate: time.Now().UTC(),
		Email:      email,
		Donations:  make([]ExportedDonation, 0, len(donations)),
		Referrals:  make([]ExportedReferral, 0, len(referrals)),
		Note:       exportNote,
	}
	for _, d := range donations {
		export.Donations = append(export.Donations, ExportedDonation{
			ReferenceNumber: d.ReferenceNumber,
			DonorName:       d.DonorName,
			Amount:          money(d.Amount),
			Currency:        d.Currency,
			CreatedAt:       d.CreatedAt,
			Message:         d.Message,
			IsAnonymous:     d.IsAnonymous,
		})
	}
	for _, r := range referrals {
		export.Referrals = append(export.Referrals, ExportedReferral{
			Code:           r.Code,
			Name:           r.Name,
			TotalDonations: r.TotalDonations,
			TotalAmount:    money(r.TotalAmount),
			CreatedAt:      r.CreatedAt,
		})
	}

	if err := writeAudit(db, models.AuditPrivacyExport, actor, "", "records="+strconv.Itoa(len(donations)+len(referrals))); err != nil {
		logger.Warning("failed to audit data export: %v", err)
	}
	logger.L().Info("data export generated",
		zap.Int("donations", len(donations)),
		zap.Int("referrals", len(referrals)),
	)
	return export, nil
}

// 2 EraseData strips personal data linked to email. Donations keep their
// amounts; referrals keep their code and name. All or nothing.
func (s *PrivacyService) EraseData(ctx context.Context, email string, actor Actor) error {
	email = normalizeEmail(email)
	if email == "" {
		return code.New(code.ErrPrivacyEmailInvalid)
	}

	var donationsErased, referralsErased int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Donation{}).
			Where("LOWER(donor_email) = ?", email).
			Updates(map[string]interface{}{
				"donor_name":  nil,
				"donor_email": nil,
				"donor_phone": nil,
				"message":     ErasedMessage,
			})
		if result.Error != nil {
			return result.Error
		}
		donationsErased = result.RowsAffected

		result = tx.Model(&models.Referral{}).
			Where("LOWER(email) = ?", email).
			Updates(map[string]interface{}{
				"email": nil,
				"phone": nil,
			})
		if result.Error != nil {
			return result.Error
		}
		referralsErased = result.RowsAffected

		return writeAudit(tx, models.AuditPrivacyErase, actor, "",
			"donations="+strconv.FormatInt(donationsErased, 10)+" referrals="+strconv.FormatInt(referralsErased, 10))
	})
	if err != nil {
		return code.Wrap(code.ErrPrivacyEraseFailed, err)
	}

	logger.L().Info("data erasure completed",
		zap.Int64("donations", donationsErased),
		zap.Int64("referrals", referralsErased),
	)
	return nil
}

type DataController struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type DataCollection struct {
	Purpose     string   `json:"purpose"`
	LawfulBasis string   `json:"lawfulBasis"`
	DataTypes   []string `json:"dataTypes"`
}

type DataRetention struct {
	Period  string `json:"period"`
	Purpose string `json:"purpose"`
}

type DataRight struct {
	Right       string `json:"right"`
	Description string `json:"description"`
}

type SecurityMeasures struct {
	Measures []string `json:"measures"`
}

type ThirdParties struct {
	Sharing    string   `json:"sharing"`
	Processors []string `json:"processors"`
}

type PrivacyContact struct {
	DPO        string `json:"dpo"`
	Complaints string `json:"complaints"`
}

type PolicyBody struct {
	DataController DataController   `json:"dataController"`
	DataCollection DataCollection   `json:"dataCollection"`
	DataRetention  DataRetention    `json:"dataRetention"`
	Rights         []DataRight      `json:"rights"`
	Security       SecurityMeasures `json:"security"`
	ThirdParties   ThirdParties     `json:"thirdParties"`
	Contact        PrivacyContact   `json:"contact"`
}

// PrivacyPolicy is the published privacy notice
type PrivacyPolicy struct {
	LastUpdated string     `json:"lastUpdated"`
	Version     string     `json:"version"`
	Policy      PolicyBody `json:"policy"`
}

// 3 Policy returns the privacy notice. The retention period follows
// the configured number of years.
func (s *PrivacyService) Policy() PrivacyPolicy {
	years := 7
	if s.Config != nil && s.Config.DataRetentionYears > 0 {
		years = s.Config.DataRetentionYears
	}

	return PrivacyPolicy{
		LastUpdated: policyDate,
		Version:     policyVersion,
		Policy: PolicyBody{
			DataController: DataController{
				Name:    "Asociación Cultural Pola de Allande",
				Email:   "donaciones@polaallande.org",
				Address: "Pola de Allande, Asturias, España",
			},
			DataCollection: DataCollection{
				Purpose:     "Gestionar donaciones para El Día del Inmigrante 2026",
				LawfulBasis: "Consentimiento y interés legítimo",
				DataTypes: []string{
					"Nombre (opcional)",
					"Email (opcional)",
					"Teléfono (opcional)",
					"País (opcional)",
					"Monto de donación",
					"Mensaje (opcional)",
				},
			},
			DataRetention: DataRetention{
				Period:  strconv.Itoa(years) + " años desde la última actividad",
				Purpose: "Cumplimiento legal y contable",
			},
			Rights: []DataRight{
				{Right: "Acceso (Artículo 15)", Description: "Obtener copia de tus datos personales"},
				{Right: "Rectificación (Artículo 16)", Description: "Corregir datos incorrectos"},
				{Right: "Supresión (Artículo 17)", Description: "Eliminar tus datos personales"},
				{Right: "Portabilidad (Artículo 20)", Description: "Exportar tus datos en formato estructurado"},
				{Right: "Oposición (Artículo 21)", Description: "Oponerte al tratamiento de tus datos"},
			},
			Security: SecurityMeasures{
				Measures: []string{
					"Cifrado de datos en tránsito y reposo",
					"Control de acceso basado en roles",
					"Auditorías de seguridad regulares",
					"Backup seguro y recuperación de datos",
				},
			},
			ThirdParties: ThirdParties{
				Sharing: "No compartimos datos personales con terceros sin consentimiento",
				Processors: []string{
					"Servicios de hosting (con acuerdos de procesamiento de datos)",
					"Servicios de email (solo para comunicaciones autorizadas)",
				},
			},
			Contact: PrivacyContact{
				DPO:        "donaciones@polaallande.org",
				Complaints: "Agencia Española de Protección de Datos (AEPD)",
			},
		},
	}
}

type Cookie struct {
	Name     string `json:"name"`
	Purpose  string `json:"purpose"`
	Expiry   string `json:"expiry"`
	Type     string `json:"type,omitempty"`
	Provider string `json:"provider,omitempty"`
}

type CookieGroups struct {
	Essential   []Cookie `json:"essential"`
	Analytics   []Cookie `json:"analytics"`
	Preferences []Cookie `json:"preferences"`
}

type CookieConsent struct {
	Required     bool   `json:"required"`
	Withdrawable bool   `json:"withdrawable"`
	Contact      string `json:"contact"`
}

// CookiePolicy lists the cookies the site may set
type CookiePolicy struct {
	LastUpdated string        `json:"lastUpdated"`
	Version     string        `json:"version"`
	Cookies     CookieGroups  `json:"cookies"`
	Consent     CookieConsent `json:"consent"`
}

// 4 CookiePolicy returns the cookie notice
func (s *PrivacyService) CookiePolicy() CookiePolicy {
	return CookiePolicy{
		LastUpdated: policyDate,
		Version:     policyVersion,
		Cookies: CookieGroups{
			Essential: []Cookie{
				{Name: "session", Purpose: "Mantener sesión de usuario autenticado", Expiry: "24 horas", Type: "HTTP-only"},
			},
			Analytics: []Cookie{
				{Name: "_ga", Purpose: "Google Analytics - identificación de usuario", Expiry: "2 años", Provider: "Google"},
				{Name: "_gid", Purpose: "Google Analytics - identificación de sesión", Expiry: "24 horas", Provider: "Google"},
			},
			Preferences: []Cookie{
				{Name: "cookieConsent", Purpose: "Recordar preferencias de cookies", Expiry: "1 año", Type: "Local Storage"},
			},
		},
		Consent: CookieConsent{
			Required:     true,
			Withdrawable: true,
			Contact:      "donaciones@polaallande.org",
		},
	}
}
