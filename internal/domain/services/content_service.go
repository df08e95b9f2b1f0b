package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/config"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
)

// ReferencePlaceholder is replaced by the donation reference in bank_info
const ReferencePlaceholder = "[Tu número de referencia]"

const (
	fallbackBankInfoTitle   = "Información Bancaria"
	fallbackBankInfoContent = `DATOS BANCARIOS PARA TRANSFERENCIA:

Banco: Banco Santander
Titular: Asociación Cultural Pola de Allande
IBAN: ES21 1234 5678 9012 3456 7890
Concepto: Donación El Día del Inmigrante 2026 - ` + ReferencePlaceholder + `

IMPORTANTE:
- Incluye tu número de referencia en el concepto de la transferencia
- Envía el comprobante a donaciones@polaallande.org`

	noGoalTitle = "Sin meta activa"
)

// InterfaceContentService defines the event content service
type InterfaceContentService interface {
	GetAllSections(ctx context.Context) (map[string]SectionView, error)
	GetSection(ctx context.Context, section string) (*SectionView, error)
	BankTransferInfo(ctx context.Context, referenceNumber string) (string, error)
	UpsertSection(ctx context.Context, input UpsertSectionInput, actor Actor) (*models.EventContent, error)
	ListAllSections(ctx context.Context) ([]models.EventContent, error)
	GetActiveGoal(ctx context.Context) (*GoalView, error)
}

// SectionView is a published content block
type SectionView struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	DisplayOrder int     `json:"displayOrder"`
}

// UpsertSectionInput fully replaces a section
type UpsertSectionInput struct {
	Section      string
	Title        string
	Content      string
	ImageURL     *string
	DisplayOrder int
	IsActive     bool
}

// GoalView is the active goal with computed progress
type GoalView struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Progress      float64    `json:"progress"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// ContentService serves and edits event copy and the fundraising goal
type ContentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewContentService creates a new content service
func NewContentService(db *gorm.DB, cfg *config.Config) InterfaceContentService {
	return &ContentService{
		DB:     db,
		Config: cfg,
	}
}

func publishedContent(db *gorm.DB) *gorm.DB {
	return db.Model(&models.EventContent{}).
		Where("is_active = ? AND is_published = ?", true, true)
}

func toSectionView(row *models.EventContent) SectionView {
	return SectionView{
		Title:        row.Title,
		Content:      row.Content,
		ImageURL:     row.ImageURL,
		DisplayOrder: row.DisplayOrder,
	}
}

// 1 GetAllSections returns every published section keyed by name
func (s *ContentService) GetAllSections(ctx context.Context) (map[string]SectionView, error) {
	var rows []models.EventContent
	if err := publishedContent(s.DB.WithContext(ctx)).
		Order("display_order ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	sections := make(map[string]SectionView, len(rows))
	for i := range rows {
		sections[rows[i].Section] = toSectionView(&rows[i])
	}
	return sections, nil
}

// 2 GetSection returns one published section. A missing bank_info section
// falls back to the built-in transfer instructions.
func (s *ContentService) GetSection(ctx context.Context, section string) (*SectionView, error) {
	var row models.EventContent
	err := publishedContent(s.DB.WithContext(ctx)).
		Where("section = ?", section).
		First(&row).Error
	if err == nil {
		view := toSectionView(&row)
		return &view, nil
	}
	if !database.IsNotFound(err) {
		return nil, code.Wrap(code.ErrDatabase, err)
	}
	if section == models.SectionBankInfo {
		return &SectionView{Title: fallbackBankInfoTitle, Content: fallbackBankInfoContent}, nil
	}
	return nil, code.New(code.ErrContentSectionNotFound)
}

// 3 BankTransferInfo returns the transfer instructions for a donation
func (s *ContentService) BankTransferInfo(ctx context.Context, referenceNumber string) (string, error) {
	section, err := s.GetSection(ctx, models.SectionBankInfo)
	if err != nil {
		return strings.ReplaceAll(fallbackBankInfoContent, ReferencePlaceholder, referenceNumber), err
	}
	return strings.ReplaceAll(section.Content, ReferencePlaceholder, referenceNumber), nil
}

// 4 UpsertSection inserts a section or replaces every editable field of it
func (s *ContentService) UpsertSection(ctx context.Context, input UpsertSectionInput, actor Actor) (*models.EventContent, error) {
	input.Section = strings.TrimSpace(input.Section)
	input.Title = strings.TrimSpace(input.Title)
	if input.Section == "" || input.Title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, code.New(code.ErrContentInvalid)
	}

	row := models.EventContent{
		Section:      input.Section,
		Title:        input.Title,
		Content:      input.Content,
		ImageURL:     optional(input.ImageURL),
		DisplayOrder: input.DisplayOrder,
		IsActive:     input.IsActive,
		IsPublished:  true,
	}

	var saved models.EventContent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "content", "image_url", "display_order", "is_active", "is_published", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		// the generated id is unreliable after an update on some drivers
		if err := tx.Where("section = ?", input.Section).First(&saved).Error; err != nil {
			return err
		}
		return writeAudit(tx, models.AuditContentUpsert, actor, input.Section, "")
	})
	if err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}
	return &saved, nil
}

// 5 ListAllSections returns every section, including inactive ones
func (s *ContentService) ListAllSections(ctx context.Context) ([]models.EventContent, error) {
	var rows []models.EventContent
	if err := s.DB.WithContext(ctx).
		Order("display_order ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}
	return rows, nil
}

// 6 GetActiveGoal returns the newest active goal and its progress
func (s *ContentService) GetActiveGoal(ctx context.Context) (*GoalView, error) {
	var goal models.DonationGoal
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		First(&goal).Error
	if database.IsNotFound(err) {
		return &GoalView{Title: noGoalTitle}, nil
	}
	if err != nil {
		return nil, code.Wrap(code.ErrDatabase, err)
	}

	createdAt := goal.CreatedAt
	return &GoalView{
		Title:         goal.Title,
		Description:   goal.Description,
		TargetAmount:  money(goal.TargetAmount),
		CurrentAmount: money(goal.CurrentAmount),
		Progress:      GoalProgress(goal.CurrentAmount, goal.TargetAmount),
		StartDate:     goal.StartDate,
		EndDate:       goal.EndDate,
		CreatedAt:     &createdAt,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// GoalProgress is current/target as a percentage clamped to [0,100] and
// rounded to two decimals. A non-positive target yields 0.
func GoalProgress(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	progress := current.Div(target).Mul(hundred)
	if progress.GreaterThan(hundred) {
		progress = hundred
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}
	return progress.Round(2).InexactFloat64()
}
