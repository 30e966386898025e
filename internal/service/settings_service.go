package service

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/shopspring/decimal"
)

type SettingsService interface {
	Get() (*model.SiteSettings, error)
	Update(req *UpdateSettingsRequest) (*model.SiteSettings, error)
}

type UpdateSettingsRequest struct {
	SiteName       *string          `json:"site_name"`
	Logo           *string          `json:"logo"`
	Favicon        *string          `json:"favicon"`
	PrimaryColor   *string          `json:"primary_color"`
	SecondaryColor *string          `json:"secondary_color"`
	Currency       *string          `json:"currency"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get() (*model.SiteSettings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

// Update applies a partial patch to the singleton row.
func (s *settingsService) Update(req *UpdateSettingsRequest) (*model.SiteSettings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if req.SiteName != nil {
		settings.SiteName = *req.SiteName
	}
	if req.Logo != nil {
		settings.Logo = *req.Logo
	}
	if req.Favicon != nil {
		settings.Favicon = *req.Favicon
	}
	if req.PrimaryColor != nil {
		settings.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		settings.SecondaryColor = *req.SecondaryColor
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, apperr.Invalid("Tax rate cannot be negative")
		}
		settings.TaxRate = *req.TaxRate
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}
