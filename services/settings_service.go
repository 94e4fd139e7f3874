package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"hotel-ops/finance"
	"hotel-ops/models"
)

type SettingsService struct {
	DB *gorm.DB

	loc atomic.Pointer[time.Location]
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Get returns the single settings row, creating it on first use.
func (s *SettingsService) Get(ctx context.Context) (models.HotelSetting, error) {
	var st models.HotelSetting
	err := s.DB.WithContext(ctx).Order("id").First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = models.HotelSetting{Name: "Hotel Ops"}
		err = s.DB.WithContext(ctx).Create(&st).Error
	}
	if err != nil {
		return models.HotelSetting{}, fmt.Errorf("load settings: %w", err)
	}
	s.remember(st.Timezone)
	return st, nil
}

func (s *SettingsService) remember(tz string) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	s.loc.Store(loc)
}

// Location is the hotel's configured timezone as of the last Get or Update,
// UTC before settings were first read.
func (s *SettingsService) Location() *time.Location {
	if loc := s.loc.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

var settingsTextColumns = map[string][]string{
	"name":        {"name", "companyName", "company_name"},
	"address":     {"address", "companyAddress", "company_address"},
	"phone":       {"phone", "companyPhone", "company_phone"},
	"email":       {"email", "companyEmail", "company_email"},
	"website":     {"website", "companyWebsite", "company_website"},
	"logo":        {"logo"},
	"date_format": {"date_format", "dateFormat"},
	"currency":    {"currency"},
}

func settingsUpdates(m map[string]interface{}) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for col, keys := range settingsTextColumns {
		if hasAnyKey(m, keys...) {
			updates[col] = getStringFromMap(m, keys...)
		}
	}
	if hasAnyKey(m, "timezone") {
		tz := getStringFromMap(m, "timezone")
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, validationf("unknown timezone %q", tz)
		}
		updates["timezone"] = tz
	}
	if hasAnyKey(m, "tax_rate", "taxRate") {
		rate := finance.ParseAmount(firstPresent(m, "tax_rate", "taxRate"))
		if !validCommission(rate) {
			return nil, validationf("tax_rate must be between 0 and 100")
		}
		updates["tax_rate"] = rate
	}
	for col, keys := range map[string][]string{
		"check_in_time":  {"check_in_time", "checkInTime"},
		"check_out_time": {"check_out_time", "checkOutTime"},
	} {
		if !hasAnyKey(m, keys...) {
			continue
		}
		v := getStringFromMap(m, keys...)
		if !clockTime.MatchString(v) {
			return nil, validationf("%s must be HH:MM", col)
		}
		updates[col] = v
	}
	return updates, nil
}

func (s *SettingsService) Update(ctx context.Context, m map[string]interface{}) (models.HotelSetting, error) {
	updates, err := settingsUpdates(m)
	if err != nil {
		return models.HotelSetting{}, err
	}
	st, err := s.Get(ctx)
	if err != nil {
		return models.HotelSetting{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&st).Updates(updates).Error; err != nil {
			return models.HotelSetting{}, fmt.Errorf("update settings: %w", err)
		}
	}
	return s.Get(ctx)
}
