package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-ops/finance"
	"hotel-ops/models"
)

type OwnerService struct {
	DB *gorm.DB
}

func NewOwnerService(db *gorm.DB) *OwnerService {
	return &OwnerService{DB: db}
}

type OwnerInput struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	City           string
	Country        string
	CommissionRate *decimal.Decimal
	PaymentDetails any
	Password       string
}

func OwnerInputFromMap(m map[string]interface{}) OwnerInput {
	return OwnerInput{
		Name:           getStringFromMap(m, "name"),
		Email:          strings.ToLower(getStringFromMap(m, "email")),
		Phone:          getStringFromMap(m, "phone"),
		Address:        getStringFromMap(m, "address"),
		City:           getStringFromMap(m, "city"),
		Country:        getStringFromMap(m, "country"),
		CommissionRate: decimalPtrFromMap(m, "commission_rate", "commissionRate"),
		PaymentDetails: firstPresent(m, "payment_details", "paymentDetails"),
		Password:       getStringFromMap(m, "password"),
	}
}

func firstPresent(m map[string]interface{}, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func validCommission(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", validationf("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *OwnerService) List(ctx context.Context) ([]models.Owner, error) {
	owners := []models.Owner{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&owners).Error; err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

func (s *OwnerService) Get(ctx context.Context, id string) (models.Owner, error) {
	var owner models.Owner
	if err := s.DB.WithContext(ctx).Preload("Rooms").First(&owner, "id = ?", id).Error; err != nil {
		return models.Owner{}, translateDBError(err, "owner")
	}
	return owner, nil
}

func (s *OwnerService) Create(ctx context.Context, in OwnerInput) (models.Owner, error) {
	if in.Name == "" || in.Email == "" {
		return models.Owner{}, validationf("name and email are required")
	}
	rate := models.DefaultOwnerCommission
	if in.CommissionRate != nil {
		rate = *in.CommissionRate
	}
	if !validCommission(rate) {
		return models.Owner{}, validationf("commission_rate must be between 0 and 100")
	}

	owner := models.Owner{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		Country:        in.Country,
		CommissionRate: rate,
		PaymentDetails: jsonValue(in.PaymentDetails),
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return models.Owner{}, err
		}
		owner.PasswordHash = &hash
	}
	if err := s.DB.WithContext(ctx).Create(&owner).Error; err != nil {
		return models.Owner{}, translateDBError(err, "owner "+in.Email)
	}
	return owner, nil
}

func (s *OwnerService) Update(ctx context.Context, id string, m map[string]interface{}) (models.Owner, error) {
	updates := map[string]interface{}{}
	for _, col := range []string{"name", "phone", "address", "city", "country"} {
		if hasAnyKey(m, col) {
			updates[col] = getStringFromMap(m, col)
		}
	}
	if hasAnyKey(m, "email") {
		updates["email"] = strings.ToLower(getStringFromMap(m, "email"))
	}
	if hasAnyKey(m, "commission_rate", "commissionRate") {
		rate := finance.ParseAmount(firstPresent(m, "commission_rate", "commissionRate"))
		if !validCommission(rate) {
			return models.Owner{}, validationf("commission_rate must be between 0 and 100")
		}
		updates["commission_rate"] = rate
	}
	if hasAnyKey(m, "payment_details", "paymentDetails") {
		updates["payment_details"] = jsonValue(firstPresent(m, "payment_details", "paymentDetails"))
	}
	if pw := getStringFromMap(m, "password"); pw != "" {
		hash, err := hashPassword(pw)
		if err != nil {
			return models.Owner{}, err
		}
		updates["password_hash"] = hash
	}

	owner, err := s.Get(ctx, id)
	if err != nil {
		return models.Owner{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&owner).Updates(updates).Error; err != nil {
			return models.Owner{}, translateDBError(err, "owner")
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the owner and releases their rooms.
func (s *OwnerService) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Owner{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("owner %w", ErrNotFound)
		}
		if err := tx.Model(&models.Room{}).Where("owner_id = ?", id).Update("owner_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("owner_id = ?", id).Delete(&models.PropertyOwnership{}).Error
	})
}

func (s *OwnerService) Rooms(ctx context.Context, ownerID string) ([]models.Room, error) {
	if _, err := s.Get(ctx, ownerID); err != nil {
		return nil, err
	}
	rooms := []models.Room{}
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("property_name, number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list owner rooms: %w", err)
	}
	return rooms, nil
}

// AssignRoom makes ownerID the owner of roomID with the given share.
func (s *OwnerService) AssignRoom(ctx context.Context, ownerID, roomID string, share decimal.Decimal) (models.PropertyOwnership, error) {
	if share.IsZero() {
		share = decimal.NewFromInt(100)
	}
	if !validCommission(share) {
		return models.PropertyOwnership{}, validationf("share_percentage must be between 0 and 100")
	}

	var po models.PropertyOwnership
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Owner
		if err := tx.First(&owner, "id = ?", ownerID).Error; err != nil {
			return translateDBError(err, "owner")
		}
		res := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("owner_id", ownerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("room %w", ErrNotFound)
		}
		if err := tx.Where("owner_id = ? AND room_id = ?", ownerID, roomID).
			Assign(models.PropertyOwnership{SharePercentage: share}).
			FirstOrCreate(&po, models.PropertyOwnership{OwnerID: ownerID, RoomID: roomID}).Error; err != nil {
			return translateDBError(err, "ownership")
		}
		return nil
	})
	return po, err
}
