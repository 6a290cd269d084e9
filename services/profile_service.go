package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resort-backend/models"
	"resort-backend/utils"
)

const profileEditCooldownDays = 30

var (
	ErrProfileNotFound   = errors.New("profile_not_found")
	ErrProfileIncomplete = errors.New("profile_incomplete")
	ErrProfileComplete   = errors.New("profile_already_complete")
	ErrUsernameTaken     = errors.New("username_taken")
)

// LockedError is returned when a profile edit lands inside the 30-day
// cooldown window.
type LockedError struct {
	DaysRemaining int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("profile locked for %d more day(s)", e.DaysRemaining)
}

// ProfileInput carries the onboarding / manage-account form fields.
type ProfileInput struct {
	LegalName     string `json:"legalName"`
	Username      string `json:"username"`
	Phone         string `json:"phone"`
	GuardianPhone string `json:"guardianPhone"`
	NIDNumber     string `json:"nidNumber"`
	NIDImageURL   string `json:"nidImageUrl"`
	Age           *int   `json:"age,omitempty"`
}

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// validateProfileInput runs the field-level checks shared by onboarding and
// profile update.
func validateProfileInput(in ProfileInput) error {
	if strings.TrimSpace(in.LegalName) == "" || strings.TrimSpace(in.NIDImageURL) == "" {
		return utils.ErrEmptyField
	}
	if err := utils.ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := utils.ValidatePhone(in.Phone); err != nil {
		return err
	}
	if err := utils.ValidatePhone(in.GuardianPhone); err != nil {
		return err
	}
	return utils.ValidateNID(in.NIDNumber)
}

// cooldownDaysRemaining returns how many whole days are left before the
// profile may be edited again. 0 means the edit is allowed.
func cooldownDaysRemaining(lastUpdated, now time.Time) int {
	if lastUpdated.IsZero() {
		return 0
	}
	elapsed := int(now.Sub(lastUpdated).Hours() / 24)
	remaining := profileEditCooldownDays - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Ensure creates the skeleton profile row on first sign-in. Existing rows are
// returned untouched.
func (s *ProfileService) Ensure(uid, email string) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.DB.First(&p, "uid = ?", uid).Error
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return p, err
	}
	p = models.UserProfile{UID: uid, Email: email}
	if err := s.DB.Create(&p).Error; err != nil {
		return p, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) Get(uid string) (models.UserProfile, error) {
	var p models.UserProfile
	if err := s.DB.First(&p, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, ErrProfileNotFound
		}
		return p, err
	}
	return p, nil
}

// usernameAvailable checks the reverse index. A row owned by the same uid
// does not block.
func (s *ProfileService) usernameAvailable(username, uid string) error {
	var idx models.UsernameIndex
	err := s.DB.First(&idx, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if idx.UID != uid {
		return ErrUsernameTaken
	}
	return nil
}

// Onboard completes identity verification: validates the form, claims the
// username and writes profile + reverse index together. Repeat onboarding on
// an already-complete profile is rejected; edits go through Update.
func (s *ProfileService) Onboard(uid, email string, in ProfileInput) (models.UserProfile, error) {
	if err := validateProfileInput(in); err != nil {
		return models.UserProfile{}, err
	}
	username := utils.NormalizeUsername(in.Username)

	var existing models.UserProfile
	err := s.DB.First(&existing, "uid = ?", uid).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserProfile{}, err
	}
	if existing.IsComplete {
		return models.UserProfile{}, ErrProfileComplete
	}

	if err := s.usernameAvailable(username, uid); err != nil {
		return models.UserProfile{}, err
	}

	now := time.Now()
	profile := models.UserProfile{
		UID:           uid,
		Email:         email,
		LegalName:     strings.TrimSpace(in.LegalName),
		Username:      username,
		Phone:         strings.TrimSpace(in.Phone),
		GuardianPhone: strings.TrimSpace(in.GuardianPhone),
		NIDNumber:     strings.TrimSpace(in.NIDNumber),
		NIDImageURL:   strings.TrimSpace(in.NIDImageURL),
		Age:           in.Age,
		IsComplete:    true,
		LastUpdated:   now,
		Claims:        existing.Claims,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if existing.UID != "" {
			if err := tx.Model(&models.UserProfile{}).Where("uid = ?", uid).
				Select("email", "legal_name", "username", "phone", "guardian_phone",
					"nid_number", "nid_image_url", "age", "is_complete", "last_updated").
				Updates(&profile).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.UsernameIndex{Username: username, UID: uid}).Error
	})
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// Update applies a ManageAccount edit. Same validation as onboarding plus the
// 30-day cooldown; the reverse index is re-pointed only when the username
// actually changed.
func (s *ProfileService) Update(uid string, in ProfileInput) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, ErrProfileNotFound
		}
		return profile, err
	}
	if !profile.IsComplete {
		return profile, ErrProfileIncomplete
	}
	if remaining := cooldownDaysRemaining(profile.LastUpdated, time.Now()); remaining > 0 {
		return profile, &LockedError{DaysRemaining: remaining}
	}
	if err := validateProfileInput(in); err != nil {
		return profile, err
	}

	username := utils.NormalizeUsername(in.Username)
	usernameChanged := username != profile.Username
	if usernameChanged {
		if err := s.usernameAvailable(username, uid); err != nil {
			return profile, err
		}
	}

	oldUsername := profile.Username
	now := time.Now()
	profile.LegalName = strings.TrimSpace(in.LegalName)
	profile.Username = username
	profile.Phone = strings.TrimSpace(in.Phone)
	profile.GuardianPhone = strings.TrimSpace(in.GuardianPhone)
	profile.NIDNumber = strings.TrimSpace(in.NIDNumber)
	profile.NIDImageURL = strings.TrimSpace(in.NIDImageURL)
	profile.Age = in.Age
	profile.LastUpdated = now

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserProfile{}).Where("uid = ?", uid).
			Select("legal_name", "username", "phone", "guardian_phone",
				"nid_number", "nid_image_url", "age", "last_updated").
			Updates(&profile).Error; err != nil {
			return err
		}
		if usernameChanged {
			if err := tx.Delete(&models.UsernameIndex{}, "username = ?", oldUsername).Error; err != nil {
				return err
			}
			return tx.Create(&models.UsernameIndex{Username: username, UID: uid}).Error
		}
		return nil
	})
	if err != nil {
		return profile, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// Search filters profiles by case-insensitive substring over name, email,
// username and phone. Full result set, no pagination.
func (s *ProfileService) Search(query string) ([]models.UserProfile, error) {
	var all []models.UserProfile
	if err := s.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]models.UserProfile, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.LegalName), q) ||
			strings.Contains(strings.ToLower(p.Email), q) ||
			strings.Contains(strings.ToLower(p.Username), q) ||
			strings.Contains(p.Phone, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Delete removes a profile and its reverse-index entry (admin action).
func (s *ProfileService) Delete(uid string) error {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if profile.Username != "" {
			if err := tx.Delete(&models.UsernameIndex{}, "username = ?", profile.Username).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.DiscountSession{}, "uid = ?", uid).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserProfile{}, "uid = ?", uid).Error
	})
}
