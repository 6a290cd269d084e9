package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resort-backend/models"
)

var (
	ErrOfferNotFound   = errors.New("offer_not_found")
	ErrOfferNotStarted = errors.New("offer_not_started")
	ErrOfferExpired    = errors.New("offer_expired")
	ErrAlreadyClaimed  = errors.New("offer_already_claimed")
)

type OfferService struct {
	DB *gorm.DB
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{DB: db}
}

// offerClaimableAt checks the offer's validity window. No end date means the
// offer runs forever.
func offerClaimableAt(offer models.Offer, now time.Time) error {
	if offer.StartDate != nil && now.Before(*offer.StartDate) {
		return ErrOfferNotStarted
	}
	if offer.EndDate != nil && now.After(*offer.EndDate) {
		return ErrOfferExpired
	}
	return nil
}

// claimsOf decodes the profile's redeemed-offer set.
func claimsOf(p models.UserProfile) []string {
	if len(p.Claims) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(p.Claims, &out); err != nil {
		return nil
	}
	return out
}

func claimsContain(claims []string, offerID string) bool {
	for _, c := range claims {
		if c == offerID {
			return true
		}
	}
	return false
}

func (s *OfferService) List() ([]models.Offer, error) {
	var out []models.Offer
	err := s.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *OfferService) Get(id string) (models.Offer, error) {
	var o models.Offer
	if err := s.DB.First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return o, ErrOfferNotFound
		}
		return o, err
	}
	return o, nil
}

// Claim redeems an offer for a verified user with no pending booking.
// One-time offers are recorded in the profile's claims set (idempotent:
// a second claim is rejected); every successful claim replaces the user's
// active discount session.
func (s *OfferService) Claim(uid, offerID string) (models.DiscountSession, error) {
	pending, err := hasPendingBooking(s.DB, uid)
	if err != nil {
		return models.DiscountSession{}, err
	}
	if pending {
		return models.DiscountSession{}, ErrPendingExists
	}

	offer, err := s.Get(offerID)
	if err != nil {
		return models.DiscountSession{}, err
	}
	if err := offerClaimableAt(offer, time.Now()); err != nil {
		return models.DiscountSession{}, err
	}

	var profile models.UserProfile
	if err := s.DB.First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DiscountSession{}, ErrProfileIncomplete
		}
		return models.DiscountSession{}, err
	}
	if !profile.IsComplete {
		return models.DiscountSession{}, ErrProfileIncomplete
	}

	session := models.DiscountSession{
		UID:             uid,
		OfferID:         offer.ID,
		DiscountPercent: offer.DiscountPercent,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if offer.IsOneTime {
			claims := claimsOf(profile)
			if claimsContain(claims, offer.ID) {
				return ErrAlreadyClaimed
			}
			raw, err := json.Marshal(append(claims, offer.ID))
			if err != nil {
				return err
			}
			if err := tx.Model(&models.UserProfile{}).Where("uid = ?", uid).
				Update("claims", raw).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&session).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyClaimed) {
			return models.DiscountSession{}, err
		}
		return models.DiscountSession{}, fmt.Errorf("failed to claim offer: %w", err)
	}
	return session, nil
}

// ActiveDiscount returns the caller's discount session, if any.
func (s *OfferService) ActiveDiscount(uid string) (models.DiscountSession, bool, error) {
	var session models.DiscountSession
	err := s.DB.First(&session, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DiscountSession{}, false, nil
	}
	if err != nil {
		return models.DiscountSession{}, false, err
	}
	return session, true, nil
}

// ---- admin content management ----

func (s *OfferService) Create(offer models.Offer) (models.Offer, error) {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if err := s.DB.Create(&offer).Error; err != nil {
		return models.Offer{}, err
	}
	return offer, nil
}

func (s *OfferService) Update(id string, offer models.Offer) (models.Offer, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Offer{}, err
	}
	offer.ID = existing.ID
	if err := s.DB.Model(&existing).Select("*").Omit("id", "created_at", "deleted_at").
		Updates(&offer).Error; err != nil {
		return models.Offer{}, err
	}
	return s.Get(id)
}

func (s *OfferService) Delete(id string) error {
	res := s.DB.Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}
