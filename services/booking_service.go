package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"resort-backend/models"
	"resort-backend/utils"
)

const bookingsTopic = "bookings"

var (
	ErrRoomNotFound       = errors.New("room_not_found")
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrPendingExists      = errors.New("pending_booking_exists")
	ErrCapacityExceeded   = errors.New("capacity_exceeded")
	ErrGuestCountMismatch = errors.New("guest_count_mismatch")
	ErrGuestName          = errors.New("guest_name_too_short")
	ErrGuestIdentity      = errors.New("guest_identity_required")
	ErrGuestAge           = errors.New("guest_age_required")
	ErrInvalidDates       = errors.New("invalid_dates")
	ErrRoomNumberRequired = errors.New("room_number_required")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
)

// GuestInput is one guest form entry, in registry order.
type GuestInput struct {
	LegalName     string `json:"legalName"`
	Age           *int   `json:"age,omitempty"`
	NIDNumber     string `json:"nidNumber,omitempty"`
	Phone         string `json:"phone,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	NIDImageURL   string `json:"nidImageUrl,omitempty"`
}

// BookingInput is the booking request form. Dates are calendar days.
type BookingInput struct {
	RoomID      uint         `json:"roomId"`
	CheckIn     string       `json:"checkIn"`
	CheckOut    string       `json:"checkOut"`
	TotalGuests int          `json:"totalGuests"`
	Guests      []GuestInput `json:"guests"`
}

type BookingService struct {
	DB       *gorm.DB
	Notifier *NotificationService
	Push     *PushService
	Hub      *Hub
}

func NewBookingService(db *gorm.DB, notifier *NotificationService, push *PushService, hub *Hub) *BookingService {
	return &BookingService{DB: db, Notifier: notifier, Push: push, Hub: hub}
}

// validateGuestList enforces the guest registry rules: full identity (valid
// NID number plus document image) for the first two guests, name + age for
// everyone after.
func validateGuestList(totalGuests, capacity int, guests []GuestInput) error {
	if totalGuests < 1 || totalGuests > capacity {
		return ErrCapacityExceeded
	}
	if len(guests) != totalGuests {
		return ErrGuestCountMismatch
	}
	for i, g := range guests {
		if len(strings.TrimSpace(g.LegalName)) <= 2 {
			return ErrGuestName
		}
		if i < 2 {
			if err := utils.ValidateNID(g.NIDNumber); err != nil {
				return ErrGuestIdentity
			}
			if strings.TrimSpace(g.NIDImageURL) == "" {
				return ErrGuestIdentity
			}
		} else if g.Age == nil {
			return ErrGuestAge
		}
	}
	return nil
}

// canTransition encodes the status state machine. rejected and completed are
// terminal.
func canTransition(from, to string) bool {
	switch from {
	case models.BookingPending:
		return to == models.BookingAccepted || to == models.BookingRejected
	case models.BookingAccepted:
		return to == models.BookingCompleted
	default:
		return false
	}
}

// discountedPrice applies the session discount percent to a nightly rate.
func discountedPrice(price float64, percent int) float64 {
	if percent <= 0 {
		return price
	}
	if percent >= 100 {
		return 0
	}
	return price * float64(100-percent) / 100
}

const bookingDateLayout = "2006-01-02"

func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(bookingDateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	out, err := time.Parse(bookingDateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return in, out, nil
}

func isDuplicateKey(err error) bool {
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

// hasPendingBooking is shared with the offer claim flow: one active
// claim/booking cycle per user at a time.
func hasPendingBooking(db *gorm.DB, userID string) (bool, error) {
	var n int64
	err := db.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingPending).
		Count(&n).Error
	return n > 0, err
}

// Create files a new booking request for a verified user. The price recorded
// is the room's rate with the user's active discount session applied at
// submission time; the session is consumed in the same transaction.
func (s *BookingService) Create(uid string, in BookingInput) (models.Booking, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrProfileIncomplete
		}
		return models.Booking{}, err
	}
	if !profile.IsComplete {
		return models.Booking{}, ErrProfileIncomplete
	}

	pending, err := hasPendingBooking(s.DB, uid)
	if err != nil {
		return models.Booking{}, err
	}
	if pending {
		return models.Booking{}, ErrPendingExists
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrRoomNotFound
		}
		return models.Booking{}, err
	}

	if err := validateGuestList(in.TotalGuests, room.Capacity, in.Guests); err != nil {
		return models.Booking{}, err
	}

	checkIn, checkOut, err := parseStayDates(in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Booking{}, err
	}

	// Active discount, if any. Claim validity is not re-checked here.
	discount := 0
	var session models.DiscountSession
	if err := s.DB.First(&session, "uid = ?", uid).Error; err == nil {
		discount = session.DiscountPercent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, err
	}

	guests := make([]models.Guest, 0, len(in.Guests))
	for i, g := range in.Guests {
		guests = append(guests, models.Guest{
			Position:      i,
			LegalName:     strings.TrimSpace(g.LegalName),
			Age:           g.Age,
			NIDNumber:     strings.TrimSpace(g.NIDNumber),
			Phone:         strings.TrimSpace(g.Phone),
			GuardianPhone: strings.TrimSpace(g.GuardianPhone),
			NIDImageURL:   strings.TrimSpace(g.NIDImageURL),
		})
	}

	booking := models.Booking{
		UserID:      uid,
		UserName:    profile.LegalName,
		UserEmail:   profile.Email,
		RoomID:      room.ID,
		RoomTitle:   room.Title,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalGuests: in.TotalGuests,
		Guests:      guests,
		Price:       discountedPrice(room.Price, discount),
		Status:      models.BookingPending,
	}

	// Ids are creation-millis strings; two requests landing in the same
	// millisecond collide on the primary key, so bump and retry.
	for attempt := 0; ; attempt++ {
		booking.ID = strconv.FormatInt(time.Now().UnixMilli()+int64(attempt), 10)
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&booking).Error; err != nil {
				return err
			}
			return tx.Delete(&models.DiscountSession{}, "uid = ?", uid).Error
		})
		if err == nil {
			break
		}
		if attempt < 2 && isDuplicateKey(err) {
			continue
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishSnapshot()
	return booking, nil
}

func (s *BookingService) get(id string) (models.Booking, error) {
	var b models.Booking
	if err := s.DB.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, ErrBookingNotFound
		}
		return b, err
	}
	return b, nil
}

// Accept moves a pending booking to accepted, assigns the room number and
// notifies the guest. Push delivery is best-effort and never surfaced.
func (s *BookingService) Accept(id, roomNumber string) (models.Booking, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return models.Booking{}, ErrRoomNumberRequired
	}

	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !canTransition(b.Status, models.BookingAccepted) {
		return models.Booking{}, ErrInvalidTransition
	}

	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.BookingAccepted,
			"room_number": roomNumber,
		}).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to accept booking: %w", err)
	}
	b.Status = models.BookingAccepted
	b.RoomNumber = roomNumber

	message := fmt.Sprintf("Your stay at %s has been confirmed. Room %s is ready for you.", b.RoomTitle, roomNumber)
	if _, err := s.Notifier.Create(b.UserID, "Stay Confirmed", message, models.NotifBookingAccepted); err != nil {
		logrus.WithError(err).Warn("accept notification failed")
	}
	s.Push.Send(b.UserID, "Stay Confirmed", message)

	s.publishSnapshot()
	return b, nil
}

// Reject moves a pending booking to its terminal rejected state.
func (s *BookingService) Reject(id, reason string) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !canTransition(b.Status, models.BookingRejected) {
		return models.Booking{}, ErrInvalidTransition
	}

	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.BookingRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to reject booking: %w", err)
	}
	b.Status = models.BookingRejected
	b.RejectionReason = reason

	message := fmt.Sprintf("We could not confirm your stay at %s. Reason: %s", b.RoomTitle, reason)
	if _, err := s.Notifier.Create(b.UserID, "Stay Rejected", message, models.NotifBookingRejected); err != nil {
		logrus.WithError(err).Warn("reject notification failed")
	}
	s.Push.Send(b.UserID, "Stay Rejected", message)

	s.publishSnapshot()
	return b, nil
}

// MarkArrived stamps arrival on an accepted booking; the status itself does
// not change until departure.
func (s *BookingService) MarkArrived(id string) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status != models.BookingAccepted {
		return models.Booking{}, ErrInvalidTransition
	}
	now := time.Now()
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).
		Update("arrived_at", now).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to mark arrival: %w", err)
	}
	b.ArrivedAt = &now
	s.publishSnapshot()
	return b, nil
}

// MarkDeparted completes an accepted booking.
func (s *BookingService) MarkDeparted(id string) (models.Booking, error) {
	b, err := s.get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if !canTransition(b.Status, models.BookingCompleted) {
		return models.Booking{}, ErrInvalidTransition
	}
	now := time.Now()
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.BookingCompleted,
			"left_at": now,
		}).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to mark departure: %w", err)
	}
	b.Status = models.BookingCompleted
	b.LeftAt = &now
	s.publishSnapshot()
	return b, nil
}

// ListMine returns the caller's bookings newest first.
func (s *BookingService) ListMine(uid string) ([]models.Booking, error) {
	var out []models.Booking
	err := s.DB.Preload("Guests").Where("user_id = ?", uid).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

// matchesBookingQuery mirrors the admin console filter: case-insensitive
// substring over guest name, room title, email and guest phones.
func matchesBookingQuery(b models.Booking, q string) bool {
	if strings.Contains(strings.ToLower(b.UserName), q) ||
		strings.Contains(strings.ToLower(b.RoomTitle), q) ||
		strings.Contains(strings.ToLower(b.UserEmail), q) {
		return true
	}
	for _, g := range b.Guests {
		if g.Phone != "" && strings.Contains(g.Phone, q) {
			return true
		}
	}
	return false
}

// Search returns the full filtered set; there is no pagination.
func (s *BookingService) Search(query string) ([]models.Booking, error) {
	var all []models.Booking
	if err := s.DB.Preload("Guests").Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if matchesBookingQuery(b, q) {
			out = append(out, b)
		}
	}
	return out, nil
}

// publishSnapshot pushes the full bookings list to the admin live stream.
func (s *BookingService) publishSnapshot() {
	if !s.Hub.HasSubscribers(bookingsTopic) {
		return
	}
	list, err := s.Search("")
	if err != nil {
		logrus.WithError(err).Warn("bookings snapshot load failed")
		return
	}
	payload, err := json.Marshal(list)
	if err != nil {
		logrus.WithError(err).Warn("bookings snapshot marshal failed")
		return
	}
	s.Hub.Publish(bookingsTopic, payload)
}
