package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
	"github.com/roomstays/payment-service/internal/domain/gateway"
	"github.com/roomstays/payment-service/internal/domain/model"
	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/domain/repository"
)

// CheckoutService runs the end-to-end payment for a booking: charge the
// guest, advance the booking, record the ledger entry. The three systems
// share no transaction; calls run strictly in sequence and the first failure
// is surfaced as-is. Once the charge succeeds there is no rollback — a later
// failure leaves the charge standing on the provider, and reconciling it is
// the caller's responsibility.
type CheckoutService struct {
	users    repository.UserRepository
	profiles repository.UserProfileRepository
	listings repository.ListingRepository
	provider provider.PaymentProvider
	bookings gateway.BookingGateway
	ledger   *LedgerService
	email    *EmailService
	logger   *zap.Logger
}

func NewCheckoutService(
	users repository.UserRepository,
	profiles repository.UserProfileRepository,
	listings repository.ListingRepository,
	paymentProvider provider.PaymentProvider,
	bookings gateway.BookingGateway,
	ledger *LedgerService,
	email *EmailService,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		users:    users,
		profiles: profiles,
		listings: listings,
		provider: paymentProvider,
		bookings: bookings,
		ledger:   ledger,
		email:    email,
		logger:   logger,
	}
}

// CheckoutResult reports a completed payment.
type CheckoutResult struct {
	Status       string `json:"status"`
	BookingID    string `json:"bookingId"`
	BookingState string `json:"bookingState"`
}

// checkoutContext is everything gathered before the first side effect.
type checkoutContext struct {
	guest        *model.User
	guestProfile *model.UserProfile
	booking      *gateway.Booking
	host         *model.User
	listing      *model.Listing
	location     *model.Location
}

// DoPayment charges the guest's card for the booking, advances the booking
// state, annotates the booking with the charge, and records the ledger
// entry. All reads happen before the charge, so a missing record can never
// leave a side effect behind.
func (s *CheckoutService) DoPayment(ctx context.Context, userID, cardID, bookingID string) (*CheckoutResult, error) {
	if cardID == "" {
		return nil, domainErrors.NewInvalidInput("card id is required")
	}
	if bookingID == "" {
		return nil, domainErrors.NewInvalidInput("booking id is required")
	}

	cc, err := s.gather(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromFloat(cc.booking.TotalPrice)
	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	charge, err := s.provider.CreateCharge(ctx, provider.ChargeRequest{
		Amount:      amountMinor,
		Currency:    cc.booking.Currency,
		CustomerID:  *cc.guestProfile.CustomerID,
		SourceID:    cardID,
		Description: fmt.Sprintf("Reservation %s - %s", cc.booking.ID, cc.listing.Title),
		Metadata: map[string]string{
			"reservation_id":  cc.booking.ID,
			"listing_id":      strconv.FormatInt(cc.listing.ID, 10),
			"listing_title":   cc.listing.Title,
			"listing_address": cc.location.Address(),
			"guest_email":     cc.guest.Email,
			"customer_id":     *cc.guestProfile.CustomerID,
			"host_name":       cc.host.FirstName,
			"amount":          total.StringFixed(2),
		},
	})
	if err != nil {
		return nil, domainErrors.NewUpstream("failed to create charge", bookingID, err)
	}

	// Point of no return: the charge exists on the provider from here on.
	s.logger.Info("charge created",
		zap.String("booking_id", bookingID),
		zap.String("charge_id", charge.ID),
		zap.Int64("amount_minor", amountMinor),
		zap.String("currency", cc.booking.Currency))

	state, err := s.bookings.Transition(ctx, bookingID, cc.booking.BookingType)
	if err != nil {
		s.logger.Error("booking transition failed after charge, charge is unreconciled",
			zap.String("booking_id", bookingID),
			zap.String("charge_id", charge.ID),
			zap.Error(err))
		return nil, domainErrors.NewUpstream("failed to advance booking state", bookingID, err)
	}

	if err := s.bookings.Annotate(ctx, bookingID, cardID, charge.ID); err != nil {
		s.logger.Error("booking annotation failed after charge, charge is unreconciled",
			zap.String("booking_id", bookingID),
			zap.String("charge_id", charge.ID),
			zap.Error(err))
		return nil, domainErrors.NewUpstream("failed to annotate booking", bookingID, err)
	}

	if _, err := s.ledger.Record(ctx, RecordInput{
		BookingID:     bookingID,
		ChargeID:      charge.ID,
		PayerEmail:    cc.guest.Email,
		PayerID:       cc.guest.ID,
		ReceiverEmail: cc.host.Email,
		ReceiverID:    cc.host.ID,
		Total:         total.Round(2),
		Currency:      cc.booking.Currency,
		PaymentType:   model.PaymentTypeBooking,
	}); err != nil {
		s.logger.Error("ledger write failed after charge, charge is unreconciled",
			zap.String("booking_id", bookingID),
			zap.String("charge_id", charge.ID),
			zap.Error(err))
		return nil, err
	}

	if s.email != nil {
		s.email.SendBookingConfirmation(ctx, cc.booking, cc.listing, cc.location, cc.host, cc.guest)
	}

	return &CheckoutResult{
		Status:       "OK",
		BookingID:    bookingID,
		BookingState: state,
	}, nil
}

// gather loads every record the checkout needs. Any absence aborts before
// side effects.
func (s *CheckoutService) gather(ctx context.Context, userID, bookingID string) (*checkoutContext, error) {
	guest, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	if guest == nil {
		return nil, domainErrors.NewNotFound("guest not found", userID)
	}

	guestProfile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guest profile: %w", err)
	}
	if guestProfile == nil {
		return nil, domainErrors.NewNotFound("guest profile not found", userID)
	}
	if guestProfile.CustomerID == nil {
		return nil, domainErrors.NewPrecondition("guest has no customer yet", userID)
	}

	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gateway.ErrBookingNotFound) {
			return nil, domainErrors.NewNotFound("booking not found", bookingID)
		}
		return nil, domainErrors.NewUpstream("failed to fetch booking", bookingID, err)
	}

	host, err := s.users.GetByID(ctx, booking.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host: %w", err)
	}
	if host == nil {
		return nil, domainErrors.NewNotFound("host not found", booking.HostID)
	}

	hostProfile, err := s.profiles.GetByUserID(ctx, booking.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load host profile: %w", err)
	}
	if hostProfile == nil {
		return nil, domainErrors.NewNotFound("host profile not found", booking.HostID)
	}

	listing, err := s.listings.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing == nil {
		return nil, domainErrors.NewNotFound("listing not found", strconv.FormatInt(booking.ListingID, 10))
	}

	location, err := s.listings.GetLocation(ctx, listing.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	if location == nil {
		return nil, domainErrors.NewNotFound("location not found", strconv.FormatInt(listing.LocationID, 10))
	}

	return &checkoutContext{
		guest:        guest,
		guestProfile: guestProfile,
		booking:      booking,
		host:         host,
		listing:      listing,
		location:     location,
	}, nil
}
