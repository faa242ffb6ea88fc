package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	eventModel "jaaliya_backend/internals/features/events/registrations/model"
	applicationModel "jaaliya_backend/internals/features/membership/applications/model"
	activationService "jaaliya_backend/internals/features/membership/members/service"
	"jaaliya_backend/internals/features/payment/gateway/model"
	requestModel "jaaliya_backend/internals/features/requests/model"
	requestService "jaaliya_backend/internals/features/requests/service"
)

/* ===================== Metadata ===================== */

// Metadata type values attached at intent creation.
const (
	MetaTypeMembership      = "membership"
	MetaTypeTranslation     = "translation"
	MetaTypeLegalOther      = "legal_other"
	MetaTypeWakala          = "wakala"
	MetaTypeEvent           = "event"
	MetaTypeBusinessSupport = "business_support"
)

// IntentMetadata is the bag carried on every payment intent — the only
// linkage between Stripe's world and our rows.
type IntentMetadata struct {
	Type                string
	ApplicationID       string
	WakalaID            string
	EventRegistrationID string
	UserID              string
}

func MetadataFromIntent(md map[string]string) IntentMetadata {
	return IntentMetadata{
		Type:                md["type"],
		ApplicationID:       md["application_id"],
		WakalaID:            md["wakala_id"],
		EventRegistrationID: md["event_registration_id"],
		UserID:              md["user_id"],
	}
}

// KnownType reports whether the metadata names a flow this backend owns.
// Intents created elsewhere on the same Stripe account are ignored.
func (md IntentMetadata) KnownType() bool {
	switch md.Type {
	case MetaTypeMembership, MetaTypeTranslation, MetaTypeLegalOther,
		MetaTypeWakala, MetaTypeEvent, MetaTypeBusinessSupport:
		return true
	}
	return false
}

// Target resolution, in the order the ids are trusted.
type Target int

const (
	TargetNone Target = iota
	TargetMembershipApplication
	TargetWakala
	TargetEventRegistration
	TargetServiceRequest // translation / legal: row may not exist yet
)

func (md IntentMetadata) Target() Target {
	switch {
	case md.ApplicationID != "":
		return TargetMembershipApplication
	case md.WakalaID != "":
		return TargetWakala
	case md.EventRegistrationID != "":
		return TargetEventRegistration
	case md.Type == MetaTypeTranslation || md.Type == MetaTypeLegalOther:
		return TargetServiceRequest
	default:
		return TargetNone
	}
}

func (md IntentMetadata) RequestKind() (requestModel.ServiceRequestKind, bool) {
	switch md.Type {
	case MetaTypeTranslation:
		return requestModel.KindTranslation, true
	case MetaTypeLegalOther:
		return requestModel.KindLegalOther, true
	case MetaTypeWakala:
		return requestModel.KindWakala, true
	default:
		return "", false
	}
}

/* ===================== Event processing ===================== */

// ProcessEvent is the webhook reconciler body. It runs detached from the
// HTTP response; every outcome lands in the audit log and nothing re-raises.
// rawPayload must be an owned copy, not Fiber's request buffer.
func ProcessEvent(db *gorm.DB, event stripe.Event, rawPayload []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] webhook handler panic for event %s: %v", event.ID, r)
			recordHandlerError(db, event.ID, fmt.Sprintf("panic: %v", r))
		}
	}()

	logRow := model.PaymentLog{
		PaymentLogEventType:     string(event.Type),
		PaymentLogStripeEventID: event.ID,
		PaymentLogPayload:       rawPayload,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_log_stripe_event_id"}},
		DoNothing: true,
	}).Create(&logRow)
	retrying := false
	if res.Error != nil {
		log.Printf("[ERROR] failed to append payment log for event %s: %v", event.ID, res.Error)
		// Keep going: losing the audit row must not lose the state update.
	} else if res.RowsAffected == 0 {
		// Seen before. Skip only if the first attempt went through cleanly;
		// a recorded failure means Stripe's resend is our repair path.
		var prior model.PaymentLog
		if err := db.Where("payment_log_stripe_event_id = ?", event.ID).First(&prior).Error; err != nil {
			log.Printf("[ERROR] failed to load prior log for event %s: %v", event.ID, err)
			return
		}
		if !retryableReplay(prior.PaymentLogErrorMessage) {
			log.Printf("ℹ️ event %s already processed, skipping", event.ID)
			return
		}
		log.Printf("🔁 event %s redelivered after a failed attempt, retrying", event.ID)
		retrying = true
	}

	var handlerErr error
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		if handlerErr = json.Unmarshal(event.Data.Raw, &pi); handlerErr == nil {
			handlerErr = ApplyIntentSucceeded(db, &pi)
		}
	case stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if handlerErr = json.Unmarshal(event.Data.Raw, &pi); handlerErr == nil {
			handlerErr = ApplyIntentFailed(db, &pi)
		}
	case stripe.EventTypeCheckoutSessionCompleted:
		var cs stripe.CheckoutSession
		if handlerErr = json.Unmarshal(event.Data.Raw, &cs); handlerErr == nil {
			handlerErr = ApplyCheckoutCompleted(db, &cs)
		}
	default:
		log.Printf("ℹ️ ignoring event type %s (%s)", event.Type, event.ID)
	}

	if handlerErr != nil {
		log.Printf("[ERROR] webhook handling failed for event %s: %v", event.ID, handlerErr)
		recordHandlerError(db, event.ID, handlerErr.Error())
	} else if retrying {
		clearHandlerError(db, event.ID)
	}
}

// retryableReplay decides what to do with a redelivered event id: replays of
// clean runs are no-ops, replays of failed runs re-enter the handler.
func retryableReplay(priorError *string) bool {
	return priorError != nil && *priorError != ""
}

func clearHandlerError(db *gorm.DB, eventID string) {
	if err := db.Model(&model.PaymentLog{}).
		Where("payment_log_stripe_event_id = ?", eventID).
		Update("payment_log_error_message", nil).Error; err != nil {
		log.Printf("[ERROR] failed to clear handler error for event %s: %v", eventID, err)
	}
}

func recordHandlerError(db *gorm.DB, eventID, message string) {
	if err := db.Model(&model.PaymentLog{}).
		Where("payment_log_stripe_event_id = ?", eventID).
		Update("payment_log_error_message", message).Error; err != nil {
		log.Printf("[ERROR] failed to record handler error for event %s: %v", eventID, err)
	}
}

/* ===================== Success path ===================== */

// ApplyIntentSucceeded marks the business record behind the intent as paid.
// Shared by the client confirm path and the webhook; every update sets an
// absolute target state, so replays and races are no-ops.
func ApplyIntentSucceeded(db *gorm.DB, pi *stripe.PaymentIntent) error {
	md := MetadataFromIntent(pi.Metadata)
	if !md.KnownType() {
		log.Printf("ℹ️ intent %s has unknown metadata type %q, ignoring", pi.ID, md.Type)
		return nil
	}
	paidAt := time.Now()
	if pi.Created > 0 {
		paidAt = time.Unix(pi.Created, 0)
	}

	switch md.Target() {
	case TargetMembershipApplication:
		appID, err := uuid.Parse(md.ApplicationID)
		if err != nil {
			return fmt.Errorf("bad application_id %q on intent %s", md.ApplicationID, pi.ID)
		}
		userID, err := uuid.Parse(md.UserID)
		if err != nil {
			return fmt.Errorf("bad user_id %q on intent %s", md.UserID, pi.ID)
		}
		if err := db.Model(&applicationModel.MembershipApplication{}).
			Where("application_id = ?", appID).
			Updates(map[string]interface{}{
				"application_payment_status":    applicationModel.ApplicationPaymentPaid,
				"application_status":            applicationModel.ApplicationStatusSubmitted,
				"application_payment_intent_id": pi.ID,
				"application_paid_at":           paidAt,
			}).Error; err != nil {
			return err
		}
		if _, err := activationService.Activate(db, appID, userID, paidAt); err != nil {
			return fmt.Errorf("activation failed for application %s: %w", appID, err)
		}
		return nil

	case TargetWakala:
		return db.Table(requestModel.KindWakala.TableName()).
			Where("request_id = ?", md.WakalaID).
			Updates(map[string]interface{}{
				"request_payment_status":    requestModel.RequestPaymentPaid,
				"request_status":            requestModel.RequestStatusSubmitted,
				"request_payment_intent_id": pi.ID,
			}).Error

	case TargetEventRegistration:
		return db.Model(&eventModel.EventRegistration{}).
			Where("registration_id = ?", md.EventRegistrationID).
			Updates(map[string]interface{}{
				"registration_payment_status":    eventModel.RegistrationPaymentPaid,
				"registration_status":            eventModel.RegistrationStatusConfirmed,
				"registration_payment_intent_id": pi.ID,
			}).Error

	case TargetServiceRequest:
		return settleServiceRequest(db, md, pi)

	default:
		log.Printf("ℹ️ intent %s carries no business-record id, ignoring", pi.ID)
		return nil
	}
}

// settleServiceRequest handles translation/legal intents, where the row is
// only created after payment. Prefer resuming the recorded pending write;
// fall back to an absolute update of a row the client already created.
func settleServiceRequest(db *gorm.DB, md IntentMetadata, pi *stripe.PaymentIntent) error {
	kind, ok := md.RequestKind()
	if !ok {
		return fmt.Errorf("intent %s: no request kind for type %q", pi.ID, md.Type)
	}

	var pw model.PendingWrite
	err := db.Where("pending_write_payment_intent_id = ?", pi.ID).First(&pw).Error
	if err == nil {
		var userID *uuid.UUID
		if parsed, perr := uuid.Parse(md.UserID); perr == nil {
			userID = &parsed
		}
		if _, _, cerr := requestService.CreateFromJSON(db, kind, userID, pw.PendingWritePayload, pi.ID); cerr != nil {
			return cerr
		}
		now := time.Now()
		return db.Model(&pw).Update("pending_write_consumed_at", now).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Table(kind.TableName()).
		Where("request_payment_intent_id = ?", pi.ID).
		Updates(map[string]interface{}{
			"request_payment_status": requestModel.RequestPaymentPaid,
			"request_status":         requestModel.RequestStatusSubmitted,
		}).Error
}

/* ===================== Failure path ===================== */

func ApplyIntentFailed(db *gorm.DB, pi *stripe.PaymentIntent) error {
	md := MetadataFromIntent(pi.Metadata)

	switch md.Target() {
	case TargetMembershipApplication:
		return db.Model(&applicationModel.MembershipApplication{}).
			Where("application_id = ?", md.ApplicationID).
			Updates(map[string]interface{}{
				"application_payment_status": applicationModel.ApplicationPaymentFailed,
			}).Error

	case TargetWakala:
		return db.Table(requestModel.KindWakala.TableName()).
			Where("request_id = ?", md.WakalaID).
			Updates(map[string]interface{}{
				"request_payment_status": requestModel.RequestPaymentFailed,
				"request_status":         requestModel.RequestStatusCancelled,
			}).Error

	case TargetEventRegistration:
		return db.Model(&eventModel.EventRegistration{}).
			Where("registration_id = ?", md.EventRegistrationID).
			Updates(map[string]interface{}{
				"registration_payment_status": eventModel.RegistrationPaymentFailed,
				"registration_status":         eventModel.RegistrationStatusCancelled,
			}).Error

	case TargetServiceRequest:
		kind, ok := md.RequestKind()
		if !ok {
			return nil
		}
		return db.Table(kind.TableName()).
			Where("request_payment_intent_id = ?", pi.ID).
			Updates(map[string]interface{}{
				"request_payment_status": requestModel.RequestPaymentFailed,
				"request_status":         requestModel.RequestStatusCancelled,
			}).Error

	default:
		return nil
	}
}

/* ===================== Checkout (business support) ===================== */

// ApplyCheckoutCompleted upserts the business-support order mirror for
// subscription / one-off checkout sessions.
func ApplyCheckoutCompleted(db *gorm.DB, cs *stripe.CheckoutSession) error {
	frequency := cs.Metadata["payment_frequency"]
	if frequency == "" {
		frequency = applicationModel.PaymentFrequencyOneTime
	}

	order := model.BusinessSupportOrder{
		OrderSessionID:   cs.ID,
		OrderAmountPence: cs.AmountTotal,
		OrderFrequency:   frequency,
		OrderStatus:      model.BusinessSupportOrderPaid,
	}
	if raw := cs.Metadata["user_id"]; raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			order.OrderUserID = &parsed
		}
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"order_amount_pence", "order_status", "updated_at"}),
	}).Create(&order).Error
}
