package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"jaaliya_backend/internals/features/membership/applications/model"
)

/* ===================== DTO ===================== */

type CreateMembershipApplicationRequest struct {
	ApplicationFullName       string  `json:"application_full_name" validate:"required,max=120"`
	ApplicationFullNameArabic *string `json:"application_full_name_arabic" validate:"omitempty,max=120"`
	ApplicationEmail          string  `json:"application_email" validate:"required,email"`
	ApplicationPhone          *string `json:"application_phone" validate:"omitempty,max=30"`

	ApplicationMembershipType string `json:"application_membership_type" validate:"required,oneof=individual family associate business_support"`

	// Business-support only (XOR: preset tier for annual, preset amount or
	// free-form custom for monthly/one-time)
	ApplicationBusinessSupportTier *string `json:"application_business_support_tier" validate:"omitempty,oneof=bronze silver gold platinum"`
	ApplicationPresetAmountPence   *int64  `json:"application_preset_amount_pence" validate:"omitempty,gt=0"`
	ApplicationCustomAmount        *string `json:"application_custom_amount" validate:"omitempty,max=20"`
	ApplicationPaymentFrequency    *string `json:"application_payment_frequency" validate:"omitempty,oneof=annual monthly one_time"`
}

/* ===================== Validation Logic ===================== */

func (r *CreateMembershipApplicationRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}

	if r.ApplicationMembershipType == model.MembershipTypeBusinessSupport {
		if r.ApplicationPaymentFrequency == nil {
			return errors.New("application_payment_frequency is required for business_support")
		}
		switch *r.ApplicationPaymentFrequency {
		case model.PaymentFrequencyAnnual:
			if r.ApplicationBusinessSupportTier == nil {
				return errors.New("application_business_support_tier is required for annual business_support")
			}
		case model.PaymentFrequencyMonthly, model.PaymentFrequencyOneTime:
			if r.ApplicationPresetAmountPence == nil && r.ApplicationCustomAmount == nil {
				return errors.New("a preset or custom amount is required for monthly/one_time business_support")
			}
		}
		return nil
	}

	// Non-business types must not carry sponsorship fields
	if r.ApplicationBusinessSupportTier != nil || r.ApplicationCustomAmount != nil ||
		r.ApplicationPresetAmountPence != nil || r.ApplicationPaymentFrequency != nil {
		return errors.New("business support fields are only valid for membership_type business_support")
	}
	return nil
}

/* ===================== Responses ===================== */

type ApplicationWithAmountResponse struct {
	Application interface{} `json:"application"`
	AmountPence int64       `json:"amount_pence"`
}
