package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jaaliya_backend/internals/features/membership/applications/dto"
	"jaaliya_backend/internals/features/membership/applications/model"
	applicationService "jaaliya_backend/internals/features/membership/applications/service"
	memberModel "jaaliya_backend/internals/features/membership/members/model"
	helper "jaaliya_backend/internals/helpers"
)

/*
	========================================================
	  Controller

========================================================
*/
type MembershipApplicationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMembershipApplicationController(db *gorm.DB) *MembershipApplicationController {
	return &MembershipApplicationController{DB: db, Validate: validator.New()}
}

/*
	========================================================
	  Apply

========================================================
*/

// POST /api/u/memberships/apply
func (ctrl *MembershipApplicationController) Apply(c *fiber.Ctx) error {
	var body dto.CreateMembershipApplicationRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.Validate); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in to apply for membership")
	}

	amountPence, app, err := ctrl.buildApplication(&body, userUUID, false)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Create(app).Error; err != nil {
		log.Println("[ERROR] Failed to create membership application:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save application")
	}

	return helper.JsonCreated(c, "Application created. Please continue to payment.",
		dto.ApplicationWithAmountResponse{Application: app, AmountPence: amountPence})
}

// POST /api/u/memberships/renew
func (ctrl *MembershipApplicationController) Renew(c *fiber.Ctx) error {
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in to renew")
	}

	var member memberModel.Member
	if err := ctrl.DB.Where("member_user_id = ?", userUUID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No membership to renew")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up membership")
	}

	amount, ok := model.MembershipFeesPence[member.MemberMembershipType]
	if !ok {
		return fiber.NewError(fiber.StatusConflict, "This membership type cannot be renewed online")
	}

	app := model.MembershipApplication{
		ApplicationUserID:         userUUID,
		ApplicationFullName:       member.MemberNumber, // display name lives on the profile; keep the link human-traceable
		ApplicationEmail:          c.Get("X-User-Email", "unknown"),
		ApplicationMembershipType: member.MemberMembershipType,
		ApplicationStatus:         model.ApplicationStatusPending,
		ApplicationPaymentStatus:  model.ApplicationPaymentPending,
		ApplicationIsRenewal:      true,
	}
	if err := ctrl.DB.Create(&app).Error; err != nil {
		log.Println("[ERROR] Failed to create renewal application:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save renewal")
	}

	return helper.JsonCreated(c, "Renewal created. Please continue to payment.",
		dto.ApplicationWithAmountResponse{Application: &app, AmountPence: amount})
}

// GET /api/u/memberships
func (ctrl *MembershipApplicationController) GetMyApplications(c *fiber.Ctx) error {
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.MembershipApplication{}).
		Where("application_user_id = ?", userUUID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count applications")
	}

	var apps []model.MembershipApplication
	if err := ctrl.DB.
		Where("application_user_id = ?", userUUID).
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch applications")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Applications fetched.", apps, &p)
}

/* ===================== Internal ===================== */

func (ctrl *MembershipApplicationController) buildApplication(body *dto.CreateMembershipApplicationRequest, userUUID uuid.UUID, isRenewal bool) (int64, *model.MembershipApplication, error) {
	var amountPence int64
	app := model.MembershipApplication{
		ApplicationUserID:         userUUID,
		ApplicationFullName:       body.ApplicationFullName,
		ApplicationFullNameArabic: body.ApplicationFullNameArabic,
		ApplicationEmail:          body.ApplicationEmail,
		ApplicationPhone:          body.ApplicationPhone,
		ApplicationMembershipType: body.ApplicationMembershipType,
		ApplicationStatus:         model.ApplicationStatusPending,
		ApplicationPaymentStatus:  model.ApplicationPaymentPending,
		ApplicationIsRenewal:      isRenewal,
	}

	if body.ApplicationMembershipType == model.MembershipTypeBusinessSupport {
		amount, err := applicationService.ResolveBusinessSupportAmount(
			*body.ApplicationPaymentFrequency,
			body.ApplicationBusinessSupportTier,
			body.ApplicationPresetAmountPence,
			body.ApplicationCustomAmount,
		)
		if err != nil {
			return 0, nil, err
		}
		amountPence = amount
		app.ApplicationBusinessSupportTier = body.ApplicationBusinessSupportTier
		app.ApplicationPaymentFrequency = body.ApplicationPaymentFrequency
		app.ApplicationCustomAmountPence = &amount
	} else {
		amount, ok := model.MembershipFeesPence[body.ApplicationMembershipType]
		if !ok {
			return 0, nil, errors.New("unknown membership type")
		}
		amountPence = amount
	}

	return amountPence, &app, nil
}
