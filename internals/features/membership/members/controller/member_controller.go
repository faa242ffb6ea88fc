package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jaaliya_backend/internals/features/membership/members/model"
	memberService "jaaliya_backend/internals/features/membership/members/service"
	helper "jaaliya_backend/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// GET /api/u/members/me
//
// The dashboard polls this after a payment redirect. 404 means "not
// activated yet" and is treated as pending by the client, not as an error.
func (ctrl *MemberController) GetMe(c *fiber.Ctx) error {
	userUUID := helper.GetUserUUID(c)
	if userUUID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Sign in required")
	}

	var member model.Member
	if err := ctrl.DB.Where("member_user_id = ?", userUUID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No member record yet")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch member record")
	}

	return helper.JsonOK(c, "Member record fetched.", member)
}

type activateRequest struct {
	ApplicationID string `json:"application_id"`
	UserID        string `json:"user_id"`
}

// POST /api/u/functions/activate-membership
//
// Idempotent: replaying returns the same member. The webhook reconciler
// calls the service directly; this endpoint serves the client-side path.
func (ctrl *MemberController) ActivateMembership(c *fiber.Ctx) error {
	var body activateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	appID, err := uuid.Parse(body.ApplicationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "application_id is not a valid UUID")
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is not a valid UUID")
	}

	// A caller may only activate their own application.
	if caller := helper.GetUserUUID(c); caller != userID {
		return fiber.NewError(fiber.StatusForbidden, "Cannot activate another user's membership")
	}

	member, err := memberService.Activate(ctrl.DB, appID, userID, time.Now())
	if err != nil {
		log.Println("[ERROR] Activation failed:", err)
		switch {
		case errors.Is(err, memberService.ErrApplicationNotPaid):
			return fiber.NewError(fiber.StatusConflict, "Application has not been paid yet")
		case errors.Is(err, memberService.ErrApplicationOwner):
			return fiber.NewError(fiber.StatusForbidden, "Application does not belong to this user")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to activate membership")
		}
	}

	return helper.JsonOK(c, "Membership active.", fiber.Map{
		"success": true,
		"member":  member,
	})
}
