package handler

import (
	"log/slog"
	"net/http"
	"time"

	"healthvault/internal/delivery/http/middleware"
	"healthvault/internal/delivery/http/response"
	"healthvault/internal/domain/entity"
	"healthvault/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for the authenticated profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// profileView is the full profile projection returned by GET /me.
// List fields render as JSON arrays even though storage keeps them joined.
type profileView struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	DateOfBirth        string     `json:"date_of_birth"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	EmergencyContact   string     `json:"emergency_contact"`
	MedicalHistory     string     `json:"medical_history"`
	Allergies          []string   `json:"allergies"`
	CurrentMedications []string   `json:"current_medications"`
	BloodType          string     `json:"blood_type"`
	Height             string     `json:"height"`
	Weight             string     `json:"weight"`
	Age                *int       `json:"age"`
	Gender             string     `json:"gender"`
	IsVerified         bool       `json:"is_verified"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login"`
}

// profileSummary is the subset echoed back after a profile update.
type profileSummary struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	DateOfBirth        string    `json:"date_of_birth"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	EmergencyContact   string    `json:"emergency_contact"`
	MedicalHistory     string    `json:"medical_history"`
	Allergies          []string  `json:"allergies"`
	CurrentMedications []string  `json:"current_medications"`
	BloodType          string    `json:"blood_type"`
	Height             string    `json:"height"`
	Weight             string    `json:"weight"`
}

type updateProfileResponse struct {
	Message string         `json:"message"`
	User    profileSummary `json:"user"`
}

type updateProfileRequest struct {
	FullName           *string  `json:"full_name"`
	DateOfBirth        *string  `json:"date_of_birth"`
	Phone              *string  `json:"phone"`
	Address            *string  `json:"address"`
	EmergencyContact   *string  `json:"emergency_contact"`
	MedicalHistory     *string  `json:"medical_history"`
	Allergies          []string `json:"allergies"`
	CurrentMedications []string `json:"current_medications"`
	BloodType          *string  `json:"blood_type"`
	Height             *string  `json:"height"`
	Weight             *string  `json:"weight"`
}

// Me returns the authenticated user's full profile.
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toProfileView(user))
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), user, &usecase.UpdateProfileInput{
		FullName:           req.FullName,
		DateOfBirth:        req.DateOfBirth,
		Phone:              req.Phone,
		Address:            req.Address,
		EmergencyContact:   req.EmergencyContact,
		MedicalHistory:     req.MedicalHistory,
		Allergies:          req.Allergies,
		CurrentMedications: req.CurrentMedications,
		BloodType:          req.BloodType,
		Height:             req.Height,
		Weight:             req.Weight,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, updateProfileResponse{
		Message: "Profile updated successfully",
		User: profileSummary{
			ID:                 updated.ID,
			Email:              updated.Email,
			FullName:           updated.FullName,
			DateOfBirth:        updated.DateOfBirth,
			Phone:              updated.Phone,
			Address:            updated.Address,
			EmergencyContact:   updated.EmergencyContact,
			MedicalHistory:     updated.MedicalHistory,
			Allergies:          updated.Allergies,
			CurrentMedications: updated.CurrentMedications,
			BloodType:          updated.BloodType,
			Height:             updated.Height,
			Weight:             updated.Weight,
		},
	})
}

func toProfileView(user *entity.User) profileView {
	return profileView{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		DateOfBirth:        user.DateOfBirth,
		Phone:              user.Phone,
		Address:            user.Address,
		EmergencyContact:   user.EmergencyContact,
		MedicalHistory:     user.MedicalHistory,
		Allergies:          user.Allergies,
		CurrentMedications: user.CurrentMedications,
		BloodType:          user.BloodType,
		Height:             user.Height,
		Weight:             user.Weight,
		Age:                user.Age,
		Gender:             user.Gender,
		IsVerified:         user.IsVerified,
		CreatedAt:          user.CreatedAt,
		LastLogin:          user.LastLogin,
	}
}
