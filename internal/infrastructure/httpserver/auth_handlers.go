package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront-api/internal/core/domain/customer"
	"github.com/stridewear/storefront-api/internal/core/domain/otp"
	"github.com/stridewear/storefront-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) register(c echo.Context) error {
	var req customer.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	created, err := s.customerSvc.Register(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) login(c echo.Context) error {
	var req customer.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	tokens, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(http.StatusOK, tokens)
}

func (s *Server) getOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	profile, err := s.customerSvc.GetCustomer(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}

	return c.JSON(http.StatusOK, profile)
}

func (s *Server) requestOTP(c echo.Context) error {
	var req otp.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "Invalid request body"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "Email is required"})
	}

	if err := s.otpSvc.RequestCode(c.Request().Context(), req.Email); err != nil {
		s.logger.WithError(err).Error("failed to issue OTP")
		return c.JSON(http.StatusInternalServerError, otp.VerifyResponse{Success: false, Message: "Failed to send verification code. Please try again."})
	}

	return c.JSON(http.StatusOK, otp.VerifyResponse{Success: true, Message: "Verification code sent"})
}

// verifyOTP reports an explicit, specific message for every failure so the
// caller can tell "request a new code" apart from "check and retry".
func (s *Server) verifyOTP(c echo.Context) error {
	var req otp.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "Invalid request body"})
	}
	if req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "Email and OTP are required"})
	}

	err := s.otpSvc.VerifyCode(c.Request().Context(), req.Email, req.Code)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, otp.VerifyResponse{Success: true, Message: "Email verified successfully"})
	case errors.Is(err, otp.ErrNotFound):
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "No OTP found for this email. Please request a new code."})
	case errors.Is(err, otp.ErrExpired):
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "OTP has expired. Please request a new code."})
	case errors.Is(err, otp.ErrMismatch):
		return c.JSON(http.StatusBadRequest, otp.VerifyResponse{Success: false, Message: "Invalid OTP. Please check the code and try again."})
	default:
		s.logger.WithError(err).Error("OTP verification failed")
		return c.JSON(http.StatusInternalServerError, otp.VerifyResponse{Success: false, Message: "Verification failed. Please try again."})
	}
}
