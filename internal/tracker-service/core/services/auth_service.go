package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-tracker/internal/config"
	"bus-tracker/internal/mylogger"
	"bus-tracker/internal/tracker-service/core/domain/dto"
	"bus-tracker/internal/tracker-service/core/domain/models"
	"bus-tracker/internal/tracker-service/core/myerrors"
	"bus-tracker/internal/tracker-service/core/ports/driven"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const TokenTTL = time.Hour * 24 * 30

type AuthService struct {
	cfg      *config.Config
	userRepo driven.IUserRepo
	mylog    mylogger.Logger
}

func NewAuthService(cfg *config.Config, userRepo driven.IUserRepo, mylog mylogger.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		mylog:    mylog,
	}
}

// ======================= Signup =======================
func (as *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (dto.UserResponse, error) {
	mylog := as.mylog.Action("signup")

	if err := validateSignup(req); err != nil {
		return dto.UserResponse{}, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if req.CollegeID != "" {
		user.CollegeID = &req.CollegeID
	}
	// only students carry a route of interest
	if req.Role == RoleStudent && req.RouteNumber != "" {
		user.RouteNumber = &req.RouteNumber
	}

	id, err := as.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, myerrors.ErrEmailRegistered) {
			mylog.Warn("failed to signup, email already registered")
			return dto.UserResponse{}, err
		}
		mylog.Error("failed to save user in db", err)
		return dto.UserResponse{}, fmt.Errorf("cannot save user in db: %w", err)
	}

	mylog.Info("user registered successfully", "role", req.Role)
	return dto.UserResponse{
		ID:          id,
		UID:         user.UID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		CollegeID:   user.CollegeID,
		RouteNumber: user.RouteNumber,
	}, nil
}

// ======================= Login =======================
func (as *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	mylog := as.mylog.Action("login")

	if err := validateLogin(req.Email, req.Password); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := as.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, myerrors.ErrUnknownEmail) {
			mylog.Warn("failed to login, unknown email")
			return dto.LoginResponse{}, err
		}
		mylog.Error("failed to fetch user from db", err)
		return dto.LoginResponse{}, fmt.Errorf("cannot fetch user from db: %w", err)
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		mylog.Debug("failed to login, wrong password")
		return dto.LoginResponse{}, myerrors.ErrPasswordUnknown
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.UID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	accessTokenString, err := accessToken.SignedString([]byte(as.cfg.App.JwtSecret))
	if err != nil {
		mylog.Error("failed to sign jwt token", err)
		return dto.LoginResponse{}, err
	}

	mylog.Info("user login successful")
	return dto.LoginResponse{
		Message: "Login successful!",
		Token:   accessTokenString,
		User: dto.UserResponse{
			ID:          user.ID,
			UID:         user.UID,
			Name:        user.Name,
			Email:       user.Email,
			Role:        user.Role,
			CollegeID:   user.CollegeID,
			RouteNumber: user.RouteNumber,
			RouteID:     user.RouteID,
		},
	}, nil
}
