package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"avialog/backend/internal/auth"
	"avialog/backend/internal/common"
	"avialog/backend/internal/db/repositories"
	"avialog/backend/internal/models/dtos"
	gormModels "avialog/backend/internal/models/gorm"
	"avialog/backend/internal/stats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService struct {
	users      UserStore
	sessionSvc *common.SessionService
}

func NewUserService(users UserStore, sessionSvc *common.SessionService) *UserService {
	return &UserService{
		users:      users,
		sessionSvc: sessionSvc,
	}
}

// Register creates an account and signs the user in.
func (svc *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	if _, err := svc.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &gormModels.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := svc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return svc.signIn(ctx, user)
}

// Login verifies credentials and signs the user in.
func (svc *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := svc.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return svc.signIn(ctx, user)
}

// Logout tears down the caller's session.
func (svc *UserService) Logout(ctx context.Context, sessionID string) error {
	if svc.sessionSvc == nil || sessionID == "" {
		return nil
	}
	return svc.sessionSvc.DeleteSession(ctx, sessionID)
}

// GetDetails returns the profile of a single user.
func (svc *UserService) GetDetails(ctx context.Context, userID string) (*dtos.UserResponse, error) {
	user, err := svc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// Compare loads the requesting user plus the listed users concurrently and
// returns their stats side by side. The requester comes first; ids that do
// not resolve are dropped rather than failing the comparison.
func (svc *UserService) Compare(ctx context.Context, requesterID string, userIDs []string) (*dtos.CompareResponse, error) {
	ids := []string{requesterID}
	seen := map[string]bool{requesterID: true}
	for _, id := range userIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	// One goroutine per user id; each writes only its own slot.
	results := make([]*dtos.UserResponse, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := svc.users.GetUserByID(gctx, id)
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			resp := userToResponse(user)
			results[i] = &resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dtos.CompareResponse{}
	for _, r := range results {
		if r != nil {
			out.Users = append(out.Users, *r)
		}
	}
	if len(out.Users) == 0 {
		return nil, repositories.ErrUserNotFound
	}
	return out, nil
}

func (svc *UserService) signIn(ctx context.Context, user *gormModels.User) (*dtos.AuthResponse, error) {
	token, err := auth.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	sessionID := ""
	if svc.sessionSvc != nil {
		sessionID, err = svc.sessionSvc.CreateSession(ctx, user.ID, user.Email, user.Name)
		if err != nil {
			// The JWT alone is enough to use the API.
			sessionID = ""
		}
	}

	return &dtos.AuthResponse{
		Token:     token,
		SessionID: sessionID,
		User:      userToResponse(user),
	}, nil
}

func userToResponse(user *gormModels.User) dtos.UserResponse {
	return dtos.UserResponse{
		UID:          user.ID,
		Name:         user.Name,
		Email:        user.Email,
		TotalFlights: user.TotalFlights,
		TotalAirTime: user.TotalAirTime,
		AirTimeLabel: stats.FormatAirTime(user.TotalAirTime),
	}
}
