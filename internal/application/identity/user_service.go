package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/identity"
	"github.com/jaysam/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List retrieves accounts, paginated
func (s *UserService) List(ctx context.Context, input ListUsersInput) ([]UserInfo, int64, error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.Search = input.Search

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserInfo, len(users))
	for i := range users {
		out[i] = toUserInfo(&users[i])
	}
	return out, total, nil
}

// Get retrieves a single account
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// AssignRole changes an account's permission level
func (s *UserService) AssignRole(ctx context.Context, input AssignRoleInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.AssignRole(identity.Role(input.Role)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Role assigned",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	info := toUserInfo(user)
	return &info, nil
}

// UpdateProfile updates an account's display names
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(input.FirstName, input.LastName); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}
