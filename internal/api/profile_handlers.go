package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get my profile",
		Description: "Returns the current user's reading profile",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Update my profile",
		Description: "Sets the current user's display name and years of experience",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, s.handleUpdateProfile)
}

// ProfileResponse contains profile data in API responses.
type ProfileResponse struct {
	UserID          string    `json:"user_id" doc:"User ID"`
	DisplayName     string    `json:"display_name" doc:"Display name"`
	ExperienceYears float64   `json:"experience_years" doc:"Years of experience in the circle's subject"`
	Level           string    `json:"level" doc:"Experience level: beginner, intermediate, or expert"`
	UpdatedAt       time.Time `json:"updated_at" doc:"Last update time"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// UpdateProfileRequest is the request body for updating a profile.
type UpdateProfileRequest struct {
	DisplayName     string  `json:"display_name,omitempty" maxLength:"100" doc:"Display name"`
	ExperienceYears float64 `json:"experience_years" minimum:"0" maximum:"80" doc:"Years of experience"`
}

// UpdateProfileInput wraps the update profile request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Profile.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: mapProfileResponse(p)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Profile.UpdateProfile(ctx, userID, service.UpdateProfileRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: mapProfileResponse(p)}, nil
}

func mapProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		ExperienceYears: p.ExperienceYears,
		Level:           p.Level().String(),
		UpdatedAt:       p.UpdatedAt,
	}
}
