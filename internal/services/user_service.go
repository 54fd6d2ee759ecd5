package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"skillsyncBack/internal/models"
)

type UserService struct {
	Users   UserStore
	Devices DeviceStore
}

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9_.-]+`)

// usernameFor picks a username from the identity: the provider's username,
// else the email local part, else the subject.
func usernameFor(identity models.Identity) string {
	candidates := []string{identity.Username}
	if at := strings.IndexByte(identity.Email, '@'); at > 0 {
		candidates = append(candidates, identity.Email[:at])
	}
	candidates = append(candidates, identity.Subject)
	for _, c := range candidates {
		c = usernameUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(c)), "")
		if c != "" {
			return c
		}
	}
	return ""
}

// Store creates the caller's user on first sign-in and refreshes the profile
// fields the identity provider owns.
func (s *UserService) Store(ctx context.Context, identity *models.Identity) (models.User, error) {
	if identity == nil || identity.TokenIdentifier == "" {
		return models.User{}, models.ErrUnauthorized
	}
	u := models.User{
		TokenIdentifier: identity.TokenIdentifier,
		Username:        usernameFor(*identity),
		FullName:        identity.Name,
	}
	if u.Username == "" {
		return models.User{}, fmt.Errorf("%w: identity has no usable username", models.ErrInvalidInput)
	}
	if identity.PictureURL != "" {
		pic := identity.PictureURL
		u.ProfileImageURL = &pic
	}
	return s.Users.Upsert(ctx, u)
}

func (s *UserService) byUsername(ctx context.Context, username string) (models.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNoRecord) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.byUsername(ctx, username)
}

func (s *UserService) Languages(ctx context.Context, username string) ([]string, error) {
	u, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Users.GetLanguages(ctx, u.ID)
}

func (s *UserService) Country(ctx context.Context, username string) (string, error) {
	u, err := s.byUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return u.Country, nil
}

// Skills requires an authenticated caller.
func (s *UserService) Skills(ctx context.Context, identity *models.Identity, username string) ([]models.Skill, error) {
	if identity == nil {
		return nil, models.ErrUnauthorized
	}
	u, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Users.GetSkills(ctx, u.ID)
}

func (s *UserService) RegisterDevice(ctx context.Context, identity *models.Identity, token string) error {
	user, err := requireUser(ctx, s.Users, identity)
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", models.ErrInvalidInput)
	}
	return s.Devices.RegisterToken(ctx, user.ID, token)
}
