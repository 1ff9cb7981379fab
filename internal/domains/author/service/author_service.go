package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/storage"
)

const loginSuccessMessage = "login successful"

type authorService struct {
	repo       repository.Repository
	tokens     TokenIssuer
	blobs      storage.BlobStore
	notifier   email.Notifier
	bcryptCost int
}

func NewAuthorService(
	repo repository.Repository,
	tokens TokenIssuer,
	blobs storage.BlobStore,
	notifier email.Notifier,
) Service {
	return &authorService{
		repo:       repo,
		tokens:     tokens,
		blobs:      blobs,
		notifier:   notifier,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// ========================================
// AUTH
// ========================================

// Register tạo author với password đã hash, sau đó gửi welcome email (best-effort)
func (s *authorService) Register(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	birthDate, err := model.ParseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	author := &model.Author{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: &hashed,
		BirthDate:    birthDate,
		AvatarURL:    req.AvatarURL,
	}

	// unique constraint vẫn chặn race giữa ExistsByEmail và Create
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	s.notifyWelcome(ctx, author)
	return author, nil
}

// Login - email không tồn tại, tài khoản OAuth-only hay sai password đều trả cùng một lỗi
func (s *authorService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !author.HasPassword() {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*author.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(author.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.LoginResponse{Message: loginSuccessMessage, Token: token}, nil
}

// FindOrCreateByOAuth resolve profile từ provider thành author:
//  1. đã link oauth_id → trả về
//  2. email đã verify trùng author có sẵn → link
//  3. còn lại → tạo author mới không có password
func (s *authorService) FindOrCreateByOAuth(ctx context.Context, profile model.OAuthProfile) (*model.Author, error) {
	profile.Email = model.NormalizeEmail(profile.Email)
	if profile.ProviderID == "" || profile.Email == "" {
		return nil, model.ErrInvalidOAuthProfile
	}

	author, err := s.repo.FindByOAuthID(ctx, profile.ProviderID)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if !profile.EmailVerified {
			return nil, model.ErrEmailAlreadyExists
		}
		if existing.OAuthID != nil && *existing.OAuthID != profile.ProviderID {
			return nil, model.ErrOAuthIDTaken
		}
		log.Info().
			Str("author_id", existing.ID.String()).
			Msg("Linking oauth account to existing author")
		return s.repo.LinkOAuth(ctx, existing.ID, profile.ProviderID)
	case !errors.Is(err, model.ErrAuthorNotFound):
		return nil, err
	}

	providerID := profile.ProviderID
	name, surname := oauthNames(profile)
	author = &model.Author{
		Name:    name,
		Surname: surname,
		Email:   profile.Email,
		OAuthID: &providerID,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		// callback chạy song song cho cùng một account: insert thua có thể vướng
		// email hoặc oauth_id unique, constraint nào check trước thì lỗi đó
		if errors.Is(err, model.ErrOAuthIDTaken) || errors.Is(err, model.ErrEmailAlreadyExists) {
			winner, findErr := s.repo.FindByOAuthID(ctx, profile.ProviderID)
			if findErr == nil {
				return winner, nil
			}
			if !errors.Is(findErr, model.ErrAuthorNotFound) {
				return nil, findErr
			}
		}
		return nil, err
	}

	s.notifyWelcome(ctx, author)
	return author, nil
}

// ========================================
// PROFILE
// ========================================

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.FindByID(ctx, id)
}

// Update full replace profile, password và oauth_id không đổi
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.ApplyTo(author); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// UpdateAvatar upload ảnh lên blob store rồi lưu URL
func (s *authorService) UpdateAvatar(ctx context.Context, id uuid.UUID, file *storage.File) (*model.Author, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	obj, err := s.blobs.UploadImage(ctx, storage.FolderAvatars, file)
	if err != nil {
		return nil, err
	}

	author, err := s.repo.UpdateAvatar(ctx, id, obj.URL)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, obj.Key); delErr != nil {
			log.Warn().Err(delErr).Str("key", obj.Key).Msg("Failed to remove orphaned avatar")
		}
		return nil, err
	}
	return author, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ========================================
// HELPERS
// ========================================

// notifyWelcome lỗi enqueue chỉ log, không fail request
func (s *authorService) notifyWelcome(ctx context.Context, author *model.Author) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.NotifyWelcome(ctx, email.WelcomeEmailData{
		Email: author.Email,
		Name:  author.Name,
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("author_id", author.ID.String()).
			Msg("Failed to enqueue welcome email")
	}
}

// oauthNames: given name → display name → phần trước @ của email
func oauthNames(p model.OAuthProfile) (string, string) {
	name := strings.TrimSpace(p.GivenName)
	surname := strings.TrimSpace(p.FamilyName)

	if name == "" {
		display := strings.Fields(p.DisplayName)
		if len(display) > 0 {
			name = display[0]
			if surname == "" && len(display) > 1 {
				surname = strings.Join(display[1:], " ")
			}
		}
	}
	if name == "" {
		name, _, _ = strings.Cut(p.Email, "@")
	}
	if surname == "" {
		surname = name
	}
	return name, surname
}
