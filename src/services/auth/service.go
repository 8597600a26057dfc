package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/mail"
	"PollSensei-Backend/src/services/users"
	"PollSensei-Backend/src/utils"

	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("please verify your email before logging in")
	ErrAlreadyVerified    = errors.New("account is already verified")
)

// Enqueuer คือ *asynq.Client หรือ jobs.Queue
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type Service struct {
	users  users.Repository
	otpTTL time.Duration
	queue  Enqueuer
	sender mail.MailSender
}

// NewService queue เป็น nil ได้ จะส่งเมลทันทีผ่าน sender
func NewService(repo users.Repository, otpTTL time.Duration, queue Enqueuer, sender mail.MailSender) *Service {
	if sender == nil {
		sender = mail.LogSender{}
	}
	return &Service{users: repo, otpTTL: otpTTL, queue: queue, sender: sender}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = users.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, users.ErrEmailTaken
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		Role:        models.RoleUser,
		AccountType: req.AccountType,
		Location:    req.Location,
		CreatedAt:   time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	log.Println("✅ [auth] registered:", user.Email)

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issueOTP(ctx context.Context, user *models.User) error {
	otp, err := utils.GenerateOTP(6)
	if err != nil {
		return err
	}
	if err := utils.StoreOTP(user.Email, otp, s.otpTTL); err != nil {
		return err
	}

	payload := SendOTPPayload{Email: user.Email, Name: user.Name, OTP: otp, ExpiresIn: s.otpTTL.String()}
	if s.queue == nil {
		return sendOTP(s.sender, payload)
	}
	task, err := NewSendOTPTask(payload)
	if err != nil {
		return err
	}
	// task id ต่ออีเมล: resend จะแทนที่งานเดิมที่ยังค้างในคิว
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.TaskID(OTPTaskID(user.Email))); err != nil {
		log.Println("❌ Failed to enqueue otp email:", err)
		return err
	}
	return nil
}

// ResendOTP ออก OTP ใหม่ให้บัญชีที่ยังไม่ยืนยัน
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	return s.issueOTP(ctx, user)
}

func (s *Service) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.User, error) {
	req.Email = users.NormalizeEmail(req.Email)
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user.Verified {
		return user, nil
	}
	if err := utils.ConsumeOTP(req.Email, req.OTP); err != nil {
		return nil, err
	}
	if err := s.users.SetVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Verified = true
	log.Println("✅ [auth] verified:", user.Email)
	return user, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	req.Email = users.NormalizeEmail(req.Email)
	if err := utils.NewValidationError(utils.ValidateStruct(req)); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, User: user}, nil
}

// Logout ใส่ token ลง blacklist จนกว่าจะหมดอายุ
func (s *Service) Logout(token string) error {
	claims, err := utils.ParseJWT(token)
	if err != nil {
		return err
	}
	return utils.BlacklistToken(token, utils.TokenTTL(claims))
}

func (s *Service) Me(ctx context.Context, claims *utils.JWTClaims) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	return user, nil
}
