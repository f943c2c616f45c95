package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dwikikusuma/storefront/internal/session/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("login failed")
)

type Service struct {
	store     StateStore
	auth      Authenticator
	registrar Registrar
	validate  *validator.Validate

	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	startMu sync.Mutex
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = logger.Component(log, "session") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(store StateStore, auth Authenticator, registrar Registrar, opts ...Option) *Service {
	s := &Service{
		store:     store,
		auth:      auth,
		registrar: registrar,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		log:       logger.Discard(),
		timeout:   10 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Login(ctx context.Context, username, password string) error {
	creds := domain.Credentials{Username: strings.TrimSpace(username), Password: password}

	return s.run(ctx, domain.FlowLogin, func(ctx context.Context) (domain.AuthResult, error) {
		if err := s.check(creds); err != nil {
			return domain.AuthResult{}, err
		}
		res, err := s.auth.Login(ctx, creds)
		if err != nil {
			return domain.AuthResult{}, err
		}
		// the commerce endpoint answers with a bare token
		if res.User.Username == "" {
			res.User.Username = creds.Username
		}
		if res.User.ID == "" {
			res.User.ID = creds.Username
		}
		return res, nil
	})
}

func (s *Service) Register(ctx context.Context, data domain.RegistrationData) error {
	data.Username = strings.TrimSpace(data.Username)
	data.Email = strings.TrimSpace(data.Email)

	return s.run(ctx, domain.FlowRegister, func(ctx context.Context) (domain.AuthResult, error) {
		if err := s.check(data); err != nil {
			return domain.AuthResult{}, err
		}
		return s.registrar.Register(ctx, data)
	})
}

func (s *Service) Logout() {
	s.store.Dispatch(domain.LoggedOut{})
}

func (s *Service) ClearError() {
	s.store.Dispatch(domain.ErrorCleared{})
}

func (s *Service) run(ctx context.Context, flow domain.Flow, call func(ctx context.Context) (domain.AuthResult, error)) error {
	s.startMu.Lock()
	id := s.store.NextRequestID()
	s.store.Dispatch(domain.AuthStarted{Flow: flow, RequestID: id})
	s.startMu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := call(ctx)
	s.metrics.ObserveFetch("session."+string(flow), start, err)

	if err != nil {
		s.log.Warn("authentication failed", slog.String("flow", string(flow)), slog.Any("err", err))
		s.store.Dispatch(domain.AuthFailed{Flow: flow, RequestID: id, Message: err.Error()})
		return err
	}

	s.log.Info("authenticated", slog.String("flow", string(flow)), slog.String("user", res.User.Username))
	s.store.Dispatch(domain.Authenticated{Flow: flow, RequestID: id, Result: res})
	return nil
}

// check validates v and turns field failures into one readable message.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", name, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", name, fe.Param()))
		case "email":
			msgs = append(msgs, name+" must be a valid email address")
		default:
			msgs = append(msgs, name+" is invalid")
		}
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, ", "), ErrInvalidInput)
}
