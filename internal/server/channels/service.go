package channels

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/dmitrijs2005/lynkc/internal/logging"
)

// Repository abstracts the TTL-scoped channel store. Implementations return
// common.ErrorNotFound when the channel does not exist or has expired.
type Repository interface {
	// Save stores the serialized channel and (re)arms its TTL.
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error

	// Load returns the serialized channel.
	Load(ctx context.Context, id string) ([]byte, error)

	// TTL returns the remaining lifetime of the channel.
	TTL(ctx context.Context, id string) (time.Duration, error)

	// Refresh re-arms the TTL without touching the value.
	Refresh(ctx context.Context, id string, ttl time.Duration) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// CreateResult reports a newly created channel. Password is plaintext and is
// shown to the creator exactly once; only its hash is stored.
type CreateResult struct {
	ID         string
	Password   string
	TTLSeconds int64
}

// FetchResult carries a channel payload plus the TTL observed at read time,
// before the read itself re-armed it.
type FetchResult struct {
	Channel    *Channel
	TTLSeconds int64
}

// Service implements the channel operations on top of a Repository. Every
// successful operation re-arms the channel TTL, so an actively shared channel
// stays alive and an abandoned one expires on its own.
type Service struct {
	repo   Repository
	ttl    time.Duration
	logger logging.Logger
}

func NewService(repo Repository, ttl time.Duration, logger logging.Logger) *Service {
	return &Service{repo: repo, ttl: ttl, logger: logger}
}

func (s *Service) validate(ch *Channel) error {
	sizes := make([]int64, 0, len(ch.Files))
	for _, f := range ch.Files {
		sizes = append(sizes, int64(len(f.Content)))
	}
	return common.CheckLimit(ch.Text, sizes, common.MaxChannelBytes)
}

// Create stores a new channel. An empty password means the caller wants a
// generated one; either way only the hash is persisted.
func (s *Service) Create(ctx context.Context, ch *Channel, password string) (*CreateResult, error) {
	if err := s.validate(ch); err != nil {
		return nil, err
	}

	if password == "" {
		generated, err := GeneratePassword()
		if err != nil {
			return nil, err
		}
		password = generated
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	data, err := Serialize(ch, hash)
	if err != nil {
		return nil, err
	}

	id := GenerateID()
	if err := s.repo.Save(ctx, id, data, s.ttl); err != nil {
		return nil, fmt.Errorf("save channel: %w", err)
	}

	s.logger.Info(ctx, "channel created", "channel", id, "files", len(ch.Files))

	return &CreateResult{
		ID:         id,
		Password:   password,
		TTLSeconds: int64(s.ttl.Seconds()),
	}, nil
}

// Fetch returns the channel payload after password verification. The TTL in
// the result is the remaining lifetime observed before this read re-armed it.
func (s *Service) Fetch(ctx context.Context, id, password string) (*FetchResult, error) {
	raw, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	ch, hash := Deserialize(raw)
	if !VerifyPassword(hash, password) {
		return nil, common.ErrorUnauthorized
	}

	ttlSeconds := int64(s.ttl.Seconds())
	if observed, err := s.repo.TTL(ctx, id); err == nil && observed > 0 {
		ttlSeconds = int64(observed.Seconds())
	}

	if err := s.repo.Refresh(ctx, id, s.ttl); err != nil {
		return nil, fmt.Errorf("refresh ttl: %w", err)
	}

	return &FetchResult{Channel: ch, TTLSeconds: ttlSeconds}, nil
}

// Update replaces the channel payload. The stored password hash is carried
// over unchanged, and the TTL is re-armed by the write.
func (s *Service) Update(ctx context.Context, id, password string, ch *Channel) error {
	raw, err := s.repo.Load(ctx, id)
	if err != nil {
		return err
	}

	_, hash := Deserialize(raw)
	if !VerifyPassword(hash, password) {
		return common.ErrorUnauthorized
	}

	if err := s.validate(ch); err != nil {
		return err
	}

	data, err := Serialize(ch, hash)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, id, data, s.ttl); err != nil {
		return fmt.Errorf("save channel: %w", err)
	}

	s.logger.Info(ctx, "channel updated", "channel", id, "files", len(ch.Files))
	return nil
}

// DeleteFile removes one attachment and writes the channel back. An unknown
// file id is reported as not found without modifying the channel.
func (s *Service) DeleteFile(ctx context.Context, id, password, fileID string) error {
	raw, err := s.repo.Load(ctx, id)
	if err != nil {
		return err
	}

	ch, hash := Deserialize(raw)
	if !VerifyPassword(hash, password) {
		return common.ErrorUnauthorized
	}

	kept := make([]File, 0, len(ch.Files))
	found := false
	for _, f := range ch.Files {
		if f.ID == fileID {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("file %s: %w", fileID, common.ErrorNotFound)
	}
	ch.Files = kept

	data, err := Serialize(ch, hash)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, id, data, s.ttl); err != nil {
		return fmt.Errorf("save channel: %w", err)
	}

	s.logger.Info(ctx, "channel file deleted", "channel", id, "file", fileID)
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
