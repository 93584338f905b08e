package service

import (
	"context"
	"errors"
	"log"
	"time"

	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo     *mysql.FollowRepository
	userRepo *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:     &mysql.FollowRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// Follow creates the edge follower -> target. Following yourself or an
// author you already follow is a no-op, never an error.
func (s *FollowService) Follow(ctx context.Context, followerID uint64, targetUsername string) error {
	author, err := s.userRepo.FindByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if author.ID == followerID {
		return nil
	}
	_, err = s.repo.Follow(ctx, followerID, author.ID)
	return err
}

// Unfollow removes the edge if present; removing a missing edge is a
// no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint64, targetUsername string) error {
	author, err := s.userRepo.FindByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if author.ID == followerID {
		return nil
	}
	_, err = s.repo.Unfollow(ctx, followerID, author.ID)
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, authorID)
}

// Sender delivers one outbox event. A failed row is marked with a
// retry count and left for operator attention.
type Sender func(ctx context.Context, ob *model.FollowOutbox) error

// OutboxRelayer drains pending follow events and hands them to the
// configured sender.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 100,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			log.Printf("outbox send err id=%d: %v", ob.ID, err)
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender is the fallback when neither Kafka nor SMTP is configured.
func LogSender(ctx context.Context, ob *model.FollowOutbox) error {
	log.Printf("OUTBOX SEND type=%s follower=%d author=%d payload=%s", ob.EventType, ob.Follower, ob.Author, ob.Payload)
	return nil
}

// KafkaSender publishes the raw outbox payload keyed by follower.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.FollowOutbox) error {
		return producer.Send(ctx, ob.Follower, []byte(ob.Payload))
	}
}

// EmailSender mails the followed author when they gain a follower;
// unfollow events are delivered nowhere and succeed immediately.
func EmailSender(cfg pkg.SMTPConfig, db *gorm.DB) Sender {
	users := &mysql.UserRepository{DB: db}
	return func(ctx context.Context, ob *model.FollowOutbox) error {
		if ob.EventType != "follow" {
			return nil
		}
		author, err := users.FindByID(ob.Author)
		if err != nil {
			return err
		}
		follower, err := users.FindByID(ob.Follower)
		if err != nil {
			return err
		}
		return pkg.SendEmail(cfg, author.Email, "You have a new follower", pkg.NewFollowerHTML(follower.Username))
	}
}

// ChainSenders runs senders in order and stops at the first failure.
func ChainSenders(senders ...Sender) Sender {
	return func(ctx context.Context, ob *model.FollowOutbox) error {
		for _, send := range senders {
			if err := send(ctx, ob); err != nil {
				return err
			}
		}
		return nil
	}
}
