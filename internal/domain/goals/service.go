package goals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentConfig struct {
	UPIAddress string
	PayeeName  string
}

type Service struct {
	repo     Repository
	payments PaymentConfig
	now      func() time.Time
}

func NewService(repo Repository, payments PaymentConfig) *Service {
	return &Service{
		repo:     repo,
		payments: payments,
		now:      time.Now,
	}
}

func (s *Service) ListGoals(ctx context.Context) ([]Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *Service) GetGoal(ctx context.Context, id string) (*Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Target <= 0 {
		return nil, ErrInvalidTarget
	}

	deadline := strings.TrimSpace(input.Deadline)
	if deadline == "" {
		deadline = DefaultDeadline
	}

	goal := Goal{
		ID:        uuid.NewString(),
		Name:      name,
		Target:    input.Target,
		Deadline:  deadline,
		Icon:      strings.TrimSpace(input.Icon),
		History:   []Transaction{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateGoal(ctx, &goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &goal, nil
}

// AddDeposit records amount against the goal and returns the updated goal
// together with the new transaction.
func (s *Service) AddDeposit(ctx context.Context, id string, amount int64) (*Goal, Transaction, error) {
	if amount <= 0 {
		return nil, Transaction{}, ErrInvalidAmount
	}

	now := s.now()
	txn := Transaction{
		ID:     uuid.NewString(),
		GoalID: id,
		Amount: amount,
		Date:   now.Format(DateLayout),
		Time:   now.Format(TimeLayout),
		At:     now,
	}

	var updated Goal
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		goal, err := tx.GetGoal(ctx, id)
		if err != nil {
			return err
		}

		if goal.Saved > math.MaxInt64-amount {
			return ErrInvalidAmount
		}
		goal.Saved += amount
		goal.History = append([]Transaction{txn}, goal.History...)
		last := txn
		goal.LastTransaction = &last

		if err := tx.UpdateGoal(ctx, goal); err != nil {
			return err
		}
		updated = *goal
		return nil
	})
	if err != nil {
		return nil, Transaction{}, err
	}

	return &updated, txn, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteGoal(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

// PaymentLink builds a simulated UPI deep link for topping up a goal.
func (s *Service) PaymentLink(ctx context.Context, id string, amount int64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	goal, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("pa", s.payments.UPIAddress)
	query.Set("pn", s.payments.PayeeName)
	query.Set("am", fmt.Sprintf("%d", amount))
	query.Set("tn", "Savings for "+goal.Name)

	return "upi://pay?" + query.Encode(), nil
}

// ImportGoals copies goals from another store, keeping ids and history.
// Goals whose id already exists are skipped. It returns how many were added.
func (s *Service) ImportGoals(ctx context.Context, items []Goal) (int, error) {
	imported := 0
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for _, item := range items {
			if _, err := tx.GetGoal(ctx, item.ID); err == nil {
				continue
			} else if !errors.Is(err, ErrGoalNotFound) {
				return err
			}

			goal := item
			goal.History = append([]Transaction{}, item.History...)
			if goal.CreatedAt.IsZero() {
				goal.CreatedAt = s.now().UTC()
			}
			if err := tx.CreateGoal(ctx, &goal); err != nil {
				return fmt.Errorf("import goal %s: %w", item.ID, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
