package goals

import "time"

const (
	// DateLayout and TimeLayout are the display forms stored on every deposit.
	DateLayout = "02 Jan"
	TimeLayout = "15:04"

	DefaultDeadline = "No Deadline"
)

type Goal struct {
	ID              string        `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string        `json:"name" gorm:"not null"`
	Target          int64         `json:"target" gorm:"not null"`
	Saved           int64         `json:"saved" gorm:"not null;default:0"`
	Deadline        string        `json:"deadline" gorm:"not null;default:''"`
	Icon            string        `json:"icon" gorm:"not null;default:''"`
	Position        int           `json:"-" gorm:"not null;index"`
	History         []Transaction `json:"history" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	LastTransaction *Transaction  `json:"last_transaction" gorm:"-"`
	CreatedAt       time.Time     `json:"created_at,omitzero" gorm:"autoCreateTime"`
}

type Transaction struct {
	ID     string    `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	GoalID string    `json:"-" gorm:"type:uuid;index;not null"`
	Amount int64     `json:"amount" gorm:"not null"`
	Date   string    `json:"date" gorm:"not null"`
	Time   string    `json:"time" gorm:"not null"`
	At     time.Time `json:"at,omitzero" gorm:"index"`
}

func (Transaction) TableName() string {
	return "goal_transactions"
}

func (g Goal) IsCompleted() bool {
	return g.Saved >= g.Target
}

// Newest returns history[0], the most recent deposit.
func (g Goal) Newest() (Transaction, bool) {
	if len(g.History) == 0 {
		return Transaction{}, false
	}
	return g.History[0], true
}

// Oldest returns the last history entry, the first deposit ever made.
func (g Goal) Oldest() (Transaction, bool) {
	if len(g.History) == 0 {
		return Transaction{}, false
	}
	return g.History[len(g.History)-1], true
}

type CreateGoalInput struct {
	Name     string
	Target   int64
	Deadline string
	Icon     string
}
