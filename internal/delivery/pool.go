package delivery

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"outreach/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNoSenderAvailable is returned when every account is inactive or at its daily limit
	ErrNoSenderAvailable = errors.New("no active sender account with remaining daily capacity")
	// ErrSenderNotFound is returned for an unknown account id
	ErrSenderNotFound = errors.New("sender account not found")
)

// Pool holds the sender accounts and their daily send counters
type Pool struct {
	mu       sync.RWMutex
	accounts []models.SenderAccount
	day      string
	now      func() time.Time
}

// NewPool creates a pool seeded with accounts
func NewPool(accounts []models.SenderAccount) *Pool {
	p := &Pool{now: time.Now}
	for _, a := range accounts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		p.accounts = append(p.accounts, a)
	}
	p.day = p.today()
	return p
}

func (p *Pool) today() string {
	return p.now().Format("2006-01-02")
}

// rollover resets sentToday once per calendar day; caller holds the write lock
func (p *Pool) rollover() {
	if today := p.today(); today != p.day {
		for i := range p.accounts {
			p.accounts[i].SentToday = 0
		}
		p.day = today
	}
}

// List returns a copy of all accounts
func (p *Pool) List() []models.SenderAccount {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover()

	out := make([]models.SenderAccount, len(p.accounts))
	copy(out, p.accounts)
	return out
}

// Add validates and stores a new account, assigning an id
func (p *Pool) Add(account models.SenderAccount) (models.SenderAccount, error) {
	account.Email = strings.TrimSpace(account.Email)
	if err := account.Validate(); err != nil {
		return models.SenderAccount{}, err
	}
	account.ID = uuid.NewString()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts = append(p.accounts, account)
	return account, nil
}

// Update replaces an account, keeping its id
func (p *Pool) Update(id string, account models.SenderAccount) (models.SenderAccount, error) {
	account.Email = strings.TrimSpace(account.Email)
	if err := account.Validate(); err != nil {
		return models.SenderAccount{}, err
	}
	account.ID = id

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.accounts {
		if p.accounts[i].ID == id {
			p.accounts[i] = account
			return account, nil
		}
	}
	return models.SenderAccount{}, ErrSenderNotFound
}

// Remove deletes an account
func (p *Pool) Remove(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.accounts {
		if p.accounts[i].ID == id {
			p.accounts = append(p.accounts[:i], p.accounts[i+1:]...)
			return nil
		}
	}
	return ErrSenderNotFound
}

// Pick chooses the account to send the next message from: active, under its
// daily limit, highest health score first, then the least used.
func (p *Pool) Pick() (models.SenderAccount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover()

	candidates := make([]models.SenderAccount, 0, len(p.accounts))
	for _, a := range p.accounts {
		if a.HasCapacity() {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return models.SenderAccount{}, ErrNoSenderAvailable
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].HealthScore != candidates[j].HealthScore {
			return candidates[i].HealthScore > candidates[j].HealthScore
		}
		return candidates[i].SentToday < candidates[j].SentToday
	})
	return candidates[0], nil
}

// MarkSent counts one delivered message against an account
func (p *Pool) MarkSent(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rollover()

	for i := range p.accounts {
		if p.accounts[i].ID == id {
			p.accounts[i].SentToday++
			return
		}
	}
}
