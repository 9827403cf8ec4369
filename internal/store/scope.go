package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"technest/internal/kv"
	"technest/models"
)

// Partition keys are a fixed prefix plus the owning username. Each user sees
// only their own partition; switching sessions switches partitions entirely.
const (
	scopeBucket      = "scope"
	assetsKeyPrefix  = "assets_"
	ticketsKeyPrefix = "tickets_"
)

// Scope stores the per-user asset and ticket partitions. Every save
// overwrites the whole partition; there is no incremental diffing.
type Scope struct {
	kv *kv.Store
}

// NewScope creates a Scope over the given key-value store.
func NewScope(kvs *kv.Store) *Scope {
	return &Scope{kv: kvs}
}

// Assets returns the user's asset categories. A user with no partition yet
// gets a starter inventory, which is persisted before being returned.
func (s *Scope) Assets(username string) ([]models.AssetCategory, error) {
	raw, err := s.kv.Get(scopeBucket, assetsKeyPrefix+username)
	if err != nil {
		return nil, fmt.Errorf("read assets: %w", err)
	}
	if raw == nil {
		seed := DefaultAssets()
		if err := s.SaveAssets(username, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	var cats []models.AssetCategory
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return cats, nil
}

// SaveAssets overwrites the user's entire asset partition.
func (s *Scope) SaveAssets(username string, cats []models.AssetCategory) error {
	if cats == nil {
		cats = []models.AssetCategory{}
	}
	raw, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}
	if err := s.kv.Put(scopeBucket, assetsKeyPrefix+username, raw); err != nil {
		return fmt.Errorf("write assets: %w", err)
	}
	return nil
}

// Tickets returns the user's support tickets, oldest first. A missing
// partition is an empty list, not an error.
func (s *Scope) Tickets(username string) ([]models.Ticket, error) {
	raw, err := s.kv.Get(scopeBucket, ticketsKeyPrefix+username)
	if err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}
	if raw == nil {
		return []models.Ticket{}, nil
	}
	var tickets []models.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}

// SaveTickets overwrites the user's entire ticket partition.
func (s *Scope) SaveTickets(username string, tickets []models.Ticket) error {
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encode tickets: %w", err)
	}
	if err := s.kv.Put(scopeBucket, ticketsKeyPrefix+username, raw); err != nil {
		return fmt.Errorf("write tickets: %w", err)
	}
	return nil
}

// AddTicket appends a new open ticket to the user's partition and saves it.
func (s *Scope) AddTicket(username, subject, message string) (*models.Ticket, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	tickets, err := s.Tickets(username)
	if err != nil {
		return nil, err
	}
	t := models.Ticket{
		ID:        uuid.NewString(),
		Subject:   subject,
		Message:   message,
		Status:    models.TicketStatusOpen,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.SaveTickets(username, append(tickets, t)); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultAssets is the starter inventory seeded into a fresh partition.
func DefaultAssets() []models.AssetCategory {
	return []models.AssetCategory{
		{
			ID:   uuid.NewString(),
			Name: "Computers",
			Items: []models.Asset{
				{ID: uuid.NewString(), Name: "Workstation", InventoryNumber: "INV-0001", Location: "Office", Status: "in service"},
			},
		},
		{
			ID:   uuid.NewString(),
			Name: "Network equipment",
			Items: []models.Asset{
				{ID: uuid.NewString(), Name: "Router", InventoryNumber: "INV-0002", Location: "Server room", Status: "in service"},
			},
		},
		{ID: uuid.NewString(), Name: "Tools", Items: []models.Asset{}},
	}
}
