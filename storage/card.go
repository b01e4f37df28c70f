package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"lovestudio/models"
)

// CardKey is the storage key of the saved card record
const CardKey = "valentine_card_data"

var (
	// ErrCardNotFound is returned when no card has been saved yet
	ErrCardNotFound = errors.New("card not found")
	// ErrMalformedCard is returned when the stored value does not parse
	ErrMalformedCard = errors.New("stored card is malformed")
)

// CardStore is the single place the views read and write the card record
type CardStore struct {
	local *LocalStorage
	mu    sync.RWMutex
}

// NewCardStore creates a card store over local storage
func NewCardStore(local *LocalStorage) *CardStore {
	return &CardStore{local: local}
}

// Save serializes the record and overwrites the stored one
func (s *CardStore) Save(record models.CardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}
	return s.local.SetItem(CardKey, string(data))
}

// Load reads the stored record back. Missing theme or occasion values get their defaults.
func (s *CardStore) Load() (*models.CardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, found, err := s.local.GetItem(CardKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCardNotFound
	}

	var record models.CardRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCard, err)
	}
	record = record.WithDefaults()
	return &record, nil
}

// Clear removes the stored record
func (s *CardStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.local.RemoveItem(CardKey)
}
