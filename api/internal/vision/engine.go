// Package vision defines the damage-assessment engine interface and the
// per-chat engine manager. Engines return the raw JSON document the
// model produced; parsing and reconciliation happen in package assess.
package vision

import (
	"context"
	"encoding/json"
	"sync"
)

// Hints carries optional metadata forwarded to the model alongside the
// image, e.g. fraud indicators detected by the upstream heuristics.
type Hints struct {
	FraudSuspected bool
	FraudReason    string
}

type Engine interface {
	Name() string
	GetModel() string
	AnalyzeDamage(ctx context.Context, image []byte, hints Hints) (json.RawMessage, error)
}

// Manager holds the default engine and per-chat overrides set via the
// bot's /engine command.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}

func (m *Manager) Default() Engine { return m.def }
