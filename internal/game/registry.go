package game

import (
	"fmt"

	"partyhost/internal/net"
)

// Registry maps game keys to live module instances. Modules are registered
// once at startup; the registration order is kept for stable menu listings.
type Registry struct {
	modules map[string]Module
	keys    []string
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// reservedKeys are names a game key may not take: the menu state plus the
// snapshot's fixed top-level members, which the game payload would
// otherwise collide with on the wire.
var reservedKeys = map[string]bool{
	"menu":          true,
	"server_state":  true,
	"lobby":         true,
	"audio":         true,
	"popup":         true,
	"panel_buttons": true,
	"player_select": true,
	"cursors":       true,
}

func (r *Registry) Register(m Module) error {
	key := m.Key()
	if key == "" {
		return fmt.Errorf("game module has empty key")
	}
	if reservedKeys[key] {
		return fmt.Errorf("game key %q is reserved", key)
	}
	if _, ok := r.modules[key]; ok {
		return fmt.Errorf("game key %q already registered", key)
	}
	r.modules[key] = m
	r.keys = append(r.keys, key)
	return nil
}

func (r *Registry) Get(key string) (Module, bool) {
	m, ok := r.modules[key]
	return m, ok
}

func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Infos lists the registered games for the menu, in registration order.
func (r *Registry) Infos() []net.GameInfo {
	infos := make([]net.GameInfo, 0, len(r.keys))
	for _, key := range r.keys {
		m := r.modules[key]
		infos = append(infos, net.GameInfo{
			Key:        key,
			Title:      m.Title(),
			MinPlayers: m.MinPlayers(),
		})
	}
	return infos
}
