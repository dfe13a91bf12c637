package gamedata

import (
	"errors"
	"fmt"
)

// DifficultyRegistry holds loaded difficulty presets and provides lookup utilities.
type DifficultyRegistry struct {
	difficulties []DifficultyDef
	byID         map[string]*DifficultyDef
	defaultID    string
}

// NewDifficultyRegistry creates a registry from loaded presets.
// An unknown or empty defaultID falls back to the first preset.
func NewDifficultyRegistry(difficulties []DifficultyDef, defaultID string) *DifficultyRegistry {
	registry := &DifficultyRegistry{
		difficulties: difficulties,
		byID:         make(map[string]*DifficultyDef, len(difficulties)),
		defaultID:    defaultID,
	}
	for i := range difficulties {
		registry.byID[difficulties[i].ID] = &difficulties[i]
	}
	if _, ok := registry.byID[defaultID]; !ok && len(difficulties) > 0 {
		registry.defaultID = difficulties[0].ID
	}
	return registry
}

// LoadDifficultyRegistry loads and creates a registry from the embedded difficulties.json.
func LoadDifficultyRegistry() (*DifficultyRegistry, error) {
	file, err := LoadDifficulties()
	if err != nil {
		return nil, err
	}
	if len(file.Difficulties) == 0 {
		return nil, errors.New("no difficulties loaded from difficulties.json")
	}
	return NewDifficultyRegistry(file.Difficulties, file.Default), nil
}

// MustLoadDifficultyRegistry loads a registry, panicking on error.
func MustLoadDifficultyRegistry() *DifficultyRegistry {
	registry, err := LoadDifficultyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *DifficultyRegistry) GetByID(id string) *DifficultyDef {
	return r.byID[id]
}

// Lookup returns the preset with the given ID or an error naming the known presets.
func (r *DifficultyRegistry) Lookup(id string) (*DifficultyDef, error) {
	if d := r.byID[id]; d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("unknown difficulty %q (known: %v)", id, r.IDs())
}

// GetByKey returns the preset selected by a keyboard shortcut, or nil.
func (r *DifficultyRegistry) GetByKey(key rune) *DifficultyDef {
	for i := range r.difficulties {
		if r.difficulties[i].KeyRune() == key {
			return &r.difficulties[i]
		}
	}
	return nil
}

// Default returns the default preset.
func (r *DifficultyRegistry) Default() *DifficultyDef {
	return r.byID[r.defaultID]
}

// IDs returns the preset IDs in file order.
func (r *DifficultyRegistry) IDs() []string {
	ids := make([]string, len(r.difficulties))
	for i := range r.difficulties {
		ids[i] = r.difficulties[i].ID
	}
	return ids
}

// All returns all presets.
func (r *DifficultyRegistry) All() []DifficultyDef {
	return r.difficulties
}

// Count returns the number of presets in the registry.
func (r *DifficultyRegistry) Count() int {
	return len(r.difficulties)
}
