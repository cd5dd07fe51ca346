// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/approval-bot/identity"
)

var (
	ErrAlreadyListed = errors.New("identity is already on the list")
	ErrNotListed     = errors.New("identity is not on the list")
)

// Policy holds the voting-policy flags stored alongside the name lists.
type Policy struct {
	// ShowVotes controls whether vote confirmations name the voter.
	ShowVotes bool `yaml:"show_votes"`
	// AdminsCanVote allows admins to cast votes in addition to moderators.
	AdminsCanVote bool `yaml:"admins_can_vote"`
	// MajorityIncludeAdmins counts admins toward the majority threshold.
	// Only effective while AdminsCanVote is set.
	MajorityIncludeAdmins bool `yaml:"majority_include_admins"`
}

func defaultPolicy() Policy {
	return Policy{
		ShowVotes:             false,
		AdminsCanVote:         true,
		MajorityIncludeAdmins: true,
	}
}

// fileFormat mirrors the config file. Policy flags are pointers so missing
// keys can be told apart from explicit false and filled with defaults.
type fileFormat struct {
	Moderators            []string `yaml:"moderators"`
	Admins                []string `yaml:"admins"`
	ShowVotes             *bool    `yaml:"show_votes"`
	AdminsCanVote         *bool    `yaml:"admins_can_vote"`
	MajorityIncludeAdmins *bool    `yaml:"majority_include_admins"`
}

// Roster is the mutable, file-backed list of moderators and admins plus the
// policy flags. Every mutation is written back to the config file before it
// is visible to new snapshots.
type Roster struct {
	mu         sync.Mutex
	path       string
	moderators []identity.Identity
	admins     []identity.Identity
	policy     Policy
}

// Load reads the roster config file, creating it with defaults if it does
// not exist. Keys missing from an existing file are set to their defaults
// and the file is rewritten, so hand-edited configs stay complete.
func Load(path string) (*Roster, error) {
	r := &Roster{path: path, policy: defaultPolicy()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("roster config not found, creating with defaults", "path", path)
		if err := r.save(); err != nil {
			return nil, err
		}
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster config: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse roster config: %w", err)
	}

	for _, m := range ff.Moderators {
		id, err := identity.Parse(m)
		if err != nil {
			return nil, fmt.Errorf("invalid moderator entry %q: %w", m, err)
		}
		r.moderators = append(r.moderators, id)
	}
	for _, a := range ff.Admins {
		id, err := identity.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid admin entry %q: %w", a, err)
		}
		r.admins = append(r.admins, id)
	}

	missing := false
	if ff.ShowVotes != nil {
		r.policy.ShowVotes = *ff.ShowVotes
	} else {
		missing = true
	}
	if ff.AdminsCanVote != nil {
		r.policy.AdminsCanVote = *ff.AdminsCanVote
	} else {
		missing = true
	}
	if ff.MajorityIncludeAdmins != nil {
		r.policy.MajorityIncludeAdmins = *ff.MajorityIncludeAdmins
	} else {
		missing = true
	}

	if missing {
		slog.Debug("roster config missing keys, saving defaults back", "path", path)
		if err := r.save(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Snapshot returns an immutable copy of the roster for one evaluation. A
// concurrent roster edit is observed by the next snapshot, never by one
// already taken.
func (r *Roster) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Moderators: make([]identity.Identity, len(r.moderators)),
		Admins:     make([]identity.Identity, len(r.admins)),
		Policy:     r.policy,
	}
	copy(s.Moderators, r.moderators)
	copy(s.Admins, r.admins)
	return s
}

// AddModerator appends name to the moderator list and persists the config.
func (r *Roster) AddModerator(name identity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contains(r.moderators, name) {
		return ErrAlreadyListed
	}
	r.moderators = append(r.moderators, name)
	return r.save()
}

// RemoveModerator removes name from the moderator list and persists the
// config.
func (r *Roster) RemoveModerator(name identity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !remove(&r.moderators, name) {
		return ErrNotListed
	}
	return r.save()
}

// AddAdmin appends name to the admin list and persists the config.
func (r *Roster) AddAdmin(name identity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contains(r.admins, name) {
		return ErrAlreadyListed
	}
	r.admins = append(r.admins, name)
	return r.save()
}

// RemoveAdmin removes name from the admin list and persists the config.
func (r *Roster) RemoveAdmin(name identity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !remove(&r.admins, name) {
		return ErrNotListed
	}
	return r.save()
}

// SetShowVotes toggles the show_votes policy flag and persists the config.
func (r *Roster) SetShowVotes(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.policy.ShowVotes = enabled
	return r.save()
}

// save writes the config file. Callers must hold r.mu.
func (r *Roster) save() error {
	ff := fileFormat{
		Moderators:            make([]string, 0, len(r.moderators)),
		Admins:                make([]string, 0, len(r.admins)),
		ShowVotes:             &r.policy.ShowVotes,
		AdminsCanVote:         &r.policy.AdminsCanVote,
		MajorityIncludeAdmins: &r.policy.MajorityIncludeAdmins,
	}
	for _, m := range r.moderators {
		ff.Moderators = append(ff.Moderators, m.String())
	}
	for _, a := range r.admins {
		ff.Admins = append(ff.Admins, a.String())
	}

	data, err := yaml.Marshal(&ff)
	if err != nil {
		return fmt.Errorf("failed to encode roster config: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roster config: %w", err)
	}
	return nil
}

func contains(list []identity.Identity, name identity.Identity) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

func remove(list *[]identity.Identity, name identity.Identity) bool {
	for i, v := range *list {
		if v == name {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
