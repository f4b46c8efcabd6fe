// Package agent turns raw agent records from the game-data API into the
// validated values the card compositor consumes.
//
// Records arrive as loosely-typed JSON. Only three things are required:
// a textual displayName, a portrait URL (bustPortrait when it is a string,
// otherwise displayIcon) and an abilities array. Anything else about a
// record is optional and never fails parsing.
package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Agent is one playable character as needed to render its card.
type Agent struct {
	// UUID is the upstream identifier; empty when absent.
	UUID string
	// Name is the display name drawn on the card and used as the file name.
	Name string
	// Portrait is the image URL pasted at the top of the card.
	Portrait string
	// Abilities are in upstream order; the card keeps that order left to right.
	Abilities []Ability
}

// Ability is one entry of an agent's ability list.
type Ability struct {
	// Slot is the upstream slot label (e.g. "Ability1", "Ultimate").
	Slot string
	// Name is the ability display name.
	Name string
	// Icon is the icon URL. Empty means the placeholder icon is used.
	Icon string
}

// MissingFieldError reports a required record field that is absent or has
// the wrong JSON type. It is the only per-agent error the driver recovers
// from.
type MissingFieldError struct {
	// Field is the upstream JSON key.
	Field string
	// Agent is the display name when it was already known, else "".
	Agent string
}

func (e *MissingFieldError) Error() string {
	if e.Agent == "" {
		return fmt.Sprintf("agent record: missing field %q", e.Field)
	}
	return fmt.Sprintf("agent %q: missing field %q", e.Agent, e.Field)
}

// ///////////////////////////////////////////////
// Parsing
// ///////////////////////////////////////////////

// Parse validates one raw agent record. A record that is not a JSON object,
// or that lacks a required field, yields a *MissingFieldError.
func Parse(raw json.RawMessage) (Agent, error) {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
		return Agent{}, &MissingFieldError{Field: "displayName"}
	}

	name, ok := stringField(rec, "displayName")
	if !ok {
		return Agent{}, &MissingFieldError{Field: "displayName"}
	}

	portrait, ok := PortraitURL(rec)
	if !ok {
		return Agent{}, &MissingFieldError{Field: "displayIcon", Agent: name}
	}

	abilities, ok := parseAbilities(rec["abilities"])
	if !ok {
		return Agent{}, &MissingFieldError{Field: "abilities", Agent: name}
	}

	uuid, _ := stringField(rec, "uuid")
	return Agent{
		UUID:      uuid,
		Name:      name,
		Portrait:  portrait,
		Abilities: abilities,
	}, nil
}

// PortraitURL picks the portrait for a record: bustPortrait when it is a
// string, otherwise displayIcon. ok is false when neither is a string.
func PortraitURL(rec map[string]json.RawMessage) (url string, ok bool) {
	if s, ok := stringField(rec, "bustPortrait"); ok {
		return s, true
	}
	return stringField(rec, "displayIcon")
}

// parseAbilities decodes the abilities array. A null or non-array value is
// rejected; individual entries never fail, a malformed entry simply gets
// the placeholder icon.
func parseAbilities(raw json.RawMessage) ([]Ability, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}

	abilities := make([]Ability, 0, len(entries))
	for _, e := range entries {
		var rec map[string]json.RawMessage
		_ = json.Unmarshal(e, &rec)
		slot, _ := stringField(rec, "slot")
		name, _ := stringField(rec, "displayName")
		icon, _ := stringField(rec, "displayIcon")
		abilities = append(abilities, Ability{Slot: slot, Name: name, Icon: icon})
	}
	return abilities, true
}

// stringField returns rec[key] when it is a JSON string.
func stringField(rec map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := rec[key]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
