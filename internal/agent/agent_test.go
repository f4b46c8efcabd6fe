// Tests for [Parse] field validation, portrait selection and ability
// decoding, plus the [MissingFieldError] message format.
package agent

import (
	"encoding/json"
	"errors"
	"testing"
)

// ///////////////////////////////////////////////
// Portrait Selection
// ///////////////////////////////////////////////

func TestParsePortraitSelection(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "bust portrait wins",
			json: `{"displayName":"Jett","bustPortrait":"https://x/bust.png","displayIcon":"https://x/icon.png","abilities":[]}`,
			want: "https://x/bust.png",
		},
		{
			name: "null bust portrait falls back",
			json: `{"displayName":"Sova","bustPortrait":null,"displayIcon":"https://x/icon.png","abilities":[]}`,
			want: "https://x/icon.png",
		},
		{
			name: "absent bust portrait falls back",
			json: `{"displayName":"Sova","displayIcon":"https://x/icon.png","abilities":[]}`,
			want: "https://x/icon.png",
		},
		{
			name: "non-string bust portrait falls back",
			json: `{"displayName":"Sova","bustPortrait":42,"displayIcon":"https://x/icon.png","abilities":[]}`,
			want: "https://x/icon.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(json.RawMessage(tt.json))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if a.Portrait != tt.want {
				t.Errorf("Portrait = %q, want %q", a.Portrait, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Required Fields
// ///////////////////////////////////////////////

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
		wantAgent string
	}{
		{"no display name", `{"bustPortrait":"u","abilities":[]}`, "displayName", ""},
		{"null display name", `{"displayName":null,"bustPortrait":"u","abilities":[]}`, "displayName", ""},
		{"numeric display name", `{"displayName":7,"bustPortrait":"u","abilities":[]}`, "displayName", ""},
		{"no portrait at all", `{"displayName":"Neon","abilities":[]}`, "displayIcon", "Neon"},
		{"null icon and bust", `{"displayName":"Neon","bustPortrait":null,"displayIcon":null,"abilities":[]}`, "displayIcon", "Neon"},
		{"no abilities", `{"displayName":"Neon","bustPortrait":"u"}`, "abilities", "Neon"},
		{"null abilities", `{"displayName":"Neon","bustPortrait":"u","abilities":null}`, "abilities", "Neon"},
		{"object abilities", `{"displayName":"Neon","bustPortrait":"u","abilities":{}}`, "abilities", "Neon"},
		{"not an object", `[1,2,3]`, "displayName", ""},
		{"null record", `null`, "displayName", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(json.RawMessage(tt.json))
			var mfe *MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("Parse error = %v, want *MissingFieldError", err)
			}
			if mfe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", mfe.Field, tt.wantField)
			}
			if mfe.Agent != tt.wantAgent {
				t.Errorf("Agent = %q, want %q", mfe.Agent, tt.wantAgent)
			}
		})
	}
}

func TestMissingFieldErrorMessage(t *testing.T) {
	anon := &MissingFieldError{Field: "displayName"}
	if got, want := anon.Error(), `agent record: missing field "displayName"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	named := &MissingFieldError{Field: "abilities", Agent: "Fade"}
	if got, want := named.Error(), `agent "Fade": missing field "abilities"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// ///////////////////////////////////////////////
// Abilities
// ///////////////////////////////////////////////

func TestParseAbilities(t *testing.T) {
	raw := `{
		"uuid": "add6443a-41bd-e414-f6ad-e58d267f4e95",
		"displayName": "Jett",
		"bustPortrait": "https://media/jett.png",
		"abilities": [
			{"slot": "Ability1", "displayName": "Updraft", "displayIcon": "https://media/a1.png"},
			{"slot": "Ability2", "displayName": "Tailwind", "displayIcon": null},
			{"slot": "Grenade", "displayName": "Cloudburst"},
			{"slot": "Ultimate", "displayName": "Blade Storm", "displayIcon": "https://media/u.png"},
			"garbage"
		]
	}`

	a, err := Parse(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.UUID != "add6443a-41bd-e414-f6ad-e58d267f4e95" {
		t.Errorf("UUID = %q", a.UUID)
	}
	if a.Name != "Jett" {
		t.Errorf("Name = %q, want Jett", a.Name)
	}

	want := []Ability{
		{Slot: "Ability1", Name: "Updraft", Icon: "https://media/a1.png"},
		{Slot: "Ability2", Name: "Tailwind"},
		{Slot: "Grenade", Name: "Cloudburst"},
		{Slot: "Ultimate", Name: "Blade Storm", Icon: "https://media/u.png"},
		{},
	}
	if len(a.Abilities) != len(want) {
		t.Fatalf("len(Abilities) = %d, want %d", len(a.Abilities), len(want))
	}
	for i := range want {
		if a.Abilities[i] != want[i] {
			t.Errorf("Abilities[%d] = %+v, want %+v", i, a.Abilities[i], want[i])
		}
	}
}

func TestParseEmptyAbilities(t *testing.T) {
	a, err := Parse(json.RawMessage(`{"displayName":"Test","bustPortrait":"u","abilities":[]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Abilities == nil || len(a.Abilities) != 0 {
		t.Errorf("Abilities = %#v, want empty non-nil slice", a.Abilities)
	}
}

func TestPortraitURLDirect(t *testing.T) {
	rec := map[string]json.RawMessage{
		"bustPortrait": json.RawMessage(`"a"`),
		"displayIcon":  json.RawMessage(`"b"`),
	}
	if got, ok := PortraitURL(rec); !ok || got != "a" {
		t.Errorf("PortraitURL = %q, %v; want a, true", got, ok)
	}
	delete(rec, "bustPortrait")
	if got, ok := PortraitURL(rec); !ok || got != "b" {
		t.Errorf("PortraitURL = %q, %v; want b, true", got, ok)
	}
	delete(rec, "displayIcon")
	if _, ok := PortraitURL(rec); ok {
		t.Error("PortraitURL ok = true with neither field present")
	}
}
