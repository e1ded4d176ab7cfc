// Package backup serializes the full application state to a single JSON
// document and restores it wholesale.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"

	"financepro/internal/auth"
	"financepro/internal/core"
)

// ErrInvalidBackup reports a document that is unparsable or missing one of
// the required top-level keys. Import is all-or-nothing; there is no
// partial restore and no schema version to negotiate.
var ErrInvalidBackup = errors.New("invalid backup file")

// Document is the exported shape: the full aggregate plus the local
// credential registry.
type Document struct {
	AppData core.AppData      `json:"appData"`
	UsersDB []auth.Credential `json:"usersDB"`
}

// Export produces the backup document for data and users.
func Export(data core.AppData, users []auth.Credential) ([]byte, error) {
	if users == nil {
		users = []auth.Credential{}
	}
	doc := Document{AppData: data, UsersDB: users}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return raw, nil
}

// Import parses and validates a backup document. Both top-level keys must
// be present and non-null; anything else reports the generic invalid-file
// error without saying more.
func Import(raw []byte) (core.AppData, []auth.Credential, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return core.AppData{}, nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	appRaw, ok := top["appData"]
	if !ok || string(appRaw) == "null" {
		return core.AppData{}, nil, fmt.Errorf("%w: missing appData", ErrInvalidBackup)
	}
	usersRaw, ok := top["usersDB"]
	if !ok || string(usersRaw) == "null" {
		return core.AppData{}, nil, fmt.Errorf("%w: missing usersDB", ErrInvalidBackup)
	}

	var data core.AppData
	if err := json.Unmarshal(appRaw, &data); err != nil {
		return core.AppData{}, nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	var users []auth.Credential
	if err := json.Unmarshal(usersRaw, &users); err != nil {
		return core.AppData{}, nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if users == nil {
		users = []auth.Credential{}
	}

	return data, users, nil
}
