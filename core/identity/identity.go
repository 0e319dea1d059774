/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	// AdminName is the name of the bootstrap identity.
	AdminName = "admin"
	// AdminSecret is the fixed enrollment secret of the bootstrap identity.
	AdminSecret = "adminpw"

	// IssuerOption is the option key granting permission to create identities.
	IssuerOption = "issuer"
)

// Identity is a named participant credential. A persisted identity is stored
// under both its name and its identifier.
type Identity struct {
	Identifier  string                 `json:"identifier"`
	Name        string                 `json:"name"`
	Issuer      string                 `json:"issuer"`
	Secret      string                 `json:"secret"`
	Certificate string                 `json:"certificate,omitempty"`
	Imported    bool                   `json:"imported"`
	Options     map[string]interface{} `json:"options"`
}

// Options are the recognized identity options.
type Options struct {
	Issuer bool `mapstructure:"issuer"`
}

// Credentials are handed out when an identity is issued.
type Credentials struct {
	UserID     string `yaml:"userID"`
	UserSecret string `yaml:"userSecret"`
}

// DecodeOptions decodes the recognized options. Values are weakly typed, so
// "true" and 1 are accepted for a boolean option; unknown keys are ignored.
func (id *Identity) DecodeOptions() (*Options, error) {
	opts := &Options{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           opts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create options decoder")
	}
	if err := decoder.Decode(id.Options); err != nil {
		return nil, errors.Wrapf(err, "invalid options for identity [%s]", id.Name)
	}
	return opts, nil
}

// IsIssuer reports whether the identity may create further identities.
func (id *Identity) IsIssuer() bool {
	if id == nil {
		return false
	}
	opts, err := id.DecodeOptions()
	if err != nil {
		logger.Warnf("Ignoring options of identity [%s]: %s", id.Name, err)
		return false
	}
	return opts.Issuer
}
