/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"fmt"
	"strings"
)

// IdentityNotFoundError is returned when no identity is stored under a name.
type IdentityNotFoundError struct {
	Name string
}

func (e IdentityNotFoundError) Error() string {
	return fmt.Sprintf("identity [%s] does not exist", e.Name)
}

// AuthenticationFailedError is returned when a secret does not match.
type AuthenticationFailedError struct {
	Name string
}

func (e AuthenticationFailedError) Error() string {
	return fmt.Sprintf("authentication failed for identity [%s]", e.Name)
}

// PermissionDeniedError is returned when an identity without issuer
// privilege tries to create an identity.
type PermissionDeniedError struct {
	Identity string
	Target   string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("identity [%s] does not have permission to create identity [%s]", e.Identity, e.Target)
}

// DuplicateIdentityError is returned when a record already exists under one
// of the keys an identity is added with.
type DuplicateIdentityError struct {
	Keys []string
}

func (e DuplicateIdentityError) Error() string {
	return fmt.Sprintf("an identity already exists for one of [%s]", strings.Join(e.Keys, ", "))
}
