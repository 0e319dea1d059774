/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import "fmt"

// NetworkNotFoundError is returned when logging in to a business network
// that has not been started under the connection profile.
type NetworkNotFoundError struct {
	Network string
	Profile string
}

func (e NetworkNotFoundError) Error() string {
	return fmt.Sprintf("business network [%s] has not been started under connection profile [%s]", e.Network, e.Profile)
}

// NetworkAlreadyExistsError is returned when starting a business network
// that is already running.
type NetworkAlreadyExistsError struct {
	Network string
}

func (e NetworkAlreadyExistsError) Error() string {
	return fmt.Sprintf("business network [%s] already exists", e.Network)
}

// UnknownProfileError is returned for connection profiles that are not
// configured.
type UnknownProfileError struct {
	Profile string
}

func (e UnknownProfileError) Error() string {
	return fmt.Sprintf("connection profile [%s] is not defined", e.Profile)
}
