// gammu
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of gammu.
//
// gammu is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// gammu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gammu; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package gammu

import (
	"errors"
	"fmt"
)

// ErrorKind groups sentinel errors into the four families from the
// state machine's error taxonomy: lifecycle, device, protocol, operation.
type ErrorKind string

const (
	KindLifecycle ErrorKind = "lifecycle"
	KindDevice    ErrorKind = "device"
	KindProtocol  ErrorKind = "protocol"
	KindOperation ErrorKind = "operation"
)

// Lifecycle errors.
var (
	ErrUnconfigured                = errors.New("state machine not configured")
	ErrUsingDefaults               = errors.New("using default configuration")
	ErrNoneSection                 = errors.New("no config section found")
	ErrDisabled                    = errors.New("connection type disabled at build")
	ErrUnknownConnectionTypeString = errors.New("unknown connection type string")
	ErrUnknownModelString          = errors.New("unknown model string")
	ErrMoreMemory                  = errors.New("not enough memory")
)

// Device errors. These are the "recoverable" set the config ladder
// falls back past.
var (
	ErrDeviceOpenError   = errors.New("device open error")
	ErrDeviceLocked      = errors.New("device locked")
	ErrDeviceNotExist    = errors.New("device does not exist")
	ErrDeviceBusy        = errors.New("device busy")
	ErrDeviceNoPermission = errors.New("device permission denied")
	ErrDeviceNoDriver    = errors.New("device driver not available")
	ErrDeviceNotWork     = errors.New("device not working")
)

// Protocol errors.
var (
	ErrTimeout           = errors.New("timeout")
	ErrAborted           = errors.New("aborted")
	ErrUnknownFrame      = errors.New("unknown frame")
	ErrUnknownResponse   = errors.New("unknown response")
	ErrFrameNotRequested = errors.New("frame not requested")
	ErrNeedAnotherAnswer = errors.New("need another answer")
)

// Operation errors.
var (
	ErrNotSupported = errors.New("not supported")
	ErrUnknown      = errors.New("unknown error")
)

// recoverableDeviceErrors is the set that cascades the config ladder
// to the next slot instead of aborting it.
var recoverableDeviceErrors = []error{
	ErrDeviceOpenError,
	ErrDeviceLocked,
	ErrDeviceNotExist,
	ErrDeviceBusy,
	ErrDeviceNoPermission,
	ErrDeviceNoDriver,
	ErrDeviceNotWork,
}

// IsRecoverableDeviceError reports whether err is one of the device
// errors (or Timeout) that the init ladder treats as "try the next
// config slot" rather than a hard failure.
func IsRecoverableDeviceError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}
	for _, sentinel := range recoverableDeviceErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// StateMachineError annotates a sentinel error with the operation and
// component that raised it.
type StateMachineError struct {
	Err       error
	Op        string
	Kind      ErrorKind
	Retryable bool
}

func (e *StateMachineError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *StateMachineError) Unwrap() error {
	return e.Err
}

// NewStateMachineError builds a *StateMachineError, inferring
// Retryable from IsRecoverableDeviceError when not otherwise known.
func NewStateMachineError(op string, err error, kind ErrorKind) *StateMachineError {
	return &StateMachineError{
		Op:        op,
		Err:       err,
		Kind:      kind,
		Retryable: IsRecoverableDeviceError(err),
	}
}

// NewTimeoutError builds a protocol-kind timeout error for op,
// optionally naming the device/port it occurred on.
func NewTimeoutError(op, port string) *StateMachineError {
	err := ErrTimeout
	if port != "" {
		err = fmt.Errorf("%w on %s", ErrTimeout, port)
	}
	return &StateMachineError{Op: op, Err: err, Kind: KindProtocol, Retryable: true}
}

// NewInvalidResponseError builds a non-retryable operation-kind error
// describing a response that could not be interpreted.
func NewInvalidResponseError(op, detail string) *StateMachineError {
	err := fmt.Errorf("invalid response: %s", detail)
	return &StateMachineError{Op: op, Err: err, Kind: KindOperation, Retryable: false}
}

// GetErrorKind extracts the ErrorKind of err, looking through a
// *StateMachineError wrapper first and otherwise classifying known
// sentinels by family.
func GetErrorKind(err error) ErrorKind {
	var sme *StateMachineError
	if errors.As(err, &sme) {
		return sme.Kind
	}
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrAborted),
		errors.Is(err, ErrUnknownFrame), errors.Is(err, ErrUnknownResponse),
		errors.Is(err, ErrFrameNotRequested), errors.Is(err, ErrNeedAnotherAnswer):
		return KindProtocol
	case errors.Is(err, ErrNotSupported), errors.Is(err, ErrUnknown):
		return KindOperation
	case IsRecoverableDeviceError(err):
		return KindDevice
	default:
		return KindLifecycle
	}
}

// IsRetryable reports whether err should trigger another attempt of
// the operation that produced it.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var sme *StateMachineError
	if errors.As(err, &sme) {
		return sme.Retryable
	}
	return IsRecoverableDeviceError(err)
}
