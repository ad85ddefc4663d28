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
	"context"
	"crypto/rand"
	"encoding/binary"
	"math"
	"time"
)

// RetryConfig bounds the retry envelope around an operation that can
// fail with recoverable device errors, such as running the config
// ladder against a cable that is still enumerating. Only errors
// IsRetryable reports true for are retried; anything else surfaces
// immediately.
type RetryConfig struct {
	// MaxAttempts is the total number of tries (1 = no retry).
	MaxAttempts int
	// InitialBackoff is the sleep before the second attempt; each
	// further attempt multiplies it by BackoffMultiplier, capped at
	// MaxBackoff.
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	// Jitter widens each sleep by up to this fraction of itself, so
	// several processes probing the same device don't retry in
	// lockstep.
	Jitter float64
	// RetryTimeout bounds the whole envelope, sleeps included
	// (0 = unbounded).
	RetryTimeout time.Duration
}

// DeviceRetryConfig is the policy tuned for physical phone hardware:
// a freshly plugged cable routinely needs a few seconds before the
// port exists and is writable, so the backoff starts slow and the
// envelope is generous.
func DeviceRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        2 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.2,
		RetryTimeout:      15 * time.Second,
	}
}

// DefaultRetryConfig is the general-purpose policy for quick
// operations (probe frames, register reads).
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
		RetryTimeout:      5 * time.Second,
	}
}

// RetryableFunc is the operation RetryWithConfig drives.
type RetryableFunc func() error

// RetryWithConfig runs fn until it succeeds, fails unrecoverably, or
// the envelope (attempts or RetryTimeout, whichever ends first) is
// spent. The last recoverable error is returned when the envelope
// runs out; ctx cancellation mid-envelope also returns the last error
// seen.
func RetryWithConfig(ctx context.Context, config *RetryConfig, fn RetryableFunc) error {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.RetryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.RetryTimeout)
		defer cancel()
	}

	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(config.sleepBefore(attempt + 1)):
		}
	}
	return lastErr
}

// Retry runs fn under DefaultRetryConfig.
func Retry(ctx context.Context, fn RetryableFunc) error {
	return RetryWithConfig(ctx, DefaultRetryConfig(), fn)
}

// sleepBefore computes the jittered backoff preceding the given
// attempt: attempt 2 sleeps InitialBackoff, attempt 3 one multiplier
// step more, and so on, capped at MaxBackoff.
func (c *RetryConfig) sleepBefore(attempt int) time.Duration {
	steps := attempt - 2
	if steps < 0 {
		steps = 0
	}
	backoff := float64(c.InitialBackoff) * math.Pow(c.BackoffMultiplier, float64(steps))
	if ceil := float64(c.MaxBackoff); c.MaxBackoff > 0 && backoff > ceil {
		backoff = ceil
	}
	base := time.Duration(backoff)
	return base + c.jitterFor(base)
}

// jitterFor draws a uniform addition in [0, Jitter*base). crypto/rand
// keeps independent processes from sharing a seed and colliding on
// the same device at the same instant.
func (c *RetryConfig) jitterFor(base time.Duration) time.Duration {
	if c.Jitter <= 0 || base <= 0 {
		return 0
	}
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return 0
	}
	frac := float64(binary.LittleEndian.Uint64(raw[:])) / float64(1<<64)
	return time.Duration(frac * c.Jitter * float64(base))
}
