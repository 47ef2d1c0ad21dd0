/*
 * Copyright 2024 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"errors"
	"time"
)

// Option is a function type that modifies the Config.
type Option func(*Config) error

// WithLogger is an option that sets the logger of the Config.
func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithScheduler is an option that sets the region scheduler of the Config.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *Config) error {
		c.Scheduler = scheduler
		return nil
	}
}

// WithPermissions is an option that sets the block permission check of the Config.
func WithPermissions(permissions Permissions) Option {
	return func(c *Config) error {
		if permissions == nil {
			return errors.New("permissions can not be nil")
		}
		c.Permissions = permissions
		return nil
	}
}

// WithFeedback is an option that sets the feedback sink of the Config.
func WithFeedback(feedback Feedback) Option {
	return func(c *Config) error {
		if feedback == nil {
			return errors.New("feedback can not be nil")
		}
		c.Feedback = feedback
		return nil
	}
}

// WithLabelObserver adds an observer notified of committed renames.
func WithLabelObserver(observer LabelObserver) Option {
	return func(c *Config) error {
		c.LabelObservers = append(c.LabelObservers, observer)
		return nil
	}
}

// WithMaxInteractDistance sets the session cancellation distance.
func WithMaxInteractDistance(distance float64) Option {
	return func(c *Config) error {
		if distance <= 0 {
			return errors.New("distance must be positive")
		}
		c.MaxInteractDistance = distance
		return nil
	}
}

// WithRegionShift sets the region size of the default scheduler, 2^shift
// blocks along x and z.
func WithRegionShift(shift uint) Option {
	return func(c *Config) error {
		if shift > 30 {
			return errors.New("region shift must be at most 30")
		}
		c.RegionShift = shift
		return nil
	}
}

// WithFilterCacheTTL sets how long parsed labels are memoized.
func WithFilterCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.FilterCacheTTL = ttl
		return nil
	}
}

// WithFilterCacheGC sets the cron spec of the parsed label purge.
func WithFilterCacheGC(spec string) Option {
	return func(c *Config) error {
		c.FilterCacheGC = spec
		return nil
	}
}

// WithDebug toggles per-event logging.
func WithDebug(debug bool) Option {
	return func(c *Config) error {
		c.Debug = debug
		return nil
	}
}
