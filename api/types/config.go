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
	"time"
)

const (
	// DefaultMaxInteractDistance is the distance a user may walk away from the
	// targeted transfer point before the session is cancelled.
	DefaultMaxInteractDistance = 5.0
	// DefaultFilterCacheTTL is how long a parsed label stays memoized.
	DefaultFilterCacheTTL = 10 * time.Minute
	// DefaultRegionShift groups blocks into 16x16 columns per region worker.
	DefaultRegionShift = 4
	// ClearLabel is the typed text that removes a label.
	ClearLabel = "null"
)

// Config defines the configuration of the hopper filter engine.
type Config struct {
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// Scheduler runs label writes on the region owning the block. If nil the
	// engine starts its own region pool sized by RegionShift.
	Scheduler Scheduler
	// Permissions is the host block modification check, defaulting to AllowAll.
	Permissions Permissions
	// Feedback plays cues to users, defaulting to NopFeedback.
	Feedback Feedback
	// LabelObservers are notified of committed renames.
	LabelObservers []LabelObserver
	// RegionShift is how many low coordinate bits share a region worker of the
	// default scheduler.
	RegionShift uint
	// MaxInteractDistance cancels a session once the user is farther than this
	// from the targeted transfer point.
	MaxInteractDistance float64
	// FilterCacheTTL bounds the life of memoized parsed labels. 0 disables memoization.
	FilterCacheTTL time.Duration
	// FilterCacheGC is a cron spec for purging expired labels, e.g. "@every 1m".
	FilterCacheGC string
	// Debug enables per-event logging.
	Debug bool
}

// MaxInteractDistanceSquared is the squared form compared against positions.
func (c Config) MaxInteractDistanceSquared() float64 {
	return c.MaxInteractDistance * c.MaxInteractDistance
}

// NewConfig creates a new Config with default values and applies the provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		Logger:              DefaultLogger(),
		Permissions:         AllowAll(),
		Feedback:            NopFeedback(),
		RegionShift:         DefaultRegionShift,
		MaxInteractDistance: DefaultMaxInteractDistance,
		FilterCacheTTL:      DefaultFilterCacheTTL,
		FilterCacheGC:       "@every 1m",
	}

	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
