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

// Package config loads the server configuration from an INI file.
package config

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/utils/mqtt"
	"github.com/rulego/hopperfilter/utils/pool"
)

type Config struct {
	// Server http服务器地址
	Server      string `ini:"server"`
	CertFile    string `ini:"cert_file"`
	CertKeyFile string `ini:"cert_key_file"`
	// LogFile 日志文件, stdout when empty
	LogFile string `ini:"log_file"`
	Debug   bool   `ini:"debug"`
	// CatalogFile is the attribute catalog, the built-in one when empty.
	CatalogFile string `ini:"catalog_file"`
	// RegionShift is how many low coordinate bits share a region worker.
	RegionShift uint `ini:"region_shift"`
	// MaxInteractDistance cancels sessions of users walking away.
	MaxInteractDistance float64 `ini:"max_interact_distance"`
	// CacheTTL keeps parsed labels memoized, 0 disables memoization.
	CacheTTL time.Duration `ini:"cache_ttl"`
	// CacheGC is the cron spec purging expired labels.
	CacheGC string `ini:"cache_gc"`
	Mqtt    Mqtt   `ini:"mqtt"`
}

// Mqtt publishes committed labels when enabled.
type Mqtt struct {
	Enabled  bool   `ini:"enabled"`
	Server   string `ini:"server"`
	Username string `ini:"username"`
	Password string `ini:"password"`
	ClientID string `ini:"client_id"`
	QOS      uint8  `ini:"qos"`
	Retained bool   `ini:"retained"`
	Topic    string `ini:"topic"`
}

// DefaultConfig 默认配置
var DefaultConfig = Config{
	Server:              ":9090",
	RegionShift:         pool.DefaultRegionShift,
	MaxInteractDistance: types.DefaultMaxInteractDistance,
	CacheTTL:            types.DefaultFilterCacheTTL,
	CacheGC:             "@every 1m",
	Mqtt: Mqtt{
		Server: "tcp://127.0.0.1:1883",
		Topic:  "hopperfilter/labels",
	},
}

// Load reads file over DefaultConfig. An empty file name returns the defaults.
func Load(file string) (Config, error) {
	c := DefaultConfig
	if file == "" {
		return c, nil
	}
	cfg, err := ini.Load(file)
	if err != nil {
		return c, errors.Wrapf(err, "load config %s", file)
	}
	if err := cfg.MapTo(&c); err != nil {
		return c, errors.Wrapf(err, "map config %s", file)
	}
	return c, nil
}

// Options returns the engine options of c.
func (c Config) Options() []types.Option {
	return []types.Option{
		types.WithDebug(c.Debug),
		types.WithRegionShift(c.RegionShift),
		types.WithMaxInteractDistance(c.MaxInteractDistance),
		types.WithFilterCacheTTL(c.CacheTTL),
		types.WithFilterCacheGC(c.CacheGC),
	}
}

// MqttConfig returns the client config of the [mqtt] section.
func (c Config) MqttConfig() mqtt.Config {
	return mqtt.Config{
		Server:   c.Mqtt.Server,
		Username: c.Mqtt.Username,
		Password: c.Mqtt.Password,
		ClientID: c.Mqtt.ClientID,
		QOS:      c.Mqtt.QOS,
		Retained: c.Mqtt.Retained,
	}
}
