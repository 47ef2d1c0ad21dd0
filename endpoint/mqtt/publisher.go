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

// Package mqtt publishes committed hopper labels to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rulego/hopperfilter/api/types"
)

const DefaultTopic = "hopperfilter/labels"

// Client publishes raw payloads. *utils/mqtt.Client implements it.
type Client interface {
	Publish(topic string, data []byte) error
}

// Publisher reports label changes on <Topic>/<world>/<x>/<y>/<z>.
type Publisher struct {
	Client Client
	Topic  string
	Logger types.Logger
}

var _ types.LabelObserver = (*Publisher)(nil)

// NewPublisher creates a publisher under topic, DefaultTopic when empty.
func NewPublisher(client Client, topic string, logger types.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{Client: client, Topic: strings.TrimRight(topic, "/"), Logger: logger}
}

// TopicOf returns the topic a change of the block at pos is published on.
func (p *Publisher) TopicOf(pos types.BlockPos) string {
	return fmt.Sprintf("%s/%s/%d/%d/%d", p.Topic, pos.World, pos.X, pos.Y, pos.Z)
}

func (p *Publisher) OnLabelChanged(change types.LabelChange) {
	payload, err := json.Marshal(change)
	if err == nil {
		err = p.Client.Publish(p.TopicOf(change.Pos), payload)
	}
	if err != nil && p.Logger != nil {
		p.Logger.Printf("publish label of %s: %v", change.Pos, err)
	}
}
