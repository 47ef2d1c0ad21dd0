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

// Package mqtt wraps the Paho client used to publish label changes.
package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
)

// Config 客户端配置
type Config struct {
	// Server is the broker address, e.g. tcp://127.0.0.1:1883
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	// MaxReconnectInterval defaults to one minute.
	MaxReconnectInterval time.Duration `json:"maxReconnectInterval"`
	QOS                  uint8         `json:"qos"`
	Retained             bool          `json:"retained"`
	CleanSession         bool          `json:"cleanSession"`
	// ClientID defaults to a random hopperfilter/<uuid>.
	ClientID    string `json:"clientId"`
	CAFile      string `json:"caFile"`
	CertFile    string `json:"certFile"`
	CertKeyFile string `json:"certKeyFile"`
}

// Client is a connected publisher.
type Client struct {
	client   paho.Client
	qos      byte
	retained bool
}

// NewClient connects to the broker, retrying every two seconds until ctx is done.
func NewClient(ctx context.Context, conf Config) (*Client, error) {
	if conf.Server == "" {
		return nil, errors.New("mqtt server can not be empty")
	}
	opts := paho.NewClientOptions()
	opts.AddBroker(conf.Server)
	opts.SetUsername(conf.Username)
	opts.SetPassword(conf.Password)
	opts.SetCleanSession(conf.CleanSession)
	if conf.ClientID == "" {
		id, _ := uuid.NewV4()
		opts.SetClientID("hopperfilter/" + id.String())
	} else {
		opts.SetClientID(conf.ClientID)
	}
	if conf.MaxReconnectInterval <= 0 {
		conf.MaxReconnectInterval = time.Minute
	}
	opts.SetMaxReconnectInterval(conf.MaxReconnectInterval)

	tlsConfig, err := newTLSConfig(conf.CAFile, conf.CertFile, conf.CertKeyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "load mqtt certificates ca=%s cert=%s key=%s", conf.CAFile, conf.CertFile, conf.CertKeyFile)
	}
	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}
	c := paho.NewClient(opts)
	for {
		token := c.Connect()
		if token.Wait() && token.Error() == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(token.Error(), "connect %s", conf.Server)
		case <-time.After(2 * time.Second):
		}
	}
	return Wrap(c, conf), nil
}

// Wrap uses an existing Paho client.
func Wrap(c paho.Client, conf Config) *Client {
	return &Client{client: c, qos: conf.QOS, retained: conf.Retained}
}

// Publish sends data to topic with the configured qos and retain flag.
func (b *Client) Publish(topic string, data []byte) error {
	if token := b.client.Publish(topic, b.qos, b.retained, data); token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "publish %s", topic)
	}
	return nil
}

func (b *Client) Close() error {
	b.client.Disconnect(500)
	return nil
}

func newTLSConfig(caFile, certFile, certKeyFile string) (*tls.Config, error) {
	if caFile == "" && certFile == "" && certKeyFile == "" {
		return nil, nil
	}
	tlsConfig := &tls.Config{}
	if caFile != "" {
		caCert, err := os.ReadFile(caFile)
		if err != nil {
			return nil, err
		}
		certPool := x509.NewCertPool()
		certPool.AppendCertsFromPEM(caCert)
		tlsConfig.RootCAs = certPool
	}
	if certFile != "" && certKeyFile != "" {
		kp, err := tls.LoadX509KeyPair(certFile, certKeyFile)
		if err != nil {
			return nil, err
		}
		tlsConfig.Certificates = []tls.Certificate{kp}
	}
	return tlsConfig, nil
}
