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

// Package endpoint serves the host bridge and the query API on one HTTP
// server.
//
//   - GET  /api/v1/events           websocket bridge (endpoint/websocket)
//   - POST /api/v1/filter/evaluate  evaluate a label against items (endpoint/rest)
//   - GET  /api/v1/filter/parse     normalize a label
//   - GET  /api/v1/sessions         open sessions of every host
//
// Committed labels can also be published over MQTT (endpoint/mqtt).
package endpoint

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/filter"
	"github.com/rulego/hopperfilter/endpoint/rest"
	"github.com/rulego/hopperfilter/endpoint/websocket"
)

const EventsPath = "/api/v1/events"

// Config 服务配置
type Config struct {
	// Server is the listen address, e.g. ":9090".
	Server      string
	CertFile    string
	CertKeyFile string
}

// Server is the bridge and query API server.
type Server struct {
	Config Config
	Bridge *websocket.Bridge
	API    *rest.API
	Logger types.Logger

	gcSpec   string
	router   *httprouter.Router
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// New creates a server for provider. Every host connection gets an engine
// built from config.
func New(conf Config, provider types.AttributeProvider, config types.Config) *Server {
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	bridge := websocket.NewBridge(provider, config)
	api := &rest.API{
		Provider: provider,
		Compiler: filter.NewCompiler(config.FilterCacheTTL),
		Sessions: bridge,
		Logger:   config.Logger,
	}
	s := &Server{Config: conf, Bridge: bridge, API: api, Logger: config.Logger, gcSpec: config.FilterCacheGC, router: httprouter.New()}
	s.router.GET(EventsPath, bridge.Handle)
	api.Register(s.router)
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, e interface{}) {
		s.Logger.Printf("%s %s handler err :%v", r.Method, r.URL.Path, e)
		w.WriteHeader(http.StatusInternalServerError)
	}
	return s
}

func (s *Server) Router() *httprouter.Router {
	return s.router
}

// Start listens and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}
	addr := s.Config.Server
	isTls := s.Config.CertKeyFile != "" && s.Config.CertFile != ""
	if addr == "" {
		addr = ":http"
		if isTls {
			addr = ":https"
		}
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	s.listener = ln
	s.server = &http.Server{Addr: addr, Handler: s.router}
	server := s.server
	if err := s.API.Compiler.StartGC(s.gcSpec); err != nil {
		s.Logger.Printf("filter cache gc not started: %v", err)
	}

	go func() {
		var err error
		if isTls {
			s.Logger.Printf("started server with TLS on %s", ln.Addr())
			err = server.ServeTLS(ln, s.Config.CertFile, s.Config.CertKeyFile)
		} else {
			s.Logger.Printf("started server on %s", ln.Addr())
			err = server.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Printf("server stopped: %v", err)
		}
	}()
	return nil
}

// Addr returns the listen address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop disconnects hosts and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	s.API.Compiler.Stop()
	err := server.Shutdown(ctx)
	s.Bridge.Close()
	return err
}
