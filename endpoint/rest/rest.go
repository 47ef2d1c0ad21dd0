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

// Package rest serves the query API: evaluating labels against items,
// normalizing labels and listing open sessions.
package rest

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/filter"
	"github.com/rulego/hopperfilter/components/session"
	"github.com/rulego/hopperfilter/utils/json"
)

const (
	ContentTypeKey  = "Content-Type"
	JsonContextType = "application/json"
	// DefaultMaxBodySize bounds an evaluate request body.
	DefaultMaxBodySize = 1 << 20
)

// SessionSource lists open sessions.
type SessionSource interface {
	Sessions() []session.Session
}

// API is the query API.
type API struct {
	Provider types.AttributeProvider
	Compiler *filter.Compiler
	// Sessions may be nil, the sessions route then answers an empty list.
	Sessions SessionSource
	Logger   types.Logger
	// MaxBodySize defaults to DefaultMaxBodySize.
	MaxBodySize int64
}

// EvaluateRequest asks whether a holder labeled Label accepts each item.
type EvaluateRequest struct {
	Label string            `json:"label"`
	Items []types.ItemStack `json:"items"`
}

type EvaluateResponse struct {
	// Label is the normalized label.
	Label   string `json:"label"`
	Allowed []bool `json:"allowed"`
}

// ParseResponse is the structure of a label: alternatives of conjunctions
// of disjunctions of atoms.
type ParseResponse struct {
	Label        string       `json:"label"`
	Unrestricted bool         `json:"unrestricted"`
	Alternatives [][][]string `json:"alternatives"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register adds the API routes to router.
func (a *API) Register(router *httprouter.Router) {
	router.POST("/api/v1/filter/evaluate", a.evaluate)
	router.GET("/api/v1/filter/parse", a.parse)
	router.GET("/api/v1/sessions", a.sessions)
}

func (a *API) evaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := a.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		a.fail(w, status, errors.Wrap(err, "read body"))
		return
	}
	var req EvaluateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.fail(w, http.StatusBadRequest, errors.Wrap(err, "decode request"))
		return
	}
	expr := a.Compiler.Compile(req.Label)
	resp := EvaluateResponse{Label: expr.String(), Allowed: make([]bool, len(req.Items))}
	for i, item := range req.Items {
		resp.Allowed[i] = expr.Evaluate(a.Provider, item)
	}
	a.write(w, http.StatusOK, resp)
}

func (a *API) parse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	expr := a.Compiler.Compile(r.URL.Query().Get("label"))
	resp := ParseResponse{Label: expr.String(), Unrestricted: expr.Unrestricted, Alternatives: [][][]string{}}
	for _, conj := range expr.Alternatives {
		c := make([][]string, 0, len(conj))
		for _, disj := range conj {
			d := make([]string, 0, len(disj))
			for _, atom := range disj {
				d = append(d, atom.String())
			}
			c = append(c, d)
		}
		resp.Alternatives = append(resp.Alternatives, c)
	}
	a.write(w, http.StatusOK, resp)
}

func (a *API) sessions(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	list := []session.Session{}
	if a.Sessions != nil {
		list = append(list, a.Sessions.Sessions()...)
	}
	a.write(w, http.StatusOK, list)
}

func (a *API) fail(w http.ResponseWriter, status int, err error) {
	if a.Logger != nil {
		a.Logger.Printf("rest: %v", err)
	}
	a.write(w, status, errorResponse{Error: err.Error()})
}

func (a *API) write(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"encode response"}`)
	}
	w.Header().Set(ContentTypeKey, JsonContextType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
