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

// Package websocket bridges a host plugin to the engine. The host forwards
// world events as JSON frames and applies the replies: the cancelled flag
// of each event and the rename commands of committed labels.
package websocket

import (
	"net/http"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/session"
	"github.com/rulego/hopperfilter/engine"
	"github.com/rulego/hopperfilter/utils/json"
	"github.com/rulego/hopperfilter/utils/maps"
)

var (
	ErrUnknownFrame = errors.New("unknown frame type")
	ErrClosed       = errors.New("connection closed")
)

// Bridge serves host connections. Each connection is one world with its own
// engine and sessions.
type Bridge struct {
	Provider types.AttributeProvider
	// Config is used for the engine of every connection.
	Config   types.Config
	Upgrader websocket.Upgrader
	conns    *xsync.MapOf[string, *Conn]
}

// NewBridge creates a bridge answering with provider.
func NewBridge(provider types.AttributeProvider, config types.Config) *Bridge {
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	return &Bridge{
		Provider: provider,
		Config:   config,
		conns:    xsync.NewMapOf[string, *Conn](),
	}
}

// Conn is a connected host.
type Conn struct {
	ID     string
	Remote string
	World  *World
	Engine *engine.Engine

	logger  types.Logger
	writeMu sync.Mutex
	ws      *websocket.Conn
	closed  bool
}

// Handle upgrades the request and serves the connection until it closes.
func (b *Bridge) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ws, err := b.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.Config.Logger.Printf("upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	c := b.open(ws, r.RemoteAddr)
	defer b.close(c)

	for {
		mt, message, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.Config.Logger.Printf("read %s: %v", c.ID, err)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		reply := c.Dispatch(message)
		if err := c.send(reply); err != nil {
			b.Config.Logger.Printf("write %s: %v", c.ID, err)
			return
		}
	}
}

func (b *Bridge) open(ws *websocket.Conn, remote string) *Conn {
	id, _ := uuid.NewV4()
	c := &Conn{ID: id.String(), Remote: remote, ws: ws, logger: b.Config.Logger}
	c.World = NewWorld(func(rename Reply) {
		if err := c.send(rename); err != nil {
			c.logger.Printf("rename %s on %s: %v", rename.Pos, c.ID, err)
		}
	})
	c.Engine = engine.New(c.World, b.Provider, b.Config)
	b.conns.Store(c.ID, c)
	b.Config.Logger.Printf("host %s connected from %s", c.ID, remote)
	return c
}

func (b *Bridge) close(c *Conn) {
	b.conns.Delete(c.ID)
	c.writeMu.Lock()
	c.closed = true
	_ = c.ws.Close()
	c.writeMu.Unlock()
	c.Engine.Stop()
	b.Config.Logger.Printf("host %s disconnected", c.ID)
}

// Close disconnects every host.
func (b *Bridge) Close() {
	b.conns.Range(func(_ string, c *Conn) bool {
		c.writeMu.Lock()
		_ = c.ws.Close()
		c.writeMu.Unlock()
		return true
	})
}

// Conns returns the connected hosts.
func (b *Bridge) Conns() []*Conn {
	var list []*Conn
	b.conns.Range(func(_ string, c *Conn) bool {
		list = append(list, c)
		return true
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Sessions returns the open sessions of every host.
func (b *Bridge) Sessions() []session.Session {
	var list []session.Session
	for _, c := range b.Conns() {
		list = append(list, c.Engine.Sessions().List()...)
	}
	return list
}

func (c *Conn) send(reply Reply) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return ErrClosed
	}
	body, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, body)
}

// Dispatch handles one raw frame and returns the reply for the host.
func (c *Conn) Dispatch(message []byte) Reply {
	var frame Frame
	if err := json.Unmarshal(message, &frame); err != nil {
		return c.fail("", errors.Wrap(err, "decode frame"))
	}
	cancelled, err := c.handle(frame)
	if err != nil {
		return c.fail(frame.ID, err)
	}
	return Reply{ID: frame.ID, Type: FrameResult, Cancelled: cancelled}
}

func (c *Conn) fail(id string, err error) Reply {
	c.logger.Printf("host %s: %v", c.ID, err)
	return Reply{ID: id, Type: FrameError, Error: err.Error()}
}

func decode(frame Frame, out interface{}) error {
	return errors.Wrapf(maps.Map2Struct(frame.Data, out), "decode %s frame", frame.Type)
}

func (c *Conn) handle(frame Frame) (bool, error) {
	e := c.Engine
	switch frame.Type {
	case FrameMove:
		var f MoveFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		c.World.Apply(f.Blocks)
		event := &types.MoveItemEvent{
			Source:      c.World.inventory(f.Source),
			Destination: c.World.inventory(f.Destination),
			Item:        f.Item,
		}
		e.OnInventoryMoveItem(event)
		return event.Cancelled, nil
	case FramePickup:
		var f PickupFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		c.World.Apply(f.Blocks)
		event := &types.PickupItemEvent{Inventory: c.World.inventory(f.Inventory), Item: f.Item}
		e.OnInventoryPickupItem(event)
		return event.Cancelled, nil
	case FrameInteract:
		var f InteractFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		c.World.Apply(f.Blocks)
		event := &types.InteractEvent{
			User:   types.User(f.User),
			Action: f.Action,
			Block:  f.Block,
		}
		if f.Item != nil {
			event.HeldItem = *f.Item
		}
		e.OnPlayerInteract(event)
		return event.Cancelled, nil
	case FramePlayerMove:
		var f PlayerMoveFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		e.OnPlayerMove(&types.PlayerMoveEvent{UserID: f.UserID, To: f.To})
		return false, nil
	case FrameSneak:
		var f SneakFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		e.OnToggleSneak(&types.ToggleSneakEvent{UserID: f.UserID, Sneaking: f.Sneaking})
		return false, nil
	case FrameChat:
		var f ChatFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		event := &types.ChatEvent{UserID: f.UserID, Message: f.Message}
		e.OnChat(event)
		return event.Cancelled, nil
	case FrameBlocks:
		var f BlocksFrame
		if err := decode(frame, &f); err != nil {
			return false, err
		}
		c.World.Apply(f.Blocks)
		c.World.Remove(f.Removed)
		return false, nil
	default:
		return false, errors.Wrapf(ErrUnknownFrame, "%q", frame.Type)
	}
}
