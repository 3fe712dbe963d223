package server

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	ehc "envelope_heat_calc/envelope_heat_calc"
)

// websocket でやりとりするメッセージ
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 主時間ステップごとの計算結果
type StepData struct {
	Step               int                `json:"step"`
	DryBulbTemperature float64            `json:"t_o"`
	Zones              []ehc.ZoneSnapshot `json:"zones"`
}

type reply struct {
	conn *websocket.Conn
	msg  Msg
}

// 接続中のクライアントを管理し、ステップごとの計算結果を配信する。
// 接続への書き込みは Run を実行する goroutine のみが行う。
type Hub struct {
	clients map[*websocket.Conn]bool

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan Msg
	reply      chan reply
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan Msg, 64),
		reply:      make(chan reply, 10),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			return
		case conn := <-h.register:
			h.clients[conn] = true
			log.WithField("clients", len(h.clients)).Debug("client connected")
		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
		case r := <-h.reply:
			if h.clients[r.conn] {
				h.write(r.conn, r.msg)
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				h.write(conn, msg)
			}
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, msg Msg) {
	if err := conn.WriteJSON(&msg); err != nil {
		log.Println("err: ", err)
		delete(h.clients, conn)
		conn.Close()
	}
}

// Run が終了している場合は false を返す。
func (h *Hub) send(ch chan *websocket.Conn, conn *websocket.Conn) bool {
	select {
	case ch <- conn:
		return true
	case <-h.done:
		return false
	}
}

// クライアントからのメッセージを処理する。
func (h *Hub) handleRequest(conn *websocket.Conn, msg Msg) {
	switch msg.Type {
	case "ping":
		select {
		case h.reply <- reply{conn: conn, msg: Msg{Type: "pong"}}:
		case <-h.done:
		}
	default:
		log.WithField("type", msg.Type).Warn("no such type")
	}
}

// ステップの計算結果を配信する。配信待ちが満杯の場合は破棄する。
func (h *Hub) Observe(n int, w ehc.CurrentWeather, zones []ehc.ZoneSnapshot) {
	data, err := json.Marshal(StepData{
		Step:               n,
		DryBulbTemperature: w.DryBulbTemperature,
		Zones:              zones,
	})
	if err != nil {
		log.Println("err: ", err)
		return
	}
	select {
	case h.broadcast <- Msg{Type: "step", Content: string(data)}:
	default:
		log.WithField("step", n).Debug("broadcast queue full, step dropped")
	}
}
