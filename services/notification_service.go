package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mojay6111/football-signup/config"
)

// PushMessage 推送给管理端的事件帧
type PushMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// InterfaceNotificationService 定义推送服务接口
type InterfaceNotificationService interface {
	Broadcast(event string, payload interface{})
	HandleConnection(w http.ResponseWriter, r *http.Request) error
	ClientCount() int
}

// NotificationService 管理端实时推送的 WebSocket 扇出。
// 广播在调用点同步写出到所有在线连接：不做重放、不做确认，
// 迟到的客户端只能看到之后的变更。
type NotificationService struct {
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool
	mu       sync.Mutex
}

// NewNotificationService 创建一个新的推送服务
func NewNotificationService() *NotificationService {
	return &NotificationService{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 管理面板与服务同源部署，跨域校验交给路由层的CORS中间件
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleConnection 将HTTP请求升级为WebSocket连接并登记为推送客户端
func (s *NotificationService) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.clients[conn] = true
	count := len(s.clients)
	s.mu.Unlock()

	config.Info("推送客户端已连接: %s (在线 %d)", conn.RemoteAddr(), count)

	// 读循环只用于探测断开，客户端不向服务端发送业务消息
	go s.readLoop(conn)
	return nil
}

func (s *NotificationService) readLoop(conn *websocket.Conn) {
	defer s.removeClient(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *NotificationService) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	count := len(s.clients)
	s.mu.Unlock()

	conn.Close()
	config.Info("推送客户端已断开: %s (在线 %d)", conn.RemoteAddr(), count)
}

// Broadcast 向所有在线客户端广播一个事件。
// 尽力而为：写失败的连接直接移除，不重试、不保证送达。
func (s *NotificationService) Broadcast(event string, payload interface{}) {
	frame, err := json.Marshal(PushMessage{Event: event, Data: payload})
	if err != nil {
		config.Error("序列化推送事件 %s 失败: %v", event, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			config.Warning("推送事件 %s 到 %s 失败: %v", event, conn.RemoteAddr(), err)
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount 当前在线的推送客户端数
func (s *NotificationService) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
