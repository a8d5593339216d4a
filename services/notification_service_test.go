package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestClient(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("连接推送服务失败: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, svc *NotificationService, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for svc.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("等待 %d 个在线客户端超时，当前 %d", want, svc.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readPushMessage(t *testing.T, conn *websocket.Conn) PushMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("读取推送帧失败: %v", err)
	}

	var msg PushMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatalf("解析推送帧失败: %v", err)
	}
	return msg
}

func TestBroadcastFanout(t *testing.T) {
	svc := NewNotificationService()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc.HandleConnection(w, r)
	}))
	defer server.Close()

	first := dialTestClient(t, server)
	second := dialTestClient(t, server)
	waitForClients(t, svc, 2)

	svc.Broadcast("newUser", map[string]string{"email": "alice@example.com"})

	// 所有在线客户端都应收到同一事件
	for _, conn := range []*websocket.Conn{first, second} {
		msg := readPushMessage(t, conn)
		if msg.Event != "newUser" {
			t.Fatalf("事件名不符: %q", msg.Event)
		}
		data := msg.Data.(map[string]interface{})
		if data["email"] != "alice@example.com" {
			t.Fatalf("事件负载不符: %+v", msg.Data)
		}
	}
}

func TestBroadcastAfterDisconnect(t *testing.T) {
	svc := NewNotificationService()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc.HandleConnection(w, r)
	}))
	defer server.Close()

	first := dialTestClient(t, server)
	second := dialTestClient(t, server)
	waitForClients(t, svc, 2)

	// 断开一个客户端后广播仍应送达其余客户端
	first.Close()
	waitForClients(t, svc, 1)

	svc.Broadcast("deleteUser", "alice@example.com")

	msg := readPushMessage(t, second)
	if msg.Event != "deleteUser" || msg.Data != "alice@example.com" {
		t.Fatalf("事件不符: %+v", msg)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	svc := NewNotificationService()

	// 没有监听者时广播是空操作，不应阻塞或出错
	svc.Broadcast("newUser", map[string]string{"email": "alice@example.com"})

	if svc.ClientCount() != 0 {
		t.Fatalf("期望0个客户端，实际 %d", svc.ClientCount())
	}
}
