package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffboard/internal/model"
	"staffboard/internal/store"
)

// testStore creates a store over an in-memory SQLite database.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Worker{},
		&model.Area{},
		&model.Assignment{},
		&model.Team{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return store.New(db)
}

// dialHub starts a hub behind a test server and connects one observer.
func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		h.Serve(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type stateEvent struct {
	Type        string             `json:"type"`
	Workers     []model.Worker     `json:"workers"`
	Areas       []model.Area       `json:"areas"`
	Assignments []model.Assignment `json:"assignments"`
	Teams       []model.Team       `json:"teams"`
}

func readEvent(t *testing.T, conn *websocket.Conn) stateEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var event stateEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return event
}

func TestInitialSnapshotOnConnect(t *testing.T) {
	st := testStore(t)
	st.CreateArea("Gate", 5)
	st.CreateWorker("Alice", "ch1")

	h := New(st, zap.NewNop())
	go h.Run()

	conn := dialHub(t, h)
	event := readEvent(t, conn)

	if event.Type != "state" {
		t.Errorf("expected event type state, got %q", event.Type)
	}
	if len(event.Workers) != 1 || len(event.Areas) != 1 || len(event.Assignments) != 1 {
		t.Errorf("initial snapshot incomplete: %d workers, %d areas, %d assignments",
			len(event.Workers), len(event.Areas), len(event.Assignments))
	}
}

func TestSnapshotFreshnessAfterMutation(t *testing.T) {
	st := testStore(t)
	area, _ := st.CreateArea("Gate", 5)
	worker, _ := st.CreateWorker("Alice", "ch1")

	h := New(st, zap.NewNop())
	go h.Run()

	conn := dialHub(t, h)
	readEvent(t, conn) // initial snapshot

	if err := st.Assign(worker.ID, &area.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	h.BroadcastState()

	event := readEvent(t, conn)
	if event.Type != "state" {
		t.Errorf("expected event type state, got %q", event.Type)
	}
	if len(event.Assignments) != 1 {
		t.Fatalf("expected 1 assignment in snapshot, got %d", len(event.Assignments))
	}
	got := event.Assignments[0]
	if got.WorkerID != worker.ID || got.AreaID == nil || *got.AreaID != area.ID {
		t.Errorf("snapshot does not reflect the committed mutation: %+v", got)
	}

	// Exactly one event per mutation: nothing else should arrive.
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("received an unexpected extra event")
	}
}

func TestBroadcastReachesAllObservers(t *testing.T) {
	st := testStore(t)
	st.CreateWorker("Alice", "")

	h := New(st, zap.NewNop())
	go h.Run()

	first := dialHub(t, h)
	second := dialHub(t, h)
	readEvent(t, first)
	readEvent(t, second)

	st.CreateWorker("Bob", "")
	h.BroadcastState()

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		if len(event.Workers) != 2 {
			t.Errorf("expected each observer to see 2 workers, got %d", len(event.Workers))
		}
	}
}
