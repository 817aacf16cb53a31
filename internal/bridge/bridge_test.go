package bridge

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
	"github.com/ssafuel/station-gateway/internal/services"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.BowserEntity{},
		&repository.StationaryEntity{},
		&repository.TankEntity{},
		&repository.AssetBarcodeEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	v := reflect.ValueOf(pgDB).Elem()
	for _, field := range []string{"read", "write"} {
		f := v.FieldByName(field)
		f = reflect.NewAt(f.Type(), f.Addr().UnsafePointer()).Elem()
		f.Set(reflect.ValueOf(db))
	}
	return pgDB
}

// newTestBridge wires a bridge whose relay targets srvURL and whose
// publisher records into the returned fakeConn. The mqtt client is nil; the
// broker-facing Start/Subscribe paths are not under test here.
func newTestBridge(t *testing.T, srvURL string) (*Bridge, *fakeConn, *pg.DB) {
	db := setupTestDB(t)
	devices := repository.NewDeviceRepository(db)
	assets := repository.NewAssetRepository(db)

	conn := &fakeConn{}
	b := New(
		Config{
			TransactTopic: "SSA/DISPENSER/TRANSACT",
			AssetReqTopic: "SSA/REQUEST/ASSET",
			InfoReqTopic:  "SSA/DEVICEINFO/INFOREQ",
			Workers:       4,
			QueueDepth:    64,
		},
		nil,
		services.NewResolverService(devices),
		services.NewAssetService(assets),
		NewRelay(srvURL, "k", time.Second),
		NewPublisher(conn, "SSA"),
	)
	return b, conn, db
}

func TestBridge_HandleTransact(t *testing.T) {
	var mu sync.Mutex
	received := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var head struct {
			DeviceID string `json:"devID"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &head)
		mu.Lock()
		received[head.DeviceID] = string(body)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b, conn, _ := newTestBridge(t, srv.URL)

	t.Run("valid frame relays and acks 100", func(t *testing.T) {
		b.handleTransact([]byte(`{"devID":"D1","bowser":{"trnsid":"TX100","trnvol":10.5}}`))

		msg := conn.last(t)
		assert.Equal(t, "SSA/D1/RESPONSE", msg.topic)

		var ack struct {
			Trnrsp struct {
				Status int `json:"status"`
			} `json:"trnrsp"`
		}
		require.NoError(t, json.Unmarshal(msg.payload, &ack))
		assert.Equal(t, model.FlagActive, ack.Trnrsp.Status)

		mu.Lock()
		defer mu.Unlock()
		assert.Contains(t, received["D1"], `"trnsid":"TX100"`)
	})

	t.Run("invalid json dropped without ack", func(t *testing.T) {
		before := conn.count()
		b.handleTransact([]byte(`{not json`))
		assert.Equal(t, before, conn.count())
	})

	t.Run("missing devID dropped without ack", func(t *testing.T) {
		before := conn.count()
		b.handleTransact([]byte(`{"bowser":{}}`))
		assert.Equal(t, before, conn.count())
	})
}

func TestBridge_HandleTransact_RejectedIngest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	b, conn, _ := newTestBridge(t, srv.URL)
	b.handleTransact([]byte(`{"devID":"D1"}`))

	var ack struct {
		Trnrsp struct {
			Status int `json:"status"`
		} `json:"trnrsp"`
	}
	require.NoError(t, json.Unmarshal(conn.last(t).payload, &ack))
	assert.Equal(t, model.FlagInactive, ack.Trnrsp.Status)
}

func TestBridge_HandleInfoRequest(t *testing.T) {
	b, conn, db := newTestBridge(t, "http://127.0.0.1:0")
	devices := repository.NewDeviceRepository(db)

	_, err := devices.CreateBowser(t.Context(), &model.Bowser{
		StationID: "ST001", BowserID: "BW01", Name: "b", MqttID: "BWSR123456",
		Status: model.DeviceStatusActive,
	})
	require.NoError(t, err)

	t.Run("known device resolves", func(t *testing.T) {
		b.handleInfoRequest([]byte(`{"devID":"BWSR123456"}`))

		msg := conn.last(t)
		assert.Equal(t, "SSA/BWSR123456/INFORES", msg.topic)

		var frame map[string]string
		require.NoError(t, json.Unmarshal(msg.payload, &frame))
		assert.Equal(t, "ST001", frame["stationid"])
		assert.Equal(t, "BW01", frame["bowser"])
	})

	t.Run("unknown device still answered with empty fields", func(t *testing.T) {
		b.handleInfoRequest([]byte(`{"devID":"UNKNOWN001"}`))

		var frame map[string]string
		require.NoError(t, json.Unmarshal(conn.last(t).payload, &frame))
		assert.Equal(t, "", frame["stationid"])
		assert.Equal(t, "", frame["bowser"])
	})
}

func TestBridge_HandleAssetRequest(t *testing.T) {
	b, conn, db := newTestBridge(t, "http://127.0.0.1:0")
	assets := repository.NewAssetRepository(db)

	_, err := assets.Create(t.Context(), &model.AssetBarcode{
		Model: "DHJLO", Volume: 20, Validity: time.Now().Add(24 * time.Hour), Status: "active",
	})
	require.NoError(t, err)

	t.Run("barnum field", func(t *testing.T) {
		b.handleAssetRequest([]byte(`{"devID":"D1","barreq":{"barnum":"THEDHJLO0003972"}}`))

		var frame struct {
			Barrsp struct {
				Modnum string  `json:"modnum"`
				Valid  int     `json:"valid"`
				Volume float64 `json:"volume"`
			} `json:"barrsp"`
		}
		require.NoError(t, json.Unmarshal(conn.last(t).payload, &frame))
		assert.Equal(t, "DHJLO", frame.Barrsp.Modnum)
		assert.Equal(t, model.FlagActive, frame.Barrsp.Valid)
		assert.Equal(t, 20.0, frame.Barrsp.Volume)
	})

	t.Run("astnum fallback field", func(t *testing.T) {
		b.handleAssetRequest([]byte(`{"devID":"D1","barreq":{"astnum":"THEDHJLO0003972"}}`))

		var frame struct {
			Barrsp struct {
				Valid int `json:"valid"`
			} `json:"barrsp"`
		}
		require.NoError(t, json.Unmarshal(conn.last(t).payload, &frame))
		assert.Equal(t, model.FlagActive, frame.Barrsp.Valid)
	})

	t.Run("no barcode dropped", func(t *testing.T) {
		before := conn.count()
		b.handleAssetRequest([]byte(`{"devID":"D1","barreq":{}}`))
		assert.Equal(t, before, conn.count())
	})
}

// Two frames for two devices processed concurrently must produce two
// independent relays and two independent acks.
func TestBridge_ConcurrentHandlerIsolation(t *testing.T) {
	var mu sync.Mutex
	received := map[string]bool{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var head struct {
			DeviceID string `json:"devID"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &head)
		mu.Lock()
		received[head.DeviceID] = true
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b, conn, _ := newTestBridge(t, srv.URL)

	var wg sync.WaitGroup
	for _, devID := range []string{"D1", "D2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			b.handleTransact([]byte(`{"devID":"` + id + `","bowser":{"trnsid":"TX-` + id + `"}}`))
		}(devID)
	}
	wg.Wait()

	mu.Lock()
	assert.True(t, received["D1"])
	assert.True(t, received["D2"])
	mu.Unlock()

	topics := map[string]bool{}
	conn.mu.Lock()
	for _, m := range conn.messages {
		topics[m.topic] = true
	}
	conn.mu.Unlock()
	assert.True(t, topics["SSA/D1/RESPONSE"])
	assert.True(t, topics["SSA/D2/RESPONSE"])
}

func TestBridge_DispatchDropsFramesDuringShutdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b, _, _ := newTestBridge(t, srv.URL)

	// Saturate the buffer without running workers, then signal shutdown.
	// A late delivery must bounce instead of blocking its paho routine.
	for b.workers.Pending() < int64(b.cfg.QueueDepth) {
		b.workers.Enqueue(job{topic: "t", handler: func() {}})
	}
	close(b.stopping)

	done := make(chan struct{})
	go func() {
		b.dispatch("SSA/DISPENSER/TRANSACT", []byte(`{}`), func([]byte) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch blocked on a full queue after shutdown began")
	}
}
