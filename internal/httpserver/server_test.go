package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nicolekc/super-bowl-squares/internal/httpserver"
	"github.com/nicolekc/super-bowl-squares/internal/store"
)

const poolText = `Office Pool $20 10x10
Chiefs vs Eagles
Chiefs 4, Eagles 7
`

// newTestServer builds a server without a database; only the
// session-backed pool routes are exercised here.
func newTestServer() *httptest.Server {
	srv := httpserver.New(store.NewMemoryStore(), nil)
	return httptest.NewServer(srv.Router())
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestOpenAndCheckPool(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res := postJSON(t, ts.URL+"/pools/open", map[string]string{"text": poolText})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("open status = %d, want 200", res.StatusCode)
	}
	opened := decode[struct {
		PoolID string `json:"poolId"`
		Boards int    `json:"boards"`
	}](t, res)
	if opened.PoolID == "" || opened.Boards != 1 {
		t.Fatalf("open response = %+v", opened)
	}

	res = postJSON(t, ts.URL+"/pools/"+opened.PoolID+"/check", map[string]any{
		"quarter": 0,
		"score":   map[string]int{"top": 14, "left": 7},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("check status = %d, want 200", res.StatusCode)
	}
	checked := decode[struct {
		Results []struct {
			Name    string `json:"name"`
			Mode    string `json:"mode"`
			Squares []struct {
				IsWinner bool `json:"isWinner"`
			} `json:"squares"`
		} `json:"results"`
	}](t, res)
	if len(checked.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(checked.Results))
	}
	r := checked.Results[0]
	if r.Mode != "mySquares" || r.Name != "Office Pool" {
		t.Errorf("result header = %+v", r)
	}
	if len(r.Squares) != 1 || !r.Squares[0].IsWinner {
		t.Errorf("square 4/7 at 14-7 must win: %+v", r.Squares)
	}
}

func TestGetPoolReturnsSourceText(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res := postJSON(t, ts.URL+"/pools/open", map[string]string{"text": poolText})
	opened := decode[struct {
		PoolID string `json:"poolId"`
	}](t, res)

	got, err := http.Get(ts.URL + "/pools/" + opened.PoolID)
	if err != nil {
		t.Fatalf("GET pool failed: %v", err)
	}
	pool := decode[struct {
		Text   string            `json:"text"`
		Boards []json.RawMessage `json:"boards"`
	}](t, got)
	if pool.Text != poolText {
		t.Errorf("pool text = %q, want the original blob", pool.Text)
	}
	if len(pool.Boards) != 1 {
		t.Errorf("got %d boards, want 1", len(pool.Boards))
	}
}

func TestRenderRoundTrip(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res := postJSON(t, ts.URL+"/pools/parse", map[string]string{"text": poolText})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("parse status = %d, want 200", res.StatusCode)
	}
	parsed := decode[struct {
		Boards json.RawMessage `json:"boards"`
	}](t, res)

	res = postJSON(t, ts.URL+"/pools/render", map[string]json.RawMessage{"boards": parsed.Boards})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", res.StatusCode)
	}
	rendered := decode[struct {
		Text string `json:"text"`
	}](t, res)
	if !strings.Contains(rendered.Text, "Chiefs 4, Eagles 7") {
		t.Errorf("rendered text lost the square line:\n%s", rendered.Text)
	}
}

// A JSON body can describe a full board with no quarter assignments;
// that must come back as a 422, not a recovered panic.
func TestRenderRejectsStructurallyInvalidBoards(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	body := `{"boards":[{"config":{"name":"Broken","cols":5,"rows":5,"topTeam":"A","leftTeam":"B"},"fullBoard":{"quarters":[],"grid":[]}}]}`
	res := postJSON(t, ts.URL+"/pools/render", json.RawMessage(body))
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", res.StatusCode)
	}
}

func TestOpenRejectsBadText(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res := postJSON(t, ts.URL+"/pools/open", map[string]string{"text": "no teams line here"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", res.StatusCode)
	}
}

func TestCheckRejectsBadQuarter(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res := postJSON(t, ts.URL+"/pools/open", map[string]string{"text": poolText})
	opened := decode[struct {
		PoolID string `json:"poolId"`
	}](t, res)

	res = postJSON(t, ts.URL+"/pools/"+opened.PoolID+"/check", map[string]any{"quarter": 4})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestCheckUnknownPool(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res := postJSON(t, ts.URL+"/pools/nope/check", map[string]any{"quarter": 0})
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.StatusCode)
	}
}

func TestSample(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()
	res, err := http.Get(ts.URL + "/sample")
	if err != nil {
		t.Fatalf("GET /sample failed: %v", err)
	}
	sample := decode[struct {
		Text string `json:"text"`
	}](t, res)
	if sample.Text == "" {
		t.Fatal("sample text is empty")
	}
	open := postJSON(t, ts.URL+"/pools/open", map[string]string{"text": sample.Text})
	defer open.Body.Close()
	if open.StatusCode != http.StatusOK {
		t.Errorf("the sample pool must open cleanly, status = %d", open.StatusCode)
	}
}
