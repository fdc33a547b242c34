package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/zparse/zparse/limits"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) string {
	t.Helper()
	d, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(d))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(out)
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "ok", gjson.GetBytes(body, "status").String())
}

func TestFormats(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/formats")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var names []string
	require.NoError(t, json.Unmarshal(body, &names))
	require.Equal(t, []string{"json", "toml", "yaml", "xml"}, names)
}

func TestParseEndpoint(t *testing.T) {
	ts := testServer(t)
	body := postJSON(t, ts.URL+"/api/parse", map[string]string{
		"content": "a = 1\nb = [1,2,3]\n",
		"format":  "toml",
	})
	require.Equal(t, "ok", gjson.Get(body, "status").String())
	require.Equal(t, int64(1), gjson.Get(body, "data.a").Int())
	require.Equal(t, int64(3), gjson.Get(body, "data.b.2").Int())
}

func TestParseEndpointError(t *testing.T) {
	ts := testServer(t)
	body := postJSON(t, ts.URL+"/api/parse", map[string]string{
		"content": `{"a": }`,
		"format":  "json",
	})
	require.Equal(t, "error", gjson.Get(body, "status").String())
	require.Contains(t, gjson.Get(body, "error").String(), "syntax error")
	require.False(t, gjson.Get(body, "data").Exists())
}

func TestConvertEndpoint(t *testing.T) {
	ts := testServer(t)
	body := postJSON(t, ts.URL+"/api/convert", map[string]string{
		"content": `{"name":"zparse"}`,
		"from":    "json",
		"to":      "toml",
	})
	require.Equal(t, "ok", gjson.Get(body, "status").String())
	require.Equal(t, "name = \"zparse\"\n", gjson.Get(body, "content").String())
}

func TestConvertEndpointError(t *testing.T) {
	ts := testServer(t)
	body := postJSON(t, ts.URL+"/api/convert", map[string]string{
		"content": `[1, 2]`,
		"from":    "json",
		"to":      "toml",
	})
	require.Equal(t, "error", gjson.Get(body, "status").String())
	require.Contains(t, gjson.Get(body, "content").String(), "conversion error")
}

func TestConvertEndpointLimits(t *testing.T) {
	srv := New(&Spec{Limits: &limits.Config{MaxSize: 4}})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	body := postJSON(t, ts.URL+"/api/convert", map[string]string{
		"content": `{"a": 1}`,
		"from":    "json",
		"to":      "yaml",
	})
	require.Equal(t, "error", gjson.Get(body, "status").String())
	require.Contains(t, gjson.Get(body, "content").String(), "size")
}

func TestCORSPreflight(t *testing.T) {
	ts := testServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/parse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGzipRequestBody(t *testing.T) {
	ts := testServer(t)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"content":"{\"a\":1}","format":"json"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/parse", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "ok", gjson.GetBytes(body, "status").String())
	require.Equal(t, int64(1), gjson.GetBytes(body, "data.a").Int())
}

func TestBadRequestBody(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Post(ts.URL+"/api/parse", "application/json",
		bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "error", gjson.GetBytes(body, "status").String())
}
