package binder

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixiv/go-libjpeg/jpeg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurkotwal/bindchain/binder/chain"
	"github.com/ankurkotwal/bindchain/binder/common"
	"github.com/ankurkotwal/bindchain/binder/starcitizen"
)

func testConfig() *common.Config {
	return &common.Config{
		AppName:            "BindChain",
		Version:            "test",
		Port:               "9090",
		GameDataFile:       "../testdata/gamedata.yaml",
		DefaultProfileFile: "../testdata/defaultProfile.xml",
		LocalizationFile:   "../testdata/global.ini",
		TestDataDir:        "../testdata",
		Card: common.CardConfig{
			Width:            600,
			RowHeight:        28,
			HeaderHeight:     50,
			Inset:            8,
			FontSize:         18,
			MinFontSize:      8,
			JpgQuality:       75,
			BackgroundColour: "#1B1F24",
			LightColour:      "#F2F2F2",
			DarkColour:       "#101214",
			AlternateColours: []string{"#3D6CB9", "#00A878"},
		},
	}
}

func newTestServer(t *testing.T, debugMode bool) *gin.Engine {
	t.Helper()
	router, addr, err := GetServer(testConfig(), debugMode)
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, url string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, filename := range fields {
		contents, err := os.ReadFile(filename)
		require.NoError(t, err)
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(contents)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req, err := http.NewRequest(http.MethodPost, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeResolve(t *testing.T, w *httptest.ResponseRecorder) ResolveResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var response ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func sampleUpload(t *testing.T, url string) *http.Request {
	return uploadRequest(t, url, map[string]string{
		FieldRewasd:     "../testdata/sample.rewasd",
		FieldActionMaps: "../testdata/sample-actionmaps.xml",
	})
}

func TestResolveUpload(t *testing.T) {
	router := newTestServer(t, false)
	response := decodeResolve(t, serve(router, sampleUpload(t, "/api/resolve")))

	require.Len(t, response.Mappings, 7)
	for idx, m := range response.Mappings {
		assert.Equal(t, idx+1, m.ID)
	}
	assert.Equal(t, []string{"Unknown mask ID: 42", "Could not parse input: joy1_button3"}, response.Errors)
	assert.Equal(t, 4, response.Stats.ResolvedChains)
	assert.NotEmpty(t, response.Log)
}

func TestResolveIDsPerRequest(t *testing.T) {
	router := newTestServer(t, false)
	first := decodeResolve(t, serve(router, sampleUpload(t, "/api/resolve")))
	second := decodeResolve(t, serve(router, sampleUpload(t, "/api/resolve")))
	assert.Equal(t, first.Mappings[0].ID, second.Mappings[0].ID)
}

func TestResolveFilters(t *testing.T) {
	router := newTestServer(t, false)
	response := decodeResolve(t, serve(router,
		sampleUpload(t, "/api/resolve?mode=general&modifier=LB")))
	require.Len(t, response.Mappings, 2)
	for _, m := range response.Mappings {
		assert.Equal(t, "LB", m.Modifier)
	}
	// Stats describe the whole resolution, not the filtered view
	assert.Equal(t, 7, response.Stats.ResolvedChains+response.Stats.Unresolved+
		response.Stats.DirectBindings)

	response = decodeResolve(t, serve(router,
		sampleUpload(t, "/api/resolve?source=direct-game-binding")))
	assert.Len(t, response.Mappings, 2)

	w := serve(router, sampleUpload(t, "/api/resolve?mode=racing"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = serve(router, sampleUpload(t, "/api/resolve?source=xml"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveBindingsOnly(t *testing.T) {
	router := newTestServer(t, false)
	response := decodeResolve(t, serve(router, uploadRequest(t, "/api/resolve", map[string]string{
		FieldActionMaps: "../testdata/sample-actionmaps.xml",
	})))
	require.Len(t, response.Mappings, 2)
	for _, m := range response.Mappings {
		assert.Equal(t, chain.SourceDirect, m.Source)
	}
}

func TestResolveNoFiles(t *testing.T) {
	router := newTestServer(t, false)
	w := serve(router, uploadRequest(t, "/api/resolve", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errNoInput.Error())

	req, err := http.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader("plain"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
}

func TestCardUpload(t *testing.T) {
	router := newTestServer(t, false)
	w := serve(router, sampleUpload(t, "/api/card?title=Mine"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	img, err := jpeg.Decode(bytes.NewReader(w.Body.Bytes()), &jpeg.DecoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
}

func getDefaults(t *testing.T, router *gin.Engine, url string) DefaultsResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	w := serve(router, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var response DefaultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestDefaults(t *testing.T) {
	router := newTestServer(t, false)

	response := getDefaults(t, router, "/api/defaults")
	assert.Equal(t, []string{"seat_general", "spaceship_movement"}, response.ActionMaps)
	require.Len(t, response.Actions, 3)
	assert.Equal(t, "Emergency Exit Seat", response.Actions[0].Label)

	response = getDefaults(t, router, "/api/defaults?state=bound&device=gamepad")
	require.Len(t, response.Actions, 1)
	assert.Equal(t, "v_roll_left", response.Actions[0].Action)

	response = getDefaults(t, router, "/api/defaults?map=seat_general&q=eject")
	require.Len(t, response.Actions, 1)
	assert.Equal(t, "v_eject", response.Actions[0].Action)

	for _, url := range []string{"/api/defaults?state=maybe", "/api/defaults?device=wheel"} {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, serve(router, req).Code, url)
	}
}

func TestDefaultsNotConfigured(t *testing.T) {
	config := testConfig()
	config.DefaultProfileFile = ""
	router, _, err := GetServer(config, false)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodGet, "/api/defaults", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, serve(router, req).Code)
}

func TestGetServerBadFiles(t *testing.T) {
	config := testConfig()
	config.DefaultProfileFile = "../testdata/missing.xml"
	_, _, err := GetServer(config, false)
	assert.Error(t, err)

	config = testConfig()
	config.GameDataFile = "../testdata/missing.yaml"
	_, _, err = GetServer(config, false)
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	router := newTestServer(t, false)
	serve(router, sampleUpload(t, "/api/resolve"))

	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	w := serve(router, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `bindchain_mappings_total{source="chain-resolved"} 4`)
	assert.Contains(t, body, "bindchain_parse_errors_total 2")
	assert.Contains(t, body, `bindchain_requests_total{code="200",route="/api/resolve"} 1`)
	assert.Contains(t, body, "bindchain_resolve_duration_seconds_count 1")
}

func TestDebugRoutes(t *testing.T) {
	release := newTestServer(t, false)
	req, err := http.NewRequest(http.MethodGet, "/test/resolve", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, serve(release, req).Code)

	router := newTestServer(t, true)
	response := decodeResolve(t, serve(router, req))
	assert.Len(t, response.Mappings, 7)

	req, err = http.NewRequest(http.MethodGet, "/test/card", nil)
	require.NoError(t, err)
	w := serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}

func TestConcurrentRequests(t *testing.T) {
	router := newTestServer(t, true)
	const n = 10
	var wg sync.WaitGroup
	codes := make([]int, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			req, _ := http.NewRequest(http.MethodGet, "/test/resolve", nil)
			codes[i] = serve(router, req).Code
		}(i)
	}
	wg.Wait()
	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestResolveOnlyErrors(t *testing.T) {
	router := newTestServer(t, false)
	broken := filepath.Join(t.TempDir(), "actionmaps.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<ActionMaps><broken></ActionMaps>"), 0o600))

	w := serve(router, uploadRequest(t, "/api/resolve", map[string]string{FieldActionMaps: broken}))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var response ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Mappings)
	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], "Game bindings")

	w = serve(router, uploadRequest(t, "/api/card", map[string]string{FieldActionMaps: broken}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDefaultMapAndAction(t *testing.T) {
	router := newTestServer(t, false)

	response := getDefaults(t, router, "/api/defaults/maps/seat_general")
	assert.Equal(t, []string{"seat_general"}, response.ActionMaps)
	require.Len(t, response.Actions, 2)
	assert.Equal(t, "v_emergency_exit", response.Actions[0].Action)

	req, err := http.NewRequest(http.MethodGet, "/api/actions/v_eject", nil)
	require.NoError(t, err)
	w := serve(router, req)
	require.Equal(t, http.StatusOK, w.Code)
	var action starcitizen.DefaultAction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &action))
	assert.Equal(t, "Eject", action.Label)
	assert.Equal(t, "seat_general", action.ActionMap)

	for _, url := range []string{"/api/defaults/maps/nowhere", "/api/actions/v_nothing"} {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, serve(router, req).Code, url)
	}
}
