// Package binder serves resolution of controller remaps to game actions
package binder

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/ankurkotwal/bindchain/binder/card"
	"github.com/ankurkotwal/bindchain/binder/chain"
	"github.com/ankurkotwal/bindchain/binder/classify"
	"github.com/ankurkotwal/bindchain/binder/common"
	"github.com/ankurkotwal/bindchain/binder/starcitizen"
)

// Multipart form fields of the upload endpoints
const (
	FieldRewasd     = "rewasd"
	FieldActionMaps = "actionmaps"
)

// Files read by the debug test routes from the test data directory
const (
	TestRewasdFile     = "sample.rewasd"
	TestActionMapsFile = "sample-actionmaps.xml"
)

var errNoInput = errors.New("no remap config or game bindings supplied")

type server struct {
	config     *common.Config
	gameData   *common.GameData
	classifier *classify.Tables
	defaults   []*starcitizen.DefaultAction
	actions    map[string]*starcitizen.DefaultAction
	metrics    *metrics
}

// GetServer builds the router and returns it with the listen address
func GetServer(config *common.Config, debugMode bool) (*gin.Engine, string, error) {
	log := common.NewDebugLog(config.DebugOutput)
	gameData, err := common.LoadGameData(config.GameDataFile, log)
	if err != nil {
		return nil, "", err
	}
	classifier, err := gameData.Classifier()
	if err != nil {
		return nil, "", err
	}
	defaults, err := LoadDefaults(config, log)
	if err != nil {
		return nil, "", err
	}
	s := &server{
		config:     config,
		gameData:   gameData,
		classifier: classifier,
		defaults:   defaults,
		actions:    starcitizen.DefaultActionLookup(defaults),
		metrics:    newMetrics(),
	}

	if !debugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	if debugMode {
		pprof.Register(router)
	}
	router.Use(s.countRequests)

	router.POST("/api/resolve", func(c *gin.Context) {
		log := common.NewDebugLog(config.DebugOutput)
		s.sendResolution(c, loadFormFiles(c, log), log)
	})
	router.POST("/api/card", func(c *gin.Context) {
		log := common.NewDebugLog(config.DebugOutput)
		s.sendCard(c, loadFormFiles(c, log), log)
	})
	router.GET("/api/defaults", s.sendDefaults)
	router.GET("/api/defaults/maps/:map", s.sendDefaultMap)
	router.GET("/api/actions/:action", s.sendDefaultAction)
	router.GET("/metrics", gin.WrapH(s.metrics.handler()))

	if debugMode {
		router.GET("/test/resolve", func(c *gin.Context) {
			log := common.NewDebugLog(config.DebugOutput)
			s.sendResolution(c, loadLocalFiles(config.TestDataDir, log), log)
		})
		router.GET("/test/card", func(c *gin.Context) {
			log := common.NewDebugLog(config.DebugOutput)
			s.sendCard(c, loadLocalFiles(config.TestDataDir, log), log)
		})
	}

	return router, config.Addr(), nil
}

func (s *server) countRequests(c *gin.Context) {
	c.Next()
	route := c.FullPath()
	if len(route) == 0 {
		route = "unmatched"
	}
	s.metrics.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
}

// inputFiles - raw uploaded documents, either may be empty
type inputFiles struct {
	rewasd     []byte
	actionMaps []byte
}

func (f inputFiles) empty() bool {
	return len(f.rewasd) == 0 && len(f.actionMaps) == 0
}

func loadLocalFiles(dir string, log *common.Logger) inputFiles {
	var files inputFiles
	for name, target := range map[string]*[]byte{
		TestRewasdFile:     &files.rewasd,
		TestActionMapsFile: &files.actionMaps,
	} {
		contents, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Err("Error reading file. %s", err)
			continue
		}
		*target = contents
	}
	return files
}

func loadFormFiles(c *gin.Context, log *common.Logger) inputFiles {
	var files inputFiles
	form, err := c.MultipartForm()
	if err != nil {
		log.Err("Error getting MultipartForm - %s", err)
		return files
	}
	for field, target := range map[string]*[]byte{
		FieldRewasd:     &files.rewasd,
		FieldActionMaps: &files.actionMaps,
	} {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		file := headers[0]
		multipart, err := file.Open()
		if err != nil {
			log.Err("Error opening multipart file %s - %s", file.Filename, err)
			continue
		}
		contents, err := io.ReadAll(multipart)
		multipart.Close()
		if err != nil {
			log.Err("Error reading multipart file %s - %s", file.Filename, err)
			continue
		}
		*target = contents
	}
	return files
}

// parseFilter reads the mapping filter from the query string
func parseFilter(c *gin.Context) (chain.Filter, error) {
	filter := chain.Filter{
		Modifier: chain.ParseModifierFilter(c.Query("modifier")),
		Button:   c.Query("button"),
		Search:   c.Query("q"),
	}
	if mode := c.Query("mode"); len(mode) > 0 {
		parsed, err := classify.ParseMode(mode)
		if err != nil {
			return filter, err
		}
		filter.Mode = parsed
	}
	if source := c.Query("source"); len(source) > 0 {
		parsed, err := chain.ParseSource(source)
		if err != nil {
			return filter, err
		}
		filter.Source = parsed
	}
	return filter, nil
}

// ResolveResponse is the body of the resolve endpoints
type ResolveResponse struct {
	Mappings []*chain.UnifiedMapping `json:"mappings"`
	Errors   []string                `json:"errors"`
	Stats    chain.Stats             `json:"stats"`
	Log      []*common.LogEntry      `json:"log"`
}

// resolve parses and resolves the files with a fresh id sequence per request
func (s *server) resolve(files inputFiles, log *common.Logger) chain.Result {
	start := time.Now()
	result := chain.ParseAndResolve(files.rewasd, files.actionMaps, s.classifier, new(chain.Sequence))
	s.metrics.observeResolution(result, start)
	for _, msg := range result.Errors {
		log.Err("%s", msg)
	}
	log.Msg("Resolved %d mappings (%d chains, %d unresolved, %d direct)",
		len(result.Mappings), result.Stats.ResolvedChains, result.Stats.Unresolved,
		result.Stats.DirectBindings)
	return result
}

func (s *server) sendResolution(c *gin.Context, files inputFiles, log *common.Logger) {
	filter, err := parseFilter(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, err, log)
		return
	}
	if files.empty() {
		sendError(c, http.StatusBadRequest, errNoInput, log)
		return
	}
	result := s.resolve(files, log)
	c.JSON(resolutionStatus(result, log), ResolveResponse{
		Mappings: chain.Query(result.Mappings, filter),
		Errors:   result.Errors,
		Stats:    result.Stats,
		Log:      log.Entries,
	})
}

func (s *server) sendCard(c *gin.Context, files inputFiles, log *common.Logger) {
	filter, err := parseFilter(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, err, log)
		return
	}
	if files.empty() {
		sendError(c, http.StatusBadRequest, errNoInput, log)
		return
	}
	result := s.resolve(files, log)
	if status := resolutionStatus(result, log); status != http.StatusOK {
		sendError(c, status, errors.New("nothing could be resolved"), log)
		return
	}
	title := c.DefaultQuery("title", s.config.AppName)
	image, err := card.Render(chain.Query(result.Mappings, filter), &s.config.Card, card.Options{
		Title:       title,
		Version:     s.config.Version,
		ModeColours: s.gameData.ModeColours,
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("card render failed: %w", err), log)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", image)
}

// DefaultsResponse is the body of the defaults endpoint
type DefaultsResponse struct {
	ActionMaps []string                     `json:"actionMaps"`
	Actions    []*starcitizen.DefaultAction `json:"actions"`
}

func (s *server) sendDefaults(c *gin.Context) {
	log := common.NewDebugLog(s.config.DebugOutput)
	if s.defaults == nil {
		sendError(c, http.StatusNotFound, errors.New("no default profile configured"), log)
		return
	}
	state, err := starcitizen.ParseBindingStateFilter(c.Query("state"))
	if err != nil {
		sendError(c, http.StatusBadRequest, err, log)
		return
	}
	filter := starcitizen.DefaultFilter{
		Search:     c.Query("q"),
		ActionMaps: c.QueryArray("map"),
		State:      state,
	}
	for _, name := range c.QueryArray("device") {
		device, err := starcitizen.ParseDevice(name)
		if err != nil {
			sendError(c, http.StatusBadRequest, err, log)
			return
		}
		filter.Devices = append(filter.Devices, device)
	}
	c.JSON(http.StatusOK, DefaultsResponse{
		ActionMaps: starcitizen.SortedDefaultActionMapNames(s.defaults),
		Actions:    starcitizen.FilterDefaults(s.defaults, filter),
	})
}

func (s *server) sendDefaultMap(c *gin.Context) {
	log := common.NewDebugLog(s.config.DebugOutput)
	if s.defaults == nil {
		sendError(c, http.StatusNotFound, errors.New("no default profile configured"), log)
		return
	}
	actions := starcitizen.FilterDefaultsByMap(s.defaults, c.Param("map"))
	if len(actions) == 0 {
		sendError(c, http.StatusNotFound, fmt.Errorf("unknown action map %q", c.Param("map")), log)
		return
	}
	c.JSON(http.StatusOK, DefaultsResponse{
		ActionMaps: []string{c.Param("map")},
		Actions:    actions,
	})
}

func (s *server) sendDefaultAction(c *gin.Context) {
	log := common.NewDebugLog(s.config.DebugOutput)
	action, found := s.actions[c.Param("action")]
	if !found {
		sendError(c, http.StatusNotFound, fmt.Errorf("unknown action %q", c.Param("action")), log)
		return
	}
	c.JSON(http.StatusOK, action)
}

// resolutionStatus is 422 when only errors came out of the uploaded files
func resolutionStatus(result chain.Result, log *common.Logger) int {
	if log.HasErrors() && len(result.Mappings) == 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func sendError(c *gin.Context, code int, err error, log *common.Logger) {
	log.Err("%s", err)
	c.JSON(code, gin.H{"error": err.Error(), "log": log.Entries})
}

// LoadDefaults reads the configured default profile and resolves its labels
// through the configured localization file. No profile configured yields nil.
func LoadDefaults(config *common.Config, log *common.Logger) ([]*starcitizen.DefaultAction, error) {
	if len(config.DefaultProfileFile) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(config.DefaultProfileFile)
	if err != nil {
		return nil, fmt.Errorf("read default profile: %w", err)
	}
	actions, err := starcitizen.ParseDefaultProfile(data)
	if err != nil {
		return nil, fmt.Errorf("default profile %s: %w", config.DefaultProfileFile, err)
	}
	log.Dbg("Loaded %d default actions from %s", len(actions), config.DefaultProfileFile)

	if len(config.LocalizationFile) == 0 {
		return actions, nil
	}
	file, err := os.Open(config.LocalizationFile)
	if err != nil {
		return nil, fmt.Errorf("open localization: %w", err)
	}
	defer file.Close()
	loc, err := starcitizen.ParseGlobalIni(file)
	if err != nil {
		return nil, fmt.Errorf("localization %s: %w", config.LocalizationFile, err)
	}
	starcitizen.ResolveLabels(actions, loc)
	log.Dbg("Resolved labels with %d localization keys", len(loc))
	return actions, nil
}
