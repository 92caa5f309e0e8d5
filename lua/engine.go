package lua

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/toolkit"
)

// Engine wraps gopher-lua and manages the VM lifecycle.
// Compiled chunks are cached by source so a reload of unchanged scripts
// skips the parser.
type Engine struct {
	L      *glua.LState
	protos *lru.Cache[string, *glua.FunctionProto]
	log    *logger.Logger

	// Cached table reference
	table *glua.LTable

	// User scripts in load order, replayed by Reload.
	loaded []string
}

// NewEngine creates an engine. Call Init before running anything.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.GetDefault()
	}
	cache, _ := lru.New[string, *glua.FunctionProto](64)
	return &Engine{protos: cache, log: log}
}

// --- Lifecycle ---

// Init creates a fresh VM, registers the API and runs the core scripts.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}
	e.L = glua.NewState()
	e.registerAPIs()

	entries, err := fs.ReadDir(CoreScripts, "core")
	if err != nil {
		return fmt.Errorf("reading core scripts: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := CoreScripts.ReadFile("core/" + file)
		if err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
		if err := e.DoString(file, string(content)); err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// Reload starts a fresh VM and reruns every script loaded with DoFile.
func (e *Engine) Reload() error {
	paths := e.loaded
	e.loaded = nil
	if err := e.Init(); err != nil {
		return err
	}
	for _, p := range paths {
		if err := e.DoFile(p); err != nil {
			return err
		}
	}
	return nil
}

// CachedChunks returns the number of compiled chunks held.
func (e *Engine) CachedChunks() int {
	return e.protos.Len()
}

// --- Execution Primitives ---

// DoString compiles and runs a chunk. The name is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	proto, err := e.compile(name, code)
	if err != nil {
		return err
	}
	e.L.Push(e.L.NewFunctionFromProto(proto))
	return e.L.PCall(0, 0, nil)
}

// DoFile runs a script from the filesystem and remembers it for Reload.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if err := e.DoString(absPath, string(code)); err != nil {
		return err
	}
	e.loaded = append(e.loaded, absPath)
	e.log.Debug("script loaded", "path", absPath)
	return nil
}

func (e *Engine) compile(name, code string) (*glua.FunctionProto, error) {
	key := name + "\x00" + code
	if proto, ok := e.protos.Get(key); ok {
		return proto, nil
	}
	chunk, err := parse.Parse(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	proto, err := glua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	e.protos.Add(key, proto)
	return proto, nil
}

// --- Event Handlers ---

// OnScreen asks the script how to answer s on its turn-th pump. A nil
// answer is an idle turn. Toggle indexes are 1-based in Lua.
func (e *Engine) OnScreen(s toolkit.Screen, turn int) (toolkit.Response, error) {
	fn := e.L.GetGlobal("on_screen")
	if fn.Type() != glua.LTFunction {
		return toolkit.Idle, nil
	}
	if err := e.L.CallByParam(glua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, screenTable(e.L, s), glua.LNumber(turn)); err != nil {
		return toolkit.Idle, fmt.Errorf("on_screen: %w", err)
	}
	action := e.L.Get(-2)
	index := e.L.Get(-1)
	e.L.Pop(2)

	if action == glua.LNil {
		return toolkit.Idle, nil
	}
	a, err := toolkit.ParseAction(action.String())
	if err != nil {
		return toolkit.Idle, err
	}
	r := toolkit.Response{Action: a}
	if n, ok := index.(glua.LNumber); ok {
		r.Index = int(n) - 1
	}
	return r, nil
}

// OnTune passes a played tune code to the script's on_tune, if defined.
func (e *Engine) OnTune(code toolkit.Tune) {
	fn := e.L.GetGlobal("on_tune")
	if fn.Type() != glua.LTFunction {
		return
	}
	if err := e.L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, glua.LNumber(code)); err != nil {
		e.log.Warn("on_tune failed", "error", err)
	}
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.table = e.L.NewTable()
	e.L.SetGlobal("syncux", e.table)

	// syncux.log(msg): write to the application log
	e.L.SetField(e.table, "log", e.L.NewFunction(func(L *glua.LState) int {
		e.log.Info("script", "msg", L.CheckString(1))
		return 0
	}))
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
