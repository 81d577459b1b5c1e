package hotload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/emberforge/ember/engine"
)

// defaultPollInterval is how often the original module path is stat'd for
// changes, in seconds of unscaled time.
const defaultPollInterval = 0.5

// Host loads a game module, watches its file for changes, and swaps
// generations while preserving a host-owned state block.
//
// The module file is copied to a versioned side path before loading: the OS
// loader keeps the mapped file locked (and Go plugins additionally refuse to
// reopen a previously seen pluginpath), so loading the original in place
// would block the edit-and-rebuild workflow hot reload exists for.
//
// The state block is allocated once, sized by the module's own report, and
// never reallocated or zeroed afterwards; that is the contract that lets
// gameplay state survive a code swap.
type Host struct {
	path   string
	loader Loader
	log    *zap.Logger
	eng    *engine.Engine

	api        API
	loaded     bool
	generation int

	state    []byte
	statePtr unsafe.Pointer

	modTime  time.Time
	checksum uint64

	pollInterval float64
	pollTimer    float64

	copyPath string
}

// HostOptions tune a Host. Zero values select the plugin loader, a 0.5s
// poll interval and a no-op logger.
type HostOptions struct {
	PollInterval float64
	Loader       Loader
	Log          *zap.Logger
}

// NewHost creates an unloaded host for the module at path.
func NewHost(path string, eng *engine.Engine, opts HostOptions) *Host {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Loader == nil {
		opts.Loader = PluginLoader{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Host{
		path:         path,
		loader:       opts.Loader,
		log:          opts.Log,
		eng:          eng,
		pollInterval: opts.PollInterval,
	}
}

// Loaded reports whether a module generation is currently live.
func (h *Host) Loaded() bool { return h.loaded }

// Generation returns the number of successful loads so far.
func (h *Host) Generation() int { return h.generation }

// API returns the current entry-point table. All funcs are nil when unloaded.
func (h *Host) API() API { return h.api }

// State exposes the host-owned state block (nil when the module has none).
func (h *Host) State() []byte { return h.state }

// Load copies the module aside, loads it and resolves its entry points.
// On the first generation the module's Init runs; later generations get
// OnReload instead, against the preserved state block.
func (h *Host) Load() error {
	if h.loaded {
		return fmt.Errorf("hotload: module already loaded")
	}

	info, err := os.Stat(h.path)
	if err != nil {
		return fmt.Errorf("failed to stat module: %w", err)
	}
	sum, err := fileChecksum(h.path)
	if err != nil {
		return fmt.Errorf("failed to checksum module: %w", err)
	}

	copyPath := h.sideCopyPath(h.generation + 1)
	if err := copyFile(h.path, copyPath); err != nil {
		return fmt.Errorf("failed to copy module aside: %w", err)
	}

	api, err := h.loader.Load(copyPath)
	if err != nil {
		_ = os.Remove(copyPath)
		return fmt.Errorf("failed to load module: %w", err)
	}
	if !api.Valid() {
		_ = os.Remove(copyPath)
		return fmt.Errorf("%w: init/update", ErrMissingEntry)
	}

	// Allocate the state block exactly once, on the first generation.
	if h.state == nil {
		size := 0
		if api.StateSize != nil {
			size = api.StateSize()
		}
		if size > 0 {
			h.state = make([]byte, size)
			h.statePtr = unsafe.Pointer(&h.state[0])
		}
	}

	if h.copyPath != "" && h.copyPath != copyPath {
		_ = os.Remove(h.copyPath)
	}

	h.api = api
	h.loaded = true
	h.generation++
	h.modTime = info.ModTime()
	h.checksum = sum
	h.copyPath = copyPath

	if h.generation == 1 {
		h.api.Init(h.statePtr, h.eng)
	} else if h.api.OnReload != nil {
		h.api.OnReload(h.statePtr, h.eng)
	}

	h.log.Info("module loaded",
		zap.String("path", h.path),
		zap.Int("generation", h.generation),
		zap.Int("state_size", len(h.state)))
	return nil
}

// Poll accumulates unscaled frame time and, once per poll interval, checks
// the original module path for changes. A modification-time change with
// identical content (a touch) only refreshes the recorded time; a content
// change triggers a reload.
func (h *Host) Poll(dt float64) {
	if !h.loaded {
		return
	}
	h.pollTimer += dt
	if h.pollTimer < h.pollInterval {
		return
	}
	h.pollTimer = 0

	info, err := os.Stat(h.path)
	if err != nil {
		return // module mid-rebuild; try again next interval
	}
	if info.ModTime().Equal(h.modTime) {
		return
	}
	sum, err := fileChecksum(h.path)
	if err != nil {
		return
	}
	if sum == h.checksum {
		h.modTime = info.ModTime()
		return
	}

	if err := h.Reload(); err != nil {
		h.log.Error("module reload failed", zap.Error(err))
	}
}

// Reload swaps module generations. The old module's Shutdown runs against
// the existing state block, the old table is dropped, and the new file is
// loaded; the state block is reused as-is, never reallocated.
//
// The old generation is gone before the new load is attempted, so a failed
// load leaves the host unloaded with a cleared table. There is no automatic
// retry; the caller must treat that as fatal for the session.
func (h *Host) Reload() error {
	if !h.loaded {
		return ErrNotLoaded
	}

	if h.api.Shutdown != nil {
		h.api.Shutdown(h.statePtr, h.eng)
	}
	h.api = API{}
	h.loaded = false

	if err := h.Load(); err != nil {
		return err
	}
	h.log.Info("module reloaded", zap.Int("generation", h.generation))
	return nil
}

// CallUpdate invokes the module's update entry point if loaded.
func (h *Host) CallUpdate(dt float64) {
	if h.loaded && h.api.Update != nil {
		h.api.Update(h.statePtr, h.eng, dt)
	}
}

// CallRender invokes the module's render entry point if loaded and present.
func (h *Host) CallRender() {
	if h.loaded && h.api.Render != nil {
		h.api.Render(h.statePtr, h.eng)
	}
}

// Destroy unloads the module, frees the state block and removes the side copy.
func (h *Host) Destroy() {
	if h.loaded && h.api.Shutdown != nil {
		h.api.Shutdown(h.statePtr, h.eng)
	}
	h.api = API{}
	h.loaded = false
	h.state = nil
	h.statePtr = nil
	if h.copyPath != "" {
		_ = os.Remove(h.copyPath)
		h.copyPath = ""
	}
}

// sideCopyPath builds the versioned side path for a generation, e.g.
// game.so -> game.gen3.so in the same directory.
func (h *Host) sideCopyPath(generation int) string {
	dir := filepath.Dir(h.path)
	base := filepath.Base(h.path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.gen%d%s", name, generation, ext))
}

func fileChecksum(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, err
	}
	return digest.Sum64(), nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}
