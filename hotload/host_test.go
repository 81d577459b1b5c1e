package hotload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unsafe"

	"github.com/emberforge/ember/engine"
)

// fakeModule builds an API whose entry points count calls and treat the
// state block as a single counter byte.
type fakeModule struct {
	inits     int
	updates   int
	shutdowns int
	reloads   int
}

func (m *fakeModule) api() API {
	return API{
		StateSize: func() int { return 8 },
		Init: func(state unsafe.Pointer, _ *engine.Engine) {
			m.inits++
			*(*byte)(state) = 42
		},
		Update: func(state unsafe.Pointer, _ *engine.Engine, _ float64) {
			m.updates++
		},
		Shutdown: func(state unsafe.Pointer, _ *engine.Engine) {
			m.shutdowns++
		},
		OnReload: func(state unsafe.Pointer, _ *engine.Engine) {
			m.reloads++
		},
	}
}

func writeModuleFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "game.so")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFakeHost(t *testing.T, path string, loader Loader) *Host {
	t.Helper()
	return NewHost(path, nil, HostOptions{Loader: loader, PollInterval: 0.1})
}

func TestHostLoadRunsInitOnce(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	mod := &fakeModule{}
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return mod.api(), nil
	}))

	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !h.Loaded() || h.Generation() != 1 {
		t.Fatalf("loaded=%v gen=%d", h.Loaded(), h.Generation())
	}
	if mod.inits != 1 || mod.reloads != 0 {
		t.Errorf("inits=%d reloads=%d, want 1/0", mod.inits, mod.reloads)
	}
	if h.State()[0] != 42 {
		t.Error("Init did not write through the state pointer")
	}

	if err := h.Load(); err == nil {
		t.Error("second Load on a loaded host succeeded")
	}

	h.CallUpdate(0.016)
	if mod.updates != 1 {
		t.Errorf("updates = %d, want 1", mod.updates)
	}
}

func TestHostLoadCopiesAside(t *testing.T) {
	dir := t.TempDir()
	path := writeModuleFile(t, dir, "v1")

	var loadedPath string
	h := newFakeHost(t, path, LoaderFunc(func(p string) (API, error) {
		loadedPath = p
		return (&fakeModule{}).api(), nil
	}))
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if loadedPath == path {
		t.Error("loader was handed the original path, not a side copy")
	}
	if filepath.Base(loadedPath) != "game.gen1.so" {
		t.Errorf("side copy named %q, want game.gen1.so", filepath.Base(loadedPath))
	}
	data, err := os.ReadFile(loadedPath)
	if err != nil || string(data) != "v1" {
		t.Errorf("side copy content %q, %v", data, err)
	}

	h.Destroy()
	if _, err := os.Stat(loadedPath); !os.IsNotExist(err) {
		t.Error("Destroy left the side copy behind")
	}
}

func TestHostStatePersistsAcrossReload(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	mod := &fakeModule{}
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return mod.api(), nil
	}))
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	stateBefore := h.State()
	stateBefore[3] = 99

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if h.Generation() != 2 {
		t.Errorf("generation = %d, want 2", h.Generation())
	}
	if mod.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", mod.shutdowns)
	}
	if mod.inits != 1 {
		t.Errorf("inits = %d, want 1 (reloads must not re-init)", mod.inits)
	}
	if mod.reloads != 1 {
		t.Errorf("reloads = %d, want 1", mod.reloads)
	}

	state := h.State()
	if &state[0] != &stateBefore[0] {
		t.Error("state block was reallocated across reload")
	}
	if state[0] != 42 || state[3] != 99 {
		t.Errorf("state content lost: %v", state[:4])
	}
}

func TestHostFailedReloadLeavesHostUnloaded(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	mod := &fakeModule{}
	fail := false
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		if fail {
			return API{}, errors.New("undefined symbol")
		}
		return mod.api(), nil
	}))
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	fail = true
	if err := h.Reload(); err == nil {
		t.Fatal("Reload with a broken module succeeded")
	}

	// The old generation is already gone: the host is inert, not reverted.
	if h.Loaded() {
		t.Error("host still loaded after failed reload")
	}
	if h.API().Update != nil {
		t.Error("stale entry points survived failed reload")
	}
	if mod.shutdowns != 1 {
		t.Errorf("old module shutdowns = %d, want 1", mod.shutdowns)
	}

	updatesBefore := mod.updates
	h.CallUpdate(0.016)
	h.CallRender()
	if mod.updates != updatesBefore {
		t.Error("CallUpdate reached an unloaded module")
	}
}

func TestHostReloadNotLoaded(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return (&fakeModule{}).api(), nil
	}))

	if err := h.Reload(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Reload on unloaded host = %v, want ErrNotLoaded", err)
	}
}

func TestHostPollDetectsContentChange(t *testing.T) {
	dir := t.TempDir()
	path := writeModuleFile(t, dir, "v1")
	mod := &fakeModule{}
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return mod.api(), nil
	}))
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	// Under the poll interval: no stat, no reload.
	h.Poll(0.05)
	if h.Generation() != 1 {
		t.Fatal("reload before the poll interval elapsed")
	}

	// Touch without content change: recorded mtime refreshes, no reload.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	h.Poll(0.2)
	if h.Generation() != 1 {
		t.Error("touch with identical content triggered a reload")
	}

	// Real content change: reload on the next interval.
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := future.Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	h.Poll(0.2)
	if h.Generation() != 2 {
		t.Errorf("generation = %d after content change, want 2", h.Generation())
	}
	if mod.reloads != 1 {
		t.Errorf("reloads = %d, want 1", mod.reloads)
	}
}

func TestHostZeroStateSize(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return API{
			StateSize: func() int { return 0 },
			Init:      func(state unsafe.Pointer, _ *engine.Engine) {},
			Update:    func(unsafe.Pointer, *engine.Engine, float64) {},
		}, nil
	}))
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}
	if h.State() != nil {
		t.Error("zero-size module got a state block")
	}
}

func TestHostRejectsIncompleteAPI(t *testing.T) {
	path := writeModuleFile(t, t.TempDir(), "v1")
	h := newFakeHost(t, path, LoaderFunc(func(string) (API, error) {
		return API{Update: func(unsafe.Pointer, *engine.Engine, float64) {}}, nil
	}))

	err := h.Load()
	if !errors.Is(err, ErrMissingEntry) {
		t.Errorf("Load = %v, want ErrMissingEntry", err)
	}
	if h.Loaded() {
		t.Error("host loaded despite missing entry points")
	}
}
