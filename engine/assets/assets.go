package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/primitives/engine/assets/loaders"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

type AssetInfo struct {
	Name       string
	Dialect    metadata.ShaderDialect
	FromDisk   bool
	LastLoaded time.Time
}

// AssetManager resolves shader pairs: from ShaderDir when set and the files
// exist there, from the embedded tree otherwise. With hot reload on, edits
// under ShaderDir are reported through Changed.
type AssetManager struct {
	ShaderDir string

	assets   map[string]AssetInfo
	disk     Loader
	embedded Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager(shaderDir string) *AssetManager {
	am := &AssetManager{
		ShaderDir: shaderDir,
		assets:    make(map[string]AssetInfo),
		embedded:  &loaders.ShaderLoader{FS: EmbeddedShaders()},
		changes:   make(chan string, 32),
	}
	if shaderDir != "" {
		am.disk = &loaders.ShaderLoader{FS: os.DirFS(shaderDir)}
	}
	return am
}

// Initialize starts the watcher when hotReload is set and a shader directory
// is configured.
func (am *AssetManager) Initialize(hotReload bool) error {
	if !hotReload || am.ShaderDir == "" {
		return nil
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	am.done = make(chan struct{})
	am.stopped = make(chan struct{})

	if err := am.watchRecursive(am.ShaderDir); err != nil {
		fsWatch.Close()
		am.fsnotify = nil
		return fmt.Errorf("watching %s: %w", am.ShaderDir, err)
	}
	go am.start()
	core.LogInfo("watching %s for shader changes", am.ShaderDir)
	return nil
}

func (am *AssetManager) LoadShader(name string, dialect metadata.ShaderDialect) (*metadata.ShaderSource, error) {
	fromDisk := false
	var source *metadata.ShaderSource
	var err error

	if am.disk != nil {
		source, err = am.disk.Load(name, dialect)
		switch {
		case err == nil:
			fromDisk = true
		case errors.Is(err, fs.ErrNotExist):
			core.LogDebug("shader %s/%s not in %s, using the embedded one", dialect, name, am.ShaderDir)
		default:
			return nil, err
		}
	}
	if source == nil {
		if source, err = am.embedded.Load(name, dialect); err != nil {
			return nil, err
		}
	}

	am.mutex.Lock()
	am.assets[string(dialect)+"/"+name] = AssetInfo{
		Name:       name,
		Dialect:    dialect,
		FromDisk:   fromDisk,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return source, nil
}

// Info reports how a shader was last loaded.
func (am *AssetManager) Info(name string, dialect metadata.ShaderDialect) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[string(dialect)+"/"+name]
	return info, ok
}

// Changed drains the names of shaders edited since the last call. It never
// blocks and is meant to be called at the start of a frame.
func (am *AssetManager) Changed() []string {
	var names []string
	seen := map[string]bool{}
	for {
		select {
		case name := <-am.changes:
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

func (am *AssetManager) Shutdown() error {
	if am.fsnotify == nil || am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("cannot watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("shader watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds path and every directory below it to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func (am *AssetManager) handleFileEvent(path string) {
	ext := filepath.Ext(path)
	if ext != loaders.VertexExtension && ext != loaders.FragmentExtension {
		return
	}
	name := strings.TrimSuffix(filepath.Base(path), ext)
	select {
	case am.changes <- name:
	default:
		// A reload is already pending for enough shaders.
	}
}
