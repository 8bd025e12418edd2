// Package resource provides a name-keyed cache of GPU resources: shader
// materials and 2D textures. Entries are created once through a gfx.Backend
// and shared by pointer for the lifetime of the cache.
package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tile-breakout/internal/gfx"
	"github.com/vovakirdan/tile-breakout/internal/imgdec"
)

// TextureSpec describes one entry of a texture manifest.
type TextureSpec struct {
	Name     string
	Path     string
	HasAlpha bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for load events and shader diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(d imgdec.Decoder) Option {
	return func(c *Cache) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithStrictShaders controls whether compile and link failures are returned
// (true, the default) or only logged, in which case the program is cached anyway.
func WithStrictShaders(strict bool) Option {
	return func(c *Cache) {
		c.strict = strict
	}
}

// WithLoadHook registers a callback run after every successful insert.
func WithLoadHook(fn func(kind Kind, name string)) Option {
	return func(c *Cache) {
		c.onLoad = fn
	}
}

// Cache owns every material and texture created through it.
type Cache struct {
	backend gfx.Backend
	fsys    fs.FS
	decoder imgdec.Decoder
	logger  *log.Logger
	strict  bool
	onLoad  func(kind Kind, name string)

	mu        sync.RWMutex
	materials map[string]*Material
	textures  map[string]*Texture2D
}

// New creates an empty cache reading files from fsys.
func New(backend gfx.Backend, fsys fs.FS, opts ...Option) *Cache {
	c := &Cache{
		backend:   backend,
		fsys:      fsys,
		decoder:   imgdec.Std{},
		logger:    log.New(io.Discard),
		strict:    true,
		materials: make(map[string]*Material),
		textures:  make(map[string]*Texture2D),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the backend resources are created on.
func (c *Cache) Backend() gfx.Backend { return c.backend }

// FS returns the filesystem resource paths are resolved against.
func (c *Cache) FS() fs.FS { return c.fsys }

// LoadMaterial compiles and links a vertex/fragment pair and stores the
// result under name. The name is checked before any file is read.
func (c *Cache) LoadMaterial(name, vertexPath, fragmentPath string) (*Material, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.materials[name]; ok {
		return nil, &NameError{Kind: KindMaterial, Name: name, Err: ErrDuplicateName}
	}

	vsrc, err := c.readFile(vertexPath)
	if err != nil {
		return nil, err
	}
	fsrc, err := c.readFile(fragmentPath)
	if err != nil {
		return nil, err
	}

	vs, err := c.compile(name, gfx.StageVertex, vertexPath, vsrc)
	if err != nil {
		return nil, err
	}
	fsh, err := c.compile(name, gfx.StageFragment, fragmentPath, fsrc)
	if err != nil {
		c.backend.DeleteShader(vs)
		return nil, err
	}

	program, linkErr := c.backend.LinkProgram(vs, fsh)
	c.backend.DeleteShader(vs)
	c.backend.DeleteShader(fsh)
	if linkErr != nil {
		lerr := &LinkError{Material: name, Log: infoLog(linkErr)}
		c.logger.Error("program link failed", "material", name, "log", lerr.Log)
		if c.strict {
			return nil, lerr
		}
	}

	m := &Material{name: name, backend: c.backend, program: program}
	c.materials[name] = m
	c.logger.Debug("material loaded", "name", name, "vertex", vertexPath, "fragment", fragmentPath)
	c.notify(KindMaterial, name)
	return m, nil
}

func (c *Cache) compile(material string, stage gfx.ShaderStage, path string, src []byte) (gfx.Shader, error) {
	sh, err := c.backend.CompileShader(stage, string(src))
	if err == nil {
		return sh, nil
	}
	cerr := &CompileError{Material: material, Stage: stage, Path: path, Log: infoLog(err)}
	c.logger.Error("shader compilation failed", "material", material, "stage", stage, "path", path, "log", cerr.Log)
	if c.strict {
		c.backend.DeleteShader(sh)
		return 0, cerr
	}
	return sh, nil
}

func infoLog(err error) string {
	var ie *gfx.InfoLogError
	if errors.As(err, &ie) {
		return ie.Log
	}
	return err.Error()
}

// Material returns the material stored under name.
func (c *Cache) Material(name string) (*Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.materials[name]
	if !ok {
		return nil, &NameError{Kind: KindMaterial, Name: name, Err: ErrNotFound}
	}
	return m, nil
}

// LoadTexture decodes an image file and uploads it as a texture. With
// hasAlpha the texture is RGBA, otherwise RGB and the alpha channel is dropped.
func (c *Cache) LoadTexture(name, imagePath string, hasAlpha bool) (*Texture2D, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.textures[name]; ok {
		return nil, &NameError{Kind: KindTexture, Name: name, Err: ErrDuplicateName}
	}
	img, err := c.decode(imagePath)
	if err != nil {
		return nil, err
	}
	return c.upload(name, imagePath, img, hasAlpha)
}

// LoadTextures loads a whole manifest. Images are decoded concurrently and
// uploaded one by one on the calling goroutine in manifest order. Name
// collisions, within the manifest or with the cache, fail before any upload.
func (c *Cache) LoadTextures(ctx context.Context, specs []TextureSpec) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if _, ok := c.textures[s.Name]; ok {
			return &NameError{Kind: KindTexture, Name: s.Name, Err: ErrDuplicateName}
		}
		if _, ok := seen[s.Name]; ok {
			return &NameError{Kind: KindTexture, Name: s.Name, Err: ErrDuplicateName}
		}
		seen[s.Name] = struct{}{}
	}

	decoded := make([]*imgdec.Image, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := c.decode(s.Path)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range specs {
		if _, err := c.upload(s.Name, s.Path, decoded[i], s.HasAlpha); err != nil {
			return err
		}
	}
	return nil
}

// Texture returns the texture stored under name.
func (c *Cache) Texture(name string) (*Texture2D, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.textures[name]
	if !ok {
		return nil, &NameError{Kind: KindTexture, Name: name, Err: ErrNotFound}
	}
	return t, nil
}

// MaterialNames returns the names of all cached materials in sorted order.
func (c *Cache) MaterialNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.materials))
	for n := range c.materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TextureNames returns the names of all cached textures in sorted order.
func (c *Cache) TextureNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.textures))
	for n := range c.textures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) readFile(path string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return data, nil
}

// decode does not touch the maps and is safe to run concurrently.
func (c *Cache) decode(path string) (*imgdec.Image, error) {
	data, err := c.readFile(path)
	if err != nil {
		return nil, err
	}
	img, err := c.decoder.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// upload must be called with c.mu held for writing.
func (c *Cache) upload(name, path string, img *imgdec.Image, hasAlpha bool) (*Texture2D, error) {
	params := textureParams(hasAlpha)
	pix, err := img.Pixels(params.ImageFormat.Channels())
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	handle, err := c.backend.CreateTexture(img.Width, img.Height, pix, params)
	if err != nil {
		return nil, fmt.Errorf("resource: upload texture %q: %w", name, err)
	}
	t := &Texture2D{
		name:    name,
		backend: c.backend,
		handle:  handle,
		width:   img.Width,
		height:  img.Height,
		params:  params,
	}
	c.textures[name] = t
	c.logger.Debug("texture loaded", "name", name, "path", path, "size", fmt.Sprintf("%dx%d", img.Width, img.Height), "format", params.ImageFormat)
	c.notify(KindTexture, name)
	return t, nil
}

func (c *Cache) notify(kind Kind, name string) {
	if c.onLoad != nil {
		c.onLoad(kind, name)
	}
}
