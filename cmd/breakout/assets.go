package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-breakout/internal/gfx/soft"
	"github.com/vovakirdan/tile-breakout/internal/resource"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Load every configured resource headless and report",
	Long: `Compile the sprite material and decode and upload every texture in the
manifest on the software renderer, then list what the cache holds. Exits
non-zero on the first shader, image or I/O error.

Examples:
  breakout assets
  breakout assets --resources ./resources --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func runAssets(_ *cobra.Command, _ []string) {
	e, err := loadEnv(true)
	if err != nil {
		fail(err)
	}
	defer e.close()

	bar := progressbar.NewOptions(1+len(e.cfg.Textures),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("loading resources"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	backend := soft.New(e.cfg.Window.Width, e.cfg.Window.Height)
	cache := resource.New(backend, e.fsys,
		resource.WithLogger(e.logger),
		resource.WithStrictShaders(!e.cfg.Material.LenientShaders),
		resource.WithLoadHook(func(kind resource.Kind, name string) {
			bar.Describe(fmt.Sprintf("%s %s", kind, name))
			_ = bar.Add(1)
		}),
	)

	m := e.cfg.Material
	if _, err := cache.LoadMaterial(m.Name, m.Vertex, m.Fragment); err != nil {
		e.close()
		fail(err)
	}

	specs := make([]resource.TextureSpec, 0, len(e.cfg.Textures))
	for _, t := range e.cfg.Textures {
		specs = append(specs, resource.TextureSpec{Name: t.Name, Path: t.File, HasAlpha: t.Alpha})
	}
	if err := cache.LoadTextures(context.Background(), specs); err != nil {
		e.close()
		fail(err)
	}
	_ = bar.Finish()

	fmt.Printf("Materials: %s\n", strings.Join(cache.MaterialNames(), ", "))
	fmt.Println("Textures:")
	for _, name := range cache.TextureNames() {
		tex, _ := cache.Texture(name)
		entry, _ := e.cfg.Texture(name)
		fmt.Printf("  %-12s %4dx%-4d %-4s %s\n", name, tex.Width(), tex.Height(), tex.Params().InternalFormat, entry.File)
	}
}
