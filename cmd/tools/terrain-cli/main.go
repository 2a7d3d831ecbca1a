package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/mesh"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Градации яркости для ASCII превью, от тёмного к светлому
const shades = " .:-=+*#%@"

func main() {
	defaults := config.Default().Terrain

	var (
		command     = flag.String("cmd", "preview", "Command: preview, stats, pick")
		mode        = flag.String("mode", defaults.Mode, "Terrain mode: perlin, checker")
		seed        = flag.Int64("seed", defaults.Seed, "Noise seed")
		baseHeight  = flag.Int("base", defaults.BaseHeight, "Base terrain height")
		octaves     = flag.Int("octaves", defaults.Octaves, "Noise octaves")
		frequency   = flag.Float64("frequency", defaults.Frequency, "Noise base frequency")
		lacunarity  = flag.Float64("lacunarity", defaults.Lacunarity, "Noise lacunarity")
		persistence = flag.Float64("persistence", defaults.Persistence, "Noise persistence")
		width       = flag.Int("w", 64, "Preview width")
		height      = flag.Int("h", 32, "Preview height")
		radius      = flag.Int("radius", 1, "Chunk radius for stats/pick")
		from        = flag.String("from", "8,40,8", "Ray origin x,y,z (pick)")
		to          = flag.String("to", "8,0,8", "Ray target x,y,z (pick)")
	)
	flag.Parse()

	params := util.NoiseParams{
		Octaves:     *octaves,
		Frequency:   *frequency,
		Lacunarity:  *lacunarity,
		Persistence: *persistence,
	}

	switch *command {
	case "preview":
		if err := showPreview(*seed, params, *width, *height); err != nil {
			log.Fatalf("❌ Preview failed: %v", err)
		}

	case "stats":
		gen, err := newGenerator(*mode, *seed, *baseHeight, params)
		if err != nil {
			log.Fatalf("❌ Stats failed: %v", err)
		}
		showStats(gen, *radius)

	case "pick":
		gen, err := newGenerator(*mode, *seed, *baseHeight, params)
		if err != nil {
			log.Fatalf("❌ Pick failed: %v", err)
		}
		if err := pickBlock(gen, *radius, *from, *to); err != nil {
			log.Fatalf("❌ Pick failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: preview, stats, pick")
		os.Exit(1)
	}
}

func newGenerator(mode string, seed int64, base int, params util.NoiseParams) (world.Generator, error) {
	switch mode {
	case "perlin":
		return world.NewTerrainGenerator(seed, base, params)
	case "checker":
		return world.CheckerGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// showPreview печатает шум как ASCII картинку
func showPreview(seed int64, params util.NoiseParams, w, h int) error {
	noise, err := util.NewFractalNoise(seed, params)
	if err != nil {
		return err
	}

	fmt.Printf("🗺️  Noise preview seed=%d octaves=%d frequency=%g\n", seed, params.Octaves, params.Frequency)
	pixels := noise.Preview(w, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := pixels[y*w+x]
			idx := min(int(v*float32(len(shades))), len(shades)-1)
			sb.WriteByte(shades[idx])
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
	return nil
}

// showStats строит меши чанков и печатает число граней
func showStats(gen world.Generator, radius int) {
	w := world.New(gen, nil, world.Options{})
	defer w.Close()

	n := w.LoadArea(radius, 1)
	w.RebuildDirty(0)

	fmt.Printf("📊 Chunk statistics (%s, %d chunks)\n", gen.Name(), n)
	totalFaces := 0
	for _, id := range w.ChunkIDs() {
		c, _ := w.Chunk(id)
		m := mesh.BuildChunk(c)
		totalFaces += m.FaceCount()
		fmt.Printf("  %-12s solid=%-5d faces=%-5d triangles=%d\n", id, c.SolidCount(), m.FaceCount(), m.TriangleCount())
	}
	fmt.Printf("\n📊 Total faces: %d\n", totalFaces)
}

// pickBlock пускает луч и печатает целевой блок
func pickBlock(gen world.Generator, radius int, fromStr, toStr string) error {
	origin, err := parseVec3(fromStr)
	if err != nil {
		return fmt.Errorf("invalid from: %w", err)
	}
	target, err := parseVec3(toStr)
	if err != nil {
		return fmt.Errorf("invalid to: %w", err)
	}

	w := world.New(gen, nil, world.Options{})
	defer w.Close()
	w.LoadArea(radius, 1)
	w.RebuildDirty(0)

	hit, tgt, ok := w.PickTarget(physics.NewRay(origin, target.Sub(origin)))
	if !ok {
		fmt.Println("🎯 No target")
		return nil
	}
	fmt.Printf("🎯 Hit chunk=%s point=%v distance=%.3f\n", hit.Chunk, hit.Point, hit.Distance)
	fmt.Printf("   Block %s at %s (local %s)\n", tgt.Block, tgt.Global(), tgt.Local)
	return nil
}

// parseVec3 разбирает "x,y,z"
func parseVec3(s string) (mgl32.Vec3, error) {
	parts := parseStringList(s)
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return mgl32.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseStringList парсит строку с разделителями-запятыми
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
