// Package main compiles the projection shader modules on the local GPU and
// uploads the uniforms computed for the configured viewport.
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/gldriver"
	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/project"
	"github.com/Faultbox/geoview/pkg/shaderlib"
)

//go:embed shaders/check.vert
var defaultVertex string

//go:embed shaders/check.frag
var defaultFragment string

func main() {
	flags := config.RegisterFlags(pflag.CommandLine)
	dump := pflag.Bool("dump", false, "Print the injected vertex shader")
	pflag.Parse()

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Logging.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *dump); err != nil {
		logger.Error("shader check failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shader check passed")
}

func run(cfg *config.Config, dump bool) error {
	vertex, err := readOr(cfg.Shader.Vertex, defaultVertex)
	if err != nil {
		return err
	}
	fragment, err := readOr(cfg.Shader.Fragment, defaultFragment)
	if err != nil {
		return err
	}

	ctx, err := gldriver.NewContext(gldriver.Config{
		Title:  "geoview shadercheck",
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
	})
	if err != nil {
		return err
	}
	defer ctx.Close()

	logger.Info("GPU identified", zap.String("vendor", string(shaderlib.IdentifyGPUVendor(ctx))))

	injected := shaderlib.Inject(ctx, vertex, cfg.Shader.Defines)
	if dump {
		fmt.Print(injected)
	}

	program, err := gldriver.CompileProgram(injected, fragment)
	if err != nil {
		return err
	}
	defer gldriver.DeleteProgram(program)

	vp, err := cfg.NewViewport()
	if err != nil {
		return err
	}
	u, err := project.NewCalculator().Uniforms(cfg.Uniforms.Options(vp))
	if err != nil {
		return err
	}

	set, err := gldriver.SetUniforms(program, u.Values())
	if err != nil {
		return err
	}
	logger.Info("uniforms uploaded",
		zap.Int("count", len(set)),
		zap.Strings("names", set),
		zap.Stringer("projection_mode", vp.ProjectionMode()),
	)
	return nil
}

func readOr(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading shader: %w", err)
	}
	return string(data), nil
}
