package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/Faultbox/geoview/internal/config"
	pmath "github.com/Faultbox/geoview/pkg/math"
	"github.com/Faultbox/geoview/pkg/project"
	"github.com/Faultbox/geoview/pkg/shaderlib"
	"github.com/Faultbox/geoview/pkg/viewport"
)

func (a *app) projectCommand() *cobra.Command {
	var bottomLeft bool
	cmd := &cobra.Command{
		Use:   "project <lng> <lat> [z]",
		Short: "Project a world position to screen pixels",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			xyz, err := parseFloats(args)
			if err != nil {
				return err
			}
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			var opts []viewport.PixelOption
			if bottomLeft {
				opts = append(opts, viewport.BottomLeft())
			}
			return a.write(cmd.OutOrStdout(), map[string]any{
				"input": xyz,
				"pixel": vp.Project(xyz, opts...),
			})
		},
	}
	cmd.Flags().BoolVar(&bottomLeft, "bottom-left", false, "Pixel origin at the bottom-left corner")
	return cmd
}

func (a *app) unprojectCommand() *cobra.Command {
	var (
		bottomLeft bool
		targetZ    float64
	)
	cmd := &cobra.Command{
		Use:   "unproject <x> <y> [depth]",
		Short: "Unproject screen pixels to a world position",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			xyz, err := parseFloats(args)
			if err != nil {
				return err
			}
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			var opts []viewport.PixelOption
			if bottomLeft {
				opts = append(opts, viewport.BottomLeft())
			}
			if cmd.Flags().Changed("target-z") {
				opts = append(opts, viewport.AtTargetZ(targetZ))
			}
			world, err := vp.Unproject(xyz, opts...)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), map[string]any{
				"input": xyz,
				"world": world,
			})
		},
	}
	cmd.Flags().BoolVar(&bottomLeft, "bottom-left", false, "Pixel origin at the bottom-left corner")
	cmd.Flags().Float64Var(&targetZ, "target-z", 0, "Intersect the pixel ray with this elevation")
	return cmd
}

type boundsOutput struct {
	West         float64     `json:"west" yaml:"west"`
	South        float64     `json:"south" yaml:"south"`
	East         float64     `json:"east" yaml:"east"`
	North        float64     `json:"north" yaml:"north"`
	Corners      [][]float64 `json:"corners" yaml:"corners"`
	SubViewports []int       `json:"sub_viewports,omitempty" yaml:"sub_viewports,omitempty"`
}

func (a *app) boundsCommand() *cobra.Command {
	var z float64
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the geographic bounds visible in the viewport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			corners, err := vp.Corners(z)
			if err != nil {
				return err
			}
			b, err := vp.GetBounds(z)
			if err != nil {
				return err
			}
			out := boundsOutput{
				West:    b.Min.Lon(),
				South:   b.Min.Lat(),
				East:    b.Max.Lon(),
				North:   b.Max.Lat(),
				Corners: corners[:],
			}
			for _, sub := range vp.SubViewports() {
				out.SubViewports = append(out.SubViewports, sub.WorldOffset())
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64Var(&z, "z", 0, "Elevation of the bounding plane in meters")
	return cmd
}

type planeOutput struct {
	Name     string     `json:"name" yaml:"name"`
	Distance float64    `json:"distance" yaml:"distance"`
	Normal   pmath.Vec3 `json:"normal" yaml:"normal,flow"`
}

func (a *app) frustumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frustum",
		Short: "Print the frustum planes in common space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			names := [6]string{"left", "right", "bottom", "top", "near", "far"}
			var out []planeOutput
			for i, p := range vp.GetFrustumPlanes().All() {
				out = append(out, planeOutput{Name: names[i], Distance: p.Distance, Normal: p.Normal})
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) tilesCommand() *cobra.Command {
	var tileSize int
	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "List the map tiles covering the viewport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			tiles, err := vp.CoveringTiles(tileSize)
			if err != nil {
				return err
			}
			out := make([]string, len(tiles))
			for i, t := range tiles {
				out[i] = fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&tileSize, "tile-size", 256, "Tile size in pixels")
	return cmd
}

func (a *app) uniformsCommand() *cobra.Command {
	var (
		lngLatOffsets []float64
		modelOffset   []float64
	)
	cmd := &cobra.Command{
		Use:   "uniforms",
		Short: "Compute the project_* shader uniforms for the viewport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			opts := a.cfg.Uniforms.Options(vp)
			if len(modelOffset) > 0 {
				t := pmath.Translate(elemOr(modelOffset, 0), elemOr(modelOffset, 1), elemOr(modelOffset, 2))
				opts.ModelMatrix = &t
			}
			u, err := project.NewCalculator().Uniforms(opts)
			if err != nil {
				return err
			}
			out := map[string]any{"uniforms": u.Map()}
			if len(lngLatOffsets) > 0 {
				out["high_precision_lnglat"] = project.HighPrecisionLngLat(lngLatOffsets, 0, 2)
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Float64SliceVar(&modelOffset, "model-translate", nil, "Translate the model matrix by x,y,z")
	cmd.Flags().Float64SliceVar(&lngLatOffsets, "high-precision", nil, "Also print float32 residuals of lng,lat pairs")
	return cmd
}

func elemOr(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func (a *app) injectCommand() *cobra.Command {
	var (
		vendor   string
		renderer string
	)
	cmd := &cobra.Command{
		Use:   "inject [shader.glsl]",
		Short: "Prepend the projection modules to a vertex shader",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Shader.Vertex
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no shader given")
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			info := shaderlib.StaticContext{VendorName: vendor, RendererName: renderer}
			_, err = fmt.Fprint(cmd.OutOrStdout(), shaderlib.Inject(info, string(src), a.cfg.Shader.Defines))
			return err
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor", "", "GL_VENDOR string to target")
	cmd.Flags().StringVar(&renderer, "renderer", "", "GL_RENDERER string to target")
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			target := filepath.Join(config.ConfigDir(), "config.yaml")
			if len(args) == 1 {
				target = args[0]
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
			save := func() error { return cfg.SaveTo(target) }
			if len(args) == 0 {
				save = cfg.Save
			}
			if err := save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func (a *app) centerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "center <lng> <lat> <x> <y>",
		Short: "Find the map center that places lng,lat at pixel x,y",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			vp, err := a.cfg.NewViewport()
			if err != nil {
				return err
			}
			c, err := vp.GetMapCenterByLngLatPosition(orb.Point{v[0], v[1]}, pmath.Vec2{v[2], v[3]})
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), map[string]float64{
				"longitude": c.Lon(),
				"latitude":  c.Lat(),
			})
		},
	}
}
