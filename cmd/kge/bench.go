// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cogentcore.org/engine/engine"
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/render/gl"
	"cogentcore.org/engine/scene"
	"github.com/spf13/cobra"
)

type benchFlags struct {
	objects int
	frames  int
	seed    uint64
	extent  float32
	glTrace bool
}

func newBenchCmd(f *flags) *cobra.Command {
	bf := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Cull and draw a random scene from an orbiting camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig()
			if err != nil {
				return err
			}
			return runBench(cmd, cfg, bf)
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&bf.objects, "objects", "n", 10000, "number of scene objects")
	fl.IntVarP(&bf.frames, "frames", "f", 100, "number of frames")
	fl.Uint64Var(&bf.seed, "seed", 1, "random seed of the scene")
	fl.Float32Var(&bf.extent, "extent", 500, "half size of the populated region")
	fl.BoolVar(&bf.glTrace, "gl", false, "draw on the opengl backend with a recording GL loader")
	return cmd
}

func runBench(cmd *cobra.Command, cfg engine.Config, bf *benchFlags) error {
	var rec *gl.Recorder
	if bf.glTrace {
		rec = gl.NewRecorder("4.6.0 kge")
		gl.SetLoader(func(p gl.Profile) (gl.Functions, error) { return rec, nil })
		cfg.Context.Render = gl.OpenGL.Name
	}
	c, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	re, err := c.RenderFactory().Engine()
	if err != nil {
		return err
	}
	layout, err := cubeLayout(re)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewPCG(bf.seed, bf.seed))
	coord := func() float32 { return (rnd.Float32()*2 - 1) * bf.extent }
	sm := c.SceneManager()
	start := time.Now()
	for i := range bf.objects {
		center := math32.Vec3(coord(), coord(), coord())
		half := 0.5 + 4.5*rnd.Float32()
		size := math32.Vec3(half, half, half)
		obj := scene.NewObject(fmt.Sprintf("cube%d", i), math32.Box3{Min: center.Sub(size), Max: center.Add(size)})
		obj.Layout = layout
		if err := sm.Add(obj); err != nil {
			return err
		}
	}
	build := time.Since(start)

	cam := engine.NewCamera()
	cam.Far = 4 * bf.extent
	app := engine.NewApp(c, cam)
	var rendered, culled int
	app.OnUpdate = func(app *engine.App, dt time.Duration) error {
		a := 2 * math32.Pi * float32(app.NumFrames()) / float32(max(bf.frames, 1))
		r := 1.5 * bf.extent
		app.Camera.Pos = math32.Vec3(r*math32.Sin(a), 0, r*math32.Cos(a))
		st := sm.Stats()
		rendered += st.NumObjectsRendered
		culled += st.NumObjectsCulled
		return nil
	}
	start = time.Now()
	if err := app.Run(cmd.Context(), bf.frames); err != nil {
		return err
	}
	elapsed := time.Since(start)
	st := sm.Stats()
	rendered += st.NumObjectsRendered
	culled += st.NumObjectsCulled

	out := newOutput(cmd)
	title := func(s string) string { return out.String(fmt.Sprintf("%-16s", s)).Bold().String() }
	fmt.Fprintf(out, "%s %s (%s index)\n", title("backend"), re.Name(), sm.Name())
	fmt.Fprintf(out, "%s %d in %v\n", title("objects"), bf.objects, build.Round(time.Microsecond))
	frames := max(app.NumFrames(), 1)
	fmt.Fprintf(out, "%s %d in %v, %v per frame\n", title("frames"), app.NumFrames(), elapsed.Round(time.Microsecond), (elapsed / time.Duration(frames)).Round(time.Microsecond))
	fmt.Fprintf(out, "%s %s\n", title("rendered/frame"), out.String(fmt.Sprintf("%.1f", float64(rendered)/float64(frames))).Foreground(out.Color("2")))
	fmt.Fprintf(out, "%s %s\n", title("culled/frame"), out.String(fmt.Sprintf("%.1f", float64(culled)/float64(frames))).Foreground(out.Color("3")))
	rs := re.Stats()
	fmt.Fprintf(out, "%s %d draws, %d primitives\n", title("device"), rs.DrawCalls, rs.Primitives)
	if rec != nil {
		fmt.Fprintf(out, "%s %d calls, %d DrawArrays\n", title("gl"), len(rec.Calls), rec.Count("DrawArrays"))
	}
	return nil
}

// cubeLayout returns a layout drawing a unit cube as 12 triangles.
func cubeLayout(e *render.Engine) (render.RenderLayout, error) {
	vb, err := e.MakeBuffer(render.BufferDesc{Type: render.VertexBuffer}, make([]byte, 36*12))
	if err != nil {
		return nil, err
	}
	l, err := e.MakeRenderLayout()
	if err != nil {
		return nil, err
	}
	if err := l.BindVertexStream(vb, render.VertexElement{Usage: render.UsagePosition, Format: render.FormatRGB32F}); err != nil {
		return nil, err
	}
	return l, nil
}
