// Copyright (c) 2026, Kiln Contributors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kilnworks/kiln/engine"
	"github.com/kilnworks/kiln/events"
	"github.com/kilnworks/kiln/math32"
	"github.com/kilnworks/kiln/render"
)

// Window is a desktop window with a WebGPU surface. It implements
// [engine.Window]: OS callbacks push translated events onto the
// window's queue, and the frame loop drains them once per frame.
type Window struct {
	win       *glfw.Window
	queue     events.Queue
	surface   *wgpu.Surface
	adapter   *wgpu.Adapter
	device    *wgpu.Device
	gpu       *render.WGPUDevice
	format    wgpu.TextureFormat
	alphaMode wgpu.CompositeAlphaMode
	clear     wgpu.Color

	depth     *wgpu.Texture
	depthView *wgpu.TextureView

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder

	// RenderFunc draws one frame; set it before running the engine.
	RenderFunc func(e *engine.Engine, w *Window, b *events.Batch) error
}

var _ engine.Window = (*Window)(nil)

// NewWindow creates the window, its surface, and a device, and wires
// the event callbacks. Must run on the main thread after [Init].
func NewWindow(cfg Config) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	w := &Window{
		win: win,
		clear: wgpu.Color{
			R: float64(cfg.ClearColor[0]),
			G: float64(cfg.ClearColor[1]),
			B: float64(cfg.ClearColor[2]),
			A: float64(cfg.ClearColor[3]),
		},
	}
	w.queue.Init()

	inst := wgpu.CreateInstance(nil)
	w.surface = inst.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	w.adapter, err = inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: w.surface,
	})
	if err != nil {
		win.Destroy()
		return nil, err
	}
	w.device, err = w.adapter.RequestDevice(nil)
	if err != nil {
		win.Destroy()
		return nil, err
	}

	caps := w.surface.GetCapabilities(w.adapter)
	if len(caps.Formats) == 0 {
		win.Destroy()
		return nil, fmt.Errorf("platform: surface has no supported formats")
	}
	w.format = caps.Formats[0]
	if len(caps.AlphaModes) > 0 {
		w.alphaMode = caps.AlphaModes[0]
	}

	fw, fh := win.GetFramebufferSize()
	if err := w.configure(fw, fh); err != nil {
		win.Destroy()
		return nil, err
	}

	w.gpu, err = render.NewWGPUDevice(w.adapter, w.device, w.format)
	if err != nil {
		win.Destroy()
		return nil, err
	}

	w.setCallbacks()
	return w, nil
}

// GPU returns the render device backed by this window's surface.
func (w *Window) GPU() *render.WGPUDevice { return w.gpu }

// Size returns the current logical size.
func (w *Window) Size() math32.Vector2 {
	wd, ht := w.win.GetSize()
	return math32.Vec2(float32(wd), float32(ht))
}

// Queue is the window's event queue.
func (w *Window) Queue() *events.Queue { return &w.queue }

// Poll pumps OS events; callbacks enqueue translated events.
func (w *Window) Poll() {
	glfw.PollEvents()
}

// Closed reports whether the window has been destroyed.
func (w *Window) Closed() bool {
	return w.win == nil
}

// Render invokes the window's RenderFunc.
func (w *Window) Render(e *engine.Engine, b *events.Batch) error {
	if w.RenderFunc == nil {
		return nil
	}
	return w.RenderFunc(e, w, b)
}

// Destroy releases the window and its GPU resources.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.releaseDepth()
	w.gpu.Release()
	w.win.Destroy()
	w.win = nil
}

// configure sizes the swapchain and depth buffer to the framebuffer.
func (w *Window) configure(width, height int) error {
	if width < 1 || height < 1 {
		return nil
	}
	w.surface.Configure(w.adapter, w.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      w.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   w.alphaMode,
	})
	w.releaseDepth()
	depth, err := w.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	view, err := depth.CreateView(nil)
	if err != nil {
		depth.Release()
		return err
	}
	w.depth, w.depthView = depth, view
	return nil
}

func (w *Window) releaseDepth() {
	if w.depthView != nil {
		w.depthView.Release()
		w.depthView = nil
	}
	if w.depth != nil {
		w.depth.Release()
		w.depth = nil
	}
}

// BeginFrame acquires the next surface texture and opens a render
// pass cleared to the window clear color, with depth cleared to 0
// for reverse-Z. A lost surface returns an error; the caller skips
// the frame.
func (w *Window) BeginFrame() (*render.WGPUPass, error) {
	if w.frameSurface != nil {
		return nil, fmt.Errorf("platform: previous frame not presented")
	}
	st, err := w.surface.GetCurrentTexture()
	if err != nil {
		fw, fh := w.win.GetFramebufferSize()
		w.configure(fw, fh)
		return nil, err
	}
	view, err := st.CreateView(nil)
	if err != nil {
		st.Release()
		return nil, err
	}
	enc, err := w.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		st.Release()
		return nil, err
	}
	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: w.clear,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            w.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 0,
		},
	})
	w.frameSurface, w.frameView, w.frameEncoder, w.framePass = st, view, enc, pass
	return &render.WGPUPass{Enc: pass}, nil
}

// EndFrame closes the pass, submits, and presents.
func (w *Window) EndFrame() error {
	if w.frameSurface == nil {
		return fmt.Errorf("platform: no frame begun")
	}
	w.framePass.End()
	cmd, err := w.frameEncoder.Finish(nil)
	if err == nil {
		w.device.GetQueue().Submit(cmd)
		cmd.Release()
		w.surface.Present()
	}
	w.frameEncoder.Release()
	w.frameView.Release()
	w.frameSurface.Release()
	w.frameSurface, w.frameView, w.frameEncoder, w.framePass = nil, nil, nil, nil
	return err
}
