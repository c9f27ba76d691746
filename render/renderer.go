package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"levelplot/model"
)

var ErrNoFrames = errors.New("no frames to render")

// Renderer turns aligned frames into images. It holds no state between
// frames; every frame is drawn onto a fresh canvas.
type Renderer struct {
	cfg  *model.SimConfig
	opts *Options

	heat      palette.Palette
	magnitude palette.Palette
	contour   palette.Palette
}

func NewRenderer(cfg *model.SimConfig, opts *Options) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{cfg: cfg, opts: opts}
	var err error
	if r.heat, err = NewPalette(opts.Colormap); err != nil {
		return nil, err
	}
	if r.magnitude, err = NewPalette(opts.MagnitudeColormap); err != nil {
		return nil, err
	}
	if opts.Contour {
		if r.contour, err = NewPalette(opts.ContourColormap); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// 画布尺寸，宽高比与计算区域一致
func (r *Renderer) canvasSize() (vg.Length, vg.Length) {
	w := vg.Length(r.opts.WidthInches) * vg.Inch
	return w, w * vg.Length(r.cfg.YMax()/r.cfg.XMax())
}

func (r *Renderer) newCanvas(w, h vg.Length) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.opts.DPI))
}

// RenderMovie renders every frame in order to <dir>/<prefix>NNNNN.png and,
// when a movie file is configured, appends it to an MJPEG AVI. The first
// failure stops the run.
func (r *Renderer) RenderMovie(frames []model.Frame) (infos []FrameInfo, err error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	vmin, vmax, err := r.ColorBounds(frames)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var movie *movieWriter
	if r.opts.MovieFile != "" {
		movie = newMovieWriter(r.opts.MovieFile, r.opts.FPS)
		defer func() {
			if cerr := movie.close(); cerr != nil && err == nil {
				err = fmt.Errorf("close movie: %w", cerr)
			}
		}()
	}

	w, h := r.canvasSize()
	for _, f := range frames {
		p, info, err := r.BuildFrame(f, vmin, vmax)
		if err != nil {
			return infos, err
		}
		img := r.newCanvas(w, h)
		p.Draw(draw.New(img))

		info.Path = filepath.Join(r.opts.OutputDir, fmt.Sprintf("%s%05d.png", r.opts.Prefix, f.Index))
		if err := writePNG(info.Path, img); err != nil {
			return infos, err
		}
		if movie != nil {
			if err := movie.add(img.Image()); err != nil {
				return infos, err
			}
		}
		log.WithFields(log.Fields{
			"frame":     f.Index,
			"path":      info.Path,
			"undefined": info.Undefined,
		}).Info("帧已保存")
		infos = append(infos, info)
	}
	return infos, nil
}

// RenderGallery renders up to GalleryPanels frames as titled panels of a
// single composite image.
func (r *Renderer) RenderGallery(frames []model.Frame) (string, []FrameInfo, error) {
	if len(frames) == 0 {
		return "", nil, ErrNoFrames
	}
	if r.opts.GalleryPanels > 0 && len(frames) > r.opts.GalleryPanels {
		log.WithFields(log.Fields{
			"frames": len(frames),
			"panels": r.opts.GalleryPanels,
		}).Warn("帧数超过面板数量，只绘制前面的帧")
		frames = frames[:r.opts.GalleryPanels]
	}
	vmin, vmax, err := r.ColorBounds(frames)
	if err != nil {
		return "", nil, err
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create output dir: %w", err)
	}

	rows, cols := GalleryLayout(len(frames))
	plots := make([][]*plot.Plot, rows)
	infos := make([]FrameInfo, 0, len(frames))
	for j := range plots {
		plots[j] = make([]*plot.Plot, cols)
		for i := range plots[j] {
			f := frames[j*cols+i]
			p, info, err := r.BuildFrame(f, vmin, vmax)
			if err != nil {
				return "", infos, err
			}
			p.Title.Text = fmt.Sprintf("t=%d", f.Index)
			plots[j][i] = p
			infos = append(infos, info)
		}
	}

	// 每个面板取单帧尺寸的一半
	w, h := r.canvasSize()
	w, h = w/2, h/2+vg.Inch/4
	img := r.newCanvas(w*vg.Length(cols), h*vg.Length(rows))
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(img))
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	path := filepath.Join(r.opts.OutputDir, r.opts.GalleryFile)
	for k := range infos {
		infos[k].Path = path
	}
	if err := writePNG(path, img); err != nil {
		return "", infos, err
	}
	log.WithFields(log.Fields{
		"panels": len(frames),
		"rows":   rows,
		"cols":   cols,
		"path":   path,
	}).Info("组图已保存")
	return path, infos, nil
}

func writePNG(path string, img *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
