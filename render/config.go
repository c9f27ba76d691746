package render

import (
	"fmt"
	"math"

	"gopkg.in/ini.v1"

	"levelplot/interp"
	"levelplot/model"
)

// Options 为绘图参数，原先写死在脚本里的值都放到这里
type Options struct {
	// input
	ScalarPath    string
	VelocityPath  string
	SimConfigPath string

	// output
	OutputDir     string
	Prefix        string
	MovieFile     string // 为空时不生成视频
	FPS           int
	GalleryFile   string
	GalleryPanels int

	// frames
	Start  int
	End    int // < 0 表示到最后一块
	Strict bool

	// grid
	ScalarCols      int // 0 表示 2 * horizontal_cells
	ScalarRows      int // 0 表示 2 * vertical_cells
	ScalarMethod    interp.Method
	VelocityMethod  interp.Method
	QuiverSubsample int // 0 表示直接使用原始速度采样点

	// style
	Quantity          model.Quantity
	Colormap          string
	VMin              float64 // NaN 表示按物理量自动确定
	VMax              float64
	QuiverScale       float64
	ArrowWidth        float64 // points
	HeadWidth         float64 // 箭头宽度，ArrowWidth 的倍数
	MagnitudeColormap string
	Contour           bool
	ContourLevels     int
	ContourColormap   string
	WidthInches       float64
	DPI               int
}

// DefaultOptions mirrors the values the movie script used.
func DefaultOptions() *Options {
	opts, _ := loadCfg(ini.Empty())
	return opts
}

// LoadOptions reads render options from an ini file, keys that are absent
// keep their defaults.
func LoadOptions(path string) (*Options, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load render config %s: %w", path, err)
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) (*Options, error) {
	in := file.Section("input")
	out := file.Section("output")
	frames := file.Section("frames")
	grid := file.Section("grid")
	style := file.Section("style")

	opts := &Options{
		ScalarPath:    in.Key("phi").MustString("plot/data/phi.txt"),
		VelocityPath:  in.Key("velocity").MustString("plot/data/vel.txt"),
		SimConfigPath: in.Key("sim_config").MustString("config.json"),

		OutputDir:     out.Key("dir").MustString("plot/images"),
		Prefix:        out.Key("prefix").MustString("phi"),
		MovieFile:     out.Key("movie").MustString(""),
		FPS:           out.Key("fps").MustInt(24),
		GalleryFile:   out.Key("gallery").MustString("phi.png"),
		GalleryPanels: out.Key("gallery_panels").MustInt(10),

		Start:  frames.Key("start").MustInt(0),
		End:    frames.Key("end").MustInt(-1),
		Strict: frames.Key("strict").MustBool(true),

		ScalarCols:      grid.Key("scalar_cols").MustInt(0),
		ScalarRows:      grid.Key("scalar_rows").MustInt(0),
		QuiverSubsample: grid.Key("quiver_subsample").MustInt(4),

		Colormap:          style.Key("colormap").MustString("pastel2"),
		VMin:              optionalFloat(style, "vmin"),
		VMax:              optionalFloat(style, "vmax"),
		QuiverScale:       style.Key("quiver_scale").MustFloat64(10),
		ArrowWidth:        style.Key("arrow_width").MustFloat64(1),
		HeadWidth:         style.Key("head_width").MustFloat64(2),
		MagnitudeColormap: style.Key("magnitude_colormap").MustString("viridis"),
		Contour:           style.Key("contour").MustBool(false),
		ContourLevels:     style.Key("contour_levels").MustInt(8),
		ContourColormap:   style.Key("contour_colormap").MustString("rdbu_r"),
		WidthInches:       style.Key("width").MustFloat64(10),
		DPI:               style.Key("dpi").MustInt(96),
	}

	var err error
	if opts.ScalarMethod, err = interp.ParseMethod(grid.Key("scalar_method").MustString(string(interp.Linear))); err != nil {
		return nil, err
	}
	if opts.VelocityMethod, err = interp.ParseMethod(grid.Key("velocity_method").MustString(string(interp.Linear))); err != nil {
		return nil, err
	}
	if opts.Quantity, err = model.ParseQuantity(style.Key("quantity").MustString(string(model.QuantityFluid))); err != nil {
		return nil, err
	}
	return opts, opts.Validate()
}

func optionalFloat(sec *ini.Section, key string) float64 {
	if !sec.HasKey(key) {
		return math.NaN()
	}
	return sec.Key(key).MustFloat64(math.NaN())
}

func (o *Options) Validate() error {
	switch {
	case o.ScalarCols < 0 || o.ScalarRows < 0:
		return fmt.Errorf("scalar grid %dx%d must not be negative", o.ScalarCols, o.ScalarRows)
	case o.QuiverSubsample < 0:
		return fmt.Errorf("quiver_subsample %d must not be negative", o.QuiverSubsample)
	case !(o.QuiverScale > 0):
		return fmt.Errorf("quiver_scale %v must be positive", o.QuiverScale)
	case !(o.WidthInches > 0) || o.DPI <= 0:
		return fmt.Errorf("image size %vin at %d dpi is invalid", o.WidthInches, o.DPI)
	case o.FPS <= 0:
		return fmt.Errorf("fps %d must be positive", o.FPS)
	case o.Contour && o.ContourLevels <= 0:
		return fmt.Errorf("contour_levels %d must be positive", o.ContourLevels)
	}
	return nil
}

// 标量网格分辨率，默认每个单元两个节点
func (o *Options) scalarDims(cfg *model.SimConfig) (int, int) {
	cols, rows := o.ScalarCols, o.ScalarRows
	if cols == 0 {
		cols = 2 * cfg.HorizontalCells
	}
	if rows == 0 {
		rows = 2 * cfg.VerticalCells
	}
	return max(cols, 2), max(rows, 2)
}

// 速度网格比标量网格稀疏，是独立的插值目标
func (o *Options) quiverDims(cfg *model.SimConfig) (int, int) {
	return max(cfg.HorizontalCells/o.QuiverSubsample, 2), max(cfg.VerticalCells/o.QuiverSubsample, 2)
}
