package main

import (
	"errors"
	"flag"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"levelplot/blocks"
	"levelplot/model"
	"levelplot/render"
)

func main() {
	confPath := flag.String("conf", "conf/render.ini", "render options file")
	mode := flag.String("mode", "movie", "movie: one png per frame, gallery: one composite png")
	start := flag.Int("start", 0, "first block index")
	end := flag.Int("end", -1, "last block index, -1 for the last block")
	quantity := flag.String("quantity", "", "heatmap quantity: fluid, phi or pressure")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	opts, err := render.LoadOptions(*confPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("conf", *confPath).Warn("配置文件不存在，使用默认参数")
		opts, err = render.DefaultOptions(), nil
	}
	if err != nil {
		log.Fatal(err)
	}

	// 命令行参数覆盖配置文件
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			opts.Start = *start
		case "end":
			opts.End = *end
		case "quantity":
			q, err := model.ParseQuantity(*quantity)
			if err != nil {
				log.Fatal(err)
			}
			opts.Quantity = q
		}
	})

	if err := run(*mode, opts); err != nil {
		log.Fatal(err)
	}
}

func run(mode string, opts *render.Options) error {
	cfg, err := model.LoadSimConfig(opts.SimConfigPath)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"horizontal_cells": cfg.HorizontalCells,
		"vertical_cells":   cfg.VerticalCells,
		"cell_size":        cfg.CellSize,
		"fluids":           cfg.NumFluids(),
	}).Info("读取模拟配置")

	frames, err := blocks.LoadDataset(opts.ScalarPath, opts.VelocityPath, opts.Start, opts.End, opts.Strict)
	if err != nil {
		return err
	}

	r, err := render.NewRenderer(cfg, opts)
	if err != nil {
		return err
	}
	switch mode {
	case "movie":
		_, err = r.RenderMovie(frames)
	case "gallery":
		_, _, err = r.RenderGallery(frames)
	default:
		err = errors.New("unknown mode " + mode + ", must be movie or gallery")
	}
	return err
}
