package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/mask"
)

// Mask is a processed mask together with its cache identity.
type Mask struct {
	Bitmap *mask.Bitmap
	Stats  mask.Stats

	// Hash covers the encoded image and every processing option.
	Hash string
}

// LoadMask processes the run's mask image at width × height, or at its
// native size when UseMaskSize is set. It returns nil when there is no mask.
//
// A missing or unreadable mask is not fatal: the run continues on the full
// rectangle and the problem is returned as a warning.
func LoadMask(opts Options, width, height int, logger *log.Logger) (*Mask, []errors.Warning) {
	data := opts.MaskImage
	source := "request"
	if len(data) == 0 {
		if opts.MaskPath == "" {
			return nil, nil
		}
		source = opts.MaskPath
		var err error
		data, err = os.ReadFile(opts.MaskPath)
		if os.IsNotExist(err) {
			return nil, []errors.Warning{errors.Warn(errors.ErrCodeFileNotFound, err, "mask image not found: %s", opts.MaskPath)}
		}
		if err != nil {
			return nil, []errors.Warning{errors.Warn(errors.ErrCodeMaskUnreadable, err, "read mask image %s", opts.MaskPath)}
		}
	}

	if opts.UseMaskSize {
		width, height = 0, 0
	}
	mopts := opts.maskOptions(width, height)
	bm, stats, err := mask.Decode(bytes.NewReader(data), mopts)
	if err != nil {
		return nil, []errors.Warning{errors.AsWarning(err, errors.ErrCodeMaskUnreadable)}
	}

	logger.Info("loaded mask image", "source", source,
		"size", [2]int{stats.SourceWidth, stats.SourceHeight},
		"canvas", [2]int{bm.Width(), bm.Height()})
	logger.Debug("mask statistics", "stats", stats.String())

	hash, _ := cache.HashJSON(struct {
		Data      string `json:"data"`
		Polarity  string `json:"polarity"`
		Threshold int    `json:"threshold"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Bg        string `json:"bg"`
	}{cache.Hash(data), opts.polarity.String(), opts.Threshold, bm.Width(), bm.Height(), opts.Background})

	return &Mask{Bitmap: bm, Stats: stats, Hash: hash}, nil
}

// ComputeLayout packs the table onto a width × height canvas. bm may be nil
// for an unmasked canvas; otherwise it must have the canvas size.
func ComputeLayout(ctx context.Context, table freq.Table, raster layout.Rasterizer, bm *mask.Bitmap, width, height int, opts Options) (*layout.Result, error) {
	engine, err := layout.New(raster, opts.layoutOptions(width, height))
	if err != nil {
		return nil, err
	}
	return engine.Place(ctx, table, bm)
}

func marshalLayout(res *layout.Result) ([]byte, error) {
	return json.Marshal(res)
}

func unmarshalLayout(data []byte) (*layout.Result, error) {
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
