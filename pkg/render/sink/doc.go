// Package sink encodes a finished word cloud into output formats.
//
// Raster formats ([RenderPNG], [RenderJPEG]) encode the canvas produced by
// [render.Render]. Vector and data formats ([RenderSVG], [RenderJSON]) are
// written straight from the layout, so they stay exact at any zoom and need
// no rasterization.
//
// Every renderer takes functional options and returns the encoded bytes; none
// of them touch the filesystem. Use [FormatFromPath] to pick a format from an
// output file name.
//
// [render.Render]: github.com/matzehuels/wordcloud/pkg/render.Render
package sink
