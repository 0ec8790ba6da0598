// Package moji converts raster images into text by mapping pixel brightness
// onto a palette of characters ordered by how much ink they put on screen.
//
// Palettes are calibrated by rendering every character with a font and
// counting the pixels it covers (see SortPalette). Conversion resizes the
// image, optionally adjusts its brightness and sharpness, and quantizes the
// luminance of every pixel into a palette index (see Convert).
package moji
