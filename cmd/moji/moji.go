package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"os"
	"time"

	"github.com/disintegration/gift"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"github.com/tmpim/moji"
	"golang.org/x/term"
)

var (
	outputPath  = flag.String("o", "-", "set location of output text (\"-\" for stdout)")
	previewPath = flag.String("p", "", "set location of an optional output preview (will be PNG)")
	width       = flag.Int("w", 0, "set output width in characters before scaling (0 = image width)")
	height      = flag.Int("h", 0, "set output height in characters before scaling (0 = image height)")
	fit         = flag.Bool("fit", false, "fit the output to the width of the terminal")
	scale       = flag.Float64("scale", 1, "set the scale factor of the output")
	scaleX      = flag.Float64("sx", 0, "set the horizontal scale factor (overrides -scale)")
	scaleY      = flag.Float64("sy", 0, "set the vertical scale factor (overrides -scale)")
	fixScaling  = flag.Bool("fix", true, "double the output width to correct for tall terminal cells")
	brightness  = flag.Float64("brightness", 1, "set the brightness factor (1 = unchanged)")
	sharpness   = flag.Float64("sharpness", 1, "set the sharpness factor (1 = unchanged)")
	chars       = flag.String("chars", "", "set the characters to use, lightest to darkest")
	sortChars   = flag.Bool("sort", false, "sort -chars by brightness instead of trusting their order")
	colorful    = flag.Bool("color", false, "color every character with the color of its pixel")
	profile     = flag.String("profile", "auto", "set the color profile (auto, truecolor, 256, 16, none)")
	fontPath    = flag.String("font", "", "set the TrueType/OpenType font used for calibration and preview")
	fontSize    = flag.Float64("font-size", moji.DefaultFontSize, "set the font size used with -font")
	filter      = flag.String("filter", "cubic", "set the resampling filter (nearest, box, linear, cubic, lanczos)")
	verbose     = flag.Bool("v", false, "enable debug logging")
)

var filters = map[string]gift.Resampling{
	"nearest": gift.NearestNeighborResampling,
	"box":     gift.BoxResampling,
	"linear":  gift.LinearResampling,
	"cubic":   gift.CubicResampling,
	"lanczos": gift.LanczosResampling,
}

var profiles = map[string]termenv.Profile{
	"truecolor": termenv.TrueColor,
	"256":       termenv.ANSI256,
	"16":        termenv.ANSI,
	"none":      termenv.Ascii,
}

const usage = `Usage: moji [options] <path | url | clipboard>

moji converts an image into text by mapping the brightness of every
pixel onto characters sorted by how much ink they use.
The image can be a file path, an http(s) URL, or "clip" to read
the image currently in the clipboard.

Options:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.Arg(0) == "" {
		flag.Usage()
		os.Exit(1)
	}

	resampling, ok := filters[*filter]
	if !ok {
		log.Fatalln("Unknown resampling filter:", *filter)
	}

	start := time.Now()

	font := moji.DefaultFont()
	if *fontPath != "" {
		var err error
		font, err = moji.LoadFontOrFallback(*fontPath, *fontSize)
		if err != nil {
			log.Warnln("Failed to load font, using built-in font:", err)
		}
	}

	opts := moji.DefaultOptions()
	opts.Size = image.Pt(*width, *height)
	opts.FixScaling = *fixScaling
	opts.Scale = moji.Uniform(*scale)
	if *scaleX > 0 {
		opts.Scale.X = *scaleX
	}
	if *scaleY > 0 {
		opts.Scale.Y = *scaleY
	}
	opts.Brightness = *brightness
	opts.Sharpness = *sharpness
	opts.Filter = resampling
	opts.Calibrator = moji.NewCalibrator(font)

	switch {
	case *chars != "":
		opts.Palette = []rune(*chars)
		opts.SortChars = *sortChars
	case *fontPath != "":
		opts.Palette = opts.Calibrator.Sort([]rune(moji.DefaultCharset))
	}

	log.Debugln("calibrated:", time.Since(start))

	img, err := moji.ParseSource(flag.Arg(0)).Resolve(context.Background())
	if err != nil {
		log.Fatalln("Failed to load image:", err)
	}

	log.Debugln("image loaded:", time.Since(start))

	if *fit {
		size, err := fitToTerminal(img.Bounds().Size(), opts.FixScaling)
		if err != nil {
			log.Warnln("Failed to get terminal size, not fitting:", err)
		} else {
			opts.Size = size
		}
	}

	frame, err := moji.Map(img, opts)
	if err != nil {
		log.Fatalln("Failed to convert image:", err)
	}

	log.Debugf("converted to %dx%d: %v", frame.Width, frame.Height, time.Since(start))

	var enc moji.ColorEncoder
	if *colorful {
		enc, err = encoder(*profile)
		if err != nil {
			log.Fatalln(err)
		}
	}

	if *outputPath == "-" {
		err = frame.Encode(os.Stdout, enc)
		if err == nil {
			_, err = os.Stdout.WriteString("\n")
		}
	} else {
		err = writeFile(*outputPath, frame, enc)
	}
	if err != nil {
		log.Fatalln("Failed to write output:", err)
	}

	if *previewPath != "" {
		writePreview(*previewPath, frame.String(), font)
	}

	log.Debugln("done:", time.Since(start))
}

func encoder(name string) (moji.ColorEncoder, error) {
	if name == "auto" {
		return moji.DefaultEncoder(), nil
	}

	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown color profile: %s", name)
	}

	return moji.TermEncoder{Profile: p}, nil
}

// fitToTerminal returns a target size whose output spans the width of the
// terminal while keeping the aspect ratio of an image of the given size.
func fitToTerminal(native image.Point, fixScaling bool) (image.Point, error) {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return image.Point{}, err
	}

	w := cols
	if fixScaling {
		w /= 2
	}
	if w < 1 {
		w = 1
	}

	h := w * native.Y / native.X
	if h < 1 {
		h = 1
	}

	return image.Pt(w, h), nil
}

func writeFile(path string, frame *moji.Frame, enc moji.ColorEncoder) error {
	var text string
	if enc == nil {
		text = frame.String()
	} else {
		text = frame.Colored(enc)
	}

	return ioutil.WriteFile(path, []byte(text+"\n"), 0644)
}

func writePreview(path, text string, font *moji.Font) {
	preview, err := os.Create(path)
	if err != nil {
		log.Warnln("Failed to create preview image:", err)
		return
	}

	defer preview.Close()

	err = png.Encode(preview, moji.RenderText(text, font))
	if err != nil {
		log.Warnln("Failed to encode preview image:", err)
	}
}
