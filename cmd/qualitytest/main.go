package main

import (
	"context"
	"flag"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tmpim/moji"
)

var (
	inputDir   = flag.String("i", "./input_test", "directory of images to convert")
	outputDir  = flag.String("o", "./output_test", "directory to write text and preview images to")
	width      = flag.Int("w", 80, "output width in characters before aspect correction")
	cpuProfile = flag.String("cpuprofile", "", "write a CPU profile to this file")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalln("could not create CPU profile:", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalln("could not start CPU profile:", err)
		}
		defer pprof.StopCPUProfile()
	}

	files, err := ioutil.ReadDir(*inputDir)
	if err != nil {
		log.Fatalln("Failed to read input directory:", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalln("Failed to create output directory:", err)
	}

	start := time.Now()
	moji.DefaultPalette()
	log.Println("calibrate:", time.Since(start))

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		convert(f.Name())
	}
}

func convert(name string) {
	start := time.Now()

	img, err := moji.PathSource(filepath.Join(*inputDir, name)).Resolve(context.Background())
	if err != nil {
		log.Warnln("Failed to load image:", name, err)
		return
	}

	log.Println("read+decode:", time.Since(start))

	opts := moji.DefaultOptions()
	size := img.Bounds().Size()
	opts.Size.X = *width
	opts.Size.Y = *width * size.Y / size.X
	if opts.Size.Y < 1 {
		opts.Size.Y = 1
	}

	frame, err := moji.Map(img, opts)
	if err != nil {
		log.Warnln("Failed to convert image:", name, err)
		return
	}

	text := frame.String()
	log.Println("[complete] convert:", time.Since(start))

	basename := strings.TrimSuffix(name, filepath.Ext(name))
	err = ioutil.WriteFile(filepath.Join(*outputDir, basename+".txt"), []byte(text+"\n"), 0644)
	if err != nil {
		log.Warnln("Failed to write text:", err)
	}

	preview, err := os.Create(filepath.Join(*outputDir, basename+".png"))
	if err != nil {
		log.Warnln("Failed to create preview image:", err)
		return
	}

	defer preview.Close()

	err = png.Encode(preview, moji.RenderText(text, nil))
	if err != nil {
		log.Warnln("Failed to encode preview image:", err)
	}
}
