package main

/*
a2catalog is a read-only cataloging and extraction tool for Apple // DOS 3.3
disk images.

It lists catalogs, reports free space, extracts files with type-aware
decoding (text, Applesoft and Integer BASIC listings, binary, relocatable),
and can serve a mounted image over HTTP. An interactive shell is available
for poking around inside an image.
*/

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"flag"

	"github.com/paleotronic/a2catalog/dos33"
	"github.com/paleotronic/a2catalog/loggy"
)

func usage() {
	fmt.Printf(`%s <options>

Tool catalogs and extracts files from Apple ][ DOS 3.3 disk images,
typically %d bytes in size.

`, path.Base(os.Args[0]), dos33.STD_DISK_BYTES)
	flag.PrintDefaults()
}

func binpath() string {

	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE") + "/A2Catalog"
	}
	return os.Getenv("HOME") + "/A2Catalog"

}

func init() {
	loggy.LogFolder = binpath() + "/logs/"
}

var dskName = flag.String("disk", "", "Disk image to operate on")
var catalog = flag.Bool("catalog", false, "List disk contents (-disk required)")
var showDeleted = flag.Bool("deleted", false, "Include deleted entries in catalog listings")
var freeMap = flag.Bool("free", false, "Report free sectors (-disk required)")
var extract = flag.String("extract", "", "Extract files matching pattern ('*' for all, -disk required)")
var rawExtract = flag.Bool("raw", false, "Extract raw sector contents instead of decoding")
var outDir = flag.String("out", ".", "Output directory for extracted files")
var verbose = flag.Bool("verbose", false, "Log to stderr")
var shell = flag.Bool("shell", false, "Start interactive mode")
var listen = flag.String("listen", "", "Serve mounted disk over HTTP on this address (e.g. :6502)")

func main() {

	flag.Usage = usage

	flag.Parse()

	loggy.ECHO = *verbose

	l := loggy.Get(0)

	var dsk *dos33.DiskImage
	if *dskName != "" {
		var err error
		dsk, err = dos33.OpenDiskImage(*dskName)
		if err != nil {
			os.Stderr.WriteString("Failed to open " + *dskName + ": " + err.Error() + "\n")
			os.Exit(2)
		}
		defer dsk.Close()
		l.Logf("Mounted %s: %d tracks, %d sectors", *dskName, dsk.Tracks(), dsk.Sectors())
	}

	if *shell {
		shellDo(dsk)
		os.Exit(0)
	}

	if *listen != "" {
		if dsk == nil {
			os.Stderr.WriteString("-listen requires -disk\n")
			os.Exit(3)
		}
		if err := serve(dsk, *listen); err != nil {
			l.Fatalf("Server failed: %v", err)
		}
		return
	}

	if dsk == nil {
		usage()
		os.Exit(1)
	}

	if *catalog {
		if err := printCatalog(os.Stdout, dsk, *showDeleted); err != nil {
			l.Fatalf("Catalog failed: %v", err)
		}
		return
	}

	if *freeMap {
		if err := printFreeMap(os.Stdout, dsk); err != nil {
			l.Fatalf("Free map failed: %v", err)
		}
		return
	}

	if *extract != "" {
		count, err := extractFiles(dsk, *extract, *outDir, *rawExtract)
		if err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(2)
		}
		os.Stderr.WriteString(fmt.Sprintf("%d files were extracted\n", count))
		return
	}

	usage()
	os.Exit(1)
}
