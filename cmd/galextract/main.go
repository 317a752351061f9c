package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	gx "github.com/Amatsutsumi/gal-extract"
)

func main() {
	if len(os.Args) < 2 {
		showUsage()
		fmt.Println("\nError: No mode specified.")
		os.Exit(1)
	}
	cmd := strings.ToLower(os.Args[1])

	var sumType, reject string
	var arcPath string
	var threads int
	var showProg bool
	flagSet := flag.NewFlagSet("galextract", flag.ExitOnError)
	flagSet.StringVar(&arcPath, "arc", "", "archive file to read")
	flagSet.StringVar(&sumType, "sumtype", "xxhash", "payload digest type: crc16, crc32, xxhash, sha256, blake3")
	flagSet.StringVar(&reject, "reject", "BM", "comma-separated name prefixes that end the directory")
	flagSet.IntVar(&threads, "threads", runtime.NumCPU(), "parallel extraction workers")
	flagSet.BoolVar(&showProg, "progress", true, "show progress bar")
	flagSet.Parse(os.Args[2:])

	gx.ResetDefaults()

	//Options
	jsonList := false
	for _, letter := range cmd {
		switch letter {
		case 'v':
			gx.VerboseMode = true
		case 's':
			gx.ComputeSums = true
		case 'j':
			jsonList = true
		default:
			continue
		}
		cmd = cmd[:len(cmd)-1]
	}

	if len(cmd) == 0 {
		showUsage()
		log.Fatal("No mode specified")
	}
	if arcPath == "" {
		showUsage()
		log.Fatal("You must specify an archive with -arc.")
	}

	gx.Threads = threads
	gx.ShowProgress = showProg
	if err := gx.SetChecksumType(sumType); err != nil {
		log.Fatalf("%v", err)
	}
	if reject == "" {
		gx.SetRejectPrefixes(nil)
	} else {
		gx.SetRejectPrefixes(strings.Split(reject, ","))
	}

	//Modes
	switch cmd[0] {
	case 'l':
		gx.ShowProgress = false
		if err := gx.List(arcPath, jsonList); err != nil {
			log.Fatalf("list: %v", err)
		}
	case 'x':
		var destination string
		if args := flagSet.Args(); len(args) > 0 {
			destination = args[0]
		}
		if _, err := gx.Extract(arcPath, destination); err != nil {
			log.Fatalf("extract: %v", err)
		}
	default:
		showUsage()
		log.Fatalf("Unknown mode: %c", cmd[0])
	}
}

func showUsage() {
	fmt.Println("Usage: galextract [x|l][vsj] -arc=arcFile [destination]")
	fmt.Println("\nModes:")
	fmt.Println("  x = Extract files from archive. Requires -arc")
	fmt.Println("  l = List archive contents. Requires -arc")

	fmt.Println("\nOptions:")
	fmt.Print("  v = Verbose logging	")
	fmt.Println("  s = Record payload digests")
	fmt.Println("  j = JSON listing (with l)")
	fmt.Println()
	fmt.Println("  galextract x -arc=GAME.UNI			(extract to ./output)")
	fmt.Println("  galextract xs -arc=GAME.UNI unpacked	(extract with digests)")
	fmt.Println("  galextract lj -arc=GAME.UNI			(JSON entry listing)")
}
