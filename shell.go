package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/paleotronic/a2catalog/dos33"
	"github.com/paleotronic/a2catalog/loggy"
)

var commandList map[string]*shellCommand
var commandVolume *dos33.DiskImage

type shellCommand struct {
	Name             string
	Description      string
	MinArgs, MaxArgs int
	Code             func(args []string) int
	NeedsMount       bool
	Text             []string
}

func getPrompt() string {
	if commandVolume == nil {
		return "dsk:<no mount>> "
	}
	return fmt.Sprintf("dsk:%s> ", filepath.Base(commandVolume.Filename))
}

type shellCompleter struct {
}

func (sc *shellCompleter) Do(line []rune, pos int) ([][]rune, int) {

	chunk := ""
	for i := 0; i < pos; i++ {
		if line[i] == ' ' {
			return nil, 0
		}
		chunk += string(line[i])
	}

	var items [][]rune
	for k := range commandList {
		if strings.HasPrefix(k, chunk) {
			items = append(items, []rune(k[len(chunk):]))
		}
	}

	return items, len(chunk)
}

func init() {
	commandList = map[string]*shellCommand{
		"mount": &shellCommand{
			Name:        "mount",
			Description: "Mount a disk image",
			MinArgs:     1,
			MaxArgs:     1,
			Code:        shellMount,
			NeedsMount:  false,
			Text: []string{
				"mount <diskfile>",
				"",
				"Opens the image and reads its volume table of contents.",
			},
		},
		"unmount": &shellCommand{
			Name:        "unmount",
			Description: "Unmount the current disk image",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        shellUnmount,
			NeedsMount:  true,
		},
		"info": &shellCommand{
			Name:        "info",
			Description: "Display details about the mounted disk",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        shellInfo,
			NeedsMount:  true,
		},
		"cat": &shellCommand{
			Name:        "cat",
			Description: "Display the disk catalog",
			MinArgs:     0,
			MaxArgs:     1,
			Code:        shellCat,
			NeedsMount:  true,
			Text: []string{
				"cat [deleted]",
				"",
				"Lists live files. With 'deleted', includes deleted entries.",
			},
		},
		"type": &shellCommand{
			Name:        "type",
			Description: "Display a file's decoded contents",
			MinArgs:     1,
			MaxArgs:     1,
			Code:        shellType,
			NeedsMount:  true,
			Text: []string{
				"type <filename>",
				"",
				"Text files are shown as 7-bit text, BASIC programs as listings,",
				"binary and relocatable files as a hex dump.",
			},
		},
		"extract": &shellCommand{
			Name:        "extract",
			Description: "Extract files to the local directory",
			MinArgs:     1,
			MaxArgs:     2,
			Code:        shellExtract,
			NeedsMount:  true,
			Text: []string{
				"extract <pattern> [<path>]",
				"",
				"Pattern '*' matches all files. Files are decoded on the way out.",
			},
		},
		"free": &shellCommand{
			Name:        "free",
			Description: "Display the free sector map",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        shellFree,
			NeedsMount:  true,
		},
		"help": &shellCommand{
			Name:        "help",
			Description: "Display help",
			MinArgs:     0,
			MaxArgs:     1,
			Code:        shellHelp,
			NeedsMount:  false,
		},
		"quit": &shellCommand{
			Name:        "quit",
			Description: "Leave the shell",
			MinArgs:     0,
			MaxArgs:     0,
			Code:        shellQuit,
			NeedsMount:  false,
		},
	}
}

func shellProcess(line string) int {
	line = strings.TrimSpace(line)

	parts, err := shellquote.Split(line)
	if err != nil {
		os.Stderr.WriteString("Parse error: " + err.Error() + "\n")
		return -1
	}
	if len(parts) == 0 {
		return 0
	}
	verb, args := strings.ToLower(parts[0]), parts[1:]

	command, ok := commandList[verb]
	if !ok {
		os.Stderr.WriteString(fmt.Sprintf("Unrecognized command: %s\n", verb))
		return -1
	}

	fmt.Println()
	var cok = true
	if len(args) < command.MinArgs {
		os.Stderr.WriteString(fmt.Sprintf("%s expects at least %d arguments\n", verb, command.MinArgs))
		cok = false
	}
	if len(args) > command.MaxArgs {
		os.Stderr.WriteString(fmt.Sprintf("%s expects at most %d arguments\n", verb, command.MaxArgs))
		cok = false
	}
	if command.NeedsMount && commandVolume == nil {
		os.Stderr.WriteString(fmt.Sprintf("%s only works on mounted disks\n", verb))
		cok = false
	}
	if !cok {
		return -1
	}

	r := command.Code(args)
	fmt.Println()
	return r
}

func shellDo(dsk *dos33.DiskImage) {

	commandVolume = dsk

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 getPrompt(),
		HistoryFile:            binpath() + "/.shell_history",
		DisableAutoSaveHistory: false,
		AutoComplete:           &shellCompleter{},
	})
	if err != nil {
		os.Exit(2)
	}
	defer rl.Close()

	running := true

	for running {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		r := shellProcess(line)
		if r == 999 {
			return
		}

		rl.SetPrompt(getPrompt())
	}

}

func shellMount(args []string) int {

	dsk, err := dos33.OpenDiskImage(args[0])
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return -1
	}

	if commandVolume != nil {
		commandVolume.Close()
	}
	commandVolume = dsk
	loggy.Get(0).Logf("Mounted %s", args[0])

	return 0
}

func shellUnmount(args []string) int {
	commandVolume.Close()
	commandVolume = nil
	return 0
}

func shellInfo(args []string) int {

	dsk := commandVolume
	v := dsk.VTOC()

	fmt.Printf("Disk path   : %s\n", dsk.Filename)
	fmt.Printf("Volume      : %d\n", v.VolumeID())
	fmt.Printf("DOS version : %d\n", v.DOSVersion())
	fmt.Printf("Geometry    : %d tracks x %d sectors x %d bytes\n",
		dsk.Tracks(), dsk.Sectors(), dsk.SectorSize())

	return 0
}

func shellCat(args []string) int {

	withDeleted := len(args) > 0 && strings.ToLower(args[0]) == "deleted"

	if err := printCatalog(os.Stdout, commandVolume, withDeleted); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return -1
	}

	return 0
}

func shellType(args []string) int {

	dsk := commandVolume

	fd, err := dsk.NamedEntry(strings.ToUpper(args[0]))
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return -1
	}

	switch fd.Type() {
	case dos33.FileTypeTXT, dos33.FileTypeAPP, dos33.FileTypeINT:
		data, err := decodeForExport(dsk, fd)
		if err != nil {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
			return -1
		}
		fmt.Println(string(data))
	default:
		data, err := dsk.ReadFile(fd)
		if err != nil {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
			return -1
		}
		hexDump(os.Stdout, data)
	}

	return 0
}

func hexDump(w *os.File, data []byte) {
	for base := 0; base < len(data); base += 16 {
		end := base + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[base:end]
		hex := ""
		ascii := ""
		for _, b := range chunk {
			hex += fmt.Sprintf("%.2x ", b)
			c := dos33.ToChar(b)
			if c >= 0x20 && c < 0x7F {
				ascii += string(c)
			} else {
				ascii += "."
			}
		}
		fmt.Fprintf(w, "%.4x: %-48s %s\n", base, hex, ascii)
	}
}

func shellExtract(args []string) int {

	outdir := "."
	if len(args) > 1 {
		outdir = args[1]
	}

	count, err := extractFiles(commandVolume, args[0], outdir, false)
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return -1
	}
	fmt.Printf("%d files extracted\n", count)

	return 0
}

func shellFree(args []string) int {

	if err := printFreeMap(os.Stdout, commandVolume); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return -1
	}

	return 0
}

func shellHelp(args []string) int {

	if len(args) == 1 {
		command, ok := commandList[strings.ToLower(args[0])]
		if !ok {
			os.Stderr.WriteString("No such command\n")
			return -1
		}
		if len(command.Text) > 0 {
			fmt.Println(strings.Join(command.Text, "\n"))
		} else {
			fmt.Printf("%-10s %s\n", command.Name, command.Description)
		}
		return 0
	}

	names := make([]string, 0, len(commandList))
	for k := range commandList {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("%-10s %s\n", k, commandList[k].Description)
	}

	return 0
}

func shellQuit(args []string) int {
	return 999
}
