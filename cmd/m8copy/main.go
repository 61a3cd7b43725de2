package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"gopkg.in/yaml.v3"

	"github.com/m8tools/m8"
	"github.com/m8tools/m8/remap"
	"github.com/m8tools/m8/version"
)

const defaultReport = `{{ range .Moves }}{{ printf "%-10s" (upper (toString .Kind)) }} {{ printf "%02X" .From }} => {{ printf "%02X" .To }}
{{ end }}`

// move is one row of the report template's data.
type move struct {
	Kind     remap.MoveKind
	From, To int
}

type moveList []move

func (m *moveList) Moved(kind remap.MoveKind, from, to int) {
	*m = append(*m, move{Kind: kind, From: from, To: to})
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: m8copy [flags] -c chainlist from.yml to.yml")
	fmt.Fprintln(os.Stderr, "       m8copy [flags] -renumber -c chainlist song.yml")
	fmt.Fprintln(os.Stderr, "Copy the given chains, and everything they reach, from one song document")
	fmt.Fprintln(os.Stderr, "into free slots of another; or renumber them within a single document.")
	flag.PrintDefaults()
}

func main() {
	chainList := flag.String("c", "", "Comma separated list of chain numbers to copy, in hexadecimal: -c 20,40.")
	outPath := flag.String("o", "", "File to write the resulting song to. By default the destination file is overwritten.")
	listOnly := flag.Bool("l", false, "Do not write files; just print what would move.")
	renumber := flag.Bool("renumber", false, "Relocate the chains within a single song instead of copying between two.")
	quiet := flag.Bool("q", false, "Do not print the move report.")
	tmplFile := flag.String("t", "", "Use the report template in this file instead of the built-in one.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	wantArgs := 2
	if *renumber {
		wantArgs = 1
	}
	if flag.NArg() != wantArgs || *help {
		flag.Usage()
		os.Exit(0)
	}

	chains, err := parseChains(*chainList)
	if err != nil {
		fatalf("error parsing chain list: %v", err)
	}
	if len(chains) == 0 {
		fatalf("no chains given; use -c to list the chains to copy")
	}

	fromSong, err := readSong(flag.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	toSong := fromSong
	if !*renumber {
		if toSong, err = readSong(flag.Arg(1)); err != nil {
			fatalf("%v", err)
		}
	}

	plan, err := remap.Create(fromSong, toSong, chains)
	if err != nil {
		fatalf("could not place the chains: %v", err)
	}

	if !*quiet {
		if err := printReport(plan, *tmplFile); err != nil {
			fatalf("%v", err)
		}
	}
	if *listOnly {
		return
	}

	if *renumber {
		plan.Renumber(fromSong)
		toSong = fromSong
	} else {
		plan.Apply(fromSong, toSong)
	}

	target := *outPath
	if target == "" {
		target = flag.Arg(wantArgs - 1)
	}
	if err := writeSong(target, toSong); err != nil {
		fatalf("%v", err)
	}
}

func parseChains(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	var chains []int
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%q is not a hexadecimal chain number: %v", field, err)
		}
		chains = append(chains, int(v))
	}
	return chains, nil
}

func readSong(filename string) (*m8.Song, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read song file %v: %v", filename, err)
	}
	var song m8.Song
	if err := yaml.Unmarshal(contents, &song); err != nil {
		return nil, fmt.Errorf("could not parse song file %v: %v", filename, err)
	}
	return &song, nil
}

func writeSong(filename string, song *m8.Song) error {
	contents, err := yaml.Marshal(song)
	if err != nil {
		return fmt.Errorf("could not marshal the song as yaml: %v", err)
	}
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return fmt.Errorf("could not write song file %v: %v", filename, err)
	}
	return nil
}

func printReport(plan *remap.Remapper, tmplFile string) error {
	text := defaultReport
	if tmplFile != "" {
		contents, err := os.ReadFile(tmplFile)
		if err != nil {
			return fmt.Errorf("could not read report template %v: %v", tmplFile, err)
		}
		text = string(contents)
	}
	tmpl, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("could not parse report template: %v", err)
	}
	var moves moveList
	plan.Describe(&moves)
	return tmpl.Execute(os.Stdout, struct{ Moves []move }{Moves: moves})
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
