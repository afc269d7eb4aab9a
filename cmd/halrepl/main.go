// Command halrepl is an interactive REPL around a megahal.Brain: each
// line typed in is learned from and replied to, mirroring the original
// MegaHAL command-line experience.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/wbrown/megahal"
	"github.com/wbrown/megahal/persist"
	"github.com/wbrown/megahal/resources"
)

func main() {
	brainPath := flag.String("brain", "megahal.brn",
		"path to load/save the trained brain")
	wordListURI := flag.String("wordlists", "",
		"directory or base URL to load banned/aux/swap/greeting word lists from")
	order := flag.Int("order", megahal.DefaultOrder,
		"model order (trie depth) for a freshly created brain")
	numCandidates := flag.Int("candidates", 10,
		"number of keyword-biased reply candidates to generate per turn")
	learn := flag.Bool("learn", true,
		"learn from each line typed, in addition to replying to it")
	flag.Parse()

	cfg := megahal.Config{Order: *order}
	if *wordListURI != "" {
		lists, err := resources.LoadWordLists(*wordListURI)
		if err != nil {
			log.Fatalf("loading word lists from %s: %v", *wordListURI, err)
		}
		cfg.Banned = lists.Banned
		cfg.Aux = lists.Aux
		cfg.Swap = lists.Swap
		cfg.Greeting = lists.Greeting
	}

	brain, err := persist.Load(*brainPath, cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("not loading %s: %v", *brainPath, err)
		}
		brain = megahal.NewBrain(cfg)
	}

	fmt.Println(brain.Greet(*numCandidates))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">>> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		input = strings.TrimRight(input, "\n")
		if input == "" {
			continue
		}
		if input == "/quit" {
			break
		}

		var reply string
		if *learn {
			reply = brain.Converse(input, *numCandidates)
		} else {
			reply = brain.Reply(input, *numCandidates)
		}
		fmt.Println(reply)
	}

	if *learn {
		if err := persist.Save(brain, *brainPath); err != nil {
			log.Fatalf("saving %s: %v", *brainPath, err)
		}
	}
}
